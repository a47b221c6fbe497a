package fst

// MutatorParams is the collaborator-supplied mutation model: scalar
// log-probabilities for the gap/duplication state machine, a 4x4
// substitution log-matrix, and a duplication-length log-pmf. All
// probabilities are already in log space, so scoring a path is a sum
// of these fields rather than a product of probabilities.
type MutatorParams struct {
	NoGap     LogProb
	DelOpen   LogProb
	DelExtend LogProb
	DelEnd    LogProb
	TanDup    LogProb

	// Sub[emitted][observed] is the log-probability of observing
	// `observed` given the machine emitted `emitted`.
	Sub [4][4]LogProb

	// Len[k] is the log-probability of a duplication run of length
	// k+1 bases. len(Len) is maxDupLen().
	Len []LogProb

	// Local toggles local (any start/end state, zero-cost) vs global
	// (state 0 -> state N-1) alignment semantics.
	Local bool
}

// MaxDupLen is the upper bound on duplication-run length the mutation
// model supports.
func (p *MutatorParams) MaxDupLen() int {
	return len(p.Len)
}

// MutatorScores is the mechanical copy of MutatorParams used during a
// decode. The fields are identical to MutatorParams' (which is
// already expressed in log space); MutatorScores exists as its own
// value so the fill/traceback code depends on an immutable view
// rather than the caller-owned MutatorParams, which could be mutated
// out from under a concurrent decode otherwise.
type MutatorScores struct {
	NoGap     LogProb
	DelOpen   LogProb
	DelExtend LogProb
	DelEnd    LogProb
	TanDup    LogProb
	Sub       [4][4]LogProb
	Len       []LogProb
	Local     bool
}

// MaxDupLen is the upper bound on duplication-run length the mutation
// model supports.
func (s *MutatorScores) MaxDupLen() int {
	return len(s.Len)
}

// NewMutatorScores copies params into a MutatorScores. It does not
// reject params whose sub-rows or len aren't proper log-pmfs, and
// neither does mutparams.Load, which only rejects values above 0; the
// core itself has no opinion on whether a row sums to something
// resembling a normalized distribution.
func NewMutatorScores(params *MutatorParams) *MutatorScores {
	ms := &MutatorScores{
		NoGap:     params.NoGap,
		DelOpen:   params.DelOpen,
		DelExtend: params.DelExtend,
		DelEnd:    params.DelEnd,
		TanDup:    params.TanDup,
		Sub:       params.Sub,
		Local:     params.Local,
	}
	ms.Len = make([]LogProb, len(params.Len))
	copy(ms.Len, params.Len)
	return ms
}
