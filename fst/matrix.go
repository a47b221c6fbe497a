package fst

// mutStateIndex enumerates which sub-layer of the 3-D matrix a cell
// belongs to: 0 is S (match/substitute), 1 is D (deletion), and
// 2+k is T(k), k in [0, mdl).
type mutStateIndex int

func sMutStateIndex() mutStateIndex { return 0 }
func dMutStateIndex() mutStateIndex { return 1 }
func tMutStateIndex(k int) mutStateIndex { return mutStateIndex(2 + k) }

func isTMutStateIndex(m mutStateIndex) bool { return m >= 2 }
func tMutStateDupIdx(m mutStateIndex) int   { return int(m) - 2 }

func mutStateName(m mutStateIndex) string {
	switch {
	case m == sMutStateIndex():
		return "S"
	case m == dMutStateIndex():
		return "D"
	default:
		return "T"
	}
}

// Matrix is the dense score tensor cell[pos][state][layer], flattened
// with strides [L+1, N, 2+maxDupLen] to keep row-major locality on
// pos: the fill and traceback both walk one pos at a time, visiting
// every state and layer at that position before moving on.
type Matrix struct {
	machine       Machine
	machineScores *MachineScores
	mutatorScores *MutatorScores

	seq []Base // observed DNA sequence, as base indices

	nStates    int
	seqLen     int
	maxDupLen  int // min(machine.MaxLeftContext(), mutatorParams.MaxDupLen())
	layerSize  int // 2 + maxDupLen
	cell       []LogProb

	loglike LogProb
}

// NewMatrix allocates a Matrix for machine/mutatorParams/seq. It does
// not fill the matrix; call Fill to run the row-fill.
func NewMatrix(machine Machine, machineScores *MachineScores, mutatorScores *MutatorScores, seq []Base) *Matrix {
	maxDupLen := machine.MaxLeftContext()
	if mutatorScores.MaxDupLen() < maxDupLen {
		maxDupLen = mutatorScores.MaxDupLen()
	}
	if maxDupLen < 0 {
		maxDupLen = 0
	}

	m := &Matrix{
		machine:       machine,
		machineScores: machineScores,
		mutatorScores: mutatorScores,
		seq:           seq,
		nStates:       machine.NStates(),
		seqLen:        len(seq),
		maxDupLen:     maxDupLen,
		layerSize:     2 + maxDupLen,
		loglike:       negInf(),
	}

	ncells := (m.seqLen + 1) * m.nStates * m.layerSize
	m.cell = make([]LogProb, ncells)
	for i := range m.cell {
		m.cell[i] = negInf()
	}

	return m
}

func (m *Matrix) idx(state, pos int, layer mutStateIndex) int {
	return (pos*m.nStates+state)*m.layerSize + int(layer)
}

func (m *Matrix) getCell(state, pos int, layer mutStateIndex) LogProb {
	return m.cell[m.idx(state, pos, layer)]
}

func (m *Matrix) setCell(state, pos int, layer mutStateIndex, v LogProb) {
	m.cell[m.idx(state, pos, layer)] = v
}

func (m *Matrix) sCell(state, pos int) LogProb { return m.getCell(state, pos, sMutStateIndex()) }
func (m *Matrix) dCell(state, pos int) LogProb { return m.getCell(state, pos, dMutStateIndex()) }
func (m *Matrix) tCell(state, pos, k int) LogProb { return m.getCell(state, pos, tMutStateIndex(k)) }

func (m *Matrix) setSCell(state, pos int, v LogProb) { m.setCell(state, pos, sMutStateIndex(), v) }
func (m *Matrix) setDCell(state, pos int, v LogProb) { m.setCell(state, pos, dMutStateIndex(), v) }
func (m *Matrix) setTCell(state, pos, k int, v LogProb) { m.setCell(state, pos, tMutStateIndex(k), v) }

// raiseSCell/raiseDCell assign the max of the current value and v,
// reporting whether the cell was raised.
func (m *Matrix) raiseSCell(state, pos int, v LogProb) bool {
	if v > m.sCell(state, pos) {
		m.setSCell(state, pos, v)
		return true
	}
	return false
}

func (m *Matrix) raiseDCell(state, pos int, v LogProb) bool {
	if v > m.dCell(state, pos) {
		m.setDCell(state, pos, v)
		return true
	}
	return false
}

// mdl is the per-state maximum dup depth: min(m.maxDupLen,
// |leftContext(state)|) -- a duplication run can never read back
// further than the state's own left context provides.
func (m *Matrix) mdl(state int) int {
	n := len(m.machineScores.StateScores[state].LeftContext)
	if n < m.maxDupLen {
		return n
	}
	return m.maxDupLen
}

// tanDupBase returns the (mdl-1-k)-th base of state's left context:
// the duplication read emits bases from the context in reverse order
// as the run lengthens.
func (m *Matrix) tanDupBase(state, k int) Base {
	ctx := m.machineScores.StateScores[state].LeftContext
	mdl := m.mdl(state)
	return ctx[mdl-1-k]
}

// Loglike returns the matrix's overall best score: S(N-1,L) globally,
// max_s S(s,L) locally.
func (m *Matrix) Loglike() LogProb {
	return m.loglike
}
