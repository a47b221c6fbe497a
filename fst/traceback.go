package fst

import "math"

type tracebackStep struct {
	found    bool
	best     LogProb
	srcState int
	srcPos   int
	srcLayer mutStateIndex
	inSym    Symbol
	hasIts   bool
	itsBase  Base
}

func (m *Matrix) updateBest(step *tracebackStep, srcState, srcPos int, srcLayer mutStateIndex, transScore LogProb, its *IncomingTransScore) {
	score := m.getCell(srcState, srcPos, srcLayer) + transScore
	if score > step.best {
		step.best = score
		step.srcState = srcState
		step.srcPos = srcPos
		step.srcLayer = srcLayer
		step.found = true
		if its != nil {
			step.inSym = its.In
			step.hasIts = true
			step.itsBase = its.Base
		} else {
			step.inSym = Sym0
			step.hasIts = false
		}
	}
}

// Traceback recovers the best input-symbol string by re-deriving each
// cell's best predecessor. It returns warnings describing
// substitutions/deletions/duplications found along the path (useful
// only as diagnostics) and fails with *TracebackInvariantError if the
// reconstructed best doesn't match the stored cell within a 1e-6
// relative tolerance, or if no predecessor can be found.
func (m *Matrix) Traceback() (string, []Warning, error) {
	if !(m.loglike > math.Inf(-1)) {
		return "", nil, nil
	}

	var trace []byte
	var warnings []Warning

	state := m.nStates - 1
	pos := m.seqLen
	layer := sMutStateIndex()

	step := &tracebackStep{best: negInf()}
	if m.mutatorScores.Local {
		for s := 0; s < m.nStates; s++ {
			m.updateBest(step, s, m.seqLen, sMutStateIndex(), 0, nil)
		}
	} else {
		m.updateBest(step, m.nStates-1, m.seqLen, sMutStateIndex(), 0, nil)
	}
	if err := m.checkTraceback(step.srcState, step.srcPos, step.srcLayer, step); err != nil {
		return "", nil, err
	}
	state, pos, layer = step.srcState, step.srcPos, step.srcLayer

	for pos >= 0 && state > 0 {
		ss := &m.machineScores.StateScores[state]
		mdl := m.mdl(state)
		step = &tracebackStep{best: negInf()}

		switch {
		case layer == sMutStateIndex():
			if pos > 0 {
				for i := range ss.IncomingEmit {
					its := &ss.IncomingEmit[i]
					w := its.Score + m.mutatorScores.NoGap + m.mutatorScores.Sub[its.Base][m.seq[pos-1]]
					m.updateBest(step, its.Src, pos-1, sMutStateIndex(), w, its)
				}
			}
			for i := range ss.IncomingNull {
				its := &ss.IncomingNull[i]
				m.updateBest(step, its.Src, pos, sMutStateIndex(), its.Score, its)
			}
			m.updateBest(step, state, pos, dMutStateIndex(), m.mutatorScores.DelEnd, nil)

			if mdl > 0 && pos > 0 {
				w := m.mutatorScores.Sub[m.tanDupBase(state, 0)][m.seq[pos-1]]
				m.updateBest(step, state, pos-1, tMutStateIndex(0), w, nil)
			}

			if pos == 0 && m.mutatorScores.Local {
				m.updateBest(step, 0, 0, sMutStateIndex(), 0, nil)
			}

			if step.hasIts && step.srcPos < pos && m.seq[pos-1] != step.itsBase {
				warnings = append(warnings, Warning{Message: substitutionMessage(pos-1, step.itsBase, m.seq[pos-1])})
			}

		case layer == dMutStateIndex():
			for i := range ss.IncomingEmit {
				its := &ss.IncomingEmit[i]
				m.updateBest(step, its.Src, pos, dMutStateIndex(), its.Score+m.mutatorScores.DelExtend, its)
				m.updateBest(step, its.Src, pos, sMutStateIndex(), its.Score+m.mutatorScores.DelOpen, its)
			}
			for i := range ss.IncomingNull {
				its := &ss.IncomingNull[i]
				m.updateBest(step, its.Src, pos, dMutStateIndex(), its.Score, its)
			}

			if step.hasIts {
				warnings = append(warnings, Warning{Message: deletionMessage(pos-1, pos, step.itsBase)})
			}

		case isTMutStateIndex(layer):
			dupIdx := tMutStateDupIdx(layer)
			if dupIdx < mdl-1 {
				w := m.mutatorScores.Sub[m.tanDupBase(state, dupIdx+1)][m.seq[pos-1]]
				m.updateBest(step, state, pos-1, tMutStateIndex(dupIdx+1), w, nil)
			}
			m.updateBest(step, state, pos, sMutStateIndex(), m.mutatorScores.TanDup+m.mutatorScores.Len[dupIdx], nil)

			if step.srcLayer == sMutStateIndex() {
				warnings = append(warnings, Warning{Message: duplicationMessage(pos, m.dupString(state, dupIdx))})
			}

		default:
			return "", nil, &TracebackInvariantError{
				State: m.machine.StateAt(state).Name, Pos: pos, Layer: mutStateName(layer),
				Reason: "unknown traceback layer",
			}
		}

		if err := m.checkTraceback(state, pos, layer, step); err != nil {
			return "", nil, err
		}

		if step.hasIts && step.inSym != Sym0 {
			trace = append([]byte{byte(step.inSym)}, trace...)
		}

		state, pos, layer = step.srcState, step.srcPos, step.srcLayer
	}

	return string(trace), warnings, nil
}

func (m *Matrix) dupString(state, dupIdx int) string {
	b := make([]byte, 0, dupIdx+1)
	for k := dupIdx; k >= 0; k-- {
		b = append(b, baseToChar(m.tanDupBase(state, k)))
	}
	return string(b)
}

func (m *Matrix) checkTraceback(state, pos int, layer mutStateIndex, step *tracebackStep) error {
	expected := m.getCell(state, pos, layer)
	if !step.found {
		return &TracebackInvariantError{
			State: m.machine.StateAt(state).Name, Pos: pos, Layer: mutStateName(layer),
			Reason: "couldn't find source cell",
		}
	}

	denom := expected
	if math.Abs(expected) < 1e-6 {
		denom = 1
	}
	if math.Abs((step.best-expected)/denom) >= 1e-6 {
		return &TracebackInvariantError{
			State: m.machine.StateAt(state).Name, Pos: pos, Layer: mutStateName(layer),
			Stored: expected, Derived: step.best,
		}
	}
	return nil
}
