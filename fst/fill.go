package fst

// Fill runs the row-by-row Viterbi fill: for each DNA position it
// applies emit/null/dup-entry updates into the S and T layers from
// already-finalized cells, then saturates the epsilon subgraph
// together with the deletion layer to a fixpoint, then opens new
// duplication runs from the freshly-finalized S layer.
func (m *Matrix) Fill(stateOrder []int) {
	if m.mutatorScores.Local {
		for state := 0; state < m.nStates; state++ {
			m.setSCell(state, 0, 0)
		}
	} else {
		m.setSCell(0, 0, 0)
	}

	for pos := 0; pos <= m.seqLen; pos++ {
		m.fillRowEmitNullDup(pos, stateOrder)
		m.saturateRow(pos, stateOrder)
		m.fillRowDupEntry(pos)
	}

	if m.mutatorScores.Local {
		for state := 0; state < m.nStates; state++ {
			if v := m.sCell(state, m.seqLen); v > m.loglike {
				m.loglike = v
			}
		}
	} else {
		m.loglike = m.sCell(m.nStates-1, m.seqLen)
	}
}

// fillRowEmitNullDup is step (1): emit/null/dup-continuation updates
// into S(.,p) and T(.,p,.) from cells already finalized at p-1 or
// earlier in toposort order at p.
func (m *Matrix) fillRowEmitNullDup(pos int, stateOrder []int) {
	sub := &m.mutatorScores.Sub

	for _, s := range stateOrder {
		ss := &m.machineScores.StateScores[s]
		mdl := m.mdl(s)

		if pos > 0 {
			for _, its := range ss.IncomingEmit {
				v := m.sCell(its.Src, pos-1) + its.Score + m.mutatorScores.NoGap + sub[its.Base][m.seq[pos-1]]
				m.raiseSCell(s, pos, v)
			}
		}

		for _, its := range ss.IncomingNull {
			v := m.sCell(its.Src, pos) + its.Score
			m.raiseSCell(s, pos, v)
		}

		if mdl > 0 && pos > 0 {
			v := m.tCell(s, pos-1, 0) + sub[m.tanDupBase(s, 0)][m.seq[pos-1]]
			m.raiseSCell(s, pos, v)

			for k := 0; k < mdl-1; k++ {
				w := m.tCell(s, pos-1, k+1) + sub[m.tanDupBase(s, k+1)][m.seq[pos-1]]
				m.setTCell(s, pos, k, w)
			}
		}
	}
}

// saturateRow is step (2): a worklist relaxation over the epsilon
// (null-edge) subgraph together with the deletion layer. It must run
// to a fixpoint within the row; a single topological pass is not
// sufficient because emit-edge-induced D updates can, after
// propagating along null edges, raise S values that feed states
// earlier in the toposort within the same row.
func (m *Matrix) saturateRow(pos int, stateOrder []int) {
	worklist := make([]int, len(stateOrder))
	copy(worklist, stateOrder)
	onStack := make([]bool, m.nStates)
	for _, s := range stateOrder {
		onStack[s] = true
	}

	push := func(s int) {
		if !onStack[s] {
			worklist = append(worklist, s)
			onStack[s] = true
		}
	}

	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		onStack[s] = false

		ss := &m.machineScores.StateScores[s]
		dsrc := m.dCell(s, pos)
		ssrc := m.sCell(s, pos)
		if v := dsrc + m.mutatorScores.DelEnd; v > ssrc {
			ssrc = v
		}
		m.setSCell(s, pos, ssrc)

		for _, ots := range ss.OutgoingEmit {
			dsc := dsrc + m.mutatorScores.DelExtend
			if v := ssrc + m.mutatorScores.DelOpen; v > dsc {
				dsc = v
			}
			dsc += ots.Score

			if m.raiseDCell(ots.Dest, pos, dsc) {
				push(ots.Dest)
			}
		}

		for _, ots := range ss.OutgoingNull {
			raised := false
			if m.raiseDCell(ots.Dest, pos, dsrc+ots.Score) {
				raised = true
			}
			if m.raiseSCell(ots.Dest, pos, ssrc+ots.Score) {
				raised = true
			}
			if raised {
				push(ots.Dest)
			}
		}
	}
}

// fillRowDupEntry is step (3): open new duplication runs from the
// row's freshly-finalized S layer.
func (m *Matrix) fillRowDupEntry(pos int) {
	if pos == 0 {
		return
	}

	for state := 0; state < m.nStates; state++ {
		mdl := m.mdl(state)
		s := m.sCell(state, pos)
		for k := 0; k < mdl; k++ {
			v := s + m.mutatorScores.TanDup + m.mutatorScores.Len[k]
			if v > m.tCell(state, pos, k) {
				m.setTCell(state, pos, k, v)
			}
		}
	}
}
