package fst

import "math"

// IncomingTransScore is the mirror, on the destination state, of an
// OutgoingTransScore on the source state: both describe the same
// transition, stored twice so the row-fill (needs incoming lists) and
// the epsilon-saturation worklist (needs outgoing lists) each get a
// cache-friendly view without reversing an adjacency list on every
// row.
type IncomingTransScore struct {
	Src   int
	Score LogProb
	In    Symbol
	Base  Base // only meaningful for entries in incomingEmit
}

type OutgoingTransScore struct {
	Dest  int
	Score LogProb
}

// StateScores is the per-state precomputed view MachineScores builds:
// the left context with wildcards dropped, and the four transition
// lists the fill and traceback use.
type StateScores struct {
	LeftContext  []Base
	IncomingEmit []IncomingTransScore
	IncomingNull []IncomingTransScore
	OutgoingEmit []OutgoingTransScore
	OutgoingNull []OutgoingTransScore
}

// MachineScores precomputes, per state, the transition lists with
// baked-in log-weights and emitted-base indices, so the fill and
// traceback never have to look a symbol's probability up by value
// while scoring a cell.
type MachineScores struct {
	StateScores []StateScores
}

// NewMachineScores builds a MachineScores for machine under
// inputModel. It fails with *InvalidMachineError if the machine emits
// a non-DNA base or if its left contexts are mutually inconsistent.
func NewMachineScores(machine Machine, inputModel *InputModel) (*MachineScores, error) {
	if err := machine.VerifyContexts(); err != nil {
		return nil, &InvalidMachineError{Reason: "inconsistent left contexts: " + err.Error()}
	}

	for i := 0; i < len(machine.OutputAlphabet()); i++ {
		c := machine.OutputAlphabet()[i]
		if _, ok := charToBase(c); !ok {
			return nil, &InvalidMachineError{Reason: "machine does not output DNA: '" + string(c) + "'"}
		}
	}

	n := machine.NStates()
	ms := &MachineScores{StateScores: make([]StateScores, n)}

	for s := 0; s < n; s++ {
		state := machine.StateAt(s)
		ss := &ms.StateScores[s]
		ss.LeftContext = make([]Base, 0, len(state.LeftContext))
		for _, lc := range state.LeftContext {
			if lc != WildBase {
				ss.LeftContext = append(ss.LeftContext, lc)
			}
		}
	}

	for s := 0; s < n; s++ {
		state := machine.StateAt(s)
		ss := &ms.StateScores[s]

		for _, t := range state.Trans {
			_, hasProb := inputModel.SymProb[t.In]
			if !(t.inputEmpty() || t.EOF || hasProb) {
				continue
			}

			score := LogProb(0)
			if hasProb {
				score = math.Log(inputModel.SymProb[t.In])
			}

			its := IncomingTransScore{Src: s, Score: score, In: t.In}
			ots := OutgoingTransScore{Dest: t.Dest, Score: score}

			dest := &ms.StateScores[t.Dest]
			if t.outputEmpty() {
				dest.IncomingNull = append(dest.IncomingNull, its)
				ss.OutgoingNull = append(ss.OutgoingNull, ots)
			} else {
				b, ok := charToBase(t.Out)
				if !ok {
					return nil, &InvalidMachineError{Reason: "transition emits non-DNA base"}
				}
				its.Base = b
				dest.IncomingEmit = append(dest.IncomingEmit, its)
				ss.OutgoingEmit = append(ss.OutgoingEmit, ots)
			}
		}
	}

	return ms, nil
}
