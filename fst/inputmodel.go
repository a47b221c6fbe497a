package fst

import (
	"fmt"
	"sort"
	"strings"
)

// InputModel assigns a normalized probability to every input symbol
// of a Machine's input alphabet: control symbols get controlWeight,
// payload symbols get symWeight, before normalization to sum 1.
//
// The decode driver (not this package) chooses symWeight/controlWeight,
// since the specific penalty for control symbols is a driver-level
// policy decision, not a property of InputModel itself.
type InputModel struct {
	InputAlphabet string
	SymProb       map[Symbol]float64
}

// NewInputModel builds an InputModel over inputAlphabet, weighting
// each symbol symWeight or controlWeight depending on
// machine.IsControl, then normalizing so the weights sum to 1.
func NewInputModel(machine Machine, inputAlphabet string, symWeight, controlWeight float64) *InputModel {
	im := &InputModel{
		InputAlphabet: inputAlphabet,
		SymProb:       make(map[Symbol]float64, len(inputAlphabet)),
	}

	var norm float64
	for i := 0; i < len(inputAlphabet); i++ {
		sym := Symbol(inputAlphabet[i])
		w := symWeight
		if machine.IsControl(sym) {
			w = controlWeight
		}
		im.SymProb[sym] = w
		norm += w
	}

	for sym := range im.SymProb {
		im.SymProb[sym] /= norm
	}

	return im
}

// sortedSymbols returns the input alphabet symbols in a stable order,
// so String's output is deterministic across runs.
func (im *InputModel) sortedSymbols() []Symbol {
	syms := make([]Symbol, 0, len(im.SymProb))
	for s := range im.SymProb {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// String renders the per-symbol probability table, one "sym: prob"
// pair per line in sorted symbol order.
func (im *InputModel) String() string {
	var b strings.Builder
	for _, s := range im.sortedSymbols() {
		fmt.Fprintf(&b, "%c: %g\n", byte(s), im.SymProb[s])
	}
	return b.String()
}
