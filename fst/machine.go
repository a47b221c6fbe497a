package fst

// Transition is one outgoing edge of a State. In/Out == Sym0/0 denote
// epsilon (no input symbol consumed / no base emitted respectively).
// A transition with Out == 0 is "null"; with Out != 0 it is "emit".
type Transition struct {
	In   Symbol
	Out  byte // 0 means epsilon; otherwise one of "ATCG"
	Dest int
	EOF  bool // flagged by the Machine as an end-of-frame transition
}

func (t Transition) inputEmpty() bool {
	return t.In == Sym0
}

func (t Transition) outputEmpty() bool {
	return t.Out == 0
}

// State is one node of the transducer. LeftContext may contain
// WildBase entries; StateScores.LeftContext is the same context with
// wildcards dropped.
type State struct {
	Name        string
	LeftContext []Base
	Trans       []Transition
}

// InputAlphabetFlags selects which symbols Machine.InputAlphabet
// returns: the "relaxed" payload alphabet, control symbols, and the
// end-of-frame symbol(s).
type InputAlphabetFlags struct {
	Relaxed bool
	Control bool
	EOF     bool
}

// Machine is the collaborator-supplied finite-state transducer: the
// topology and alphabet queries the Viterbi fill and traceback need,
// independent of how a concrete machine was defined or loaded.
// Concrete implementations live outside this package
// (machinedef.Machine).
type Machine interface {
	NStates() int
	StateAt(i int) *State
	InputAlphabet(flags InputAlphabetFlags) string
	OutputAlphabet() string
	IsControl(sym Symbol) bool
	MaxLeftContext() int
	// DecoderToposort returns state indices in an order that is
	// topological with respect to every null (output-empty) transition
	// whose input is epsilon or present in inputAlphabet; emit
	// transitions do not constrain the order.
	DecoderToposort(inputAlphabet string) []int
	// VerifyContexts checks that every predecessor's left-context
	// suffix matches this state's left-context prefix.
	VerifyContexts() error
}
