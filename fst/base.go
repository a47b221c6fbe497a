// Package fst implements the joint Viterbi decoder for DNA-encoded
// messages: given a finite-state transducer (Machine) mapping input
// symbols to DNA bases and a probabilistic mutation model
// (MutatorParams), it recovers the most likely input symbol string
// for an observed, possibly mutated, DNA sequence.
package fst

import (
	"math"

	"fstdecode/oligo"
)

// LogProb is a log-probability. math.Inf(-1) is the additive identity
// for the max-plus algebra the whole package operates in.
type LogProb = float64

func negInf() LogProb {
	return math.Inf(-1)
}

// Symbol is an input-alphabet character of the transducer. Sym0 is
// reserved for epsilon (no input consumed).
type Symbol byte

const Sym0 Symbol = 0

// Base is an element of the four-letter DNA alphabet, oligo.A/T/C/G.
// WildBase only appears in a State's raw left-context annotation,
// never in a resolved StateScores.LeftContext or in an observed
// sequence.
type Base int

const WildBase Base = -1

func charToBase(c byte) (Base, bool) {
	n := oligo.String2Nt(string(c))
	if n < 0 {
		return 0, false
	}
	return Base(n), true
}

func baseToChar(b Base) byte {
	return oligo.Nt2String(int(b))[0]
}

// BaseFromChar converts a DNA character ('A','T','C','G') to a Base.
// Collaborators (machinedef, mutparams) use this to build Machine and
// MutatorParams values from text.
func BaseFromChar(c byte) (Base, bool) {
	return charToBase(c)
}

// BaseToChar is the inverse of BaseFromChar.
func BaseToChar(b Base) byte {
	return baseToChar(b)
}

// DNAAlphabet lists the four bases in the canonical order used
// throughout the package (matches oligo.A/T/C/G == 0/1/2/3).
const DNAAlphabet = "ATCG"

func isValidBase(b Base) bool {
	return b >= 0 && int(b) < len(DNAAlphabet)
}
