// Package machinedef parses a Machine definition file into an
// fst.Machine: state/transition topology, per-state left contexts,
// control-symbol declarations, and the derived capabilities
// (toposort, context verification) the fst core requires from its
// Machine collaborator.
package machinedef

import (
	"fmt"
	"sort"

	"fstdecode/fst"
)

// Machine is the concrete fst.Machine built by Load.
type Machine struct {
	states    []fst.State
	control   map[byte]bool
	eofSyms   map[byte]bool
	output    map[byte]bool
	maxLeftCtx int
}

func newMachine() *Machine {
	return &Machine{
		control: make(map[byte]bool),
		eofSyms: make(map[byte]bool),
		output:  make(map[byte]bool),
	}
}

func (m *Machine) NStates() int { return len(m.states) }

func (m *Machine) StateAt(i int) *fst.State { return &m.states[i] }

// IsControl reports whether sym was declared with a `control` line.
func (m *Machine) IsControl(sym fst.Symbol) bool {
	return m.control[byte(sym)]
}

func (m *Machine) MaxLeftContext() int { return m.maxLeftCtx }

// OutputAlphabet returns the distinct, sorted non-epsilon output
// characters used by any transition.
func (m *Machine) OutputAlphabet() string {
	return sortedKeys(m.output)
}

// InputAlphabet returns the distinct input symbols selected by flags:
// Relaxed selects ordinary payload symbols (neither control nor EOF),
// Control selects declared control symbols, EOF selects symbols used
// only on EOF-flagged transitions.
func (m *Machine) InputAlphabet(flags fst.InputAlphabetFlags) string {
	set := make(map[byte]bool)
	for _, st := range m.states {
		for _, t := range st.Trans {
			if t.In == fst.Sym0 {
				continue
			}
			c := byte(t.In)
			switch {
			case m.control[c]:
				if flags.Control {
					set[c] = true
				}
			case m.eofSyms[c] && !payloadElsewhere(m, c):
				if flags.EOF {
					set[c] = true
				}
			default:
				if flags.Relaxed {
					set[c] = true
				}
			}
		}
	}
	return sortedKeys(set)
}

// payloadElsewhere reports whether symbol c also labels a non-EOF
// transition somewhere in the machine -- a symbol used on both EOF
// and ordinary transitions is treated as payload, since it isn't
// exclusively an end-of-frame marker.
func payloadElsewhere(m *Machine, c byte) bool {
	for _, st := range m.states {
		for _, t := range st.Trans {
			if byte(t.In) == c && !t.EOF {
				return true
			}
		}
	}
	return false
}

func sortedKeys(set map[byte]bool) string {
	keys := make([]byte, 0, len(set))
	for c := range set {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return string(keys)
}

// DecoderToposort orders the states topologically with respect to
// every null (epsilon-output) transition whose input is epsilon or
// present in inputAlphabet. It assumes that subgraph is acyclic and
// falls back to declaration order for any state it cannot otherwise
// place (e.g. one involved in a cycle), rather than failing, since a
// malformed machine should surface as a bad decode, not a parse-time
// panic.
func (m *Machine) DecoderToposort(inputAlphabet string) []int {
	n := len(m.states)
	allowed := make(map[byte]bool, len(inputAlphabet))
	for i := 0; i < len(inputAlphabet); i++ {
		allowed[inputAlphabet[i]] = true
	}

	adj := make([][]int, n)
	indeg := make([]int, n)
	for s, st := range m.states {
		for _, t := range st.Trans {
			if t.Out != 0 {
				continue // only null transitions define the toposort edges
			}
			if t.In != fst.Sym0 && !allowed[byte(t.In)] {
				continue
			}
			adj[s] = append(adj[s], t.Dest)
			indeg[t.Dest]++
		}
	}

	order := make([]int, 0, n)
	queue := make([]int, 0, n)
	seen := make([]bool, n)
	for s := 0; s < n; s++ {
		if indeg[s] == 0 {
			queue = append(queue, s)
		}
	}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		order = append(order, s)
		for _, d := range adj[s] {
			indeg[d]--
			if indeg[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	for s := 0; s < n; s++ {
		if !seen[s] {
			order = append(order, s)
		}
	}

	return order
}

// VerifyContexts checks that, for every transition src->dest, dest's
// declared left context is consistent with src's: an emitting
// transition should shift src's context by the emitted base, a null
// transition should leave it unchanged. Wildcard positions match
// anything. Contexts of differing lengths are compared over their
// overlapping suffix/prefix region.
func (m *Machine) VerifyContexts() error {
	for _, st := range m.states {
		for _, t := range st.Trans {
			dest := &m.states[t.Dest]
			expected := predictContext(st.LeftContext, t)
			if !contextsCompatible(expected, dest.LeftContext) {
				return fmt.Errorf("state %q -> %q: left context mismatch", st.Name, dest.Name)
			}
		}
	}
	return nil
}

func predictContext(src []fst.Base, t fst.Transition) []fst.Base {
	if t.Out == 0 {
		return src
	}
	b, _ := fst.BaseFromChar(t.Out)
	if len(src) == 0 {
		return src
	}
	shifted := make([]fst.Base, len(src))
	copy(shifted, src[1:])
	shifted[len(shifted)-1] = b
	return shifted
}

func contextsCompatible(a, b []fst.Base) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		ai := a[len(a)-n+i]
		bi := b[len(b)-n+i]
		if ai == fst.WildBase || bi == fst.WildBase {
			continue
		}
		if ai != bi {
			return false
		}
	}
	return true
}
