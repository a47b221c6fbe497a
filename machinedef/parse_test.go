package machinedef

import (
	"os"
	"path/filepath"
	"testing"

	"fstdecode/fst"
)

func writeDef(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	fname := filepath.Join(dir, "machine.def")
	if err := os.WriteFile(fname, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return fname
}

func TestLoadSimpleChain(t *testing.T) {
	fname := writeDef(t, `
# a trivial 3-state chain
state S0
state S1 A
state S2

trans S0 x A S1
trans S1 - - S2
control z
`)

	m, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.NStates() != 3 {
		t.Fatalf("NStates() = %d, want 3", m.NStates())
	}
	if m.StateAt(0).Name != "S0" || m.StateAt(2).Name != "S2" {
		t.Errorf("unexpected state names: %q, %q", m.StateAt(0).Name, m.StateAt(2).Name)
	}
	if len(m.StateAt(1).LeftContext) != 1 {
		t.Errorf("S1 left context = %v, want length 1", m.StateAt(1).LeftContext)
	}
	if !m.IsControl(fst.Symbol('z')) {
		t.Errorf("expected 'z' to be a control symbol")
	}
	if got := m.OutputAlphabet(); got != "A" {
		t.Errorf("OutputAlphabet() = %q, want %q", got, "A")
	}
	if m.MaxLeftContext() != 1 {
		t.Errorf("MaxLeftContext() = %d, want 1", m.MaxLeftContext())
	}

	in := m.InputAlphabet(fst.InputAlphabetFlags{Relaxed: true})
	if in != "x" {
		t.Errorf("InputAlphabet(relaxed) = %q, want %q", in, "x")
	}

	order := m.DecoderToposort(m.InputAlphabet(fst.InputAlphabetFlags{Relaxed: true, Control: true, EOF: true}))
	pos := make(map[int]int, len(order))
	for i, s := range order {
		pos[s] = i
	}
	if pos[0] >= pos[1] || pos[1] >= pos[2] {
		t.Errorf("toposort %v doesn't respect 0 -> 1 -> 2 null-edge order", order)
	}

	if err := m.VerifyContexts(); err != nil {
		t.Errorf("VerifyContexts: %v", err)
	}
}

func TestLoadEOFTransition(t *testing.T) {
	fname := writeDef(t, `
state S0
state S1

trans S0 e A S1 eof
`)
	m, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := m.InputAlphabet(fst.InputAlphabetFlags{EOF: true}); got != "e" {
		t.Errorf("InputAlphabet(eof) = %q, want %q", got, "e")
	}
	if got := m.InputAlphabet(fst.InputAlphabetFlags{Relaxed: true}); got != "" {
		t.Errorf("InputAlphabet(relaxed) = %q, want empty", got)
	}
}

func TestVerifyContextsMismatch(t *testing.T) {
	// S0's context is "C"; emitting 'A' out of S0 should shift the
	// context to "A", which is incompatible with S1's declared "C".
	fname := writeDef(t, `
state S0 C
state S1 C

trans S0 x A S1
`)
	m, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.VerifyContexts(); err == nil {
		t.Errorf("expected a context mismatch error, got nil")
	}
}

func TestLoadUnknownState(t *testing.T) {
	fname := writeDef(t, `
state S0
trans S0 x A S9
`)
	if _, err := Load(fname); err == nil {
		t.Errorf("expected an error for an unknown destination state")
	}
}
