package mutparams

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeParams(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	fname := filepath.Join(dir, "mut.def")
	if err := os.WriteFile(fname, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return fname
}

func TestLoadScalarsAndTables(t *testing.T) {
	fname := writeParams(t, `
# comment line
noGap     -0.01
delOpen   -4.6
delExtend -0.69
delEnd    0
tanDup    -2.3
local     true

sub AA 0
sub AT -2.3

len 0 -0.69
len 1 -1.39
`)

	p, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.NoGap != -0.01 || p.DelOpen != -4.6 || p.DelExtend != -0.69 || p.DelEnd != 0 || p.TanDup != -2.3 {
		t.Errorf("unexpected scalar fields: %+v", p)
	}
	if !p.Local {
		t.Errorf("Local = false, want true")
	}
	if p.Sub[0][0] != 0 || p.Sub[0][1] != -2.3 {
		t.Errorf("unexpected sub table: %v", p.Sub)
	}
	if !math.IsInf(p.Sub[0][2], -1) {
		t.Errorf("unset sub entry should default to -Inf, got %v", p.Sub[0][2])
	}
	if len(p.Len) != 2 || p.Len[0] != -0.69 || p.Len[1] != -1.39 {
		t.Errorf("unexpected Len table: %v", p.Len)
	}
	if p.MaxDupLen() != 2 {
		t.Errorf("MaxDupLen() = %d, want 2", p.MaxDupLen())
	}
}

func TestLoadDefaultsToImpossible(t *testing.T) {
	fname := writeParams(t, `noGap 0`)

	p, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !math.IsInf(p.DelOpen, -1) || !math.IsInf(p.TanDup, -1) {
		t.Errorf("unset scalars should default to -Inf: %+v", p)
	}
	if len(p.Len) != 0 {
		t.Errorf("no len directives given, want empty Len, got %v", p.Len)
	}
}

func TestLoadUnknownDirective(t *testing.T) {
	fname := writeParams(t, `bogus 1`)
	if _, err := Load(fname); err == nil {
		t.Errorf("expected an error for an unknown directive")
	}
}

func TestLoadRejectsPositiveLogProb(t *testing.T) {
	fname := writeParams(t, `noGap 0.5`)
	if _, err := Load(fname); err == nil {
		t.Errorf("expected an error for a positive log-probability")
	}
}

func TestLoadRejectsPositiveSub(t *testing.T) {
	fname := writeParams(t, `sub AA 1.2`)
	if _, err := Load(fname); err == nil {
		t.Errorf("expected an error for a positive sub log-probability")
	}
}

func TestLoadRejectsPositiveLen(t *testing.T) {
	fname := writeParams(t, `len 0 0.3`)
	if _, err := Load(fname); err == nil {
		t.Errorf("expected an error for a positive len log-probability")
	}
}

func TestLoadGappedLenIndices(t *testing.T) {
	// len directives need not be contiguous or start at 0; missing
	// indices default to -Inf.
	fname := writeParams(t, `
len 2 -1
`)
	p, err := Load(fname)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Len) != 3 {
		t.Fatalf("len(Len) = %d, want 3", len(p.Len))
	}
	if !math.IsInf(p.Len[0], -1) || !math.IsInf(p.Len[1], -1) {
		t.Errorf("unset indices should be -Inf: %v", p.Len)
	}
	if p.Len[2] != -1 {
		t.Errorf("Len[2] = %v, want -1", p.Len[2])
	}
}
