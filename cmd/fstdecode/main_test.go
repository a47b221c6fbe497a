package main

import (
	"testing"

	"fstdecode/io/fasta"
)

func TestCombineGroupsPreservesInputOrder(t *testing.T) {
	recs := []fasta.TextRecord{
		{Name: "rec1", Seq: "AAAA"},
		{Name: "grpA/0", Seq: "CCCC"},
		{Name: "grpA/1", Seq: "GGGG"},
		{Name: "rec2", Seq: "TTTT"},
	}

	out := combineGroups(recs, 1)

	if len(out) != 3 {
		t.Fatalf("got %d records, want 3 (rec1, grpA, rec2)", len(out))
	}
	names := []string{out[0].Name, out[1].Name, out[2].Name}
	want := []string{"rec1", "grpA", "rec2"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("record %d name = %q, want %q (order: %v)", i, names[i], want[i], names)
		}
	}
}

func TestCombineGroupsPassthroughOnly(t *testing.T) {
	recs := []fasta.TextRecord{
		{Name: "rec1", Seq: "AAAA"},
		{Name: "rec2", Seq: "TTTT"},
	}

	out := combineGroups(recs, 1)
	if len(out) != 2 || out[0].Name != "rec1" || out[1].Name != "rec2" {
		t.Errorf("got %v, want unchanged passthrough order", out)
	}
}
