// Package fasta reads and writes FASTA records: a gzip-transparent,
// callback-based scanner over '>'-header framing, independent of the
// core Viterbi algorithm that consumes the sequences it produces.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"fstdecode/oligo"
	"fstdecode/oligo/long"
)

// Record is one FASTA entry.
type Record struct {
	Name string
	Seq  oligo.Oligo
}

// Read parses every record in fname. If ignoreBad, records whose
// sequence contains a non-DNA character are skipped instead of
// failing the whole read.
func Read(fname string, ignoreBad bool) ([]Record, error) {
	var recs []Record

	err := Parse(fname, func(name, sequence string) error {
		ol, ok := long.FromString(sequence)
		if !ok {
			if ignoreBad {
				return nil
			}
			return fmt.Errorf("invalid sequence in record %q: %s", name, sequence)
		}
		recs = append(recs, Record{Name: name, Seq: ol})
		return nil
	})

	return recs, err
}

// Parse scans fname and invokes process once per record with its
// header name and concatenated (unwrapped) sequence.
func Parse(fname string, process func(name, sequence string) error) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader
	if gz, gerr := gzip.NewReader(f); gerr == nil {
		r = gz
	} else {
		f.Seek(0, 0)
		r = f
	}

	sc := bufio.NewScanner(r)
	var name string
	var seq strings.Builder
	have := false

	flush := func() error {
		if !have {
			return nil
		}
		if err := process(name, seq.String()); err != nil {
			return err
		}
		seq.Reset()
		return nil
	}

	for sc.Scan() {
		l := strings.TrimSpace(sc.Text())
		if l == "" {
			continue
		}
		if l[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			name = strings.TrimSpace(l[1:])
			have = true
			continue
		}
		seq.WriteString(l)
	}
	if err := sc.Err(); err != nil {
		return err
	}

	return flush()
}

// TrimPrimers cuts a 5' prefix and 3' suffix primer off ol, allowing up
// to maxErrors mismatches/indels in each primer match. It returns false
// if either primer can't be located, mirroring the codec's own
// cutPrimers step that runs before a read is handed to the decoder.
func TrimPrimers(ol oligo.Oligo, prefix, suffix oligo.Oligo, maxErrors int) (oligo.Oligo, bool) {
	pos5, len5 := oligo.Find(ol, prefix, maxErrors)
	if pos5 != 0 {
		return nil, false
	}

	pos3, _ := oligo.Find(ol, suffix, maxErrors)
	if pos3 < 0 {
		return nil, false
	}

	return ol.Slice(pos5+len5, pos3), true
}

// GCBalanced reports whether ol's GC content falls within the
// synthesis-friendly range oligo pools are typically constrained to.
func GCBalanced(ol oligo.Oligo) bool {
	gc := oligo.GCcontent(ol)
	return gc >= 0.4 && gc <= 0.6
}

// Write writes recs as FASTA, wrapping sequence lines at 70 columns.
func Write(fname string, recs []Record) error {
	texts := make([]TextRecord, len(recs))
	for i, rec := range recs {
		s := ""
		if rec.Seq != nil {
			s = rec.Seq.String()
		}
		texts[i] = TextRecord{Name: rec.Name, Seq: s}
	}
	return WriteText(fname, texts)
}

// TextRecord is a FASTA record whose sequence is arbitrary text
// rather than a validated DNA oligo.Oligo -- decoded input-symbol
// strings aren't necessarily DNA bases, but are still written out in
// FASTA form for downstream tooling to consume.
type TextRecord struct {
	Name string
	Seq  string
}

// WriteText writes recs as FASTA, wrapping sequence lines at 70
// columns.
func WriteText(fname string, recs []TextRecord) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	for _, rec := range recs {
		if _, err := fmt.Fprintf(w, ">%s\n", rec.Name); err != nil {
			return err
		}
		s := rec.Seq
		for i := 0; i < len(s); i += 70 {
			end := i + 70
			if end > len(s) {
				end = len(s)
			}
			if _, err := fmt.Fprintf(w, "%s\n", s[i:end]); err != nil {
				return err
			}
		}
	}

	return nil
}
