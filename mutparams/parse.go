// Package mutparams parses a mutation-parameter file into an
// fst.MutatorParams: the penalty table the Viterbi fill reads from,
// kept as a distinct text format so the algorithm itself never has to
// know how those weights were sourced.
package mutparams

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"fstdecode/fst"
)

// Load parses a mutation-parameter file:
//
//	noGap     -0.01
//	delOpen   -4.6
//	delExtend -0.69
//	delEnd    0
//	tanDup    -2.3
//	local     true
//	sub AA 0
//	sub AT -2.3
//	...
//	len 0 -0.69
//	len 1 -1.39
//
// sub/len values not specified default to -Inf (impossible). Blank
// lines and '#' comments are ignored.
func Load(fname string) (*fst.MutatorParams, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader
	if gz, gerr := gzip.NewReader(f); gerr == nil {
		r = gz
	} else {
		f.Seek(0, 0)
		r = f
	}

	p := &fst.MutatorParams{
		NoGap:     negInf(),
		DelOpen:   negInf(),
		DelExtend: negInf(),
		DelEnd:    negInf(),
		TanDup:    negInf(),
	}
	for i := range p.Sub {
		for j := range p.Sub[i] {
			p.Sub[i][j] = negInf()
		}
	}

	var lenVals map[int]float64 = make(map[int]float64)
	maxLenIdx := -1

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		var ferr error
		switch fields[0] {
		case "noGap":
			p.NoGap, ferr = parseLogProb(fields)
		case "delOpen":
			p.DelOpen, ferr = parseLogProb(fields)
		case "delExtend":
			p.DelExtend, ferr = parseLogProb(fields)
		case "delEnd":
			p.DelEnd, ferr = parseLogProb(fields)
		case "tanDup":
			p.TanDup, ferr = parseLogProb(fields)
		case "local":
			p.Local, ferr = parseBool(fields)
		case "sub":
			ferr = parseSub(p, fields)
		case "len":
			var idx int
			var v float64
			idx, v, ferr = parseLen(fields)
			if ferr == nil {
				lenVals[idx] = v
				if idx > maxLenIdx {
					maxLenIdx = idx
				}
			}
		default:
			ferr = fmt.Errorf("unknown directive %q", fields[0])
		}
		if ferr != nil {
			return nil, fmt.Errorf("mutparams:%d: %v", lineno, ferr)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	p.Len = make([]float64, maxLenIdx+1)
	for i := range p.Len {
		p.Len[i] = negInf()
	}
	for idx, v := range lenVals {
		p.Len[idx] = v
	}

	return p, nil
}

func negInf() float64 {
	return math.Inf(-1)
}

// parseLogProb parses a log-probability field and rejects anything
// outside [-Inf, 0]: a positive value isn't a probability at all, and
// callers would silently treat it as "more likely than certain".
func parseLogProb(fields []string) (float64, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("expecting a value")
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, err
	}
	if v > 0 {
		return 0, fmt.Errorf("log-probability %v is out of range (-Inf, 0]", v)
	}
	return v, nil
}

func parseBool(fields []string) (bool, error) {
	if len(fields) < 2 {
		return false, fmt.Errorf("expecting true/false")
	}
	return strconv.ParseBool(fields[1])
}

func parseSub(p *fst.MutatorParams, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("expecting 'sub AB value'")
	}
	pair := fields[1]
	if len(pair) != 2 {
		return fmt.Errorf("expecting a two-character base pair, got %q", pair)
	}
	emitted, ok := fst.BaseFromChar(pair[0])
	if !ok {
		return fmt.Errorf("invalid base %q", pair[0])
	}
	observed, ok := fst.BaseFromChar(pair[1])
	if !ok {
		return fmt.Errorf("invalid base %q", pair[1])
	}
	v, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return err
	}
	if v > 0 {
		return fmt.Errorf("log-probability %v is out of range (-Inf, 0]", v)
	}
	p.Sub[emitted][observed] = v
	return nil
}

func parseLen(fields []string) (int, float64, error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("expecting 'len K value'")
	}
	idx, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	v, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, 0, err
	}
	if v > 0 {
		return 0, 0, fmt.Errorf("log-probability %v is out of range (-Inf, 0]", v)
	}
	return idx, v, nil
}
