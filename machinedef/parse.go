package machinedef

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"fstdecode/fst"
)

// Load parses a Machine definition file:
//
//	state NAME LEFTCONTEXT        # LEFTCONTEXT: ACGT, '*' for wildcard
//	trans SRC IN OUT DEST [eof]   # IN/OUT single chars, '-' for epsilon
//	control SYM
//
// blank lines and '#' comments are ignored. The file is read
// gzip-transparently.
func Load(fname string) (*Machine, error) {
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

	m := newMachine()
	index := make(map[string]int)

	sc := bufio.NewScanner(r)
	lineno := 0
	var pendingTrans []string // raw fields, resolved once all states are known

	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "state":
			if len(fields) < 2 {
				return nil, fmt.Errorf("machinedef:%d: expecting state name", lineno)
			}
			name := fields[1]
			var ctx []fst.Base
			if len(fields) >= 3 {
				ctx, err = parseContext(fields[2])
				if err != nil {
					return nil, fmt.Errorf("machinedef:%d: %v", lineno, err)
				}
			}
			if len(ctx) > m.maxLeftCtx {
				m.maxLeftCtx = len(ctx)
			}
			index[name] = len(m.states)
			m.states = append(m.states, fst.State{Name: name, LeftContext: ctx})

		case "trans":
			if len(fields) < 5 {
				return nil, fmt.Errorf("machinedef:%d: expecting src in out dest", lineno)
			}
			pendingTrans = append(pendingTrans, line)

		case "control":
			if len(fields) < 2 {
				return nil, fmt.Errorf("machinedef:%d: expecting control symbol", lineno)
			}
			m.control[fields[1][0]] = true

		default:
			return nil, fmt.Errorf("machinedef:%d: unknown directive %q", lineno, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, line := range pendingTrans {
		fields := strings.Fields(line)
		src, ok := index[fields[1]]
		if !ok {
			return nil, fmt.Errorf("machinedef: unknown state %q in transition", fields[1])
		}
		dest, ok := index[fields[4]]
		if !ok {
			return nil, fmt.Errorf("machinedef: unknown state %q in transition", fields[4])
		}

		in := parseSym(fields[2])
		out := parseOut(fields[3])
		eof := len(fields) >= 6 && fields[5] == "eof"

		t := fst.Transition{In: in, Out: out, Dest: dest, EOF: eof}
		m.states[src].Trans = append(m.states[src].Trans, t)

		if out != 0 {
			m.output[out] = true
		}
		if eof && in != fst.Sym0 {
			m.eofSyms[byte(in)] = true
		}
	}

	return m, nil
}

func parseContext(s string) ([]fst.Base, error) {
	ctx := make([]fst.Base, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '*' {
			ctx = append(ctx, fst.WildBase)
			continue
		}
		b, ok := fst.BaseFromChar(c)
		if !ok {
			return nil, fmt.Errorf("invalid left-context character %q", c)
		}
		ctx = append(ctx, b)
	}
	return ctx, nil
}

func parseSym(s string) fst.Symbol {
	if s == "-" {
		return fst.Sym0
	}
	return fst.Symbol(s[0])
}

func parseOut(s string) byte {
	if s == "-" {
		return 0
	}
	return s[0]
}
