// The oligo package defines oligo sequence data structures and functions
package oligo

const (
	A = 0
	T = 1
	C = 2
	G = 3
)

// Generic interface of an oligo that represents an oligo sequence.
// The actual implementation is in package long
type Oligo interface {
	// Length of the oligo
	Len() int

	// Converts the oligo to string
	String() string

	// Compares two oligos. 
	// Returns
	//     -1 if the oligo comes before the other oligo
	//     0 if the oligos are the same
	//     1 if the oligo comes after the other oligo
	// Note: if the oligos are of different lengths, the shorter one comes
	// before the longer one
	Cmp(other Oligo) int

	// Moves to the next oligo
	// Returns false if it reaches the limit (the oligo then wraps around to all A's)
	Next() bool

	// Returns the nucleotide at position idx, -1 if out of bounds
	At(idx int) int

	// Returns part of the oligo
	Slice(start, end int) Oligo

	// Creates a copy of the oligo
	Clone() Oligo

	// Appends the specified oligo
	// Returns false if error (the resulting oligo too big)
	Append(other Oligo) bool
}

var ntNames = "ATCG"

// Converts an numeric value of a nucleotide (nt) to its string value
func Nt2String(nt int) string {
	if nt<0 || nt > len(ntNames) {
		return "?"
	}

	return string(ntNames[nt])
}

// Converts string value of a nt to its numeric value
func String2Nt(nt string) int {
	switch nt {
	default:
		return -1
	case "A":
		return A
	case "T":
		return T
	case "C":
		return C
	case "G":
		return G
	}
}

// Calculates the GC content of an oligo. 
// Returns a value between 0 (no GC) and 1.
func GCcontent(o Oligo) float64 {
	var n int

	for i := 0; i < o.Len(); i++ {
		nt := o.At(i)
		if nt == C || nt == G {
			n++
		}
	}

	return float64(n)/float64(o.Len())
}

// Finds subsequence in a sequence, with up to maxdist errors allowed.
// Similar to Levenshtein distance.
// Returns the position and the length in the original sequence, -1 for position
// if not found.
func Find(s, subseq Oligo, maxdist int) (pos int, length int) {
	slen := s.Len()
	sslen := subseq.Len()
	f := make([]int, slen + 1)
	l := make([]int, slen + 1)
	for i := range f {
		f[i] = 0
		l[i] = 0
	}

	for i := 0; i < sslen; i++ {
		ca := subseq.At(i)
		fj1 := f[0] // fj1 is the value of f[j - 1] in last iteration
		lj1 := l[0]
		f[0]++
		l[0]--
		mdist := f[0]
		for j := 0; j < slen; j++ {
			cb := s.At(j)

			mn, ln := min2(f[j+1]+1, f[j]+1, l[j+1]-1, l[j]+1) // delete & insert
			if cb != ca {
				mn, ln = min2(mn, fj1+1, ln, lj1) // change
			} else {
				mn, ln = min2(mn, fj1, ln, lj1) // matched
			}

			fj1, f[j+1] = f[j+1], mn // save f[j] to fj1(j is about to increase), update f[j] to mn
			lj1, l[j+1] = l[j+1], ln

			if f[j+1] < mdist {
				mdist = f[j+1]
			}
		}

		if mdist > maxdist {
			return -1, 0
		}
	}

	end := len(f) - 1
	minval := f[end]
	for i := end - 1; i >= 0; i-- {
		if minval > f[i] {
			minval = f[i]
			end = i
		}
	}

	length = sslen + l[end]
	pos = end - sslen - l[end]

	return
}

func min2(a, b, aa, bb int) (int, int) {
	if a <= b {
		return a, aa
	} else {
		return b, bb
	}
}
