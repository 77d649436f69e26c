package alignment

import (
	"fmt"
	"strings"
)

// Gap is the symbol written opposite a residue with no partner.
const Gap = '-'

// Alignment is one co-optimal alignment of a Result. AlignedSeq1 belongs
// to the horizontal sequence and AlignedSeq2 to the vertical one; both
// always have the same length. Start and End are residue offsets of the
// aligned region, half-open. Path lists the grid cells visited by the
// traceback, from the endpoint back towards the terminal cell, which is
// not included.
type Alignment struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Start1      int     `json:"start1"`
	End1        int     `json:"end1"`
	Start2      int     `json:"start2"`
	End2        int     `json:"end2"`
	Mode        Mode    `json:"-"`
	Identity    float64 `json:"identity"`
	Path        []Cell  `json:"path,omitempty"`
}

// NewAlignment creates an alignment record spanning both aligned strings.
func NewAlignment(aligned1, aligned2 string, score int, mode Mode) (*Alignment, error) {
	if len(aligned1) != len(aligned2) {
		return nil, fmt.Errorf("aligned sequences must have equal length")
	}
	a := newAlignment(aligned1, aligned2, score, mode)
	a.End1 = len(aligned1) - strings.Count(aligned1, string(Gap))
	a.End2 = len(aligned2) - strings.Count(aligned2, string(Gap))
	return a, nil
}

func newAlignment(aligned1, aligned2 string, score int, mode Mode) *Alignment {
	a := &Alignment{
		AlignedSeq1: aligned1,
		AlignedSeq2: aligned2,
		Score:       score,
		Mode:        mode,
	}
	if len(aligned1) > 0 {
		a.Identity = float64(a.MatchCount()) / float64(len(aligned1))
	}
	return a
}

// Length returns the number of columns.
func (a *Alignment) Length() int {
	return len(a.AlignedSeq1)
}

// MatchCount returns the number of identical residue columns.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == a.AlignedSeq2[i] && a.AlignedSeq1[i] != Gap {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of columns pairing two different residues.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		if c1 != c2 && c1 != Gap && c2 != Gap {
			count++
		}
	}
	return count
}

// GapsSeq1 returns the gap count of the horizontal row.
func (a *Alignment) GapsSeq1() int {
	return strings.Count(a.AlignedSeq1, string(Gap))
}

// GapsSeq2 returns the gap count of the vertical row.
func (a *Alignment) GapsSeq2() int {
	return strings.Count(a.AlignedSeq2, string(Gap))
}

// TotalGaps returns the total number of gap symbols.
func (a *Alignment) TotalGaps() int {
	return a.GapsSeq1() + a.GapsSeq2()
}

// GapOpenings counts maximal gap runs in both rows.
func (a *Alignment) GapOpenings() int {
	return runs(a.AlignedSeq1) + runs(a.AlignedSeq2)
}

func runs(row string) int {
	n := 0
	in := false
	for i := 0; i < len(row); i++ {
		if row[i] == Gap {
			if !in {
				n++
			}
			in = true
		} else {
			in = false
		}
	}
	return n
}

// Rescore recomputes the affine score of the alignment columns under
// scheme. Adjacent gap columns in the same row count as one gap.
func (a *Alignment) Rescore(scheme *Scheme) int {
	total := 0
	var prev byte // 'h', 'v' or 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		switch {
		case c2 == Gap:
			if prev != 'h' {
				total += scheme.GapExistence()
			}
			total += scheme.GapExtension()
			prev = 'h'
		case c1 == Gap:
			if prev != 'v' {
				total += scheme.GapExistence()
			}
			total += scheme.GapExtension()
			prev = 'v'
		default:
			total += scheme.Score(c1, c2)
			prev = 0
		}
	}
	return total
}

// ToCIGAR renders the alignment as an extended CIGAR string using =, X,
// I and D, with the horizontal sequence as the reference.
func (a *Alignment) ToCIGAR() string {
	var cigar strings.Builder
	var op byte
	count := 0

	flush := func() {
		if count > 0 {
			fmt.Fprintf(&cigar, "%d%c", count, op)
		}
	}

	for i := 0; i < len(a.AlignedSeq1); i++ {
		var next byte
		switch c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]; {
		case c1 == Gap:
			next = 'I'
		case c2 == Gap:
			next = 'D'
		case c1 == c2:
			next = '='
		default:
			next = 'X'
		}

		if next == op {
			count++
			continue
		}
		flush()
		op, count = next, 1
	}
	flush()

	return cigar.String()
}

// Format returns a three-line rendering with a match line between the rows.
func (a *Alignment) Format() string {
	var mid strings.Builder
	for i := 0; i < len(a.AlignedSeq1); i++ {
		c1, c2 := a.AlignedSeq1[i], a.AlignedSeq2[i]
		switch {
		case c1 == Gap || c2 == Gap:
			mid.WriteByte(' ')
		case c1 == c2:
			mid.WriteByte('|')
		default:
			mid.WriteByte('.')
		}
	}

	return fmt.Sprintf("H: %s\n   %s\nV: %s\nScore: %d\nIdentity: %.1f%%\nCIGAR: %s",
		a.AlignedSeq1, mid.String(), a.AlignedSeq2,
		a.Score, a.Identity*100, a.ToCIGAR())
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { %s, score: %d, identity: %.1f%%, length: %d }",
		a.Mode, a.Score, a.Identity*100, a.Length())
}

// PercentIdentity calculates percent identity between two aligned rows.
func PercentIdentity(aligned1, aligned2 string) (float64, error) {
	if len(aligned1) != len(aligned2) {
		return 0, fmt.Errorf("aligned sequences must have equal length")
	}
	if len(aligned1) == 0 {
		return 0, fmt.Errorf("aligned sequences cannot be empty")
	}

	return newAlignment(aligned1, aligned2, 0, Global).Identity * 100.0, nil
}
