// Package alignment provides pairwise sequence alignment with affine gap
// penalties.
//
// Global (Needleman-Wunsch) and local (Smith-Waterman) modes fill three
// recurrence matrices and keep, for every cell, the full set of moves that
// reach the optimum. Traceback walks that set depth-first and yields every
// co-optimal alignment.
package alignment

import (
	"fmt"
	"strings"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

// Scheme is an immutable scoring scheme: a symmetric substitution table
// over one alphabet plus the gap existence and gap extension penalties.
// Opening a gap of length k costs existence + k*extension.
type Scheme struct {
	alphabet  sequence.Alphabet
	table     [][]int
	existence int
	extension int
}

// NewScheme builds a scheme scoring identical residues with match and
// differing residues with mismatch. Gap penalties are normalized to be
// non-positive.
func NewScheme(match, mismatch, existence, extension int, alphabet sequence.Alphabet) (*Scheme, error) {
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}

	n := alphabet.Size()
	table := make([][]int, n)
	for i := range table {
		table[i] = make([]int, n)
		for j := range table[i] {
			if i == j {
				table[i][j] = match
			} else {
				table[i][j] = mismatch
			}
		}
	}

	return &Scheme{
		alphabet:  alphabet,
		table:     table,
		existence: -abs(existence),
		extension: -abs(extension),
	}, nil
}

// NewSchemeFromMatrix builds a scheme from an explicit substitution
// matrix keyed by residue. The matrix must cover exactly the alphabet,
// every row must be total, and it must be symmetric.
func NewSchemeFromMatrix(matrix map[byte]map[byte]int, existence, extension int,
	alphabet sequence.Alphabet) (*Scheme, error) {
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}

	symbols := alphabet.Symbols()
	if len(matrix) != len(symbols) {
		return nil, &InvalidSchemeError{
			Reason: fmt.Sprintf("size given = %d, expected = %d", len(matrix), len(symbols)),
		}
	}
	for key := range matrix {
		if !alphabet.Contains(key) {
			return nil, &InvalidSchemeError{
				Reason: fmt.Sprintf("%q is not a valid %s symbol", key, alphabet),
			}
		}
	}

	table := make([][]int, len(symbols))
	for i := 0; i < len(symbols); i++ {
		row, ok := matrix[symbols[i]]
		if !ok {
			return nil, &InvalidSchemeError{Reason: fmt.Sprintf("%q is not found in matrix", symbols[i])}
		}
		if len(row) != len(symbols) {
			return nil, &InvalidSchemeError{
				Reason: fmt.Sprintf("row %q has %d entries, expected %d", symbols[i], len(row), len(symbols)),
			}
		}
		table[i] = make([]int, len(symbols))
		for j := 0; j < len(symbols); j++ {
			v, ok := row[symbols[j]]
			if !ok {
				return nil, &InvalidSchemeError{
					Reason: fmt.Sprintf("row %q has no entry for %q", symbols[i], symbols[j]),
				}
			}
			table[i][j] = v
		}
	}

	for i := range table {
		for j := i + 1; j < len(table); j++ {
			if table[i][j] != table[j][i] {
				return nil, &InvalidSchemeError{
					Reason: fmt.Sprintf("matrix is not symmetric at (%c, %c)", symbols[i], symbols[j]),
				}
			}
		}
	}

	return &Scheme{
		alphabet:  alphabet,
		table:     table,
		existence: -abs(existence),
		extension: -abs(extension),
	}, nil
}

// WithMatrix returns a copy of the scheme whose substitution table is
// replaced by matrix. The gap penalties and alphabet are kept.
func (s *Scheme) WithMatrix(matrix map[byte]map[byte]int) (*Scheme, error) {
	return NewSchemeFromMatrix(matrix, s.existence, s.extension, s.alphabet)
}

// DefaultNucleotide returns the default nucleotide scheme.
func DefaultNucleotide() *Scheme {
	s, _ := NewScheme(2, -1, -2, -1, sequence.Nucleotide)
	return s
}

func checkAlphabet(alphabet sequence.Alphabet) error {
	if alphabet != sequence.Nucleotide && alphabet != sequence.AminoAcid {
		return &InvalidSchemeError{Reason: fmt.Sprintf("unsupported alphabet %d", int(alphabet))}
	}
	return nil
}

// Alphabet returns the alphabet the scheme is defined over.
func (s *Scheme) Alphabet() sequence.Alphabet {
	return s.alphabet
}

// GapExistence returns the one-off penalty for opening a gap.
func (s *Scheme) GapExistence() int {
	return s.existence
}

// GapExtension returns the per-residue gap penalty.
func (s *Scheme) GapExtension() int {
	return s.extension
}

// Score returns the substitution score of two residues. Both residues
// must belong to the scheme's alphabet.
func (s *Scheme) Score(a, b byte) int {
	return s.table[s.alphabet.IndexOf(a)][s.alphabet.IndexOf(b)]
}

// String renders the scheme as a bordered table.
func (s *Scheme) String() string {
	symbols := s.alphabet.Symbols()
	across := len(symbols) + 1
	rule := strings.Repeat("=", 4*across+1)

	var sb strings.Builder
	sb.WriteString(rule)
	fmt.Fprintf(&sb, "\n| GapExistence: %-4s|\n", fmt.Sprintf("%3d", s.existence))
	fmt.Fprintf(&sb, "| GapExtension: %-4s|\n", fmt.Sprintf("%3d", s.extension))
	sb.WriteString(rule)
	sb.WriteString("\n|   |")
	for i := 0; i < len(symbols); i++ {
		fmt.Fprintf(&sb, "%-3s|", fmt.Sprintf("%2c", symbols[i]))
	}
	for i := 0; i < len(symbols); i++ {
		sb.WriteString("\n" + strings.Repeat("|---", across) + "|\n")
		fmt.Fprintf(&sb, "|%-3s|", fmt.Sprintf("%2c", symbols[i]))
		for j := 0; j < len(symbols); j++ {
			fmt.Fprintf(&sb, "%-3s|", fmt.Sprintf("%2d", s.table[i][j]))
		}
	}
	sb.WriteString("\n" + rule)
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
