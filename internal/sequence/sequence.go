// Package sequence provides the residue sequences consumed by the aligner.
//
// A Sequence is cleaned (trimmed, upper-cased) and validated against a
// single alphabet when it is built. The alphabet is either given by the
// caller or detected from the residues, and is fixed for the lifetime of
// the value.
package sequence

import (
	"fmt"
	"strings"
)

// Sequence represents a validated residue sequence.
type Sequence struct {
	Residues    string
	ID          string
	Description string
	Alphabet    Alphabet
}

// Clean trims surrounding whitespace and upper-cases the residues.
func Clean(residues string) string {
	return strings.ToUpper(strings.TrimSpace(residues))
}

// New creates a sequence, detecting its alphabet from the residues.
func New(residues string) (*Sequence, error) {
	cleaned := Clean(residues)
	return build(cleaned, DetectAlphabet(cleaned))
}

// NewWithAlphabet creates a sequence validated against the given alphabet.
func NewWithAlphabet(residues string, alphabet Alphabet) (*Sequence, error) {
	return build(Clean(residues), alphabet)
}

// WithID creates a new sequence with an identifier.
func WithID(residues, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	seq, err := New(residues)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	return seq, nil
}

// WithMetadata creates a new sequence with full metadata.
func WithMetadata(residues, id, description string, alphabet Alphabet) (*Sequence, error) {
	seq, err := NewWithAlphabet(residues, alphabet)
	if err != nil {
		return nil, err
	}

	seq.ID = id
	seq.Description = description
	return seq, nil
}

func build(cleaned string, alphabet Alphabet) (*Sequence, error) {
	if len(cleaned) == 0 {
		return nil, &EmptySequenceError{}
	}

	if err := Validate(cleaned, alphabet); err != nil {
		return nil, err
	}

	return &Sequence{
		Residues: cleaned,
		Alphabet: alphabet,
	}, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Residues)
}

// At returns the residue at index i. It panics when i is out of range,
// like any slice index.
func (s *Sequence) At(i int) byte {
	return s.Residues[i]
}

// Subsequence returns residues [start, end) as a new sequence.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end <= start {
		return nil, fmt.Errorf("end must be greater than start")
	}
	if end > len(s.Residues) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{
		Residues:    s.Residues[start:end],
		ID:          s.ID,
		Description: s.Description,
		Alphabet:    s.Alphabet,
	}, nil
}

func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return c
	}
}

// Reverse returns the reverse of the sequence.
func (s *Sequence) Reverse() *Sequence {
	b := []byte(s.Residues)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return &Sequence{
		Residues:    string(b),
		ID:          s.ID,
		Description: s.Description,
		Alphabet:    s.Alphabet,
	}
}

// Complement returns the base-wise complement (A<->T, C<->G). Only
// nucleotide sequences have a complement.
func (s *Sequence) Complement() (*Sequence, error) {
	if s.Alphabet != Nucleotide {
		return nil, fmt.Errorf("complement only available for nucleotide sequences")
	}

	comp := make([]byte, len(s.Residues))
	for i := 0; i < len(s.Residues); i++ {
		comp[i] = complementBase(s.Residues[i])
	}

	return &Sequence{
		Residues:    string(comp),
		ID:          s.ID,
		Description: s.Description,
		Alphabet:    s.Alphabet,
	}, nil
}

// ReverseComplement returns the reverse complement of the sequence.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	comp, err := s.Complement()
	if err != nil {
		return nil, err
	}
	return comp.Reverse(), nil
}

// FindSubsequence returns every start index at which motif occurs,
// overlapping occurrences included. The motif must belong to the same
// alphabet as the sequence.
func (s *Sequence) FindSubsequence(motif string) ([]int, error) {
	motif = Clean(motif)
	if len(motif) == 0 {
		return nil, &EmptySequenceError{}
	}
	if err := Validate(motif, s.Alphabet); err != nil {
		return nil, err
	}

	return findAll(s.Residues, motif), nil
}

// Strands holds motif positions on the forward strand and on the
// reverse complement. Reverse positions index into the reverse
// complement string.
type Strands struct {
	Forward []int
	Reverse []int
}

// FindStrands searches motif on both strands of a nucleotide sequence.
func (s *Sequence) FindStrands(motif string) (*Strands, error) {
	forward, err := s.FindSubsequence(motif)
	if err != nil {
		return nil, err
	}

	rc, err := s.ReverseComplement()
	if err != nil {
		return nil, err
	}

	return &Strands{
		Forward: forward,
		Reverse: findAll(rc.Residues, Clean(motif)),
	}, nil
}

func findAll(residues, motif string) []int {
	positions := make([]int, 0)
	for i := 0; i+len(motif) <= len(residues); i++ {
		if residues[i:i+len(motif)] == motif {
			positions = append(positions, i)
		}
	}
	return positions
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	var header string
	if s.ID != "" {
		header = ">" + s.ID
		if s.Description != "" {
			header += " " + s.Description
		}
	} else {
		header = ">sequence"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')

	// 80 residues per line
	for i := 0; i < len(s.Residues); i += 80 {
		end := i + 80
		if end > len(s.Residues) {
			end = len(s.Residues)
		}
		sb.WriteString(s.Residues[i:end])
		sb.WriteByte('\n')
	}

	return sb.String()
}

// String returns the residues.
func (s *Sequence) String() string {
	return s.Residues
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.Residues == other.Residues && s.Alphabet == other.Alphabet
}
