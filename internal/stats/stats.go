// Package stats summarizes sequence sets, alignment sets and trees for
// reports.
package stats

import (
	"fmt"
	"sort"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

// SequenceSetStats summarizes the lengths of a sequence collection.
type SequenceSetStats struct {
	Count        int     `json:"count"`
	TotalLength  int     `json:"total_length"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	MeanLength   float64 `json:"mean_length"`
	MedianLength int     `json:"median_length"`
	N50          int     `json:"n50"`
	Nucleotide   int     `json:"nucleotide"`
	AminoAcid    int     `json:"amino_acid"`
}

// FromSequences summarizes a non-empty sequence collection.
func FromSequences(sequences []*sequence.Sequence) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	s := &SequenceSetStats{Count: len(sequences)}
	lengths := make([]int, len(sequences))
	for i, seq := range sequences {
		lengths[i] = seq.Len()
		s.TotalLength += seq.Len()
		if seq.Alphabet == sequence.Nucleotide {
			s.Nucleotide++
		} else {
			s.AminoAcid++
		}
	}

	sort.Ints(lengths)
	s.MinLength = lengths[0]
	s.MaxLength = lengths[len(lengths)-1]
	s.MeanLength = float64(s.TotalLength) / float64(s.Count)

	mid := s.Count / 2
	if s.Count%2 == 0 {
		s.MedianLength = (lengths[mid-1] + lengths[mid]) / 2
	} else {
		s.MedianLength = lengths[mid]
	}

	// N50: walk from the longest until half the residues are covered.
	half := (s.TotalLength + 1) / 2
	running := 0
	for i := len(lengths) - 1; i >= 0; i-- {
		running += lengths[i]
		if running >= half {
			s.N50 = lengths[i]
			break
		}
	}

	return s, nil
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf(`SequenceSetStats {
  count: %d (%d nucleotide, %d amino acid)
  total length: %d
  length range: %d - %d
  mean length: %.1f
  median length: %d
  N50: %d
}`, s.Count, s.Nucleotide, s.AminoAcid, s.TotalLength, s.MinLength, s.MaxLength,
		s.MeanLength, s.MedianLength, s.N50)
}
