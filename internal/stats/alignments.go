package stats

import (
	"fmt"

	"github.com/aria-lang/phyloflow/internal/alignment"
)

// AlignmentSetStats summarizes a set of co-optimal alignments.
type AlignmentSetStats struct {
	Count        int     `json:"count"`
	Score        int     `json:"score"`
	MinIdentity  float64 `json:"min_identity"`
	MaxIdentity  float64 `json:"max_identity"`
	MeanIdentity float64 `json:"mean_identity"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	MinGaps      int     `json:"min_gaps"`
	MaxGaps      int     `json:"max_gaps"`
	Distinct     int     `json:"distinct"`
}

// FromAlignments summarizes alignments. An empty set yields a zero value
// with Count 0.
func FromAlignments(alignments []*alignment.Alignment) *AlignmentSetStats {
	s := &AlignmentSetStats{Count: len(alignments)}
	if len(alignments) == 0 {
		return s
	}

	seen := make(map[[2]string]bool, len(alignments))
	sum := 0.0
	for i, a := range alignments {
		gaps := a.TotalGaps()
		if i == 0 {
			s.Score = a.Score
			s.MinIdentity, s.MaxIdentity = a.Identity, a.Identity
			s.MinLength, s.MaxLength = a.Length(), a.Length()
			s.MinGaps, s.MaxGaps = gaps, gaps
		}

		s.MinIdentity = minf(s.MinIdentity, a.Identity)
		s.MaxIdentity = maxf(s.MaxIdentity, a.Identity)
		s.MinLength = mini(s.MinLength, a.Length())
		s.MaxLength = maxi(s.MaxLength, a.Length())
		s.MinGaps = mini(s.MinGaps, gaps)
		s.MaxGaps = maxi(s.MaxGaps, gaps)
		sum += a.Identity

		seen[[2]string{a.AlignedSeq1, a.AlignedSeq2}] = true
	}
	s.MeanIdentity = sum / float64(len(alignments))
	s.Distinct = len(seen)
	return s
}

func (s *AlignmentSetStats) String() string {
	return fmt.Sprintf("AlignmentSetStats { count: %d (%d distinct), score: %d, identity: %.1f%%-%.1f%%, length: %d-%d }",
		s.Count, s.Distinct, s.Score, s.MinIdentity*100, s.MaxIdentity*100, s.MinLength, s.MaxLength)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
