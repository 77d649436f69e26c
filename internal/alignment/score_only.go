package alignment

import (
	"fmt"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

// ScoreOnly computes the optimal score of h against v in linear memory. It
// returns the same value as Align(mode).Optimal without keeping the grid.
func ScoreOnly(h, v *sequence.Sequence, scheme *Scheme, mode Mode) (int, error) {
	a, err := NewAligner(h, v, scheme)
	if err != nil {
		return 0, err
	}
	if !mode.valid() {
		return 0, &InvalidModeError{Mode: mode}
	}
	return a.scoreOnly(mode), nil
}

func (a *Aligner) scoreOnly(mode Mode) int {
	hs, vs := a.horizontal.Residues, a.vertical.Residues
	cols := len(hs) + 1
	exist, ext := a.scheme.GapExistence(), a.scheme.GapExtension()
	open := exist + ext
	local := mode == Local

	prevDP := make([]int, cols)
	currDP := make([]int, cols)
	prevV := make([]int, cols)
	currV := make([]int, cols)

	if !local {
		prevV[0] = negInf
		for i := 1; i < cols; i++ {
			prevDP[i] = exist + i*ext
			prevV[i] = negInf
		}
	}

	best := 0
	for j := 1; j <= len(vs); j++ {
		var hGap int
		currDP[0] = 0
		if !local {
			hGap = negInf
			currDP[0] = exist + j*ext
		}

		for i := 1; i < cols; i++ {
			hGap = max(hGap+ext, currDP[i-1]+open)
			currV[i] = max(prevV[i]+ext, prevDP[i]+open)
			m := prevDP[i-1] + a.scheme.Score(hs[i-1], vs[j-1])
			if local {
				hGap = max(hGap, 0)
				currV[i] = max(currV[i], 0)
				m = max(m, 0)
			}

			currDP[i] = max(hGap, max(currV[i], m))
			if currDP[i] > best {
				best = currDP[i]
			}
		}

		prevDP, currDP = currDP, prevDP
		prevV, currV = currV, prevV
	}

	if local {
		return best
	}
	return prevDP[cols-1]
}

// IndexedAlignment pairs a target index with the first co-optimal
// alignment of the query against that target.
type IndexedAlignment struct {
	Index     int
	Alignment *Alignment
}

// AlignAgainstMultiple aligns query against each target in turn.
func AlignAgainstMultiple(query *sequence.Sequence, targets []*sequence.Sequence,
	scheme *Scheme, mode Mode, opts ...Option) ([]IndexedAlignment, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("target list cannot be empty")
	}

	results := make([]IndexedAlignment, len(targets))
	for i, target := range targets {
		aligner, err := NewAligner(query, target, scheme, opts...)
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		r, err := aligner.Align(mode)
		if err != nil {
			return nil, err
		}

		first := r.First()
		if first == nil {
			// Local alignment with nothing scoring above zero.
			first = newAlignment("", "", r.Optimal, mode)
		}
		results[i] = IndexedAlignment{Index: i, Alignment: first}
	}

	return results, nil
}

// FindBestAlignment returns the target with the highest score. Ties keep
// the earliest target.
func FindBestAlignment(query *sequence.Sequence, targets []*sequence.Sequence,
	scheme *Scheme, mode Mode, opts ...Option) (*IndexedAlignment, error) {
	alignments, err := AlignAgainstMultiple(query, targets, scheme, mode, opts...)
	if err != nil {
		return nil, err
	}

	best := alignments[0]
	for _, a := range alignments[1:] {
		if a.Alignment.Score > best.Alignment.Score {
			best = a
		}
	}

	return &best, nil
}
