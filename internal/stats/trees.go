package stats

import (
	"fmt"
	"math"

	"github.com/aria-lang/phyloflow/internal/tree"
)

// DefaultTolerance is the depth spread under which a tree counts as
// ultrametric.
const DefaultTolerance = 1e-9

// TreeStats summarizes a rooted tree.
type TreeStats struct {
	Leaves       int     `json:"leaves"`
	Internal     int     `json:"internal"`
	Height       float64 `json:"height"`
	BranchLength float64 `json:"branch_length"`
	MinDepth     float64 `json:"min_depth"`
	MaxDepth     float64 `json:"max_depth"`
	Ultrametric  bool    `json:"ultrametric"`
	Negative     int     `json:"negative_branches"`
}

// FromTree summarizes root. Depths exclude the root's own branch.
func FromTree(root *tree.Node, tolerance float64) *TreeStats {
	s := &TreeStats{
		Leaves:       root.Len(),
		Height:       root.Height(),
		BranchLength: root.BranchLength(),
		MinDepth:     math.Inf(1),
		MaxDepth:     math.Inf(-1),
	}

	var walk func(*tree.Node, bool)
	walk = func(n *tree.Node, isRoot bool) {
		if !isRoot && n.Distance < 0 {
			s.Negative++
		}
		if !n.IsLeaf() {
			s.Internal++
		}
		for _, c := range n.Children {
			walk(c, false)
		}
	}
	walk(root, true)

	for _, d := range root.Depths() {
		s.MinDepth = math.Min(s.MinDepth, d)
		s.MaxDepth = math.Max(s.MaxDepth, d)
	}
	s.Ultrametric = s.MaxDepth-s.MinDepth <= tolerance
	return s
}

func (s *TreeStats) String() string {
	return fmt.Sprintf("TreeStats { leaves: %d, internal: %d, height: %g, branch length: %g, ultrametric: %t }",
		s.Leaves, s.Internal, s.Height, s.BranchLength, s.Ultrametric)
}
