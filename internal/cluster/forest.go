package cluster

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/aria-lang/phyloflow/internal/tree"
)

// forest is the mutable state of one clustering run. Nodes live in an
// arena and are never removed from it; live holds the arena indices of
// the nodes still to be joined, in matrix order, and dist is the reduced
// matrix over them.
type forest struct {
	arena  []*tree.Node
	live   []int
	dist   *mat.SymDense
	logger *zap.Logger
}

func newForest(m *Matrix, logger *zap.Logger) *forest {
	n := m.Len()
	f := &forest{
		arena:  make([]*tree.Node, 0, 2*n-1),
		live:   make([]int, n),
		dist:   mat.NewSymDense(n, nil),
		logger: logger,
	}
	for i, label := range m.labels {
		f.arena = append(f.arena, tree.NewLeaf(label, 0))
		f.live[i] = i
	}
	f.dist.CopySym(m.dist)
	return f
}

func (f *forest) size() int {
	return len(f.live)
}

func (f *forest) node(pos int) *tree.Node {
	return f.arena[f.live[pos]]
}

func (f *forest) root() *tree.Node {
	return f.node(0)
}

// firstMin scans the upper triangle in row-major order and returns the
// first cell holding the smallest score.
func (f *forest) firstMin(score func(r, c int) float64) (int, int) {
	row, col := 0, 1
	best := score(0, 1)
	k := f.size()
	for r := 0; r < k; r++ {
		for c := r + 1; c < k; c++ {
			if s := score(r, c); s < best {
				best, row, col = s, r, c
			}
		}
	}
	return row, col
}

// join merges the nodes at live positions r < c into a new internal node
// appended after the survivors. newDist gives the distance from each
// surviving position to the merged node.
func (f *forest) join(r, c int, newDist func(x int) float64) *tree.Node {
	merged := tree.NewInternal(0, f.node(r), f.node(c))
	f.arena = append(f.arena, merged)

	k := f.size()
	survivors := make([]int, 0, k-1)
	for x := 0; x < k; x++ {
		if x != r && x != c {
			survivors = append(survivors, x)
		}
	}

	next := mat.NewSymDense(k-1, nil)
	live := make([]int, 0, k-1)
	for a, x := range survivors {
		for b := a + 1; b < len(survivors); b++ {
			next.SetSym(a, b, f.dist.At(x, survivors[b]))
		}
		next.SetSym(a, k-2, newDist(x))
		live = append(live, f.live[x])
	}
	live = append(live, len(f.arena)-1)

	f.logger.Debug("joined",
		zap.Stringer("row", f.node(r)),
		zap.Stringer("col", f.node(c)),
		zap.Float64("distance", f.dist.At(r, c)),
		zap.Int("remaining", k-1))

	f.dist = next
	f.live = live
	return merged
}
