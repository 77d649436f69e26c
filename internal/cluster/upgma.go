package cluster

import "github.com/aria-lang/phyloflow/internal/tree"

// UPGMA clusters m by average linkage. At each step the closest pair is
// joined and both children are placed at half their distance below the
// new node, so every leaf ends up equally far from the root. The distance
// from the new node to each survivor is the leaf-count weighted mean of
// the survivor's distances to the two children. The root's own distance
// is 0.
func UPGMA(m *Matrix, opts ...Option) *tree.Node {
	o := apply(opts)
	f := newForest(m, o.logger)

	for f.size() > 1 {
		r, c := f.firstMin(func(r, c int) float64 {
			return f.dist.At(r, c)
		})

		value := f.dist.At(r, c)
		rowNode, colNode := f.node(r), f.node(c)
		rowNode.SetDistance(value / 2)
		colNode.SetDistance(value / 2)

		rowLeaves, colLeaves := float64(rowNode.Len()), float64(colNode.Len())
		f.join(r, c, func(x int) float64 {
			return (f.dist.At(x, r)*rowLeaves + f.dist.At(x, c)*colLeaves) / (rowLeaves + colLeaves)
		})
	}

	return f.root()
}

