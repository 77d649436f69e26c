package cluster

import "github.com/aria-lang/phyloflow/internal/tree"

// NeighborJoining clusters m by Neighbor-Joining. With k live nodes and
// row sums R, the pair minimizing (k-2)*D[i][j] - R[i] - R[j] is joined.
// The pair's distance D is split by delta = (R[i]-R[j])/(k-2), giving the
// first node 0.5*(D+delta) and the second 0.5*(D-delta); for the last
// two nodes delta is 0. The new node lies at (D[x][i]+D[x][j]-D)/2 from
// each survivor x. The root's own distance is 0.
func NeighborJoining(m *Matrix, opts ...Option) *tree.Node {
	o := apply(opts)
	f := newForest(m, o.logger)

	for f.size() > 1 {
		k := f.size()
		sums := make([]float64, k)
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				if i != j {
					sums[i] += f.dist.At(i, j)
				}
			}
		}

		scale := float64(k - 2)
		r, c := f.firstMin(func(r, c int) float64 {
			return scale*f.dist.At(r, c) - sums[r] - sums[c]
		})

		divisor := scale
		if k <= 2 {
			divisor = 1
		}
		d := f.dist.At(r, c)
		delta := (sums[r] - sums[c]) / divisor

		rowNode, colNode := f.node(r), f.node(c)
		rowNode.Distance, rowNode.HasDistance = 0.5*(d+delta), true
		colNode.Distance, colNode.HasDistance = 0.5*(d-delta), true

		f.join(r, c, func(x int) float64 {
			return (f.dist.At(x, r) + f.dist.At(x, c) - d) / 2
		})
	}

	return f.root()
}
