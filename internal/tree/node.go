// Package tree holds the rooted trees built by the clustering engines and
// their Newick text form.
//
// A Node is either a leaf, which has a label and no children, or an
// internal node, which has no label and owns two or more children.
// Distance is the branch length to the parent, not an absolute depth.
package tree

import (
	"strings"
)

// Node is a leaf or an internal node of a rooted tree.
type Node struct {
	Label       string
	Children    []*Node
	Distance    float64
	HasDistance bool
}

// NewLeaf creates a leaf with a branch length.
func NewLeaf(label string, distance float64) *Node {
	return &Node{Label: label, Distance: distance, HasDistance: true}
}

// NewInternal creates an internal node that takes ownership of children.
func NewInternal(distance float64, children ...*Node) *Node {
	return &Node{Children: children, Distance: distance, HasDistance: true}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Len returns the number of leaves under n. A leaf counts as one.
func (n *Node) Len() int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Len()
	}
	return total
}

// Leaves returns the leaves under n, left to right.
func (n *Node) Leaves() []*Node {
	if n.IsLeaf() {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Labels returns the leaf labels under n, left to right.
func (n *Node) Labels() []string {
	leaves := n.Leaves()
	labels := make([]string, len(leaves))
	for i, l := range leaves {
		labels[i] = l.Label
	}
	return labels
}

// TotalDistance is the node's own branch length plus the longest path
// from it down to a leaf.
func (n *Node) TotalDistance() float64 {
	return n.Distance + n.Height()
}

// Height is the longest path from n down to one of its leaves, excluding
// n's own branch.
func (n *Node) Height() float64 {
	h := 0.0
	for i, c := range n.Children {
		if d := c.TotalDistance(); i == 0 || d > h {
			h = d
		}
	}
	return h
}

// SetDistance places n so that its deepest leaf sits at depth below its
// parent. A leaf takes depth as its branch length; an internal node takes
// what remains after its own height.
func (n *Node) SetDistance(depth float64) {
	n.Distance = depth - n.Height()
	n.HasDistance = true
}

// Depths maps each leaf label to its cumulative branch length from n,
// excluding n's own branch.
func (n *Node) Depths() map[string]float64 {
	out := make(map[string]float64, n.Len())
	var walk func(*Node, float64)
	walk = func(node *Node, acc float64) {
		if node.IsLeaf() {
			out[node.Label] = acc
			return
		}
		for _, c := range node.Children {
			walk(c, acc+c.Distance)
		}
	}
	walk(n, 0)
	return out
}

// BranchLength sums every branch length under n, excluding n's own.
func (n *Node) BranchLength() float64 {
	total := 0.0
	for _, c := range n.Children {
		total += c.Distance + c.BranchLength()
	}
	return total
}

// String joins the leaf labels with "-".
func (n *Node) String() string {
	return strings.Join(n.Labels(), "-")
}
