package tree

import (
	"regexp"
	"strconv"
	"strings"
)

// reserved cannot appear inside a leaf label.
const reserved = "(),:;"

// decimal is the only distance syntax accepted. ParseFloat alone would
// also take NaN, Inf and hex floats.
var decimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ToNewick serializes n. Leaves render as "label:distance" and internal
// nodes as "(child,child,...):distance". A node without a distance omits
// the suffix. Distances use the shortest decimal form that parses back to
// the same float64 and always carry a fractional part.
func ToNewick(n *Node) string {
	var sb strings.Builder
	writeNewick(&sb, n)
	return sb.String()
}

func writeNewick(sb *strings.Builder, n *Node) {
	if n.IsLeaf() {
		sb.WriteString(n.Label)
	} else {
		sb.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeNewick(sb, c)
		}
		sb.WriteByte(')')
	}
	if n.HasDistance {
		sb.WriteByte(':')
		sb.WriteString(FormatDistance(n.Distance))
	}
}

// FormatDistance renders a branch length the way it appears in Newick
// output: 17 becomes "17.0", 0.25 stays "0.25".
func FormatDistance(d float64) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// ToTree parses Newick text in which every node carries a ":distance"
// suffix, the root included. A trailing ';' is accepted.
func ToTree(newick string) (*Node, error) {
	return parse(newick, true)
}

// ToTreeLenient parses Newick text in which distances are optional.
// Nodes without one have HasDistance false.
func ToTreeLenient(newick string) (*Node, error) {
	return parse(newick, false)
}

func parse(newick string, requireDistance bool) (*Node, error) {
	trimmed := strings.TrimSpace(newick)
	start := strings.Index(newick, trimmed)

	p := &parser{requireDistance: requireDistance}
	return p.node(strings.TrimSuffix(trimmed, ";"), start)
}

type parser struct {
	requireDistance bool
}

// node parses s, which begins at offset in the original input.
func (p *parser) node(s string, offset int) (*Node, error) {
	if s == "" {
		return nil, malformed(offset, "empty node")
	}

	body, n, err := p.distance(s, offset)
	if err != nil {
		return nil, err
	}

	if body == "" {
		return nil, malformed(offset, "missing label")
	}

	if body[0] != '(' {
		if i := strings.IndexAny(body, reserved); i >= 0 {
			return nil, malformed(offset+i, "unexpected %q in label", body[i])
		}
		n.Label = body
		return n, nil
	}

	spans, err := split(body, offset)
	if err != nil {
		return nil, err
	}
	if len(spans) < 2 {
		return nil, malformed(offset, "internal node needs at least two children")
	}

	n.Children = make([]*Node, 0, len(spans))
	for _, sp := range spans {
		child, err := p.node(body[sp.from:sp.to], offset+sp.from)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

// distance strips a trailing ":number" that follows the last ')'.
func (p *parser) distance(s string, offset int) (string, *Node, error) {
	n := &Node{}
	colon := strings.LastIndexByte(s, ':')
	if colon < 0 || colon < strings.LastIndexByte(s, ')') {
		if p.requireDistance {
			return "", nil, malformed(offset+len(s), "missing distance")
		}
		return s, n, nil
	}

	if !decimal.MatchString(s[colon+1:]) {
		return "", nil, malformed(offset+colon+1, "invalid distance %q", s[colon+1:])
	}
	d, err := strconv.ParseFloat(s[colon+1:], 64)
	if err != nil {
		return "", nil, malformed(offset+colon+1, "invalid distance %q", s[colon+1:])
	}
	n.Distance = d
	n.HasDistance = true
	return s[:colon], n, nil
}

type span struct{ from, to int }

// split returns the spans of the top-level children of "(a,b,...)".
func split(body string, offset int) ([]span, error) {
	var spans []span
	depth := 0
	from := 1
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, malformed(offset+i, "unbalanced brackets")
			}
			if depth == 0 && i != len(body)-1 {
				return nil, malformed(offset+i+1, "unexpected text after ')'")
			}
		case ',':
			if depth == 1 {
				spans = append(spans, span{from, i})
				from = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, malformed(offset+len(body), "unbalanced brackets")
	}
	return append(spans, span{from, len(body) - 1}), nil
}

// Equal compares two trees. Children are matched as a multiset, so order
// does not matter. When strict is set, branch lengths must match as well.
func Equal(a, b *Node, strict bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if strict && (a.HasDistance != b.HasDistance || a.Distance != b.Distance) {
		return false
	}
	if a.IsLeaf() {
		return a.Label == b.Label
	}
	if len(a.Children) != len(b.Children) || a.Len() != b.Len() {
		return false
	}
	return match(a.Children, b.Children, make([]bool, len(b.Children)), strict)
}

// match pairs every node of as with a distinct equal node of bs.
func match(as, bs []*Node, used []bool, strict bool) bool {
	if len(as) == 0 {
		return true
	}
	for j, b := range bs {
		if used[j] || !Equal(as[0], b, strict) {
			continue
		}
		used[j] = true
		if match(as[1:], bs, used, strict) {
			return true
		}
		used[j] = false
	}
	return false
}

// Clade reports whether candidate loosely equals tree or any subtree of
// it. Branch lengths are ignored.
func Clade(tree, candidate *Node) bool {
	if Equal(tree, candidate, false) {
		return true
	}
	for _, c := range tree.Children {
		if Clade(c, candidate) {
			return true
		}
	}
	return false
}
