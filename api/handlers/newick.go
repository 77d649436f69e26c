package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloflow/internal/stats"
	"github.com/aria-lang/phyloflow/internal/tree"
)

// NewickRequest carries one tree. Lenient accepts nodes without a branch
// length.
type NewickRequest struct {
	Newick  string `json:"newick"`
	Lenient bool   `json:"lenient"`
}

// NewickResponse describes a parsed tree.
type NewickResponse struct {
	Newick string           `json:"newick"`
	Labels []string         `json:"labels"`
	Stats  *stats.TreeStats `json:"stats"`
}

// ParseNewickHandler parses and re-serializes a tree.
func (h *Handler) ParseNewickHandler(w http.ResponseWriter, r *http.Request) {
	var req NewickRequest
	if !h.decode(w, r, &req) {
		return
	}

	root, err := parseNewick("newick", req.Newick, req.Lenient)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewickResponse{
		Newick: tree.ToNewick(root),
		Labels: root.Labels(),
		Stats:  stats.FromTree(root, stats.DefaultTolerance),
	})
}

// CompareRequest carries two trees.
type CompareRequest struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Strict  bool   `json:"strict"`
	Lenient bool   `json:"lenient"`
}

// EqualResponse reports structural equality.
type EqualResponse struct {
	Equal  bool `json:"equal"`
	Strict bool `json:"strict"`
}

// EqualNewickHandler compares two trees ignoring child order.
func (h *Handler) EqualNewickHandler(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, b, err := parsePair(&req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, EqualResponse{Equal: tree.Equal(a, b, req.Strict), Strict: req.Strict})
}

// CladeResponse reports whether B occurs as a clade of A.
type CladeResponse struct {
	Clade bool `json:"clade"`
}

// CladeHandler tests whether tree B is a clade of tree A. Branch lengths
// are ignored.
func (h *Handler) CladeHandler(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, b, err := parsePair(&req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CladeResponse{Clade: tree.Clade(a, b)})
}

func parsePair(req *CompareRequest) (*tree.Node, *tree.Node, error) {
	a, err := parseNewick("a", req.A, req.Lenient)
	if err != nil {
		return nil, nil, err
	}
	b, err := parseNewick("b", req.B, req.Lenient)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func parseNewick(field, text string, lenient bool) (*tree.Node, error) {
	parse := tree.ToTree
	if lenient {
		parse = tree.ToTreeLenient
	}
	root, err := parse(text)
	if err != nil {
		return nil, badField(field, err)
	}
	return root, nil
}
