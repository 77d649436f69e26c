package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/distance"
	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/stats"
	"github.com/aria-lang/phyloflow/internal/tree"
)

// MatrixRequest carries a labelled distance matrix.
type MatrixRequest struct {
	Labels []string    `json:"labels"`
	Matrix [][]float64 `json:"matrix"`
}

// TreeResponse represents a built tree.
type TreeResponse struct {
	Method string           `json:"method"`
	Newick string           `json:"newick"`
	Stats  *stats.TreeStats `json:"stats"`
}

// UPGMAHandler clusters a distance matrix with UPGMA.
func (h *Handler) UPGMAHandler(w http.ResponseWriter, r *http.Request) {
	h.clusterMatrix(w, r, cluster.MethodUPGMA)
}

// NJHandler clusters a distance matrix with neighbor joining.
func (h *Handler) NJHandler(w http.ResponseWriter, r *http.Request) {
	h.clusterMatrix(w, r, cluster.MethodNJ)
}

func (h *Handler) clusterMatrix(w http.ResponseWriter, r *http.Request, method cluster.Method) {
	var req MatrixRequest
	if !h.decode(w, r, &req) {
		return
	}

	m, err := cluster.NewMatrix(req.Labels, req.Matrix)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeTree(w, r, m, method)
}

func (h *Handler) writeTree(w http.ResponseWriter, r *http.Request, m *cluster.Matrix, method cluster.Method) {
	root, err := cluster.Build(m, method, cluster.WithLogger(h.logger))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TreeResponse{
		Method: method.String(),
		Newick: tree.ToNewick(root),
		Stats:  stats.FromTree(root, stats.DefaultTolerance),
	})
}

// NamedSequence is a sequence with an optional identifier.
type NamedSequence struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

// SequenceTreeRequest builds a tree straight from sequences. Empty fields
// fall back to the configured defaults.
type SequenceTreeRequest struct {
	Sequences []NamedSequence `json:"sequences"`
	Method    string          `json:"method,omitempty"`
	Distance  string          `json:"distance,omitempty"`
	K         int             `json:"k,omitempty"`
	Metric    string          `json:"metric,omitempty"`
}

// SequenceTreeHandler measures every sequence pair and clusters the
// resulting matrix.
func (h *Handler) SequenceTreeHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceTreeRequest
	if !h.decode(w, r, &req) {
		return
	}

	methodName := req.Method
	if methodName == "" {
		methodName = h.cluster.Method
	}
	method, err := cluster.ParseMethod(methodName)
	if err != nil {
		h.fail(w, r, badField("method", err))
		return
	}

	distanceName := req.Distance
	if distanceName == "" {
		distanceName = h.cluster.Distance
	}
	measure, err := distance.ParseMethod(distanceName)
	if err != nil {
		h.fail(w, r, badField("distance", err))
		return
	}

	k, metric, err := h.kmerSettings(req.K, req.Metric)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	seqs := make([]*sequence.Sequence, len(req.Sequences))
	for i, s := range req.Sequences {
		seqs[i], err = sequence.WithMetadata(s.Sequence, s.ID, "", h.scheme.Alphabet())
		if err != nil {
			h.fail(w, r, badField("sequences", err))
			return
		}
	}

	builder := distance.NewBuilder(
		distance.WithScheme(h.scheme),
		distance.WithK(k),
		distance.WithMetric(metric),
		distance.WithLogger(h.logger),
	)
	m, err := builder.Build(seqs, measure)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeTree(w, r, m, method)
}
