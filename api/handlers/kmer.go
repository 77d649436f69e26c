package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloflow/internal/kmer"
	"github.com/aria-lang/phyloflow/internal/sequence"
)

// KMerRequest represents a k-mer profile request. K falls back to the
// configured size; Top limits the listed k-mers, 0 lists all of them.
type KMerRequest struct {
	SequenceRequest
	K   int `json:"k,omitempty"`
	Top int `json:"top,omitempty"`
}

// KMerProfileResponse represents the response for k-mer counting.
type KMerProfileResponse struct {
	K           int          `json:"k"`
	UniqueCount int          `json:"unique_count"`
	TotalCount  int          `json:"total_count"`
	KMers       []kmer.Count `json:"kmers"`
}

// KMerProfileHandler handles k-mer counting requests.
func (h *Handler) KMerProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req KMerRequest
	if !h.decode(w, r, &req) {
		return
	}

	k, _, err := h.kmerSettings(req.K, "")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	seq, err := req.build()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	counter, err := kmer.Profile(seq, k)
	if err != nil {
		h.fail(w, r, badField("k", err))
		return
	}

	top := req.Top
	if top <= 0 {
		top = -1
	}
	writeJSON(w, http.StatusOK, KMerProfileResponse{
		K:           k,
		UniqueCount: counter.Unique(),
		TotalCount:  counter.Total,
		KMers:       counter.MostFrequent(top),
	})
}

// KMerDistanceRequest represents a k-mer distance request.
type KMerDistanceRequest struct {
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
	K         int    `json:"k,omitempty"`
	Metric    string `json:"metric,omitempty"`
}

// KMerDistanceResponse represents the response for k-mer distance.
type KMerDistanceResponse struct {
	K        int      `json:"k"`
	Metric   string   `json:"metric"`
	Distance float64  `json:"distance"`
	Shared   []string `json:"shared"`
}

// KMerDistanceHandler handles k-mer distance requests.
func (h *Handler) KMerDistanceHandler(w http.ResponseWriter, r *http.Request) {
	var req KMerDistanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	k, metric, err := h.kmerSettings(req.K, req.Metric)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	profiles := make([]*kmer.Counter, 2)
	for i, field := range []struct{ name, residues string }{
		{"sequence1", req.Sequence1},
		{"sequence2", req.Sequence2},
	} {
		seq, err := sequence.New(field.residues)
		if err != nil {
			h.fail(w, r, badField(field.name, err))
			return
		}
		if profiles[i], err = kmer.Profile(seq, k); err != nil {
			h.fail(w, r, badField(field.name, err))
			return
		}
	}

	d, err := kmer.Distance(profiles[0], profiles[1], metric)
	if err != nil {
		h.fail(w, r, badField("metric", err))
		return
	}

	writeJSON(w, http.StatusOK, KMerDistanceResponse{
		K:        k,
		Metric:   metric.String(),
		Distance: d,
		Shared:   kmer.Shared(profiles[0], profiles[1]),
	})
}
