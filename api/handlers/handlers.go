// Package handlers provides HTTP handlers for the phyloflow API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/config"
	"github.com/aria-lang/phyloflow/internal/kmer"
	"github.com/aria-lang/phyloflow/internal/logging"
	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/tree"
)

// Handler serves the API. Defaults come from the loaded configuration and
// may be overridden per request.
type Handler struct {
	scoring       config.ScoringConfig
	scheme        *alignment.Scheme
	maxAlignments int
	ceiling       int
	cluster       config.ClusterConfig
	maxBodyBytes  int64
	logger        *zap.Logger
}

// New builds a Handler from cfg.
func New(cfg *config.Config, logger *zap.Logger) (*Handler, error) {
	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Handler{
		scoring:       cfg.Scoring,
		scheme:        scheme,
		maxAlignments: cfg.Alignment.MaxAlignments,
		ceiling:       cfg.Server.MaxAlignments,
		cluster:       cfg.Cluster,
		maxBodyBytes:  cfg.Server.MaxBodyBytes,
		logger:        logger,
	}, nil
}

// Routes mounts every endpoint under r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/alignment", func(r chi.Router) {
		r.Post("/local", h.LocalAlignHandler)
		r.Post("/global", h.GlobalAlignHandler)
		r.Post("/score", h.AlignmentScoreHandler)
		r.Post("/search", h.SearchHandler)
	})

	r.Route("/tree", func(r chi.Router) {
		r.Post("/upgma", h.UPGMAHandler)
		r.Post("/nj", h.NJHandler)
		r.Post("/sequences", h.SequenceTreeHandler)
	})

	r.Route("/newick", func(r chi.Router) {
		r.Post("/parse", h.ParseNewickHandler)
		r.Post("/equal", h.EqualNewickHandler)
		r.Post("/clade", h.CladeHandler)
	})

	r.Route("/sequence", func(r chi.Router) {
		r.Post("/validate", h.ValidateHandler)
		r.Post("/reverse-complement", h.ReverseComplementHandler)
		r.Post("/find", h.FindHandler)
		r.Post("/stats", h.SequenceSetStatsHandler)
	})

	r.Route("/kmer", func(r chi.Router) {
		r.Post("/profile", h.KMerProfileHandler)
		r.Post("/distance", h.KMerDistanceHandler)
	})
}

// HealthHandler answers liveness probes.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// fail writes err with the status its type maps to.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var (
		seqErr     sequence.SequenceError
		schemeErr  *alignment.InvalidSchemeError
		modeErr    *alignment.InvalidModeError
		newickErr  *tree.MalformedNewickError
		clusterErr *cluster.DegenerateInputError
		badRequest *requestError
	)
	switch {
	case errors.As(err, &seqErr),
		errors.As(err, &schemeErr),
		errors.As(err, &modeErr),
		errors.As(err, &newickErr),
		errors.As(err, &clusterErr),
		errors.As(err, &badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// requestError marks a malformed request field.
type requestError struct {
	field string
	err   error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badField(field string, err error) error {
	return &requestError{field: field, err: err}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// schemeFor returns the request's scoring scheme, or the configured one.
func (h *Handler) schemeFor(scoring *config.ScoringConfig) (*alignment.Scheme, error) {
	if scoring == nil {
		return h.scheme, nil
	}
	s, err := scoring.Scheme()
	if err != nil {
		return nil, badField("scoring", err)
	}
	return s, nil
}

func (h *Handler) kmerSettings(k int, metric string) (int, kmer.Metric, error) {
	if k == 0 {
		k = h.cluster.KMer
	}
	if metric == "" {
		metric = h.cluster.Metric
	}
	m, err := kmer.ParseMetric(metric)
	if err != nil {
		return 0, 0, badField("metric", err)
	}
	return k, m, nil
}

var (
	errNegative = errors.New("must not be negative")
	errEmpty    = errors.New("must not be empty")
)
