package handlers

import (
	"net/http"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/config"
	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/stats"
)

// AlignmentRequest represents an alignment request. Sequence1 runs along
// the horizontal axis of the grid, Sequence2 along the vertical one.
type AlignmentRequest struct {
	Sequence1 string                `json:"sequence1"`
	Sequence2 string                `json:"sequence2"`
	Mode      string                `json:"mode,omitempty"`
	Scoring   *config.ScoringConfig `json:"scoring,omitempty"`
	// MaxAlignments caps enumeration; nil uses the server default and 0
	// asks for every co-optimal alignment. Either way the server ceiling
	// applies.
	MaxAlignments *int `json:"max_alignments,omitempty"`
	IncludePath   bool `json:"include_path"`
}

// AlignmentView is one alignment with its derived counts.
type AlignmentView struct {
	*alignment.Alignment
	CIGAR      string `json:"cigar"`
	Matches    int    `json:"matches"`
	Mismatches int    `json:"mismatches"`
	Gaps       int    `json:"gaps"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	Mode       string                   `json:"mode"`
	Score      int                      `json:"score"`
	Rows       int                      `json:"rows"`
	Cols       int                      `json:"cols"`
	Truncated  bool                     `json:"truncated"`
	Alignments []AlignmentView          `json:"alignments"`
	Stats      *stats.AlignmentSetStats `json:"stats"`
}

// LocalAlignHandler handles local alignment requests.
func (h *Handler) LocalAlignHandler(w http.ResponseWriter, r *http.Request) {
	h.align(w, r, alignment.Local)
}

// GlobalAlignHandler handles global alignment requests.
func (h *Handler) GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	h.align(w, r, alignment.Global)
}

func (h *Handler) align(w http.ResponseWriter, r *http.Request, mode alignment.Mode) {
	var req AlignmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	scheme, seq1, seq2, err := h.pair(&req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	aligner, err := alignment.NewAligner(seq1, seq2, scheme, alignment.WithLogger(h.logger))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := aligner.Align(mode)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	limit := h.maxAlignments
	if req.MaxAlignments != nil {
		limit = *req.MaxAlignments
	}
	if limit < 0 {
		h.fail(w, r, badField("max_alignments", errNegative))
		return
	}
	if h.ceiling > 0 && (limit == 0 || limit > h.ceiling) {
		limit = h.ceiling
	}

	// One extra record tells whether the cap cut enumeration short.
	want := limit
	if want > 0 {
		want++
	}
	alignments := result.Enumerate(want)
	truncated := limit > 0 && len(alignments) > limit
	if truncated {
		alignments = alignments[:limit]
	}

	views := make([]AlignmentView, len(alignments))
	for i, a := range alignments {
		if !req.IncludePath {
			a.Path = nil
		}
		views[i] = AlignmentView{
			Alignment:  a,
			CIGAR:      a.ToCIGAR(),
			Matches:    a.MatchCount(),
			Mismatches: a.MismatchCount(),
			Gaps:       a.TotalGaps(),
		}
	}

	writeJSON(w, http.StatusOK, AlignmentResponse{
		Mode:       mode.String(),
		Score:      result.Optimal,
		Rows:       len(result.DP),
		Cols:       len(result.DP[0]),
		Truncated:  truncated,
		Alignments: views,
		Stats:      stats.FromAlignments(alignments),
	})
}

func (h *Handler) pair(req *AlignmentRequest) (*alignment.Scheme, *sequence.Sequence, *sequence.Sequence, error) {
	scheme, err := h.schemeFor(req.Scoring)
	if err != nil {
		return nil, nil, nil, err
	}
	seq1, err := sequence.NewWithAlphabet(req.Sequence1, scheme.Alphabet())
	if err != nil {
		return nil, nil, nil, badField("sequence1", err)
	}
	seq2, err := sequence.NewWithAlphabet(req.Sequence2, scheme.Alphabet())
	if err != nil {
		return nil, nil, nil, badField("sequence2", err)
	}
	return scheme, seq1, seq2, nil
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Mode  string `json:"mode"`
	Score int    `json:"score"`
}

// AlignmentScoreHandler returns the optimal score without building the
// traceback grid. Mode defaults to global.
func (h *Handler) AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	var req AlignmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	mode := alignment.Global
	if req.Mode != "" {
		m, err := alignment.ParseMode(req.Mode)
		if err != nil {
			h.fail(w, r, badField("mode", err))
			return
		}
		mode = m
	}

	scheme, seq1, seq2, err := h.pair(&req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	score, err := alignment.ScoreOnly(seq1, seq2, scheme, mode)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ScoreResponse{Mode: mode.String(), Score: score})
}

// SearchRequest aligns one query against several targets.
type SearchRequest struct {
	Query   string                `json:"query"`
	Targets []string              `json:"targets"`
	Mode    string                `json:"mode,omitempty"`
	Scoring *config.ScoringConfig `json:"scoring,omitempty"`
}

// SearchHit is the first co-optimal alignment against one target.
type SearchHit struct {
	Index    int     `json:"index"`
	Score    int     `json:"score"`
	Identity float64 `json:"identity"`
	CIGAR    string  `json:"cigar"`
}

// SearchResponse lists every hit in target order plus the best one.
type SearchResponse struct {
	Best SearchHit   `json:"best"`
	Hits []SearchHit `json:"hits"`
}

// SearchHandler handles one-against-many alignment requests.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !h.decode(w, r, &req) {
		return
	}

	mode := alignment.Global
	if req.Mode != "" {
		m, err := alignment.ParseMode(req.Mode)
		if err != nil {
			h.fail(w, r, badField("mode", err))
			return
		}
		mode = m
	}
	if len(req.Targets) == 0 {
		h.fail(w, r, badField("targets", errEmpty))
		return
	}

	scheme, err := h.schemeFor(req.Scoring)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	query, err := sequence.NewWithAlphabet(req.Query, scheme.Alphabet())
	if err != nil {
		h.fail(w, r, badField("query", err))
		return
	}
	targets := make([]*sequence.Sequence, len(req.Targets))
	for i, t := range req.Targets {
		if targets[i], err = sequence.NewWithAlphabet(t, scheme.Alphabet()); err != nil {
			h.fail(w, r, badField("targets", err))
			return
		}
	}

	results, err := alignment.AlignAgainstMultiple(query, targets, scheme, mode, alignment.WithLogger(h.logger))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := SearchResponse{Hits: make([]SearchHit, len(results))}
	for i, res := range results {
		resp.Hits[i] = SearchHit{
			Index:    res.Index,
			Score:    res.Alignment.Score,
			Identity: res.Alignment.Identity,
			CIGAR:    res.Alignment.ToCIGAR(),
		}
		if i == 0 || resp.Hits[i].Score > resp.Best.Score {
			resp.Best = resp.Hits[i]
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
