package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/phyloflow/internal/sequence"
	"github.com/aria-lang/phyloflow/internal/stats"
)

// SequenceRequest represents a request with a sequence. An empty alphabet
// is detected from the residues.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
	Alphabet string `json:"alphabet,omitempty"`
}

func (req *SequenceRequest) build() (*sequence.Sequence, error) {
	if req.Alphabet == "" {
		seq, err := sequence.New(req.Sequence)
		if err != nil {
			return nil, badField("sequence", err)
		}
		return seq, nil
	}

	alphabet, ok := sequence.ParseAlphabet(req.Alphabet)
	if !ok {
		return nil, badField("alphabet", fmt.Errorf("unknown alphabet %q", req.Alphabet))
	}
	seq, err := sequence.NewWithAlphabet(req.Sequence, alphabet)
	if err != nil {
		return nil, badField("sequence", err)
	}
	return seq, nil
}

// ValidateResponse represents the response for validation.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Alphabet string `json:"alphabet,omitempty"`
	Length   int    `json:"length"`
	Error    string `json:"error,omitempty"`
}

// ValidateHandler reports whether a sequence is valid. Invalid sequences
// are a normal answer, not a failed request.
func (h *Handler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	seq, err := req.build()
	if err != nil {
		if statusFor(err) != http.StatusBadRequest {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:    true,
		Alphabet: seq.Alphabet.String(),
		Length:   seq.Len(),
	})
}

// ReverseComplementResponse represents the response for reverse complement.
type ReverseComplementResponse struct {
	Complement        string `json:"complement"`
	ReverseComplement string `json:"reverse_complement"`
}

// ReverseComplementHandler handles reverse complement requests.
func (h *Handler) ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	seq, err := req.build()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	comp, err := seq.Complement()
	if err != nil {
		h.fail(w, r, badField("sequence", err))
		return
	}

	writeJSON(w, http.StatusOK, ReverseComplementResponse{
		Complement:        comp.Residues,
		ReverseComplement: comp.Reverse().Residues,
	})
}

// FindRequest searches a motif in a sequence.
type FindRequest struct {
	SequenceRequest
	Motif string `json:"motif"`
}

// FindResponse lists motif start positions. Reverse is only set for
// nucleotide sequences and indexes the reverse complement.
type FindResponse struct {
	Forward []int `json:"forward"`
	Reverse []int `json:"reverse,omitempty"`
}

// FindHandler handles motif search requests.
func (h *Handler) FindHandler(w http.ResponseWriter, r *http.Request) {
	var req FindRequest
	if !h.decode(w, r, &req) {
		return
	}

	seq, err := req.build()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if seq.Alphabet != sequence.Nucleotide {
		forward, err := seq.FindSubsequence(req.Motif)
		if err != nil {
			h.fail(w, r, badField("motif", err))
			return
		}
		writeJSON(w, http.StatusOK, FindResponse{Forward: forward})
		return
	}

	strands, err := seq.FindStrands(req.Motif)
	if err != nil {
		h.fail(w, r, badField("motif", err))
		return
	}
	writeJSON(w, http.StatusOK, FindResponse{Forward: strands.Forward, Reverse: strands.Reverse})
}

// SequenceSetRequest represents a request with several sequences.
type SequenceSetRequest struct {
	Sequences []string `json:"sequences"`
}

// SequenceSetStatsHandler summarizes a sequence collection.
func (h *Handler) SequenceSetStatsHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceSetRequest
	if !h.decode(w, r, &req) {
		return
	}

	seqs := make([]*sequence.Sequence, len(req.Sequences))
	for i, s := range req.Sequences {
		seq, err := sequence.New(s)
		if err != nil {
			h.fail(w, r, badField(fmt.Sprintf("sequences[%d]", i), err))
			return
		}
		seqs[i] = seq
	}

	summary, err := stats.FromSequences(seqs)
	if err != nil {
		h.fail(w, r, badField("sequences", err))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
