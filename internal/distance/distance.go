// Package distance turns a set of sequences into a labelled distance
// matrix for the clustering engines.
package distance

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/kmer"
	"github.com/aria-lang/phyloflow/internal/sequence"
)

// Method selects how pairwise distances are measured.
type Method int

const (
	// Alignment is the p-distance of the first co-optimal global
	// alignment: the share of alignment columns that are not identical
	// residue pairs.
	Alignment Method = iota
	// KMer compares k-mer profiles without aligning.
	KMer
)

func (m Method) String() string {
	switch m {
	case Alignment:
		return "alignment"
	case KMer:
		return "kmer"
	default:
		return "unknown"
	}
}

// ParseMethod maps "alignment" or "kmer" onto a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alignment", "p-distance":
		return Alignment, nil
	case "kmer", "k-mer":
		return KMer, nil
	default:
		return 0, fmt.Errorf("unknown distance method %q", name)
	}
}

// Builder measures all sequence pairs.
type Builder struct {
	scheme   *alignment.Scheme
	k        int
	metric   kmer.Metric
	logger   *zap.Logger
	progress func(done, total int)
}

// Option configures a Builder.
type Option func(*Builder)

// WithScheme sets the scoring scheme used by Alignment. Nil keeps the
// default nucleotide scheme.
func WithScheme(s *alignment.Scheme) Option {
	return func(b *Builder) { b.scheme = s }
}

// WithK sets the k-mer length used by KMer.
func WithK(k int) Option {
	return func(b *Builder) { b.k = k }
}

// WithMetric sets the profile metric used by KMer.
func WithMetric(m kmer.Metric) Option {
	return func(b *Builder) { b.metric = m }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after every measured pair.
func WithProgress(fn func(done, total int)) Option {
	return func(b *Builder) { b.progress = fn }
}

// NewBuilder creates a Builder with k=3, the Jaccard metric and no
// logging.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{k: 3, metric: kmer.Jaccard, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Labels names each sequence by its ID, or "seqN" (1-based) when it has
// none.
func Labels(seqs []*sequence.Sequence) []string {
	labels := make([]string, len(seqs))
	for i, s := range seqs {
		if s.ID != "" {
			labels[i] = s.ID
		} else {
			labels[i] = fmt.Sprintf("seq%d", i+1)
		}
	}
	return labels
}

// Build measures every pair of seqs with method.
func (b *Builder) Build(seqs []*sequence.Sequence, method Method) (*cluster.Matrix, error) {
	if len(seqs) < 2 {
		return nil, &cluster.DegenerateInputError{Reason: fmt.Sprintf("need at least two taxa, got %d", len(seqs))}
	}

	var measure func(i, j int) (float64, error)
	switch method {
	case Alignment:
		measure = func(i, j int) (float64, error) {
			return b.pDistance(seqs[i], seqs[j])
		}
	case KMer:
		profiles, err := b.profiles(seqs)
		if err != nil {
			return nil, err
		}
		measure = func(i, j int) (float64, error) {
			return kmer.Distance(profiles[i], profiles[j], b.metric)
		}
	default:
		return nil, fmt.Errorf("unknown distance method %d", int(method))
	}

	n := len(seqs)
	total := n * (n - 1) / 2
	done := 0
	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := measure(i, j)
			if err != nil {
				return nil, fmt.Errorf("pair (%d, %d): %w", i, j, err)
			}
			dist.SetSym(i, j, d)

			done++
			if b.progress != nil {
				b.progress(done, total)
			}
		}
	}

	b.logger.Debug("distance matrix built",
		zap.Stringer("method", method),
		zap.Int("taxa", n),
		zap.Int("pairs", total))

	return cluster.FromSymmetric(Labels(seqs), dist)
}

func (b *Builder) pDistance(h, v *sequence.Sequence) (float64, error) {
	aligner, err := alignment.NewAligner(h, v, b.scheme, alignment.WithLogger(b.logger))
	if err != nil {
		return 0, err
	}
	first := aligner.Global().First()
	return 1 - first.Identity, nil
}

func (b *Builder) profiles(seqs []*sequence.Sequence) ([]*kmer.Counter, error) {
	out := make([]*kmer.Counter, len(seqs))
	for i, s := range seqs {
		c, err := kmer.Profile(s, b.k)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", i+1, err)
		}
		out[i] = c
	}
	return out, nil
}
