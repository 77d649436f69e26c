package cluster

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/tree"
)

// Method selects the clustering algorithm.
type Method int

const (
	// MethodUPGMA is average linkage; it yields an ultrametric tree.
	MethodUPGMA Method = iota
	// MethodNJ is Neighbor-Joining.
	MethodNJ
)

func (m Method) String() string {
	switch m {
	case MethodUPGMA:
		return "upgma"
	case MethodNJ:
		return "nj"
	default:
		return "unknown"
	}
}

// ParseMethod maps "upgma" or "nj" onto a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "upgma":
		return MethodUPGMA, nil
	case "nj", "neighbor-joining", "neighbour-joining":
		return MethodNJ, nil
	default:
		return 0, fmt.Errorf("unknown clustering method %q", name)
	}
}

type options struct {
	logger *zap.Logger
}

// Option configures a clustering run.
type Option func(*options)

// WithLogger logs every join at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func apply(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Build runs the selected method over m.
func Build(m *Matrix, method Method, opts ...Option) (*tree.Node, error) {
	switch method {
	case MethodUPGMA:
		return UPGMA(m, opts...), nil
	case MethodNJ:
		return NeighborJoining(m, opts...), nil
	default:
		return nil, fmt.Errorf("unknown clustering method %d", int(method))
	}
}
