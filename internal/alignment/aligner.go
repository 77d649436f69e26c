package alignment

import (
	"math"

	"go.uber.org/zap"

	"github.com/aria-lang/phyloflow/internal/sequence"
)

// negInf seeds the unused origin of the gap and match matrices. It is
// never read by the recurrences, so adding a penalty to it cannot wrap.
const negInf = math.MinInt32

// Cell addresses one position of the dynamic-programming grid. Col indexes
// the horizontal sequence and Row the vertical one; both are offset by one
// from residue indices because row and column 0 are the border.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Aligner aligns a horizontal sequence against a vertical one under a
// fixed scoring scheme. It is safe to call Align concurrently.
type Aligner struct {
	horizontal *sequence.Sequence
	vertical   *sequence.Sequence
	scheme     *Scheme
	logger     *zap.Logger
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aligner) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAligner validates both sequences against the scheme's alphabet. A nil
// scheme selects DefaultNucleotide.
func NewAligner(horizontal, vertical *sequence.Sequence, scheme *Scheme, opts ...Option) (*Aligner, error) {
	if horizontal == nil || vertical == nil {
		return nil, &sequence.EmptySequenceError{}
	}
	if scheme == nil {
		scheme = DefaultNucleotide()
	}

	for _, seq := range []*sequence.Sequence{horizontal, vertical} {
		if seq.Len() == 0 {
			return nil, &sequence.EmptySequenceError{}
		}
		if err := sequence.Validate(seq.Residues, scheme.Alphabet()); err != nil {
			return nil, err
		}
	}

	a := &Aligner{
		horizontal: horizontal,
		vertical:   vertical,
		scheme:     scheme,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Scheme returns the scoring scheme in use.
func (a *Aligner) Scheme() *Scheme {
	return a.scheme
}

// Result is a filled alignment grid. DP and Direction are indexed
// [row][col] with dimensions (len(vertical)+1) x (len(horizontal)+1).
type Result struct {
	Mode       Mode
	Horizontal string
	Vertical   string
	DP         [][]int
	Direction  [][]Direction
	Optimal    int
}

// Align fills the grid in the requested mode.
func (a *Aligner) Align(mode Mode) (*Result, error) {
	if !mode.valid() {
		return nil, &InvalidModeError{Mode: mode}
	}

	r := a.fill(mode)
	a.logger.Debug("alignment grid filled",
		zap.Stringer("mode", mode),
		zap.Int("cols", len(r.Horizontal)+1),
		zap.Int("rows", len(r.Vertical)+1),
		zap.Int("optimal", r.Optimal))
	return r, nil
}

// Global is Align(Global).
func (a *Aligner) Global() *Result {
	r, _ := a.Align(Global)
	return r
}

// Local is Align(Local).
func (a *Aligner) Local() *Result {
	r, _ := a.Align(Local)
	return r
}

func grid[T any](rows, cols int) [][]T {
	g := make([][]T, rows)
	for j := range g {
		g[j] = make([]T, cols)
	}
	return g
}

func (a *Aligner) fill(mode Mode) *Result {
	h, v := a.horizontal.Residues, a.vertical.Residues
	cols, rows := len(h)+1, len(v)+1
	ext, open := a.scheme.GapExtension(), a.scheme.GapExistence()+a.scheme.GapExtension()

	hGap := grid[int](rows, cols)
	vGap := grid[int](rows, cols)
	match := grid[int](rows, cols)
	dp := grid[int](rows, cols)
	dir := grid[Direction](rows, cols)

	// Row 0 is one horizontal gap and column 0 one vertical gap, so a
	// border gap only extends into a gap of the same orientation.
	if mode == Global {
		hGap[0][0], vGap[0][0], match[0][0] = negInf, negInf, negInf
		for i := 1; i < cols; i++ {
			hGap[0][i] = a.scheme.GapExistence() + i*ext
			vGap[0][i], match[0][i] = negInf, negInf
			dp[0][i] = hGap[0][i]
			dir[0][i] = Left
		}
		for j := 1; j < rows; j++ {
			vGap[j][0] = a.scheme.GapExistence() + j*ext
			hGap[j][0], match[j][0] = negInf, negInf
			dp[j][0] = vGap[j][0]
			dir[j][0] = Up
		}
	}

	floor := mode == Local
	optimal := 0
	for j := 1; j < rows; j++ {
		for i := 1; i < cols; i++ {
			hGap[j][i] = max(hGap[j][i-1]+ext, dp[j][i-1]+open)
			vGap[j][i] = max(vGap[j-1][i]+ext, dp[j-1][i]+open)
			match[j][i] = dp[j-1][i-1] + a.scheme.Score(h[i-1], v[j-1])
			if floor {
				hGap[j][i] = max(hGap[j][i], 0)
				vGap[j][i] = max(vGap[j][i], 0)
				match[j][i] = max(match[j][i], 0)
			}

			best := max(hGap[j][i], max(vGap[j][i], match[j][i]))
			dp[j][i] = best

			var d Direction
			if hGap[j][i] == best {
				d |= Left
			}
			if vGap[j][i] == best {
				d |= Up
			}
			if match[j][i] == best {
				d |= Diagonal
			}
			dir[j][i] = d

			if floor && best > optimal {
				optimal = best
			}
		}
	}

	if mode == Global {
		optimal = dp[rows-1][cols-1]
	}

	return &Result{
		Mode:       mode,
		Horizontal: h,
		Vertical:   v,
		DP:         dp,
		Direction:  dir,
		Optimal:    optimal,
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
