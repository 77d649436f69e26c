// Package cluster builds rooted trees from distance matrices by
// agglomerative clustering.
//
// Both UPGMA and Neighbor-Joining repeatedly pick an extremal cell of the
// current matrix, join the two nodes it addresses into a new internal
// node and shrink the matrix by one row and column until a single root
// remains. Ties are broken by the first cell in row-major order, so the
// result is deterministic.
package cluster

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// labelDelimiters cannot appear in a taxon label because they delimit
// Newick text.
const labelDelimiters = "(),:;"

// Matrix is a validated, immutable distance matrix over labelled taxa. The
// diagonal is ignored.
type Matrix struct {
	labels []string
	dist   *mat.SymDense
}

// NewMatrix validates values against labels. The matrix must be square
// with one row per label, symmetric, and free of NaN.
func NewMatrix(labels []string, values [][]float64) (*Matrix, error) {
	n := len(labels)
	if err := checkLabels(labels); err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, &DegenerateInputError{Reason: fmt.Sprintf("matrix has %d rows, expected %d", len(values), n)}
	}
	for i, row := range values {
		if len(row) != n {
			return nil, &DegenerateInputError{
				Reason: fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), n),
			}
		}
	}

	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := values[i][j]
			if math.IsNaN(v) {
				return nil, &DegenerateInputError{Reason: fmt.Sprintf("NaN at (%d, %d)", i, j)}
			}
			if v != values[j][i] {
				return nil, &DegenerateInputError{Reason: fmt.Sprintf("matrix is not symmetric at (%d, %d)", i, j)}
			}
			dist.SetSym(i, j, v)
		}
	}

	return &Matrix{labels: append([]string(nil), labels...), dist: dist}, nil
}

// FromSymmetric wraps an existing symmetric matrix. The diagonal is
// ignored; the off-diagonal entries are copied.
func FromSymmetric(labels []string, s mat.Symmetric) (*Matrix, error) {
	if err := checkLabels(labels); err != nil {
		return nil, err
	}
	if r, _ := s.Dims(); r != len(labels) {
		return nil, &DegenerateInputError{Reason: fmt.Sprintf("matrix has %d rows, expected %d", r, len(labels))}
	}

	n := len(labels)
	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := s.At(i, j)
			if math.IsNaN(v) {
				return nil, &DegenerateInputError{Reason: fmt.Sprintf("NaN at (%d, %d)", i, j)}
			}
			dist.SetSym(i, j, v)
		}
	}
	return &Matrix{labels: append([]string(nil), labels...), dist: dist}, nil
}

func checkLabels(labels []string) error {
	if len(labels) < 2 {
		return &DegenerateInputError{Reason: fmt.Sprintf("need at least two taxa, got %d", len(labels))}
	}

	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		switch {
		case l == "":
			return &DegenerateInputError{Reason: "empty label"}
		case strings.ContainsAny(l, labelDelimiters):
			return &DegenerateInputError{Reason: fmt.Sprintf("label %q contains a Newick delimiter", l)}
		case seen[l]:
			return &DegenerateInputError{Reason: fmt.Sprintf("duplicate label %q", l)}
		}
		seen[l] = true
	}
	return nil
}

// Len returns the number of taxa.
func (m *Matrix) Len() int {
	return len(m.labels)
}

// Labels returns a copy of the taxon labels in matrix order.
func (m *Matrix) Labels() []string {
	return append([]string(nil), m.labels...)
}

// At returns the distance between taxa i and j. The diagonal reads as 0.
func (m *Matrix) At(i, j int) float64 {
	if i == j {
		return 0
	}
	return m.dist.At(i, j)
}

// Rows returns the matrix as a fresh slice of rows.
func (m *Matrix) Rows() [][]float64 {
	n := m.Len()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}
