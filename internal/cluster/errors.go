package cluster

// DegenerateInputError is returned when a distance matrix cannot seed a
// clustering run: fewer than two taxa, a non-square or non-symmetric
// matrix, or labels that do not fit the matrix.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate clustering input: " + e.Reason
}
