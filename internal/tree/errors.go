package tree

import "fmt"

// MalformedNewickError is returned when Newick text cannot be parsed. The
// offset points into the original input.
type MalformedNewickError struct {
	Offset int
	Reason string
}

func (e *MalformedNewickError) Error() string {
	return fmt.Sprintf("malformed newick at offset %d: %s", e.Offset, e.Reason)
}

func malformed(offset int, format string, args ...interface{}) error {
	return &MalformedNewickError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
