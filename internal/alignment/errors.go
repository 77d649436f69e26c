package alignment

import "fmt"

// InvalidSchemeError is returned when a scoring scheme does not cover its
// alphabet exactly or is not symmetric.
type InvalidSchemeError struct {
	Reason string
}

func (e *InvalidSchemeError) Error() string {
	return "invalid scoring scheme: " + e.Reason
}

// InvalidModeError is returned for an alignment mode other than Global or
// Local.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid alignment mode %d", int(e.Mode))
}
