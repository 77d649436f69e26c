package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence has no residues.
type EmptySequenceError struct{}

func (e *EmptySequenceError) Error() string {
	return "sequence must have at least one residue"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidSymbolError is returned when a residue lies outside the
// sequence's alphabet.
type InvalidSymbolError struct {
	Position int
	Found    byte
	Alphabet Alphabet
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid %s symbol '%c' at position %d", e.Alphabet, e.Found, e.Position)
}

func (e *InvalidSymbolError) IsSequenceError() {}

// Validate checks that every residue belongs to the alphabet.
func Validate(residues string, alphabet Alphabet) error {
	for i := 0; i < len(residues); i++ {
		if !alphabet.Contains(residues[i]) {
			return &InvalidSymbolError{Position: i, Found: residues[i], Alphabet: alphabet}
		}
	}
	return nil
}
