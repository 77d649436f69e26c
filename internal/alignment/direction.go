package alignment

import (
	"fmt"
	"strings"
)

// Direction is the set of moves that reach a cell's optimum. A cell may
// carry several moves at once; each one is a distinct traceback branch.
type Direction uint8

const (
	// Left consumes a horizontal residue against a gap.
	Left Direction = 1 << iota
	// Up consumes a vertical residue against a gap.
	Up
	// Diagonal consumes one residue from each sequence.
	Diagonal
)

// move is one traceback step: the tag and the column/row offset it implies.
type move struct {
	tag  Direction
	dCol int
	dRow int
}

// moves is the fixed enumeration order of traceback branches.
var moves = [...]move{
	{Left, -1, 0},
	{Up, 0, -1},
	{Diagonal, -1, -1},
}

// Has reports whether every move of t is in d.
func (d Direction) Has(t Direction) bool {
	return d&t == t
}

// String lists the moves as letters in L, U, D order, e.g. "UD".
func (d Direction) String() string {
	var sb strings.Builder
	for _, m := range moves {
		if d.Has(m.tag) {
			sb.WriteByte(m.tag.letter())
		}
	}
	return sb.String()
}

func (d Direction) letter() byte {
	switch d {
	case Left:
		return 'L'
	case Up:
		return 'U'
	case Diagonal:
		return 'D'
	default:
		return '?'
	}
}

// Mode selects global or local alignment.
type Mode int

const (
	// Global is Needleman-Wunsch: both sequences aligned end to end.
	Global Mode = iota
	// Local is Smith-Waterman: best-scoring pair of substrings.
	Local
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

func (m Mode) valid() bool {
	return m == Global || m == Local
}

// ParseMode maps "global" or "local" onto a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "global", "nw", "needleman-wunsch":
		return Global, nil
	case "local", "sw", "smith-waterman":
		return Local, nil
	default:
		return 0, fmt.Errorf("unknown alignment mode %q", name)
	}
}
