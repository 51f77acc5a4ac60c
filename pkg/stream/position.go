package stream

import "fmt"

// DefaultTabWidth is the column interval a tab advances to.
const DefaultTabWidth = 8

// Position is a cursor in the consumed input.
// Offset is 0-based and counts consumed characters; Line and Column are 1-based.
type Position struct {
	Offset int64
	Line   int
	Column int
}

// StartPosition returns the position of a stream before anything is consumed.
func StartPosition() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// IsValid returns true if this position has valid (positive) line and column.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// String renders the position as line:col.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Advance returns the position after consuming c.
// A tab moves to the column just past the next multiple of tabWidth.
func (p Position) Advance(c byte, tabWidth int) Position {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	p.Offset++

	switch c {
	case '\t':
		p.Column += tabWidth - (p.Column-1)%tabWidth
	case '\n':
		p.Line++
		p.Column = 1
	default:
		p.Column++
	}

	return p
}
