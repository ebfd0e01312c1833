package token

import "strconv"

// Position is a location in the source text.
// Line starts at 1; Column counts the characters already consumed on the line,
// so the first character of a line is at column 0.
type Position struct {
	Line   int
	Column int
}

// String returns the position formatted as line:column.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position has been set.
func (p Position) IsValid() bool {
	return p.Line > 0
}
