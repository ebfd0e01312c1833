// Package cursor exposes the characters of a source text one at a time while
// tracking line and column.
package cursor

import (
	"unicode/utf8"

	"github.com/KimNorgaard/go-dsc/errors"
	"github.com/KimNorgaard/go-dsc/token"
)

// EOF is returned by Next, Peek and PeekAt once the input is exhausted.
const EOF rune = -1

// Cursor walks UTF-8 source text forward. It never backtracks.
type Cursor struct {
	input  []byte
	offset int // byte offset of the next character
	line   int
	column int
}

// New creates a Cursor positioned before the first character of input.
func New(input []byte) *Cursor {
	return &Cursor{input: input, line: 1}
}

// Next consumes and returns the next character, or EOF.
// Invalid UTF-8 is consumed one byte at a time as utf8.RuneError.
func (c *Cursor) Next() rune {
	if c.offset >= len(c.input) {
		return EOF
	}
	r, size := utf8.DecodeRune(c.input[c.offset:])
	c.offset += size
	if r == '\n' {
		c.line++
		c.column = 0
	} else {
		c.column++
	}
	return r
}

// Peek returns the next character without consuming it, or EOF.
func (c *Cursor) Peek() rune {
	return c.PeekAt(0)
}

// PeekAt returns the character n positions past the next one without
// consuming anything. PeekAt(0) is Peek.
func (c *Cursor) PeekAt(n int) rune {
	off := c.offset
	for {
		if off >= len(c.input) {
			return EOF
		}
		r, size := utf8.DecodeRune(c.input[off:])
		if n == 0 {
			return r
		}
		off += size
		n--
	}
}

// PeekRun returns the longest run of characters at the cursor for which in
// reports true, and the character after the run, without consuming anything.
// It decodes each character once.
func (c *Cursor) PeekRun(in func(rune) bool) (string, rune) {
	off := c.offset
	for off < len(c.input) {
		r, size := utf8.DecodeRune(c.input[off:])
		if !in(r) {
			return string(c.input[c.offset:off]), r
		}
		off += size
	}
	return string(c.input[c.offset:off]), EOF
}

// EOF reports whether the input is exhausted.
func (c *Cursor) EOF() bool {
	return c.Peek() == EOF
}

// Pos returns the position of the next character.
func (c *Cursor) Pos() token.Position {
	return token.Position{Line: c.line, Column: c.column}
}

// Croak returns a *errors.LexError carrying msg and the current position.
func (c *Cursor) Croak(msg string) error {
	return &errors.LexError{Message: msg, Pos: c.Pos()}
}
