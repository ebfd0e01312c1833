package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/KimNorgaard/go-dsc/token"
)

// LexError reports a malformed token: an unterminated string, an
// unrecognized character or a malformed number.
type LexError struct {
	Message string
	Pos     token.Position
	// Incomplete is set when the input ended in the middle of the token.
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// ParseError reports a grammar mismatch. Found is the offending token;
// Expected is set when a specific punctuation, keyword or operator was required.
type ParseError struct {
	Message  string
	Pos      token.Position
	Expected string
	Found    token.Token
}

func (e *ParseError) Error() string {
	if e.Found.Type == "" {
		return fmt.Sprintf("%s (%d:%d)", e.Message, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("%s, got %s (%d:%d)", e.Message, e.Found, e.Pos.Line, e.Pos.Column)
}

// Position returns the source position carried by a lex or parse error.
func Position(err error) (token.Position, bool) {
	var lexErr *LexError
	if stderrors.As(err, &lexErr) {
		return lexErr.Pos, true
	}
	var parseErr *ParseError
	if stderrors.As(err, &parseErr) {
		return parseErr.Pos, true
	}
	return token.Position{}, false
}

// IsIncomplete reports whether err was caused by the input ending too early,
// so that appending more source text could make it parse.
func IsIncomplete(err error) bool {
	var lexErr *LexError
	if stderrors.As(err, &lexErr) {
		return lexErr.Incomplete
	}
	var parseErr *ParseError
	if stderrors.As(err, &parseErr) {
		return parseErr.Found.Type == token.EOF
	}
	return false
}
