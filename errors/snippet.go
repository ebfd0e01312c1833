package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// A SourceError decorates a lex or parse error with the offending source line
// and a caret under the error column.
type SourceError struct {
	Err     error
	Snippet string
}

func (e *SourceError) Error() string { return e.Snippet }

func (e *SourceError) Unwrap() error { return e.Err }

// WithSource wraps a *LexError or *ParseError in a *SourceError rendered
// against src. Any other error, including nil, and errors without a valid
// position are returned unchanged.
//
//	PARSE ERROR at 2:7: expecting punctuation: ")", got EOF
//
//	   1 | f(1,
//	   2 |   2, 3
//	     |       ^
func WithSource(err error, src []byte) error {
	var (
		lexErr   *LexError
		parseErr *ParseError
	)
	switch {
	case stderrors.As(err, &lexErr) && lexErr.Pos.IsValid():
		return &SourceError{Err: err, Snippet: snippet(string(src), "LEXICAL ERROR", lexErr.Pos.Line, lexErr.Pos.Column+1, lexErr.Message)}
	case stderrors.As(err, &parseErr) && parseErr.Pos.IsValid():
		msg := parseErr.Message
		if parseErr.Found.Type != "" {
			msg += ", got " + parseErr.Found.String()
		}
		return &SourceError{Err: err, Snippet: snippet(string(src), "PARSE ERROR", parseErr.Pos.Line, parseErr.Pos.Column+1, msg)}
	default:
		return err
	}
}

// snippet renders up to one line of context either side of line and a caret
// under the 1-based col. Out-of-range coordinates are clamped.
func snippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	line = max(1, min(line, len(lines)))
	col = max(col, 1)

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
