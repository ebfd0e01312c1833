// Package lexer turns source text into a lazy, peekable stream of tokens.
package lexer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/KimNorgaard/go-dsc/errors"
	"github.com/KimNorgaard/go-dsc/internal/cursor"
	"github.com/KimNorgaard/go-dsc/token"
)

// Lexer holds the state for tokenizing source text.
type Lexer struct {
	c   *cursor.Cursor
	buf strings.Builder

	peeked    token.Token
	hasPeeked bool
	err       error
}

// New creates and returns a new Lexer over input.
func New(input []byte) *Lexer {
	return &Lexer{c: cursor.New(input)}
}

// Peek returns the next token without consuming it. At most one token is
// buffered. Once lexing has failed, the same error is returned forever.
func (l *Lexer) Peek() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	if !l.hasPeeked {
		tok, err := l.readNext()
		if err != nil {
			l.err = err
			return token.Token{}, err
		}
		l.peeked, l.hasPeeked = tok, true
	}
	return l.peeked, nil
}

// Next consumes and returns the next token. At the end of the input it keeps
// returning an EOF token.
func (l *Lexer) Next() (token.Token, error) {
	tok, err := l.Peek()
	if err != nil {
		return tok, err
	}
	if tok.Type != token.EOF {
		l.hasPeeked = false
	}
	return tok, nil
}

// EOF reports whether the next token is the end of the stream. It reports
// false when lexing the next token fails; the error surfaces on Peek or Next.
func (l *Lexer) EOF() bool {
	tok, err := l.Peek()
	return err == nil && tok.Type == token.EOF
}

// Croak returns a *errors.LexError carrying msg and the current character position.
func (l *Lexer) Croak(msg string) error {
	return l.c.Croak(msg)
}

func (l *Lexer) readNext() (token.Token, error) {
	for {
		l.skipWhitespace()

		tok := token.Token{Pos: l.c.Pos()}
		ch := l.c.Peek()
		switch {
		case ch == cursor.EOF:
			tok.Type = token.EOF
			return tok, nil
		case ch == '/' && l.c.PeekAt(1) == '/':
			l.skipComment()
			continue
		case ch == '"':
			lit, err := l.readString()
			if err != nil {
				return tok, err
			}
			tok.Type, tok.Literal = token.STRING, lit
		case isDigit(ch):
			lit, val, err := l.readNumber()
			if err != nil {
				return tok, err
			}
			tok.Type, tok.Literal, tok.Value = token.NUMBER, lit, val
		case isIdentStart(ch):
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
		case isPunctuation(ch):
			tok.Type, tok.Literal = token.PUNCTUATION, string(l.c.Next())
		case isOperatorChar(ch):
			tok.Type, tok.Literal = token.OPERATOR, l.readOperator()
		case ch == utf8.RuneError:
			return tok, l.Croak("invalid utf-8 encoding")
		default:
			return tok, l.Croak(fmt.Sprintf("unrecognized character %q", ch))
		}
		return tok, nil
	}
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.c.Peek()) {
		l.c.Next()
	}
}

// skipComment consumes a // comment up to and including the newline.
func (l *Lexer) skipComment() {
	for {
		ch := l.c.Next()
		if ch == '\n' || ch == cursor.EOF {
			return
		}
	}
}

type stringState int

const (
	stateNormal stringState = iota
	stateEscaped
)

// readString reads a double-quoted string. A backslash makes the following
// character literal. Running out of input, even right after a backslash, is
// reported at the opening quote.
func (l *Lexer) readString() (string, error) {
	start := l.c.Pos()
	l.c.Next() // consume opening quote
	l.buf.Reset()
	state := stateNormal
	for {
		pos := l.c.Pos()
		ch := l.c.Next()
		switch {
		case ch == cursor.EOF:
			return "", &errors.LexError{Message: "unterminated string", Pos: start, Incomplete: true}
		case ch == utf8.RuneError:
			return "", &errors.LexError{Message: "invalid utf-8 sequence in string", Pos: pos}
		case state == stateEscaped:
			l.buf.WriteRune(ch)
			state = stateNormal
		case ch == '\\':
			state = stateEscaped
		case ch == '"':
			return l.buf.String(), nil
		default:
			l.buf.WriteRune(ch)
		}
	}
}

// readNumber reads digits with at most one decimal point. A second point ends
// the run rather than failing.
func (l *Lexer) readNumber() (string, float64, error) {
	start := l.c.Pos()
	l.buf.Reset()
	hasDot := false
	for {
		ch := l.c.Peek()
		if ch == '.' {
			if hasDot {
				break
			}
			hasDot = true
		} else if !isDigit(ch) {
			break
		}
		l.buf.WriteRune(l.c.Next())
	}

	lit := l.buf.String()
	if lit == "" || !isDigit(rune(lit[len(lit)-1])) {
		return "", 0, &errors.LexError{Message: fmt.Sprintf("malformed number %q", lit), Pos: start}
	}
	val, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(val, 0) {
		return "", 0, &errors.LexError{Message: fmt.Sprintf("malformed number %q", lit), Pos: start}
	}
	return lit, val, nil
}

func (l *Lexer) readIdentifier() string {
	l.buf.Reset()
	for {
		ch := l.c.Peek()
		if isIdentChar(ch) {
			l.buf.WriteRune(l.c.Next())
			continue
		}
		if !isSymbolic(ch) {
			break
		}
		run := l.symbolicRun()
		if run == "" {
			break
		}
		l.buf.WriteString(run)
		for range utf8.RuneCountInString(run) {
			l.c.Next()
		}
	}
	return l.buf.String()
}

// symbolicRun returns the symbolic run at the cursor if it belongs to the
// identifier being read, or "" if it does not.
//
// The run is kept when it leads into more identifier text and holds no
// comparison or assignment operator (foo-bar, string->list), or when it is a
// trailing run of '?' and '!' (empty?, set!).
func (l *Lexer) symbolicRun() string {
	run, next := l.c.PeekRun(isSymbolic)
	if isIdentStart(next) {
		if strings.ContainsRune(run, '=') || run == "<" || run == ">" {
			return ""
		}
		return run
	}
	if strings.Trim(run, "?!") == "" && !isOperatorChar(next) {
		return run
	}
	return ""
}

// readOperator reads a maximal run of operator characters, stopping short of
// a // comment.
func (l *Lexer) readOperator() string {
	l.buf.Reset()
	for isOperatorChar(l.c.Peek()) {
		if l.c.Peek() == '/' && l.c.PeekAt(1) == '/' {
			break
		}
		l.buf.WriteRune(l.c.Next())
	}
	return l.buf.String()
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentStart(ch rune) bool {
	return isLetter(ch) || ch == '_'
}

func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isSymbolic(ch rune) bool {
	return strings.ContainsRune("?!-<>=", ch)
}

func isPunctuation(ch rune) bool {
	return strings.ContainsRune(",;(){}[]", ch)
}

func isOperatorChar(ch rune) bool {
	return strings.ContainsRune("+-*/%=&|<>!", ch)
}
