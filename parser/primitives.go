package parser

import (
	"fmt"

	"github.com/KimNorgaard/go-dsc/errors"
	"github.com/KimNorgaard/go-dsc/token"
)

// isPunctuation reports whether the next token is punctuation and, when
// expected is non-empty, that exact character. It returns the token on a match.
func (p *Parser) isPunctuation(expected string) (token.Token, bool) {
	return p.is(token.PUNCTUATION, expected)
}

func (p *Parser) isKeyword(expected string) (token.Token, bool) {
	return p.is(token.KEYWORD, expected)
}

func (p *Parser) isOperator(expected string) (token.Token, bool) {
	return p.is(token.OPERATOR, expected)
}

// is never reports a match at end of stream or after a lexing failure; the
// failure resurfaces on the next Peek or Next.
func (p *Parser) is(typ token.Type, expected string) (token.Token, bool) {
	tok, err := p.l.Peek()
	if err != nil || !tok.Is(typ, expected) {
		return token.Token{}, false
	}
	return tok, true
}

// skipPunctuation consumes the expected punctuation or fails with a ParseError.
func (p *Parser) skipPunctuation(expected string) error {
	return p.skip(token.PUNCTUATION, "punctuation", expected)
}

func (p *Parser) skipKeyword(expected string) error {
	return p.skip(token.KEYWORD, "keyword", expected)
}

func (p *Parser) skipOperator(expected string) error {
	return p.skip(token.OPERATOR, "operator", expected)
}

func (p *Parser) skip(typ token.Type, kind, expected string) error {
	tok, err := p.l.Peek()
	if err != nil {
		return err
	}
	if !tok.Is(typ, expected) {
		return &errors.ParseError{
			Message:  fmt.Sprintf("expecting %s: %q", kind, expected),
			Pos:      tok.Pos,
			Expected: expected,
			Found:    tok,
		}
	}
	_, err = p.l.Next()
	return err
}

// delimited parses open, then elements separated by exactly one separator,
// then close. parseElem is called once per element. An empty element or a
// separator directly before close is an error, because the element parser
// rejects the punctuation it finds there.
func delimited[T any](p *Parser, open, close, separator string, parseElem func() (T, error)) ([]T, error) {
	if err := p.skipPunctuation(open); err != nil {
		return nil, err
	}
	elems := []T{}
	first := true
	for !p.l.EOF() {
		if _, ok := p.isPunctuation(close); ok {
			break
		}
		if first {
			first = false
		} else if err := p.skipPunctuation(separator); err != nil {
			return nil, err
		}
		elem, err := parseElem()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := p.skipPunctuation(close); err != nil {
		return nil, err
	}
	return elems, nil
}
