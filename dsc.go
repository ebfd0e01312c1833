package dsc

import (
	"bytes"
	stderrors "errors"
	"strings"

	"github.com/KimNorgaard/go-dsc/ast"
	"github.com/KimNorgaard/go-dsc/internal/formatter"
	"github.com/KimNorgaard/go-dsc/lexer"
	"github.com/KimNorgaard/go-dsc/parser"
	"github.com/KimNorgaard/go-dsc/token"
)

// ErrInputTooLarge is returned when the source exceeds the MaxSize option.
var ErrInputTooLarge = stderrors.New("input too large")

// Lex returns every token in src up to, but not including, the end of input.
// On a lexing failure it returns the first *errors.LexError and no tokens.
func Lex(src []byte, opts ...Option) ([]token.Token, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := o.checkSize(src); err != nil {
		return nil, err
	}

	l := lexer.New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Parse parses src into a program. It returns either the program or the
// first lexing or parsing error, never both.
func Parse(src []byte, opts ...Option) (*ast.Program, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if err := o.checkSize(src); err != nil {
		return nil, err
	}

	p := parser.New(lexer.New(src), parser.MaxDepth(o.maxDepth))
	return p.Parse()
}

// Format returns canonical source for node. Parsing the result yields a tree
// equal to node.
func Format(node ast.Node, opts ...Option) ([]byte, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	indent := defaultIndent
	if o.indent != nil {
		indent = *o.indent
	}

	var buf bytes.Buffer
	if err := formatter.New(&buf, &indent).Format(node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTokens joins the source text of toks with single spaces. Lexing the
// result yields tokens of the same kinds and values.
func FormatTokens(toks []token.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		parts = append(parts, tok.Text())
	}
	return strings.Join(parts, " ")
}
