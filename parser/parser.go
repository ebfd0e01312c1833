// Package parser builds an AST from the lexer's token stream by recursive
// descent with one token of lookahead.
package parser

import (
	"fmt"

	"github.com/KimNorgaard/go-dsc/ast"
	"github.com/KimNorgaard/go-dsc/errors"
	"github.com/KimNorgaard/go-dsc/lexer"
	"github.com/KimNorgaard/go-dsc/token"
)

// DefaultMaxDepth bounds expression nesting unless MaxDepth says otherwise.
const DefaultMaxDepth = 1000

type prefixParseFn func(tok token.Token) (ast.Expression, error)

// Parser holds the state of the parser. Its only lookahead is the lexer's
// peek buffer.
type Parser struct {
	l *lexer.Lexer

	maxDepth int
	depth    int

	prefixParseFns map[token.Type]prefixParseFn
}

// Option configures a Parser.
type Option func(*Parser)

// MaxDepth limits how deeply expressions may nest. Values below 1 are ignored.
func MaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// New creates a new parser reading from l.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		l:        l,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.KEYWORD, p.parseKeyword)
	p.registerPrefix(token.PUNCTUATION, p.parseBracketed)

	return p
}

// Parse parses the whole input: expressions separated by ';', with an
// optional trailing ';'. It returns either the program or the first error.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{Expressions: []ast.Expression{}}
	for !p.l.EOF() {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		program.Expressions = append(program.Expressions, expr)
		if !p.l.EOF() {
			if err := p.skipPunctuation(";"); err != nil {
				return nil, err
			}
		}
	}
	// EOF reports false on a lexing failure, so reaching here means the
	// stream really ended.
	return program, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinary(left, token.LOWEST)
}

// parseBinary climbs operator precedence: it folds operators binding tighter
// than minPrec into left. Operators group to the left except '='.
func (p *Parser) parseBinary(left ast.Expression, minPrec int) (ast.Expression, error) {
	for {
		tok, ok := p.isOperator("")
		if !ok {
			return left, nil
		}
		prec, known := token.Precedence(tok.Literal)
		if !known {
			return nil, p.errorAt(tok, fmt.Sprintf("unknown operator %q", tok.Literal))
		}
		if prec <= minPrec {
			return left, nil
		}
		if err := p.skipOperator(tok.Literal); err != nil {
			return nil, err
		}

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		nextMin := prec
		if token.RightAssociative(tok.Literal) {
			nextMin = prec - 1
		}
		if err := p.enter(); err != nil {
			return nil, err
		}
		right, err = p.parseBinary(right, nextMin)
		p.leave()
		if err != nil {
			return nil, err
		}

		if left, err = p.combine(tok, left, right); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) combine(op token.Token, left, right ast.Expression) (ast.Expression, error) {
	if op.Literal != "=" {
		return &ast.InfixExpression{Token: op, Left: left, Operator: op.Literal, Right: right}, nil
	}
	name, ok := left.(*ast.Identifier)
	if !ok {
		return nil, &errors.ParseError{
			Message: fmt.Sprintf("cannot assign to %s", left.String()),
			Pos:     left.Pos(),
		}
	}
	return &ast.AssignExpression{Token: op, Name: name, Value: right}, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok, ok := p.isOperator("")
	if !ok {
		return p.parsePostfix()
	}
	if !token.IsPrefixOperator(tok.Literal) {
		return nil, p.errorAt(tok, "unexpected token")
	}

	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if err := p.skipOperator(tok.Literal); err != nil {
		return nil, err
	}
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}, nil
}

// parsePostfix parses an atom followed by any number of argument lists.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.isPunctuation("(")
		if !ok {
			return expr, nil
		}
		args, err := delimited(p, "(", ")", ",", p.parseExpression)
		if err != nil {
			return nil, err
		}
		expr = &ast.CallExpression{Token: tok, Function: expr, Arguments: args}
	}
}

func (p *Parser) parseAtom() (ast.Expression, error) {
	tok, err := p.l.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.EOF {
		return nil, p.errorAt(tok, "unexpected end of input")
	}
	prefix := p.prefixParseFns[tok.Type]
	if prefix == nil {
		return nil, p.errorAt(tok, "unexpected token")
	}
	return prefix(tok)
}

// The contract for all prefix parse functions is that they are entered with
// tok being the peeked first token of the construct, and they return with
// the lexer positioned after the construct.

func (p *Parser) parseNumberLiteral(tok token.Token) (ast.Expression, error) {
	if _, err := p.l.Next(); err != nil {
		return nil, err
	}
	return &ast.NumberLiteral{Token: tok, Value: tok.Value}, nil
}

func (p *Parser) parseStringLiteral(tok token.Token) (ast.Expression, error) {
	if _, err := p.l.Next(); err != nil {
		return nil, err
	}
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
}

func (p *Parser) parseIdentifier(tok token.Token) (ast.Expression, error) {
	if _, err := p.l.Next(); err != nil {
		return nil, err
	}
	return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
}

func (p *Parser) parseKeyword(tok token.Token) (ast.Expression, error) {
	switch tok.Literal {
	case "if":
		return p.parseIf(tok)
	case "true", "false":
		if _, err := p.l.Next(); err != nil {
			return nil, err
		}
		return &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}, nil
	default:
		return nil, p.errorAt(tok, "unexpected token")
	}
}

func (p *Parser) parseIf(tok token.Token) (ast.Expression, error) {
	if err := p.skipKeyword("if"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cons, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	expr := &ast.IfExpression{Token: tok, Condition: cond, Consequence: cons}

	if _, ok := p.isKeyword("else"); ok {
		if err := p.skipKeyword("else"); err != nil {
			return nil, err
		}
		if expr.Alternative, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) parseBracketed(tok token.Token) (ast.Expression, error) {
	switch tok.Literal {
	case "(":
		return p.parseGrouped()
	case "{":
		exprs, err := delimited(p, "{", "}", ";", p.parseExpression)
		if err != nil {
			return nil, err
		}
		return &ast.BlockExpression{Token: tok, Expressions: exprs}, nil
	case "[":
		elems, err := delimited(p, "[", "]", ",", p.parseExpression)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayLiteral{Token: tok, Elements: elems}, nil
	default:
		return nil, p.errorAt(tok, "unexpected token")
	}
}

func (p *Parser) parseGrouped() (ast.Expression, error) {
	if err := p.skipPunctuation("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.skipPunctuation(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		tok, err := p.l.Peek()
		if err != nil {
			return err
		}
		return &errors.ParseError{Message: "maximum nesting depth exceeded", Pos: tok.Pos}
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorAt(tok token.Token, msg string) error {
	return &errors.ParseError{Message: msg, Pos: tok.Pos, Found: tok}
}
