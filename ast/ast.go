// Package ast declares the syntax tree produced by the parser.
//
// The set of nodes is closed: every Expression implements an unexported
// marker method, so only this package can add node kinds.
package ast

import (
	"bytes"
	"strings"

	"github.com/KimNorgaard/go-dsc/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token associated with the node.
	TokenLiteral() string
	// Pos returns the position of the first token of the node.
	Pos() token.Position
	// String returns a fully parenthesized rendering that parses back to an
	// equivalent tree.
	String() string
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: a sequence of top-level expressions.
type Program struct {
	Expressions []Expression
}

// TokenLiteral returns the literal value of the token associated with the node.
func (p *Program) TokenLiteral() string {
	if len(p.Expressions) > 0 {
		return p.Expressions[0].TokenLiteral()
	}
	return ""
}

// Pos returns the position of the first expression, or line 1 column 0 when
// the program is empty.
func (p *Program) Pos() token.Position {
	if len(p.Expressions) > 0 {
		return p.Expressions[0].Pos()
	}
	return token.Position{Line: 1}
}

// String returns a string representation of the node.
func (p *Program) String() string {
	return join(p.Expressions, "; ")
}

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) Pos() token.Position  { return nl.Token.Pos }
func (nl *NumberLiteral) String() string       { return nl.Token.Literal }

// StringLiteral is a string literal. Value holds the unescaped text.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() token.Position  { return sl.Token.Pos }
func (sl *StringLiteral) String() string       { return token.Quote(sl.Value) }

// BooleanLiteral is the true or false keyword.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// PrefixExpression is a unary operation such as -x or !ok.
type PrefixExpression struct {
	Token    token.Token // the operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) Pos() token.Position  { return pe.Token.Pos }
func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// InfixExpression is a binary operation.
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) Pos() token.Position  { return ie.Left.Pos() }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// AssignExpression binds Value to Name. What binding means is up to the evaluator.
type AssignExpression struct {
	Token token.Token // the '=' token
	Name  *Identifier
	Value Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignExpression) Pos() token.Position  { return ae.Name.Pos() }
func (ae *AssignExpression) String() string {
	return "(" + ae.Name.String() + " = " + ae.Value.String() + ")"
}

// IfExpression is a conditional. Alternative is nil when there is no else branch.
type IfExpression struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IfExpression) Pos() token.Position  { return ie.Token.Pos }
func (ie *IfExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(if ")
	out.WriteString(ie.Condition.String())
	out.WriteString(" ")
	out.WriteString(braced(ie.Consequence))
	if ie.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(braced(ie.Alternative))
	}
	out.WriteString(")")
	return out.String()
}

// CallExpression applies Function to Arguments.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() token.Position  { return ce.Function.Pos() }
func (ce *CallExpression) String() string {
	return ce.Function.String() + "(" + join(ce.Arguments, ", ") + ")"
}

// BlockExpression is a braced, semicolon-separated sequence of expressions.
type BlockExpression struct {
	Token       token.Token // the '{' token
	Expressions []Expression
}

func (be *BlockExpression) expressionNode()      {}
func (be *BlockExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BlockExpression) Pos() token.Position  { return be.Token.Pos }
func (be *BlockExpression) String() string {
	return "{" + join(be.Expressions, "; ") + "}"
}

// ArrayLiteral is a bracketed, comma-separated list of expressions.
type ArrayLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }
func (al *ArrayLiteral) Pos() token.Position  { return al.Token.Pos }
func (al *ArrayLiteral) String() string {
	return "[" + join(al.Elements, ", ") + "]"
}

func join(exprs []Expression, sep string) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, sep)
}

// braced renders an if branch so that it cannot merge with the condition
// before it or swallow a following else.
func braced(e Expression) string {
	if _, ok := e.(*BlockExpression); ok {
		return e.String()
	}
	return "{" + e.String() + "}"
}
