package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-dsc/ast"
	"github.com/KimNorgaard/go-dsc/token"
)

// Formatter writes an AST back out as source text that parses to the same tree.
type Formatter struct {
	w      io.Writer
	indent string
	depth  int
}

// DefaultIndent is used when New is given a nil indent.
const DefaultIndent = 2

// New returns a new formatter that writes to w. With a positive indent,
// blocks and programs are written one expression per line; zero is compact.
func New(w io.Writer, indentSpaces *int) *Formatter {
	spaces := DefaultIndent
	if indentSpaces != nil {
		spaces = *indentSpaces
	}
	var indentStr string
	if spaces > 0 {
		indentStr = strings.Repeat(" ", spaces)
	}
	return &Formatter{w: w, indent: indentStr}
}

// Format writes the source representation of the AST node to the writer.
func (f *Formatter) Format(node ast.Node) error {
	return f.writeNode(node)
}

func (f *Formatter) write(s string) error {
	_, err := io.WriteString(f.w, s)
	return err
}

func (f *Formatter) writeIndent() error {
	if f.indent == "" {
		return nil
	}
	return f.write(strings.Repeat(f.indent, f.depth))
}

func (f *Formatter) writeNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.Program:
		sep := "; "
		if f.indent != "" {
			sep = ";\n"
		}
		return f.writeList(n.Expressions, sep)

	case *ast.Identifier:
		return f.write(n.Value)

	case *ast.NumberLiteral:
		return f.write(n.Token.Literal)

	case *ast.StringLiteral:
		return f.write(token.Quote(n.Value))

	case *ast.BooleanLiteral:
		return f.write(n.String())

	case *ast.PrefixExpression:
		if err := f.write(n.Operator); err != nil {
			return err
		}
		return f.writeWrapped(n.Right, !isAtom(n.Right))

	case *ast.InfixExpression:
		return f.writeBinary(n.Left, n.Operator, n.Right)

	case *ast.AssignExpression:
		return f.writeBinary(n.Name, "=", n.Value)

	case *ast.IfExpression:
		return f.writeIf(n)

	case *ast.CallExpression:
		if err := f.writeWrapped(n.Function, !isAtom(n.Function)); err != nil {
			return err
		}
		if err := f.write("("); err != nil {
			return err
		}
		if err := f.writeList(n.Arguments, ", "); err != nil {
			return err
		}
		return f.write(")")

	case *ast.BlockExpression:
		return f.writeBlock(n.Expressions)

	case *ast.ArrayLiteral:
		if err := f.write("["); err != nil {
			return err
		}
		if err := f.writeList(n.Elements, ", "); err != nil {
			return err
		}
		return f.write("]")

	default:
		return fmt.Errorf("dsc: unsupported node type for formatting: %T", n)
	}
}

func (f *Formatter) writeList(exprs []ast.Expression, sep string) error {
	for i, e := range exprs {
		if i > 0 {
			if err := f.write(sep); err != nil {
				return err
			}
		}
		if err := f.writeNode(e); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeBlock(exprs []ast.Expression) error {
	if len(exprs) == 0 {
		return f.write("{}")
	}
	if f.indent == "" {
		if err := f.write("{ "); err != nil {
			return err
		}
		if err := f.writeList(exprs, "; "); err != nil {
			return err
		}
		return f.write(" }")
	}

	if err := f.write("{"); err != nil {
		return err
	}
	f.depth++
	for i, e := range exprs {
		if err := f.write("\n"); err != nil {
			return err
		}
		if err := f.writeIndent(); err != nil {
			return err
		}
		if err := f.writeNode(e); err != nil {
			return err
		}
		if i < len(exprs)-1 {
			if err := f.write(";"); err != nil {
				return err
			}
		}
	}
	f.depth--
	if err := f.write("\n"); err != nil {
		return err
	}
	if err := f.writeIndent(); err != nil {
		return err
	}
	return f.write("}")
}

func (f *Formatter) writeBinary(left ast.Expression, op string, right ast.Expression) error {
	prec, _ := token.Precedence(op)
	if err := f.writeWrapped(left, needsParens(left, prec, op, false)); err != nil {
		return err
	}
	if err := f.write(" " + op + " "); err != nil {
		return err
	}
	return f.writeWrapped(right, needsParens(right, prec, op, true))
}

// writeIf keeps the consequence from gluing onto the condition: a consequence
// that would start with '(' or an operator, or that ends in an else-less if
// which would capture this if's else, is written as a one-expression block.
func (f *Formatter) writeIf(n *ast.IfExpression) error {
	if err := f.write("if "); err != nil {
		return err
	}
	_, condIsIf := n.Condition.(*ast.IfExpression)
	if err := f.writeWrapped(n.Condition, condIsIf); err != nil {
		return err
	}
	if err := f.write(" "); err != nil {
		return err
	}

	var buf bytes.Buffer
	sub := &Formatter{w: &buf, indent: f.indent, depth: f.depth}
	if err := sub.writeNode(n.Consequence); err != nil {
		return err
	}
	cons := buf.String()
	if strings.HasPrefix(cons, "(") || startsWithOperator(cons) ||
		(n.Alternative != nil && endsWithOpenIf(n.Consequence)) {
		if err := f.writeBlock([]ast.Expression{n.Consequence}); err != nil {
			return err
		}
	} else if err := f.write(cons); err != nil {
		return err
	}

	if n.Alternative == nil {
		return nil
	}
	if err := f.write(" else "); err != nil {
		return err
	}
	return f.writeNode(n.Alternative)
}

func (f *Formatter) writeWrapped(e ast.Expression, parens bool) error {
	if !parens {
		return f.writeNode(e)
	}
	if err := f.write("("); err != nil {
		return err
	}
	if err := f.writeNode(e); err != nil {
		return err
	}
	return f.write(")")
}

// needsParens reports whether child, written as an operand of the binary
// operator op, must be parenthesized to keep its grouping.
func needsParens(child ast.Expression, parentPrec int, op string, rightSide bool) bool {
	var childOp string
	switch c := child.(type) {
	case *ast.InfixExpression:
		childOp = c.Operator
	case *ast.AssignExpression:
		childOp = "="
	case *ast.IfExpression:
		return op != "=" || !rightSide
	default:
		return false
	}
	childPrec, _ := token.Precedence(childOp)
	if childPrec != parentPrec {
		return childPrec < parentPrec
	}
	if token.RightAssociative(op) {
		return !rightSide
	}
	return rightSide
}

// endsWithOpenIf reports whether e, written out, ends in an if without an
// else, which would take the next else as its own.
func endsWithOpenIf(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.IfExpression:
		return n.Alternative == nil || endsWithOpenIf(n.Alternative)
	case *ast.AssignExpression:
		return endsWithOpenIf(n.Value)
	default:
		return false
	}
}

// isAtom reports whether e can be followed by an argument list or preceded
// by a prefix operator without parentheses.
func isAtom(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.NumberLiteral, *ast.StringLiteral, *ast.BooleanLiteral,
		*ast.CallExpression, *ast.BlockExpression, *ast.ArrayLiteral:
		return true
	default:
		return false
	}
}

func startsWithOperator(s string) bool {
	return s != "" && strings.ContainsRune("+-*/%=&|<>!", rune(s[0]))
}
