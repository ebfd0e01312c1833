package parser_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-dsc/ast"
	"github.com/KimNorgaard/go-dsc/errors"
	"github.com/KimNorgaard/go-dsc/internal/testutil"
	"github.com/KimNorgaard/go-dsc/lexer"
	"github.com/KimNorgaard/go-dsc/parser"
	"github.com/KimNorgaard/go-dsc/token"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string, opts ...parser.Option) *ast.Program {
	t.Helper()
	program, err := parser.New(lexer.New([]byte(input)), opts...).Parse()
	require.NoError(t, err, "parser has errors")
	require.NotNil(t, program)
	return program
}

func parseSingle(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := parse(t, input)
	require.Len(t, program.Expressions, 1, "program.Expressions does not contain 1 expression")
	return program.Expressions[0]
}

func TestLiteralExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"5", float64(5)},
		{"1.25", float64(1.25)},
		{"true", true},
		{"false", false},
		{"foobar", "foobar"},
		{"empty?", "empty?"},
		{`"hello world"`, "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testLiteralExpression(t, parseSingle(t, tt.input), tt.expected)
		})
	}
}

func testLiteralExpression(t *testing.T, exp ast.Expression, expected any) {
	t.Helper()

	switch v := expected.(type) {
	case float64:
		lit, ok := exp.(*ast.NumberLiteral)
		require.True(t, ok, "exp not *ast.NumberLiteral, got=%T", exp)
		require.Equal(t, v, lit.Value)
	case bool:
		lit, ok := exp.(*ast.BooleanLiteral)
		require.True(t, ok, "exp not *ast.BooleanLiteral, got=%T", exp)
		require.Equal(t, v, lit.Value)
	case string:
		// Could be Identifier or StringLiteral
		if ident, ok := exp.(*ast.Identifier); ok {
			require.Equal(t, v, ident.Value)
		} else if str, ok := exp.(*ast.StringLiteral); ok {
			require.Equal(t, v, str.Value)
		} else {
			t.Fatalf("exp not *ast.Identifier or *ast.StringLiteral, got=%T", exp)
		}
	default:
		t.Fatalf("type of expected not handled: %T", expected)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a % b / c", "((a % b) / c)"},
		{"a = b = 1", "(a = (b = 1))"},
		{"a || b && c", "(a || (b && c))"},
		{"a && b || c", "((a && b) || c)"},
		{"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		{"x != y == z", "((x != y) == z)"},
		{"-a * b", "((-a) * b)"},
		{"!x == false", "((!x) == false)"},
		{"- -x", "(-(-x))"},
		{"-(1 + 2)", "(-(1 + 2))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"x = y || z", "(x = (y || z))"},
		{"a - -1", "(a - (-1))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseSingle(t, tt.input).String())
		})
	}
}

func TestCallExpression(t *testing.T) {
	exp := parseSingle(t, "f(1,2,3)")

	call, ok := exp.(*ast.CallExpression)
	require.True(t, ok, "exp not *ast.CallExpression, got=%T", exp)
	testLiteralExpression(t, call.Function, "f")
	require.Len(t, call.Arguments, 3)
	for i, want := range []float64{1, 2, 3} {
		testLiteralExpression(t, call.Arguments[i], want)
	}
	require.Equal(t, token.Position{Line: 1, Column: 0}, call.Pos())
}

func TestCallForms(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f()", "f()"},
		{"f(1)(2)", "f(1)(2)"},
		{"x = f(a + 1, [b, \"c\"])", `(x = f((a + 1), [b, "c"]))`},
		{"-f(x)", "(-f(x))"},
		{"(g)(1)", "g(1)"},
		{"{ h }(1)", "{h}(1)"},
		{"print(\"a\\\"b\")", `print("a\"b")`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseSingle(t, tt.input).String())
		})
	}
}

func TestIfExpression(t *testing.T) {
	exp := parseSingle(t, "if x <= 1 {1} else {2}")

	ifExp, ok := exp.(*ast.IfExpression)
	require.True(t, ok, "exp not *ast.IfExpression, got=%T", exp)

	cond, ok := ifExp.Condition.(*ast.InfixExpression)
	require.True(t, ok, "condition not *ast.InfixExpression, got=%T", ifExp.Condition)
	require.Equal(t, "<=", cond.Operator)
	testLiteralExpression(t, cond.Left, "x")
	testLiteralExpression(t, cond.Right, float64(1))

	cons, ok := ifExp.Consequence.(*ast.BlockExpression)
	require.True(t, ok)
	require.Len(t, cons.Expressions, 1)
	testLiteralExpression(t, cons.Expressions[0], float64(1))

	alt, ok := ifExp.Alternative.(*ast.BlockExpression)
	require.True(t, ok)
	require.Len(t, alt.Expressions, 1)
	testLiteralExpression(t, alt.Expressions[0], float64(2))

	tests := []struct {
		input    string
		expected string
	}{
		{"if a b", "(if a {b})"},
		{"if a b else c", "(if a {b} else {c})"},
		{"if a b else if c d else e", "(if a {b} else {(if c {d} else {e})})"},
		{"if ready? { go(1); done } else 0", "(if ready? {go(1); done} else {0})"},
		{"y = if a 1 else 2", "(y = (if a {1} else {2}))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseSingle(t, tt.input).String())
		})
	}
}

func TestBlocksAndArrays(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{}", "{}"},
		{"{ a; b; c }", "{a; b; c}"},
		{"{ { 1 } }", "{{1}}"},
		{"[]", "[]"},
		{"[1, [2, 3], \"x\"]", `[1, [2, 3], "x"]`},
		{"[a = 1, b]", "[(a = 1), b]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseSingle(t, tt.input).String())
		})
	}

	block, ok := parseSingle(t, "{ a; b }").(*ast.BlockExpression)
	require.True(t, ok)
	require.Len(t, block.Expressions, 2)
}

func TestProgram(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		count    int
	}{
		{"", "", 0},
		{"   // nothing here\n", "", 0},
		{"1", "1", 1},
		{"1;", "1", 1},
		{"a = 1; b = a + 1", "(a = 1); (b = (a + 1))", 2},
		{"// setup\nx = 1;\n// use\nf(x);\n", "(x = 1); f(x)", 2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, tt.input)
			require.Len(t, program.Expressions, tt.count)
			require.Equal(t, tt.expected, program.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   string
		incomplete bool
	}{
		{"empty argument", "f(1,,3)", "unexpected token, got punc:, (1:4)", false},
		{"trailing separator", "f(1,2,)", "unexpected token, got punc:) (1:6)", false},
		{"missing separator", "f(1 2)", `expecting punctuation: ",", got num:2 (1:4)`, false},
		{"unclosed call", "f(1, 2", `expecting punctuation: ")", got EOF (1:6)`, true},
		{"missing semicolon", "1 2", `expecting punctuation: ";", got num:2 (1:2)`, false},
		{"dangling operator", "1 +", "unexpected end of input, got EOF (1:3)", true},
		{"unknown operator", "1 & 2", `unknown operator "&", got op:& (1:2)`, false},
		{"non-prefix operator", "+1", "unexpected token, got op:+ (1:0)", false},
		{"glued operators", "1 +- 2", `unknown operator "+-", got op:+- (1:2)`, false},
		{"stray else", "else 1", "unexpected token, got kw:else (1:0)", false},
		{"bad assignment target", "1 + 2 = 3", "cannot assign to (1 + 2) (1:0)", false},
		{"unclosed group", "(1", `expecting punctuation: ")", got EOF (1:2)`, true},
		{"separator before close in block", "{1;}", "unexpected token, got punc:} (1:3)", false},
		{"missing array separator", "[1 2]", `expecting punctuation: ",", got num:2 (1:3)`, false},
		{"stray close", ")", "unexpected token, got punc:) (1:0)", false},
		{"bare if", "if", "unexpected end of input, got EOF (1:2)", true},
		{"lex error", "x = @", "unrecognized character '@' (1:4)", false},
		{"unterminated string in call", "f(1,\n  \"oops", "unterminated string (2:2)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := parser.New(lexer.New([]byte(tt.input))).Parse()
			require.Nil(t, program, "no partial AST may accompany an error")
			require.EqualError(t, err, tt.expected)
			require.Equal(t, tt.incomplete, errors.IsIncomplete(err))
		})
	}
}

func TestParseErrorCarriesExpectedAndFound(t *testing.T) {
	_, err := parser.New(lexer.New([]byte("f(1 2)"))).Parse()

	var parseErr *errors.ParseError
	require.True(t, stderrors.As(err, &parseErr))
	require.Equal(t, ",", parseErr.Expected)
	require.Equal(t, token.NUMBER, parseErr.Found.Type)
	require.Equal(t, "2", parseErr.Found.Literal)
	require.Equal(t, token.Position{Line: 1, Column: 4}, parseErr.Pos)
}

func TestLexErrorsPassThrough(t *testing.T) {
	_, err := parser.New(lexer.New([]byte("a;\nb;\n  c(\"x"))).Parse()

	var lexErr *errors.LexError
	require.True(t, stderrors.As(err, &lexErr))
	require.Equal(t, token.Position{Line: 3, Column: 4}, lexErr.Pos)
}

func TestMaxDepth(t *testing.T) {
	nested := strings.Repeat("(", 5) + "1" + strings.Repeat(")", 5)
	require.Equal(t, "1", parse(t, nested).String())

	_, err := parser.New(lexer.New([]byte(nested)), parser.MaxDepth(3)).Parse()
	require.EqualError(t, err, "maximum nesting depth exceeded (1:3)")

	_, err = parser.New(lexer.New([]byte("- - - - 1")), parser.MaxDepth(3)).Parse()
	require.EqualError(t, err, "maximum nesting depth exceeded (1:4)")

	deep := strings.Repeat("[", parser.DefaultMaxDepth+1) + strings.Repeat("]", parser.DefaultMaxDepth+1)
	_, err = parser.New(lexer.New([]byte(deep))).Parse()
	require.Error(t, err)

	// Non-positive limits leave the default in place.
	require.Equal(t, "1", parse(t, nested, parser.MaxDepth(0)).String())
}

// The String rendering parses back to a tree with the same rendering.
func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"a = 1; b = a + 1",
		"if x <= 1 {1} else {2}",
		"if a b else if c d",
		"f(1, [2, -3], \"q\\\"uote\")(g)",
		"!(a && b) || c % 2 == 0",
		"{ x = 1; { y } }",
		"string->list(\"ab\")",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := parse(t, input).String()
			second := parse(t, first).String()
			require.Equal(t, first, second)
		})
	}
}

func TestParseSamples(t *testing.T) {
	for _, name := range testutil.Samples() {
		t.Run(name, func(t *testing.T) {
			program := parse(t, string(testutil.Sample(t, name)))
			require.NotEmpty(t, program.Expressions)

			// The parenthesized form is itself a valid program.
			again := parse(t, program.String())
			require.Equal(t, program.String(), again.String())
		})
	}
}

func TestParseOperatorSample(t *testing.T) {
	program := parse(t, string(testutil.Sample(t, "operators.dsc")))
	expected := []string{
		"(x <= 1)",
		"(a < b)",
		"(done != x)",
		"(n >= 10)",
		"(ok? || (!ok?))",
		"(foo-bar - baz)",
		"(x - 1)",
		`(list->string(chars) == "abc")`,
		"(a = (b = (c = (((-1) * (-(2 - 3))) % 4))))",
	}
	require.Len(t, program.Expressions, len(expected))
	for i, exp := range expected {
		require.Equal(t, exp, program.Expressions[i].String())
	}
}

func BenchmarkParse(b *testing.B) {
	input := testutil.Sample(b, "large.dsc")
	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for b.Loop() {
		if _, err := parser.New(lexer.New(input)).Parse(); err != nil {
			b.Fatal(err)
		}
	}
}
