/*
Package dsc is the front end of a small expression language: it turns source
text into tokens and tokens into an abstract syntax tree, and prints trees
back out as source.

Every construct is an expression. A program is a sequence of expressions
separated by semicolons:

	fact = if n <= 1 { 1 } else { n * fact(n - 1) };
	greet("world", [1, 2.5, true]) // calls take any number of arguments

The language has numbers (digits with at most one decimal point), strings in
double quotes where a backslash makes the next character literal, the
keywords if, else, true and false, and identifiers that may carry the
symbolic characters ? ! - < > = in the middle or at the end (empty?, set!,
string->list).

Binary operators, loosest first: = (right-associative, the target must be an
identifier), ||, &&, the comparisons < > <= >= == !=, + -, and * / %.
Prefix - and ! bind tighter than every binary operator.

1. Tokens

Lex returns the token stream. Each token records its kind, its text and the
line and column it starts at:

	toks, err := dsc.Lex([]byte(`if x<=1 {1} else {2}`))
	// kw:if var:x op:<= num:1 punc:{ num:1 punc:} kw:else punc:{ num:2 punc:}

2. Trees

Parse returns the program or the first error; it never returns a partial
tree. Errors are *errors.LexError or *errors.ParseError and carry a
position. errors.WithSource renders them with the offending source line:

	prog, err := dsc.Parse(src, dsc.MaxDepth(100))
	if err != nil {
		fmt.Println(errors.WithSource(err, src))
		return
	}
	fmt.Println(prog) // fully parenthesized form

Format prints a tree as canonical source, indented by default or on a single
line with Indent(0).
*/
package dsc
