package token

import (
	"strings"
)

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string  // raw text, or the unescaped contents of a string
	Value   float64 // numeric value of a NUMBER token
	Pos     Position
}

const (
	// EOF marks the end of the token stream.
	EOF Type = "EOF"

	NUMBER      Type = "num"  // 42, 1.5
	STRING      Type = "str"  // "hello"
	IDENT       Type = "var"  // x, empty?, string->list
	KEYWORD     Type = "kw"   // if, else, true, false
	OPERATOR    Type = "op"   // +, <=, &&
	PUNCTUATION Type = "punc" // , ; ( ) { } [ ]
)

var keywords = map[string]struct{}{
	"if":    {},
	"else":  {},
	"true":  {},
	"false": {},
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns KEYWORD. Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if _, ok := keywords[ident]; ok {
		return KEYWORD
	}
	return IDENT
}

// String renders the token as kind:literal, e.g. kw:if or str:"a".
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case STRING:
		return string(t.Type) + ":" + Quote(t.Literal)
	default:
		return string(t.Type) + ":" + t.Literal
	}
}

// Text returns the source text that lexes back into t.
func (t Token) Text() string {
	switch t.Type {
	case EOF:
		return ""
	case STRING:
		return Quote(t.Literal)
	default:
		return t.Literal
	}
}

// Is reports whether t has type typ and, when literal is non-empty, that literal.
func (t Token) Is(typ Type, literal string) bool {
	return t.Type == typ && (literal == "" || t.Literal == literal)
}

// Quote wraps s in double quotes, escaping only '"' and '\'.
// Escapes in the language are literal, so no other character needs one.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
