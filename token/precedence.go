package token

// Binding powers of the binary operators. Higher binds tighter.
const (
	LOWEST     = 0
	ASSIGN     = 1  // =
	OR         = 2  // ||
	AND        = 3  // &&
	COMPARISON = 7  // < > <= >= == !=
	SUM        = 10 // + -
	PRODUCT    = 20 // * / %
)

var precedences = map[string]int{
	"=":  ASSIGN,
	"||": OR,
	"&&": AND,
	"<":  COMPARISON,
	">":  COMPARISON,
	"<=": COMPARISON,
	">=": COMPARISON,
	"==": COMPARISON,
	"!=": COMPARISON,
	"+":  SUM,
	"-":  SUM,
	"*":  PRODUCT,
	"/":  PRODUCT,
	"%":  PRODUCT,
}

// Precedence returns the binding power of a binary operator.
// The second result is false if op is not a binary operator.
func Precedence(op string) (int, bool) {
	p, ok := precedences[op]
	return p, ok
}

// RightAssociative reports whether op groups to the right. Only assignment does.
func RightAssociative(op string) bool {
	return op == "="
}

// IsPrefixOperator reports whether op may appear as a unary prefix.
func IsPrefixOperator(op string) bool {
	return op == "-" || op == "!"
}
