package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		inspectAll(n.Expressions, f)
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *AssignExpression:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *IfExpression:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *CallExpression:
		Inspect(n.Function, f)
		inspectAll(n.Arguments, f)
	case *BlockExpression:
		inspectAll(n.Expressions, f)
	case *ArrayLiteral:
		inspectAll(n.Elements, f)
	case *Identifier, *NumberLiteral, *StringLiteral, *BooleanLiteral:
	}
}

func inspectAll(exprs []Expression, f func(Node) bool) {
	for _, e := range exprs {
		Inspect(e, f)
	}
}
