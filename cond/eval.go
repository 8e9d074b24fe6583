package cond

import "strings"

// Eval evaluates a parsed expression against a variable context.
// Operands are compared as strings; unknown variable names resolve to
// the empty string, not an error.
func Eval(e *Expr, variables map[string]string) bool {
	return evalNode(e.root, variables)
}

// Evaluate parses and evaluates expression in one step.
func Evaluate(expression string, variables map[string]string) (bool, error) {
	expr, err := Parse(expression)
	if err != nil {
		return false, err
	}
	return Eval(expr, variables), nil
}

func evalNode(n node, variables map[string]string) bool {
	switch v := n.(type) {
	case binaryNode:
		if v.op == tokenAnd {
			return evalNode(v.left, variables) && evalNode(v.right, variables)
		}
		return evalNode(v.left, variables) || evalNode(v.right, variables)
	case notNode:
		return !evalNode(v.operand, variables)
	case cmpNode:
		return evalCmp(v, variables)
	case truthyNode:
		return operandValue(v.operand, variables) != ""
	default:
		return false
	}
}

func evalCmp(c cmpNode, variables map[string]string) bool {
	left := operandValue(c.left, variables)

	switch c.op {
	case tokenEq:
		return left == operandValue(c.right, variables)
	case tokenNeq:
		return left != operandValue(c.right, variables)
	case tokenIn:
		for _, item := range membershipItems(c.right, variables) {
			if left == item {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// operandValue resolves a non-list operand to its string value.
func operandValue(op operand, variables map[string]string) string {
	switch v := op.(type) {
	case varOperand:
		return variables[v.name]
	case litOperand:
		return v.value
	default:
		return ""
	}
}

// membershipItems expands the right side of "in": either a literal
// list, or a variable/literal holding a comma-joined value.
func membershipItems(op operand, variables map[string]string) []string {
	if list, ok := op.(listOperand); ok {
		return list.items
	}
	joined := operandValue(op, variables)
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		items = append(items, strings.TrimSpace(part))
	}
	return items
}
