package cond

// Expression grammar, smallest thing that covers the condition rules:
//
//	expr       := orExpr
//	orExpr     := andExpr ("or" andExpr)*
//	andExpr    := unary ("and" unary)*
//	unary      := "not" unary | primary
//	primary    := "(" expr ")" | comparison
//	comparison := operand (("==" | "!=" | "in") operand)?
//	operand    := IDENT | STRING | "[" item ("," item)* "]"
//	item       := IDENT | STRING
//
// A lone operand is truthy when its resolved value is non-empty. The
// grammar is evaluated by this dedicated parser only; condition text is
// untrusted document content and must never reach a host-language
// evaluator.

// Expr is a parsed condition expression ready for evaluation.
type Expr struct {
	raw  string
	root node
}

// Raw returns the original expression text.
func (e *Expr) Raw() string {
	return e.raw
}

type node interface{ isNode() }

type binaryNode struct {
	op    tokenKind // tokenAnd or tokenOr
	left  node
	right node
}

type notNode struct {
	operand node
}

// cmpNode compares two operands with ==, != or in.
type cmpNode struct {
	op    tokenKind
	left  operand
	right operand
}

// truthyNode is a lone operand used as a boolean.
type truthyNode struct {
	operand operand
}

func (binaryNode) isNode() {}
func (notNode) isNode()    {}
func (cmpNode) isNode()    {}
func (truthyNode) isNode() {}

type operand interface{ isOperand() }

// varOperand is a bare variable name resolved against the variable map.
type varOperand struct {
	name string
}

// litOperand is a quoted string literal.
type litOperand struct {
	value string
}

// listOperand is a bracketed literal list; valid only on the right side
// of "in".
type listOperand struct {
	items []string
}

func (varOperand) isOperand()  {}
func (litOperand) isOperand()  {}
func (listOperand) isOperand() {}

type parser struct {
	expression string
	tokens     []token
	pos        int
}

// Parse parses a condition expression. A malformed expression returns a
// *ConditionError naming the expression and the offending token.
func Parse(expression string) (*Expr, error) {
	tokens, terr := tokenize(expression)
	if terr != nil {
		return nil, terr
	}
	if len(tokens) == 0 {
		return nil, newConditionError(expression, "empty condition expression").
			withSuggestion(`write a comparison like 'EDITOR == "claude"'`)
	}

	p := &parser{expression: expression, tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, p.errorf("unexpected trailing input").
			withToken(p.tokens[p.pos].value)
	}
	return &Expr{raw: expression, root: root}, nil
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tokenOr, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tokenAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.accept(tokenNot) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.accept(tokenLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokenRParen) {
			return nil, p.errorf("missing closing parenthesis")
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (node, error) {
	left, err := p.parseOperand(false)
	if err != nil {
		return nil, err
	}

	switch {
	case p.accept(tokenEq):
		right, err := p.parseOperand(false)
		if err != nil {
			return nil, err
		}
		return cmpNode{op: tokenEq, left: left, right: right}, nil
	case p.accept(tokenNeq):
		right, err := p.parseOperand(false)
		if err != nil {
			return nil, err
		}
		return cmpNode{op: tokenNeq, left: left, right: right}, nil
	case p.accept(tokenIn):
		right, err := p.parseOperand(true)
		if err != nil {
			return nil, err
		}
		return cmpNode{op: tokenIn, left: left, right: right}, nil
	default:
		return truthyNode{operand: left}, nil
	}
}

// parseOperand parses one operand. Lists are only legal when allowList
// is set (the right side of "in").
func (p *parser) parseOperand(allowList bool) (operand, error) {
	if p.pos >= len(p.tokens) {
		return nil, p.errorf("expected operand, found end of expression")
	}

	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenIdent:
		p.pos++
		return varOperand{name: tok.value}, nil
	case tokenString:
		p.pos++
		return litOperand{value: tok.value}, nil
	case tokenLBracket:
		if !allowList {
			return nil, p.errorf("list literal is only valid on the right side of 'in'").
				withToken("[")
		}
		return p.parseList()
	default:
		return nil, p.errorf("expected operand").withToken(tok.value)
	}
}

func (p *parser) parseList() (operand, error) {
	p.pos++ // consume '['
	var items []string

	if p.accept(tokenRBracket) {
		return listOperand{}, nil
	}

	for {
		if p.pos >= len(p.tokens) {
			return nil, p.errorf("unterminated list literal")
		}
		tok := p.tokens[p.pos]
		if tok.kind != tokenIdent && tok.kind != tokenString {
			return nil, p.errorf("expected list item").withToken(tok.value)
		}
		items = append(items, tok.value)
		p.pos++

		if p.accept(tokenComma) {
			continue
		}
		if p.accept(tokenRBracket) {
			return listOperand{items: items}, nil
		}
		return nil, p.errorf("expected ',' or ']' in list").
			withToken(p.currentTokenValue())
	}
}

func (p *parser) accept(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) currentTokenValue() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos].value
	}
	return ""
}

func (p *parser) errorf(message string) *ConditionError {
	return newConditionError(p.expression, message).
		withPosition(p.pos, len(p.tokens))
}
