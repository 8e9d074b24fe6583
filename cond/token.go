package cond

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenEq       // ==
	tokenNeq      // !=
	tokenAnd      // and
	tokenOr       // or
	tokenNot      // not
	tokenIn       // in
	tokenLParen   // (
	tokenRParen   // )
	tokenLBracket // [
	tokenRBracket // ]
	tokenComma    // ,
)

type token struct {
	kind  tokenKind
	value string
}

// keywords maps reserved bare words to their token kinds. Everything
// else lexes as an identifier.
var keywords = map[string]tokenKind{
	"and": tokenAnd,
	"or":  tokenOr,
	"not": tokenNot,
	"in":  tokenIn,
}

// tokenize splits a condition expression into tokens. The grammar is
// deliberately small: identifiers, quoted strings, ==, !=, in, and, or,
// not, parentheses, and bracketed lists.
func tokenize(expression string) ([]token, *ConditionError) {
	var tokens []token
	runes := []rune(expression)
	i := 0

	for i < len(runes) {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(':
			tokens = append(tokens, token{tokenLParen, "("})
			i++
		case r == ')':
			tokens = append(tokens, token{tokenRParen, ")"})
			i++
		case r == '[':
			tokens = append(tokens, token{tokenLBracket, "["})
			i++
		case r == ']':
			tokens = append(tokens, token{tokenRBracket, "]"})
			i++
		case r == ',':
			tokens = append(tokens, token{tokenComma, ","})
			i++

		case r == '=':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{tokenEq, "=="})
				i += 2
				continue
			}
			return nil, newConditionError(expression, "unexpected '='").
				withPosition(len(tokens), len(tokens)+1).
				withToken("=").
				withSuggestion("use '==' for equality comparison")

		case r == '!':
			if i+1 < len(runes) && runes[i+1] == '=' {
				tokens = append(tokens, token{tokenNeq, "!="})
				i += 2
				continue
			}
			return nil, newConditionError(expression, "unexpected '!'").
				withPosition(len(tokens), len(tokens)+1).
				withToken("!").
				withSuggestion("use '!=' for inequality, 'not' for negation")

		case r == '\'' || r == '"':
			value, next, ok := lexString(runes, i)
			if !ok {
				return nil, newConditionError(expression, "unterminated string literal").
					withPosition(len(tokens), len(tokens)+1).
					withToken(string(runes[i:]))
			}
			tokens = append(tokens, token{tokenString, value})
			i = next

		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentPart(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			if kind, ok := keywords[strings.ToLower(word)]; ok && word == strings.ToLower(word) {
				tokens = append(tokens, token{kind, word})
			} else {
				tokens = append(tokens, token{tokenIdent, word})
			}

		default:
			return nil, newConditionError(expression, "unexpected character").
				withPosition(len(tokens), len(tokens)+1).
				withToken(string(r))
		}
	}

	return tokens, nil
}

// lexString consumes a quoted string starting at runes[start]. Supports
// backslash escapes for the quote character and backslash itself.
func lexString(runes []rune, start int) (value string, next int, ok bool) {
	quote := runes[start]
	var b strings.Builder
	i := start + 1
	for i < len(runes) {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			escaped := runes[i+1]
			if escaped == quote || escaped == '\\' {
				b.WriteRune(escaped)
				i += 2
				continue
			}
		}
		if r == quote {
			return b.String(), i + 1, true
		}
		b.WriteRune(r)
		i++
	}
	return "", start, false
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
