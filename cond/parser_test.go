package cond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/uniprompt/errors"
)

func TestParseValid(t *testing.T) {
	valid := []string{
		`EDITOR == "claude"`,
		`EDITOR != "cursor"`,
		`EDITOR in [claude, cursor]`,
		`EDITOR in ["claude", "cursor"]`,
		`EDITOR in SUPPORTED`,
		`FRAMEWORK`,
		`not FRAMEWORK`,
		`EDITOR == "claude" and FRAMEWORK == "Django"`,
		`EDITOR == "claude" or EDITOR == "cursor"`,
		`not (EDITOR == "claude" or EDITOR == "cursor")`,
		`(A == "1" and B == "2") or C in [x, y]`,
		`'literal' == EDITOR`,
		`EDITOR in []`,
	}
	for _, expression := range valid {
		t.Run(expression, func(t *testing.T) {
			expr, err := Parse(expression)
			require.NoError(t, err)
			assert.Equal(t, expression, expr.Raw())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	invalid := []struct {
		name       string
		expression string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"single equals", `EDITOR = "claude"`},
		{"bare bang", `EDITOR ! "claude"`},
		{"unterminated string", `EDITOR == "claude`},
		{"missing right operand", `EDITOR ==`},
		{"missing closing paren", `(EDITOR == "claude"`},
		{"unterminated list", `EDITOR in [claude, cursor`},
		{"list on left", `[a, b] in EDITOR`},
		{"list without in", `EDITOR == [a, b]`},
		{"trailing junk", `EDITOR == "claude" extra`},
		{"dangling and", `EDITOR == "claude" and`},
		{"unexpected character", `EDITOR == @`},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.expression)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrConditionSyntax),
				"parse errors must match ErrConditionSyntax")

			var condErr *ConditionError
			require.True(t, errors.As(err, &condErr))
			assert.Equal(t, tc.expression, condErr.Expression,
				"the error must carry the expression text verbatim")
		})
	}
}

func TestParseErrorSuggestions(t *testing.T) {
	_, err := Parse(`EDITOR = "claude"`)
	require.Error(t, err)

	var condErr *ConditionError
	require.True(t, errors.As(err, &condErr))
	assert.NotEmpty(t, condErr.Suggestions)
	assert.NotEmpty(t, condErr.Error())
	assert.NotEmpty(t, condErr.Pretty())
}

func TestTokenizeStrings(t *testing.T) {
	tokens, err := tokenize(`X == "a \"quoted\" value"`)
	require.Nil(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, `a "quoted" value`, tokens[2].value)
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	// "AND" is an identifier, not the operator, so this is two adjacent
	// operands and must fail to parse.
	_, err := Parse(`A == "1" AND B == "2"`)
	require.Error(t, err)
}
