package cond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	variables := map[string]string{
		"EDITOR":    "claude",
		"FRAMEWORK": "Django",
		"SUPPORTED": "claude, cursor, windsurf",
		"EMPTY":     "",
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`EDITOR == "claude"`, true},
		{`EDITOR == "cursor"`, false},
		{`EDITOR != "cursor"`, true},
		{`EDITOR != "claude"`, false},
		{`"claude" == EDITOR`, true},

		// Membership with a literal list: bare words and quoted
		// strings are both literals
		{`EDITOR in [claude, cursor]`, true},
		{`EDITOR in ["claude", "cursor"]`, true},
		{`EDITOR in [vim, emacs]`, false},
		{`EDITOR in []`, false},

		// Membership with a comma-joined variable value
		{`EDITOR in SUPPORTED`, true},
		{`FRAMEWORK in SUPPORTED`, false},

		// Boolean combinators
		{`EDITOR == "claude" and FRAMEWORK == "Django"`, true},
		{`EDITOR == "claude" and FRAMEWORK == "Rails"`, false},
		{`EDITOR == "cursor" or FRAMEWORK == "Django"`, true},
		{`EDITOR == "cursor" or FRAMEWORK == "Rails"`, false},
		{`not EDITOR == "cursor"`, true},
		{`not (EDITOR == "claude" or EDITOR == "cursor")`, false},
		{`not EDITOR == "claude" or FRAMEWORK == "Django"`, true},

		// Lone operand truthiness: non-empty value
		{`FRAMEWORK`, true},
		{`EMPTY`, false},
		{`not EMPTY`, true},

		// Unknown variables evaluate to empty string, not an error
		{`UNKNOWN == ""`, true},
		{`UNKNOWN == "anything"`, false},
		{`UNKNOWN`, false},
		{`EDITOR in UNKNOWN`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := Evaluate(tt.expression, variables)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	variables := map[string]string{"A": "1", "B": "", "C": "1"}

	// "and" binds tighter than "or": A or (B and C)
	got, err := Evaluate(`A or B and C`, variables)
	require.NoError(t, err)
	assert.True(t, got)

	// Parenthesized: (A or B) and B
	got, err = Evaluate(`(A or B) and B`, variables)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestEvaluateCommaJoinedTrimsSpaces(t *testing.T) {
	variables := map[string]string{"LIST": "a , b,  c", "X": "b"}
	got, err := Evaluate(`X in LIST`, variables)
	require.NoError(t, err)
	assert.True(t, got)
}
