package cond

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/uniprompt/errors"
)

// ConditionError is a structured syntax error for a condition
// expression. It always carries the expression text verbatim so callers
// can surface exactly what failed, plus the offending token position
// when known.
type ConditionError struct {
	Expression  string   // the full expression text, verbatim
	Message     string   // human-readable description
	Position    int      // token index where the error occurred, -1 if unknown
	TokenCount  int      // total tokens in the expression
	Token       string   // offending token text, if any
	Suggestions []string // possible fixes
}

// Error implements the error interface with a plain, log-safe format.
func (e *ConditionError) Error() string {
	msg := fmt.Sprintf("%s in condition '%s'", e.Message, e.Expression)
	if e.Position >= 0 && e.TokenCount > 0 {
		msg += fmt.Sprintf(" (at token %d/%d)", e.Position+1, e.TokenCount)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" near '%s'", e.Token)
	}
	return msg
}

// Pretty renders a colored terminal version of the error with context
// and suggestions.
func (e *ConditionError) Pretty() string {
	var b strings.Builder
	b.WriteString(pterm.Red(e.Message))
	b.WriteString(fmt.Sprintf("\n\n%s\n  %s", pterm.LightCyan("Condition:"), e.Expression))
	if e.Position >= 0 && e.TokenCount > 0 {
		b.WriteString(fmt.Sprintf("\n  %s %d/%d", pterm.Yellow("Token:"), e.Position+1, e.TokenCount))
	}
	if e.Token != "" {
		b.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Near:"), e.Token))
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:")))
		for _, s := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  - %s", s))
		}
	}
	return b.String()
}

// Unwrap makes the error match errors.ErrConditionSyntax.
func (e *ConditionError) Unwrap() error {
	return errors.ErrConditionSyntax
}

func newConditionError(expression, message string) *ConditionError {
	return &ConditionError{
		Expression: expression,
		Message:    message,
		Position:   -1,
	}
}

func (e *ConditionError) withPosition(pos, total int) *ConditionError {
	e.Position = pos
	e.TokenCount = total
	return e
}

func (e *ConditionError) withToken(token string) *ConditionError {
	e.Token = token
	return e
}

func (e *ConditionError) withSuggestion(s string) *ConditionError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}
