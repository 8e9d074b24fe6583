// Package cond evaluates condition rules against a variable context and
// merges matching instruction patches into a document. Expressions are
// a small fixed grammar (see parser.go) evaluated by a dedicated
// tokenizer and recursive-descent parser.
package cond

import (
	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/logger"
)

// Apply evaluates every condition rule in document order and returns a
// new document with the matching branches' patches appended and the
// conditions cleared.
//
// Multiple matching rules all apply; later matches append after earlier
// ones. A rule that is false with no else branch is skipped. A rule
// whose expression cannot be parsed aborts the run: a condition that
// cannot be evaluated cannot be safely skipped.
func Apply(d *doc.Document, variables map[string]string) (*doc.Document, error) {
	out := d.Clone()
	out.Conditions = nil

	for _, rule := range d.Conditions {
		matched, err := Evaluate(rule.If, variables)
		if err != nil {
			return nil, err
		}

		logger.Logger.Debugw("evaluated condition",
			"if", rule.If,
			"matched", matched,
		)

		if matched {
			out.MergePatch(rule.Then)
		} else if rule.Else != nil {
			out.MergePatch(rule.Else)
		}
	}

	return out, nil
}
