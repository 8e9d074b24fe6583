package vars

import (
	"os"
	"regexp"

	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/errors"
)

// Placeholder tokens are exactly "{{{ NAME }}}" with a single space of
// padding on each side. Interior padding beyond that makes a different,
// unmatched token; this exact-match contract is intentional and
// relaxing it would be a behavior change.
var (
	placeholderPattern = regexp.MustCompile(`\{\{\{ ([A-Za-z_][A-Za-z0-9_]*) \}\}\}`)
	envPattern         = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
)

// SubstituteOptions configures placeholder substitution.
type SubstituteOptions struct {
	// Strict makes an undefined placeholder fatal instead of leaving
	// the token in place.
	Strict bool

	// EnvVariables additionally substitutes ${NAME} tokens from the
	// process environment. Unset environment variables are left in
	// place regardless of Strict.
	EnvVariables bool
}

// Substitute replaces every "{{{ NAME }}}" token in text with the
// variable's value. A substituted value is not re-scanned for further
// placeholders; single-pass resolution is part of the contract and
// guards against infinite expansion.
//
// When NAME has no value: strict mode fails with the variable named,
// non-strict mode leaves the token unchanged.
func Substitute(text string, variables map[string]string, opts SubstituteOptions) (string, error) {
	var undefined string
	out := placeholderPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[4 : len(token)-4]
		if value, ok := variables[name]; ok {
			return value
		}
		if opts.Strict && undefined == "" {
			undefined = name
		}
		return token
	})
	if undefined != "" {
		return "", errors.Wrapf(errors.ErrUndefinedVariable, "%s", undefined)
	}

	if opts.EnvVariables {
		out = envPattern.ReplaceAllStringFunc(out, func(token string) string {
			name := token[2 : len(token)-1]
			if value, ok := os.LookupEnv(name); ok {
				return value
			}
			return token
		})
	}

	return out, nil
}

// SubstituteStructure applies Substitute to every string found while
// walking mappings and ordered lists recursively. Structure and
// non-string leaves (numbers, booleans, nil) pass through unchanged.
func SubstituteStructure(value any, variables map[string]string, opts SubstituteOptions) (any, error) {
	switch v := value.(type) {
	case string:
		return Substitute(v, variables, opts)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			sub, err := SubstituteStructure(inner, variables, opts)
			if err != nil {
				return nil, err
			}
			out[key] = sub
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			sub, err := SubstituteStructure(inner, variables, opts)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case []string:
		out := make([]string, len(v))
		for i, inner := range v {
			sub, err := Substitute(inner, variables, opts)
			if err != nil {
				return nil, err
			}
			out[i] = sub
		}
		return out, nil
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, inner := range v {
			sub, err := Substitute(inner, variables, opts)
			if err != nil {
				return nil, err
			}
			out[key] = sub
		}
		return out, nil
	default:
		return value, nil
	}
}

// SubstituteDocument walks every string leaf of the document and
// substitutes placeholders, returning a new Document. Substitution is
// total over the tree: metadata, targets, instructions, context,
// examples and variable values are all scanned.
func SubstituteDocument(d *doc.Document, variables map[string]string, opts SubstituteOptions) (*doc.Document, error) {
	out := d.Clone()

	var err error
	sub := func(s string) string {
		if err != nil {
			return s
		}
		var replaced string
		replaced, err = Substitute(s, variables, opts)
		if err != nil {
			return s
		}
		return replaced
	}

	out.Metadata.Title = sub(out.Metadata.Title)
	out.Metadata.Description = sub(out.Metadata.Description)
	out.Metadata.Version = sub(out.Metadata.Version)
	out.Metadata.Author = sub(out.Metadata.Author)
	for i, target := range out.Targets {
		out.Targets[i] = sub(target)
	}
	for cat, items := range out.Instructions {
		for i, item := range items {
			items[i] = sub(item)
		}
		out.Instructions[cat] = items
	}
	for name, snippet := range out.Examples {
		out.Examples[name] = sub(snippet)
	}
	for name, value := range out.Variables {
		out.Variables[name] = sub(value)
	}
	if err != nil {
		return nil, err
	}

	for key, value := range out.Context {
		replaced, serr := SubstituteStructure(value, variables, opts)
		if serr != nil {
			return nil, serr
		}
		out.Context[key] = replaced
	}

	return out, nil
}

// UndefinedPlaceholders returns the names referenced by "{{{ NAME }}}"
// tokens in text that have no value in variables. Used by the CLI to
// report leftover placeholders without failing a non-strict run.
func UndefinedPlaceholders(text string, variables map[string]string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if _, ok := variables[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}
	return missing
}
