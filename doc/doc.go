// Package doc defines the universal prompt document model.
//
// A Document is the raw, unresolved input unit: categorized instruction
// lists, free-form project context, examples, variable declarations,
// import references and condition rules. The resolution pipeline
// (importer, cond, vars, resolve) consumes Documents and produces a
// fully resolved Document with imports merged, conditions applied and
// placeholders substituted. No pass mutates a Document in place; each
// returns a new value.
package doc

// Metadata carries document identification fields. Opaque to the
// pipeline except for Version, which is checked against semver when set.
type Metadata struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ImportRef references another document to merge into this one.
// Path is relative to the importing document's directory.
type ImportRef struct {
	Path string `yaml:"path"`
	// Prefix, when set, is prepended to every imported instruction as
	// "[prefix] <text>" and to imported example names as "prefix_<name>".
	Prefix string `yaml:"prefix,omitempty"`
}

// Patch is a partial instructions/examples mapping carried by a
// condition rule branch. Matched patches append to the base document's
// lists; they never replace them.
type Patch struct {
	Instructions map[string][]string `yaml:"instructions,omitempty"`
	Examples     map[string]string   `yaml:"examples,omitempty"`
}

// ConditionRule selects a Patch based on an expression evaluated
// against the resolved variable context.
type ConditionRule struct {
	If   string `yaml:"if"`
	Then *Patch `yaml:"then,omitempty"`
	Else *Patch `yaml:"else,omitempty"`
}

// Document is the input unit of the resolution pipeline. Any string
// leaf anywhere in the document is a placeholder-substitution target.
type Document struct {
	Metadata Metadata `yaml:"metadata,omitempty"`

	// Targets lists editor names this document is intended for.
	// Authoritative on the importing side; imported values are ignored.
	Targets []string `yaml:"targets,omitempty"`

	// Instructions maps open-ended category names ("general",
	// "testing", ...) to ordered instruction lists.
	Instructions map[string][]string `yaml:"instructions,omitempty"`

	// Context holds free-form project descriptors. Values may be
	// strings, lists or nested mappings; string leaves are substitution
	// targets, everything else passes through unchanged.
	Context map[string]any `yaml:"context,omitempty"`

	// Examples maps example names to snippet text.
	Examples map[string]string `yaml:"examples,omitempty"`

	// Variables holds the document's own static declarations. Lowest
	// user-supplied precedence tier (above builtins only).
	Variables map[string]string `yaml:"variables,omitempty"`

	Imports    []ImportRef     `yaml:"imports,omitempty"`
	Conditions []ConditionRule `yaml:"conditions,omitempty"`
}

// Clone returns a deep copy of the document. Passes operate on clones
// so the caller's Document is never mutated.
func (d *Document) Clone() *Document {
	out := &Document{
		Metadata: d.Metadata,
	}
	if d.Targets != nil {
		out.Targets = append([]string(nil), d.Targets...)
	}
	if d.Instructions != nil {
		out.Instructions = make(map[string][]string, len(d.Instructions))
		for cat, items := range d.Instructions {
			out.Instructions[cat] = append([]string(nil), items...)
		}
	}
	if d.Context != nil {
		out.Context = make(map[string]any, len(d.Context))
		for k, v := range d.Context {
			out.Context[k] = cloneValue(v)
		}
	}
	if d.Examples != nil {
		out.Examples = make(map[string]string, len(d.Examples))
		for k, v := range d.Examples {
			out.Examples[k] = v
		}
	}
	if d.Variables != nil {
		out.Variables = make(map[string]string, len(d.Variables))
		for k, v := range d.Variables {
			out.Variables[k] = v
		}
	}
	if d.Imports != nil {
		out.Imports = append([]ImportRef(nil), d.Imports...)
	}
	if d.Conditions != nil {
		out.Conditions = make([]ConditionRule, len(d.Conditions))
		for i, rule := range d.Conditions {
			out.Conditions[i] = ConditionRule{
				If:   rule.If,
				Then: rule.Then.clone(),
				Else: rule.Else.clone(),
			}
		}
	}
	return out
}

func (p *Patch) clone() *Patch {
	if p == nil {
		return nil
	}
	out := &Patch{}
	if p.Instructions != nil {
		out.Instructions = make(map[string][]string, len(p.Instructions))
		for cat, items := range p.Instructions {
			out.Instructions[cat] = append([]string(nil), items...)
		}
	}
	if p.Examples != nil {
		out.Examples = make(map[string]string, len(p.Examples))
		for k, v := range p.Examples {
			out.Examples[k] = v
		}
	}
	return out
}

// cloneValue deep-copies the YAML-shaped any values found in Context.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = cloneValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = cloneValue(inner)
		}
		return out
	default:
		return val
	}
}

// Resolved reports whether the document has been through the full
// pipeline: no outstanding imports or conditions. Renderers must only
// ever see resolved documents.
func (d *Document) Resolved() bool {
	return len(d.Imports) == 0 && len(d.Conditions) == 0
}
