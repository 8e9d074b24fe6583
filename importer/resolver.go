// Package importer merges referenced documents into an importing
// document. Imports resolve depth-first in list order; each imported
// document has its own imports resolved before it is merged, so the
// accumulator only ever sees fully import-free content.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/logger"
)

// Parser turns a file into a Document. The default is doc.Load; tests
// and callers with other on-disk formats inject their own.
type Parser func(path string) (*doc.Document, error)

// Resolver resolves a document's imports. A Resolver tracks the chain
// of files currently being resolved so circular imports fail with a
// clear error instead of recursing forever.
type Resolver struct {
	parse      Parser
	inProgress []string
}

// NewResolver constructs a Resolver using doc.Load as the parser.
func NewResolver() *Resolver {
	return &Resolver{parse: doc.Load}
}

// NewResolverWithParser constructs a Resolver with a custom parser.
func NewResolverWithParser(parse Parser) *Resolver {
	return &Resolver{parse: parse}
}

// Resolve merges every import referenced by d, recursively, and returns
// a new document with imports cleared. Import paths resolve relative to
// baseDir. A missing or unparseable file is fatal.
func (r *Resolver) Resolve(d *doc.Document, baseDir string) (*doc.Document, error) {
	out := d.Clone()
	out.Imports = nil

	for _, ref := range d.Imports {
		path := ref.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrImportNotFound, "%s", ref.Path)
		}

		if idx := indexOf(r.inProgress, abs); idx >= 0 {
			chain := append(append([]string(nil), r.inProgress[idx:]...), abs)
			return nil, errors.Wrapf(errors.ErrCircularImport, "%s", strings.Join(chain, " -> "))
		}

		if _, err := os.Stat(abs); err != nil {
			return nil, errors.Wrapf(errors.ErrImportNotFound, "%s", abs)
		}

		imported, err := r.parse(abs)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrImportNotFound, "%s: %v", abs, err)
		}

		// Resolve the imported document's own imports first, relative
		// to its directory.
		r.inProgress = append(r.inProgress, abs)
		imported, err = r.Resolve(imported, filepath.Dir(abs))
		r.inProgress = r.inProgress[:len(r.inProgress)-1]
		if err != nil {
			return nil, err
		}

		logger.Logger.Debugw("merging import",
			"path", abs,
			"prefix", ref.Prefix,
		)
		merge(out, imported, ref.Prefix)
	}

	return out, nil
}

// merge folds an import-free document into the accumulator.
//
// Rules: instruction items append after the accumulator's items for the
// category, rewritten to "[prefix] <item>" when a prefix is set;
// examples are added under a prefixed name with the later merge winning
// on collision; variables are added only for keys the accumulator does
// not already hold (the importer's own declarations take precedence);
// metadata, context and targets stay the accumulator's.
func merge(base, imported *doc.Document, prefix string) {
	for cat, items := range imported.Instructions {
		if len(items) == 0 {
			continue
		}
		if base.Instructions == nil {
			base.Instructions = make(map[string][]string)
		}
		for _, item := range items {
			base.Instructions[cat] = append(base.Instructions[cat], prefixInstruction(item, prefix))
		}
	}

	for name, snippet := range imported.Examples {
		if base.Examples == nil {
			base.Examples = make(map[string]string)
		}
		base.Examples[prefixExample(name, prefix)] = snippet
	}

	// Note: variable substitution inside imported text still uses the
	// merged, unprefixed variable map; an imported document's own
	// variables are not namespaced. Known limitation, kept as-is.
	for name, value := range imported.Variables {
		if base.Variables == nil {
			base.Variables = make(map[string]string)
		}
		if _, exists := base.Variables[name]; !exists {
			base.Variables[name] = value
		}
	}
}

func prefixInstruction(item, prefix string) string {
	if prefix == "" {
		return item
	}
	return fmt.Sprintf("[%s] %s", prefix, item)
}

func prefixExample(name, prefix string) string {
	if prefix == "" {
		return name
	}
	return fmt.Sprintf("%s_%s", prefix, name)
}

func indexOf(haystack []string, needle string) int {
	for i, v := range haystack {
		if v == needle {
			return i
		}
	}
	return -1
}
