package vars

import (
	"context"
	"sort"
	"time"

	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/logger"
)

// LoadOptions configures a variable-map build for one pipeline run.
type LoadOptions struct {
	// AllowCommands permits dynamic (command-backed) variables. When
	// false they are skipped with a warning and absent from the result.
	AllowCommands bool

	// IncludeBuiltins seeds the map with the ambient builtin variables.
	IncludeBuiltins bool

	// Cwd anchors builtin inference and the upward search for the local
	// variable declarations file.
	Cwd string

	// VarsFileName overrides the well-known declarations file name.
	// Empty means DefaultVarsFileName.
	VarsFileName string

	// Clock supplies "now" for the date/time builtins. Nil means
	// time.Now; tests inject a fixed clock.
	Clock func() time.Time

	// Runner executes dynamic-variable commands. Nil constructs a shell
	// Executor from AllowCommands with the default timeout.
	Runner CommandRunner

	// Document supplies the document-declared variables tier. Optional.
	Document *doc.Document
}

// Load builds the merged variable map for a run.
//
// Precedence, highest to lowest: local declarations file (nearest
// ancestor wins) > document-declared variables > builtins. Caller
// overrides are a fourth, highest tier merged by the caller with Merge,
// so override semantics stay simple map-overwrite.
//
// Dynamic variables that cannot be evaluated — commands disabled, the
// command timed out or failed — are dropped from the map with a warning
// rather than failing the run. Substitution of their placeholders then
// follows the strict/non-strict rule of the substitution call.
func Load(ctx context.Context, opts LoadOptions) (map[string]string, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	runner := opts.Runner
	if runner == nil {
		runner = NewExecutor(ExecutorPolicy{
			AllowCommands: opts.AllowCommands,
			UseShell:      true,
			Dir:           opts.Cwd,
		})
	}

	result := make(map[string]string)

	if opts.IncludeBuiltins {
		for k, v := range Builtins(clock(), opts.Cwd) {
			result[k] = v
		}
	}

	if opts.Document != nil {
		for k, v := range opts.Document.Variables {
			result[k] = v
		}
	}

	path := FindVarsFile(opts.Cwd, opts.VarsFileName)
	if path == "" {
		return result, nil
	}
	defs, err := ParseVarsFile(path)
	if err != nil {
		return nil, err
	}
	logger.Logger.Debugw("loaded local variables file", "path", path, "entries", len(defs))

	// Deterministic evaluation order for stable warnings and logs.
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if !def.IsCommand() {
			result[name] = def.Static
			continue
		}
		if !opts.AllowCommands {
			logger.Logger.Warnw("skipping dynamic variable: command execution is disabled",
				"variable", name,
				"command", def.Command,
			)
			delete(result, name)
			continue
		}
		dyn := &Dynamic{Name: name, Command: def.Command, Cache: def.Cache}
		value, err := dyn.Evaluate(ctx, runner)
		if err != nil {
			if errors.IsCommandError(err) {
				logger.Logger.Warnw("skipping dynamic variable: command did not produce a value",
					"variable", name,
					"error", err,
				)
				delete(result, name)
				continue
			}
			return nil, errors.Wrapf(err, "failed to evaluate dynamic variable %s", name)
		}
		result[name] = value
	}

	return result, nil
}

// Merge overlays overrides onto base, returning base. The caller-
// supplied override tier always wins on key collision.
func Merge(base map[string]string, overrides map[string]string) map[string]string {
	for k, v := range overrides {
		base[k] = v
	}
	return base
}
