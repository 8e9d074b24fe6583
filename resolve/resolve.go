// Package resolve sequences the resolution pipeline: import merging,
// variable loading, conditional evaluation, placeholder substitution.
// The order is load-bearing: conditions must see final variable values
// (including caller overrides) to branch correctly, and substitution
// runs last so text injected by import and conditional merging is
// itself eligible for placeholder replacement.
package resolve

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/uniprompt/cond"
	"github.com/teranos/uniprompt/doc"
	"github.com/teranos/uniprompt/errors"
	"github.com/teranos/uniprompt/importer"
	"github.com/teranos/uniprompt/logger"
	"github.com/teranos/uniprompt/vars"
)

// Options configures one resolution run. Each run constructs fresh
// variable maps and executor instances; nothing is shared across runs.
type Options struct {
	// AllowCommands permits dynamic-variable command execution.
	AllowCommands bool

	// CommandTimeout bounds each dynamic-variable command. Zero means
	// vars.DefaultCommandTimeout.
	CommandTimeout time.Duration

	// IncludeBuiltins seeds the variable context with the ambient
	// builtin variables. On by default in the CLI.
	IncludeBuiltins bool

	// Strict makes an undefined placeholder fatal during substitution.
	Strict bool

	// EnvVariables additionally substitutes ${NAME} tokens from the
	// process environment.
	EnvVariables bool

	// VarsFileName overrides the well-known local declarations file
	// name. Empty means vars.DefaultVarsFileName.
	VarsFileName string

	// Clock supplies "now" for builtin variables. Nil means time.Now.
	Clock func() time.Time

	// Runner executes dynamic-variable commands. Nil constructs a shell
	// executor from AllowCommands and CommandTimeout.
	Runner vars.CommandRunner
}

// Resolve runs the full pipeline over rawDoc and returns a document
// with no unresolved imports, no conditional blocks, and placeholders
// replaced wherever a value was available. baseDir anchors import paths
// and the local variables file search; editorName is exposed to
// conditions and placeholders as EDITOR; overrides are the
// highest-precedence variable tier.
func Resolve(ctx context.Context, rawDoc *doc.Document, baseDir, editorName string, overrides map[string]string, opts Options) (*doc.Document, error) {
	runID := uuid.NewString()[:8]
	log := logger.Logger.With("run", runID)

	// Pass 1: import merging.
	merged, err := importer.NewResolver().Resolve(rawDoc, baseDir)
	if err != nil {
		return nil, err
	}
	log.Debugw("imports merged",
		"categories", len(merged.Instructions),
		"examples", len(merged.Examples),
	)

	// Pass 2: variable context. Dynamic variables evaluate here, at
	// most once per run each when caching is on.
	runner := opts.Runner
	if runner == nil {
		runner = vars.NewExecutor(vars.ExecutorPolicy{
			AllowCommands: opts.AllowCommands,
			Timeout:       opts.CommandTimeout,
			UseShell:      true,
			Dir:           baseDir,
		})
	}
	variables, err := vars.Load(ctx, vars.LoadOptions{
		AllowCommands:   opts.AllowCommands,
		IncludeBuiltins: opts.IncludeBuiltins,
		Cwd:             baseDir,
		VarsFileName:    opts.VarsFileName,
		Clock:           opts.Clock,
		Runner:          runner,
		Document:        merged,
	})
	if err != nil {
		return nil, err
	}
	if editorName != "" {
		variables["EDITOR"] = editorName
	}
	vars.Merge(variables, overrides)
	log.Debugw("variable context built", "count", len(variables))

	// Pass 3: conditional evaluation against the final variable values.
	conditioned, err := cond.Apply(merged, variables)
	if err != nil {
		return nil, err
	}

	// Pass 4: substitution over everything, including text injected by
	// passes 1 and 3.
	resolved, err := vars.SubstituteDocument(conditioned, variables, vars.SubstituteOptions{
		Strict:       opts.Strict,
		EnvVariables: opts.EnvVariables,
	})
	if err != nil {
		return nil, err
	}

	if !resolved.Resolved() {
		return nil, errors.New("internal: document left with unresolved imports or conditions")
	}
	log.Infow("document resolved",
		"editor", editorName,
		"categories", len(resolved.Instructions),
	)
	return resolved, nil
}

// Variables builds and returns the merged variable context for a
// document without running the rest of the pipeline. Used by the CLI's
// vars command for debugging precedence.
func Variables(ctx context.Context, d *doc.Document, baseDir, editorName string, overrides map[string]string, opts Options) (map[string]string, error) {
	variables, err := vars.Load(ctx, vars.LoadOptions{
		AllowCommands:   opts.AllowCommands,
		IncludeBuiltins: opts.IncludeBuiltins,
		Cwd:             baseDir,
		VarsFileName:    opts.VarsFileName,
		Clock:           opts.Clock,
		Runner:          opts.Runner,
		Document:        d,
	})
	if err != nil {
		return nil, err
	}
	if editorName != "" {
		variables["EDITOR"] = editorName
	}
	return vars.Merge(variables, overrides), nil
}
