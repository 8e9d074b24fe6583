package vars

import "context"

// Dynamic wraps a single command-backed variable definition. When Cache
// is set the command runs at most once per pipeline run; the cached
// value is scoped to this Dynamic instance, which the loader constructs
// fresh each run. Nothing is persisted across runs.
type Dynamic struct {
	Name    string
	Command string
	Cache   bool

	cached *string
}

// Evaluate resolves the variable's value through runner. Repeated calls
// on a caching variable return the first result without re-executing.
func (d *Dynamic) Evaluate(ctx context.Context, runner CommandRunner) (string, error) {
	if d.Cache && d.cached != nil {
		return *d.cached, nil
	}
	out, err := runner.Execute(ctx, d.Command)
	if err != nil {
		return "", err
	}
	if d.Cache {
		d.cached = &out
	}
	return out, nil
}
