package vars

import (
	"bytes"
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/uniprompt/errors"
)

// DefaultCommandTimeout bounds dynamic-variable commands that do not
// set their own timeout.
const DefaultCommandTimeout = 5 * time.Second

// CommandRunner executes a single external command and returns its
// trimmed standard output. The pipeline holds exactly one implementation
// that spawns subprocesses (Executor); tests inject fakes.
type CommandRunner interface {
	Execute(ctx context.Context, command string) (string, error)
}

// ExecutorPolicy configures an Executor. Command execution is a
// side-effecting capability, so the policy travels with the executor
// instead of living in global flags.
type ExecutorPolicy struct {
	// AllowCommands gates all execution. When false, Execute fails
	// before spawning anything.
	AllowCommands bool

	// Timeout bounds each command. Zero means DefaultCommandTimeout.
	Timeout time.Duration

	// UseShell runs the command through the platform shell (sh -c /
	// cmd /C), which is what dynamic variable definitions expect. When
	// false the command is split into argv with shell quoting rules and
	// executed directly.
	UseShell bool

	// Dir is the working directory for spawned commands. Empty means
	// the process working directory.
	Dir string
}

// Executor is the sole place in the pipeline where a subprocess may be
// spawned. It performs no caching; caching is the dynamic variable's
// responsibility.
type Executor struct {
	policy ExecutorPolicy
}

// NewExecutor constructs an Executor with the given policy.
func NewExecutor(policy ExecutorPolicy) *Executor {
	if policy.Timeout <= 0 {
		policy.Timeout = DefaultCommandTimeout
	}
	return &Executor{policy: policy}
}

// Execute runs command under the executor's policy and returns its
// standard output with trailing whitespace trimmed.
func (e *Executor) Execute(ctx context.Context, command string) (string, error) {
	if !e.policy.AllowCommands {
		return "", errors.Wrapf(errors.ErrCommandDisabled, "refusing to run %q", command)
	}

	ctx, cancel := context.WithTimeout(ctx, e.policy.Timeout)
	defer cancel()

	cmd, err := e.buildCommand(ctx, command)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Dir = e.policy.Dir

	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", errors.Wrapf(errors.ErrCommandTimeout, "%q after %s", command, e.policy.Timeout)
	}
	if runErr != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = runErr.Error()
		}
		return "", errors.Wrapf(errors.ErrCommandFailed, "%q: %s", command, detail)
	}

	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

func (e *Executor) buildCommand(ctx context.Context, command string) (*exec.Cmd, error) {
	if e.policy.UseShell {
		if runtime.GOOS == "windows" {
			return exec.CommandContext(ctx, "cmd", "/C", command), nil
		}
		return exec.CommandContext(ctx, "sh", "-c", command), nil
	}

	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCommandFailed, "%q: %s", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.Wrapf(errors.ErrCommandFailed, "%q: empty command", command)
	}
	return exec.CommandContext(ctx, argv[0], argv[1:]...), nil
}
