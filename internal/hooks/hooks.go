// SPDX-License-Identifier: MPL-2.0

package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrHookFailed is the sentinel error wrapped by HookError.
var ErrHookFailed = errors.New("hook failed")

type (
	// HookError is returned when a hook script fails to parse or exits
	// non-zero.
	HookError struct {
		// Name identifies the hook ("pre_build", "post_verify").
		Name string
		// ExitCode is the script's exit status, when it ran.
		ExitCode int
		// Cause is the underlying failure.
		Cause error
	}

	// Executor runs hook scripts in an embedded shell.
	Executor struct {
		// Dir is the working directory of the scripts. Empty uses the
		// process working directory.
		Dir string

		// Env is merged over the host environment for each script.
		Env map[string]string

		// Stdout and Stderr receive script output. Nil discards it.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Error implements the error interface.
func (e *HookError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("hook %s exited with code %d", e.Name, e.ExitCode)
	}
	return fmt.Sprintf("hook %s failed: %v", e.Name, e.Cause)
}

// Unwrap returns ErrHookFailed so callers can use errors.Is.
func (e *HookError) Unwrap() error { return ErrHookFailed }

// Run parses and executes the named hook script. An empty script is a no-op.
func (x *Executor) Run(ctx context.Context, name, script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return &HookError{Name: name, Cause: fmt.Errorf("syntax error: %w", err)}
	}

	stdout := x.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := x.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	runner, err := interp.New(
		interp.Dir(x.Dir),
		interp.Env(expand.ListEnviron(x.environ()...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return &HookError{Name: name, Cause: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &HookError{Name: name, ExitCode: int(exitStatus), Cause: err}
		}
		return &HookError{Name: name, Cause: err}
	}

	return nil
}

// environ returns the host environment with x.Env merged on top, in
// deterministic order.
func (x *Executor) environ() []string {
	env := os.Environ()
	keys := make([]string, 0, len(x.Env))
	for k := range x.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+x.Env[k])
	}
	return env
}
