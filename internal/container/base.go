// SPDX-License-Identifier: MPL-2.0

package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// Tests inject a mock implementation to record arguments and fake
	// exit codes without a container daemon.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// BaseCLIEngineOption configures a BaseCLIEngine.
	BaseCLIEngineOption func(*BaseCLIEngine)

	// BaseCLIEngine provides the shared implementation for CLI-based
	// container engines. Docker and Podman engines embed this struct;
	// Build, Run, and RemoveImage are identical across both and live here,
	// while Available, Version, and ImageExists stay on the concrete types.
	BaseCLIEngine struct {
		name        string
		binaryPath  string
		execCommand ExecCommandFunc
	}

	// BuildFailedError is returned when an image build exits non-zero.
	BuildFailedError struct {
		Engine string
		Tag    string
		Cause  error
	}
)

// ErrBuildFailed is the sentinel error wrapped by BuildFailedError.
var ErrBuildFailed = errors.New("image build failed")

// Error implements the error interface.
func (e *BuildFailedError) Error() string {
	return fmt.Sprintf("%s build of %q failed: %v", e.Engine, e.Tag, e.Cause)
}

// Unwrap returns ErrBuildFailed so callers can use errors.Is.
func (e *BuildFailedError) Unwrap() error { return ErrBuildFailed }

// WithName sets the engine name used in error messages.
func WithName(name string) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.name = name }
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) BaseCLIEngineOption {
	return func(e *BaseCLIEngine) { e.execCommand = fn }
}

// NewBaseCLIEngine creates a new base engine with the given binary path.
func NewBaseCLIEngine(binaryPath string, opts ...BaseCLIEngineOption) *BaseCLIEngine {
	e := &BaseCLIEngine{
		binaryPath:  binaryPath,
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BinaryPath returns the path to the container engine binary.
func (e *BaseCLIEngine) BinaryPath() string {
	return e.binaryPath
}

// --- Argument builders ---

// BuildArgs constructs arguments for a build command.
//
// Generated command: <binary> build [options] <context>
func (e *BaseCLIEngine) BuildArgs(opts BuildOptions) []string {
	args := []string{"build"}

	if opts.Dockerfile != "" {
		// Resolve the Dockerfile relative to the context directory.
		dockerfilePath := opts.Dockerfile
		if !filepath.IsAbs(dockerfilePath) && opts.ContextDir != "" {
			dockerfilePath = filepath.Join(opts.ContextDir, dockerfilePath)
		}
		args = append(args, "-f", dockerfilePath)
	}

	if opts.Tag != "" {
		args = append(args, "-t", opts.Tag)
	}

	if opts.NoCache {
		args = append(args, "--no-cache")
	}

	// Sorted for deterministic argument order.
	keys := make([]string, 0, len(opts.BuildArgs))
	for k := range opts.BuildArgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, opts.BuildArgs[k]))
	}

	args = append(args, opts.ContextDir)

	return args
}

// RunArgs constructs arguments for a run command.
//
// Generated command: <binary> run [options] <image> [command...]
func (e *BaseCLIEngine) RunArgs(opts RunOptions) []string {
	args := []string{"run"}

	if opts.Remove {
		args = append(args, "--rm")
	}
	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}
	if opts.WorkDir != "" {
		args = append(args, "-w", opts.WorkDir)
	}
	if opts.Interactive {
		args = append(args, "-i")
	}
	if opts.TTY {
		args = append(args, "-t")
	}

	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", fmt.Sprintf("%s=%s", k, opts.Env[k]))
	}

	for _, v := range opts.Volumes {
		args = append(args, "-v", v)
	}

	args = append(args, opts.Image)
	args = append(args, opts.Command...)

	return args
}

// RemoveImageArgs constructs arguments for an image remove command.
func (e *BaseCLIEngine) RemoveImageArgs(image string, force bool) []string {
	args := []string{"rmi"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, image)
	return args
}

// --- Command execution ---

// RunCommandStatus executes a command and returns only the error status.
func (e *BaseCLIEngine) RunCommandStatus(ctx context.Context, args ...string) error {
	cmd := e.CreateCommand(ctx, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}
	return nil
}

// RunCommandWithOutput executes a command with stdout captured to a buffer.
func (e *BaseCLIEngine) RunCommandWithOutput(ctx context.Context, args ...string) (string, error) {
	cmd := e.CreateCommand(ctx, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command %s %v failed: %w", e.binaryPath, args, err)
	}

	return out.String(), nil
}

// CreateCommand creates an exec.Cmd for the given arguments. Callers
// customize stdin/stdout/stderr on the returned command.
func (e *BaseCLIEngine) CreateCommand(ctx context.Context, args ...string) *exec.Cmd {
	return e.execCommand(ctx, e.binaryPath, args...)
}

// --- Promoted engine methods (shared by Docker and Podman) ---

// Build builds an image from a Dockerfile.
func (e *BaseCLIEngine) Build(ctx context.Context, opts BuildOptions) error {
	args := e.BuildArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		return &BuildFailedError{Engine: e.name, Tag: opts.Tag, Cause: err}
	}

	return nil
}

// Run runs a command in a container. A non-zero container exit code is
// reported through RunResult.ExitCode, not as an error: smoke checks need
// the code, and the caller decides what failure means.
func (e *BaseCLIEngine) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	args := e.RunArgs(opts)

	cmd := e.CreateCommand(ctx, args...)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	err := cmd.Run()

	result := &RunResult{}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			result.Error = err
		}
	}

	return result, nil
}

// RemoveImage removes an image.
func (e *BaseCLIEngine) RemoveImage(ctx context.Context, image string, force bool) error {
	return e.RunCommandStatus(ctx, e.RemoveImageArgs(image, force)...)
}
