// SPDX-License-Identifier: MPL-2.0

package container

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// EngineType identifies the container engine type.
type EngineType string

const (
	EngineTypeDocker EngineType = "docker"
	EngineTypePodman EngineType = "podman"
)

// ErrNoEngineAvailable is the sentinel error wrapped by EngineNotAvailableError.
var ErrNoEngineAvailable = errors.New("no container engine available")

type (
	// Engine defines the interface for container operations.
	Engine interface {
		// Name returns the engine name (docker or podman).
		Name() string
		// Available checks if the engine is usable on this system.
		Available() bool
		// Version returns the engine version.
		Version(ctx context.Context) (string, error)

		// Build builds an image from a Dockerfile.
		Build(ctx context.Context, opts BuildOptions) error
		// Run runs a command in a container.
		Run(ctx context.Context, opts RunOptions) (*RunResult, error)
		// ImageExists checks if an image is present locally.
		ImageExists(ctx context.Context, image string) (bool, error)
		// RemoveImage removes an image.
		RemoveImage(ctx context.Context, image string, force bool) error
	}

	// BuildOptions contains options for building an image.
	BuildOptions struct {
		// ContextDir is the build context directory.
		ContextDir string
		// Dockerfile is the path to the Dockerfile, relative to ContextDir.
		Dockerfile string
		// Tag is the image tag.
		Tag string
		// BuildArgs are build-time variables.
		BuildArgs map[string]string
		// NoCache disables the engine's layer cache.
		NoCache bool
		// Stdout receives build progress output.
		Stdout io.Writer
		// Stderr receives build error output.
		Stderr io.Writer
	}

	// RunOptions contains options for running a container.
	RunOptions struct {
		// Image is the image to run.
		Image string
		// Command is the command to run; empty uses the image default.
		Command []string
		// WorkDir is the working directory inside the container.
		WorkDir string
		// Env contains environment variables.
		Env map[string]string
		// Volumes are mounts in "host:container" format.
		Volumes []string
		// Remove removes the container after exit.
		Remove bool
		// Name is the container name.
		Name string
		// Stdin is the standard input.
		Stdin io.Reader
		// Stdout receives standard output.
		Stdout io.Writer
		// Stderr receives standard error.
		Stderr io.Writer
		// Interactive keeps stdin open.
		Interactive bool
		// TTY allocates a pseudo-TTY.
		TTY bool
	}

	// RunResult contains the result of running a container.
	RunResult struct {
		// ExitCode is the process exit code.
		ExitCode int
		// Error is set when the run failed before producing an exit code.
		Error error
	}

	// EngineNotAvailableError is returned when a container engine cannot be used.
	EngineNotAvailableError struct {
		Engine string
		Reason string
	}
)

// Error implements the error interface.
func (e *EngineNotAvailableError) Error() string {
	return fmt.Sprintf("container engine '%s' is not available: %s", e.Engine, e.Reason)
}

// Unwrap returns ErrNoEngineAvailable so callers can use errors.Is.
func (e *EngineNotAvailableError) Unwrap() error { return ErrNoEngineAvailable }

// NewEngine creates a container engine based on preference, falling back to
// the other engine when the preferred one is unavailable.
func NewEngine(preferredType EngineType) (Engine, error) {
	switch preferredType {
	case EngineTypeDocker:
		engine := NewDockerEngine()
		if engine.Available() {
			return engine, nil
		}
		podman := NewPodmanEngine()
		if podman.Available() {
			return podman, nil
		}
		return nil, &EngineNotAvailableError{
			Engine: string(EngineTypeDocker),
			Reason: "docker is not installed or not accessible, and podman fallback is also not available",
		}

	case EngineTypePodman:
		engine := NewPodmanEngine()
		if engine.Available() {
			return engine, nil
		}
		docker := NewDockerEngine()
		if docker.Available() {
			return docker, nil
		}
		return nil, &EngineNotAvailableError{
			Engine: string(EngineTypePodman),
			Reason: "podman is not installed or not accessible, and docker fallback is also not available",
		}

	default:
		return nil, fmt.Errorf("unknown container engine type: %s", preferredType)
	}
}

// AutoDetectEngine finds an available container engine, trying Docker first.
func AutoDetectEngine() (Engine, error) {
	docker := NewDockerEngine()
	if docker.Available() {
		return docker, nil
	}

	podman := NewPodmanEngine()
	if podman.Available() {
		return podman, nil
	}

	return nil, &EngineNotAvailableError{
		Engine: "any",
		Reason: "neither docker nor podman is available on this system",
	}
}
