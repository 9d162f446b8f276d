// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"errors"
	"fmt"
	"io"
	"os"

	"solvenv-cli/pkg/manifest"
)

// ErrMissingArtifact is the sentinel error wrapped by MissingArtifactError.
var ErrMissingArtifact = errors.New("missing build artifact")

type (
	// Config holds the inputs of one image build.
	Config struct {
		// Manifest describes the image to produce.
		Manifest *manifest.Manifest

		// LibraryDir is the resolved library source directory
		// (see the source package).
		LibraryDir string

		// ContextParent is where temporary build contexts are created.
		// Empty picks a visible directory under the user's home: Docker
		// installed via Snap cannot read /tmp or hidden directories.
		ContextParent string

		// ForceRebuild bypasses the image cache.
		ForceRebuild bool

		// TagPrefix is the repository part of generated image tags.
		// Default: "solvenv".
		TagPrefix string

		// TagSuffix is appended to generated tags. Tests set it so parallel
		// runs don't compete for the same tag.
		TagSuffix string

		// Output receives engine build progress. Default: os.Stderr.
		Output io.Writer
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)

	// MissingArtifactError is returned when an externally-supplied build
	// input (library source, solver directory, solver binary) is absent.
	MissingArtifactError struct {
		// Kind names the artifact category: "library source",
		// "solver directory", or "solver binary".
		Kind string
		// Path is the host path that was expected to exist.
		Path string
	}
)

// Error implements the error interface.
func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s not found at %s", e.Kind, e.Path)
}

// Unwrap returns ErrMissingArtifact so callers can use errors.Is.
func (e *MissingArtifactError) Unwrap() error { return ErrMissingArtifact }

// NewConfig builds a Config for the given manifest and resolved library dir.
func NewConfig(m *manifest.Manifest, libraryDir string, opts ...Option) *Config {
	cfg := &Config{
		Manifest:   m,
		LibraryDir: libraryDir,
		TagPrefix:  "solvenv",
		TagSuffix:  os.Getenv("SOLVENV_TAG_SUFFIX"),
		Output:     os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithForceRebuild bypasses the image cache.
func WithForceRebuild(force bool) Option {
	return func(c *Config) { c.ForceRebuild = force }
}

// WithContextParent sets the parent directory for build contexts.
func WithContextParent(dir string) Option {
	return func(c *Config) { c.ContextParent = dir }
}

// WithTagPrefix sets the repository part of generated image tags.
func WithTagPrefix(prefix string) Option {
	return func(c *Config) { c.TagPrefix = prefix }
}

// WithTagSuffix appends a suffix to generated image tags.
func WithTagSuffix(suffix string) Option {
	return func(c *Config) { c.TagSuffix = suffix }
}

// WithOutput directs engine build progress to w.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Output = w }
}
