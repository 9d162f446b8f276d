// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidSolverName is the sentinel error wrapped by InvalidSolverNameError.
var ErrInvalidSolverName = errors.New("invalid solver name")

// solverNamePattern matches executable names resolvable from PATH: no
// separators, no shell metacharacters.
var solverNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

type (
	// SolverName is the bare executable name of a solver (e.g. "scip",
	// "gurobi_cl"). It must be resolvable on the image's search path, so
	// path separators are rejected.
	SolverName string

	// InvalidSolverNameError is returned when a SolverName cannot be a bare
	// executable name.
	InvalidSolverNameError struct {
		Value SolverName
	}

	// SolverSpec describes one solver executable provisioned into the image.
	SolverSpec struct {
		// Name is the bare executable name, used both to locate the binary
		// and to invoke the version smoke check.
		Name SolverName `json:"name"`

		// Binary is the file name inside the manifest's SolverDir.
		// Defaults to Name.
		Binary string `json:"binary,omitempty"`

		// VersionArgs are the arguments of the version smoke check.
		// Defaults to ["--version"].
		VersionArgs []string `json:"versionArgs,omitempty"`

		// Required controls whether a missing binary fails the build.
		// Defaults to true. Proprietary solvers (Gurobi) are typically
		// marked optional so open-solver-only builds still succeed.
		Required *bool `json:"required,omitempty"`
	}
)

// String returns the string representation of the SolverName.
func (n SolverName) String() string { return string(n) }

// Validate returns an error if the SolverName is not a bare executable name.
func (n SolverName) Validate() error {
	if !solverNamePattern.MatchString(string(n)) {
		return &InvalidSolverNameError{Value: n}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidSolverNameError) Error() string {
	return fmt.Sprintf("invalid solver name %q: must be a bare executable name", e.Value)
}

// Unwrap returns ErrInvalidSolverName so callers can use errors.Is.
func (e *InvalidSolverNameError) Unwrap() error { return ErrInvalidSolverName }

// IsRequired reports whether a missing binary fails the build.
func (s *SolverSpec) IsRequired() bool {
	return s.Required == nil || *s.Required
}

// BinaryName returns the file name expected inside the solver directory.
func (s *SolverSpec) BinaryName() string {
	if s.Binary != "" {
		return s.Binary
	}
	return string(s.Name)
}

// VersionCommand returns the smoke-check command line for this solver.
func (s *SolverSpec) VersionCommand() []string {
	args := s.VersionArgs
	if len(args) == 0 {
		args = []string{"--version"}
	}
	return append([]string{string(s.Name)}, args...)
}

func (s *SolverSpec) applyDefaults() {
	if s.Binary == "" {
		s.Binary = string(s.Name)
	}
	if len(s.VersionArgs) == 0 {
		s.VersionArgs = []string{"--version"}
	}
}
