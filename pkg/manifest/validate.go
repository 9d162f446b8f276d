// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
)

// ErrInvalidManifest is the sentinel error wrapped by ValidationError.
var ErrInvalidManifest = errors.New("invalid manifest")

// ValidationError reports a struct-level manifest constraint violation.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest field %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidManifest so callers can use errors.Is.
func (e *ValidationError) Unwrap() error { return ErrInvalidManifest }

// Validate enforces the constraints the CUE schema cannot express:
// library source exclusivity, solver name uniqueness, and non-empty
// solver lists. Call after ApplyDefaults.
func (m *Manifest) Validate() error {
	if m.Base.Image == "" {
		return &ValidationError{Field: "base.image", Reason: "must be set"}
	}

	if m.Library.Name == "" {
		return &ValidationError{Field: "library.name", Reason: "must be set"}
	}
	hasPath := m.Library.Path != ""
	hasRepo := m.Library.Repo != ""
	switch {
	case hasPath && hasRepo:
		return &ValidationError{Field: "library", Reason: "path and repo are mutually exclusive"}
	case !hasPath && !hasRepo:
		return &ValidationError{Field: "library", Reason: "one of path or repo must be set"}
	case hasRepo && m.Library.Ref == "":
		return &ValidationError{Field: "library.ref", Reason: "required when repo is set (unpinned sources are not reproducible)"}
	}

	if m.SolverDir == "" {
		return &ValidationError{Field: "solverDir", Reason: "must be set"}
	}
	if len(m.Solvers) == 0 {
		return &ValidationError{Field: "solvers", Reason: "at least one solver must be listed"}
	}

	seen := make(map[SolverName]int)
	for i, s := range m.Solvers {
		if err := s.Name.Validate(); err != nil {
			return &ValidationError{Field: fmt.Sprintf("solvers[%d].name", i), Reason: err.Error()}
		}
		if first, dup := seen[s.Name]; dup {
			return &ValidationError{
				Field:  fmt.Sprintf("solvers[%d].name", i),
				Reason: fmt.Sprintf("duplicate solver %q (same as solvers[%d])", s.Name, first),
			}
		}
		seen[s.Name] = i
	}

	for i, c := range m.Checks {
		if c.Name == "" {
			return &ValidationError{Field: fmt.Sprintf("checks[%d].name", i), Reason: "must be set"}
		}
		if len(c.Command) == 0 {
			return &ValidationError{Field: fmt.Sprintf("checks[%d].command", i), Reason: "must not be empty"}
		}
	}

	return nil
}
