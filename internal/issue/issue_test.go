// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file or directory")
	err := NewErrorContext().
		WithOperation("provision solvers").
		WithResource("/work/solvers").
		Wrap(cause).
		Build()

	want := "failed to provision solvers: /work/solvers: no such file or directory"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("ActionableError should unwrap to its cause")
	}
}

func TestActionableError_Verbose(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("build image").
		WithSuggestion("Check that the container engine daemon is running").
		WithSuggestion("Run with --verbose for the full build log").
		Build()

	v := err.Verbose()
	if !strings.Contains(v, "hint: Check that the container engine daemon is running") {
		t.Errorf("Verbose() missing first suggestion: %q", v)
	}
	if strings.Count(v, "hint:") != 2 {
		t.Errorf("Verbose() should contain two hints: %q", v)
	}
}

func TestActionableError_NoResourceNoCause(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().WithOperation("verify image").Build()
	if err.Error() != "failed to verify image" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}
