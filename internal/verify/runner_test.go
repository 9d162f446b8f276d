// SPDX-License-Identifier: MPL-2.0

package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"solvenv-cli/internal/container"
)

// scriptedEngine returns a scripted exit code per command head and records
// the commands it ran.
type scriptedEngine struct {
	exitCodes map[string]int
	ran       [][]string
}

func newScriptedEngine(exitCodes map[string]int) *scriptedEngine {
	return &scriptedEngine{exitCodes: exitCodes}
}

func (s *scriptedEngine) Name() string                                { return "scripted" }
func (s *scriptedEngine) Available() bool                             { return true }
func (s *scriptedEngine) Version(ctx context.Context) (string, error) { return "0.0.0", nil }

func (s *scriptedEngine) Build(ctx context.Context, opts container.BuildOptions) error {
	return errors.New("not used")
}

func (s *scriptedEngine) ImageExists(ctx context.Context, image string) (bool, error) {
	return true, nil
}

func (s *scriptedEngine) RemoveImage(ctx context.Context, image string, force bool) error {
	return nil
}

func (s *scriptedEngine) Run(ctx context.Context, opts container.RunOptions) (*container.RunResult, error) {
	s.ran = append(s.ran, opts.Command)
	if !opts.Remove {
		return nil, errors.New("check containers must be removed after exit")
	}
	return &container.RunResult{ExitCode: s.exitCodes[opts.Command[0]]}, nil
}

func TestRunAllChecksPass(t *testing.T) {
	t.Parallel()

	engine := newScriptedEngine(nil)
	runner := NewRunner(engine, "solvenv:abc")

	checks := []Check{
		{Name: "scip version", Command: []string{"scip", "--version"}},
		{Name: "import", Command: []string{"python", "-c", "import pycity_scheduling"}},
	}

	report, err := runner.Run(context.Background(), checks)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.Passed() {
		t.Error("report should pass when every check exits zero")
	}
	if len(engine.ran) != 2 {
		t.Errorf("expected 2 container runs, got %d", len(engine.ran))
	}
}

func TestRunFailFastStopsAtFirstRequiredFailure(t *testing.T) {
	t.Parallel()

	engine := newScriptedEngine(map[string]int{"scip": 127})
	runner := NewRunner(engine, "solvenv:abc")

	checks := []Check{
		{Name: "scip version", Command: []string{"scip", "--version"}},
		{Name: "import", Command: []string{"python", "-c", "import pycity_scheduling"}},
	}

	report, err := runner.Run(context.Background(), checks)
	if !errors.Is(err, ErrVerificationFailed) {
		t.Fatalf("error should wrap ErrVerificationFailed, got %v", err)
	}
	if len(engine.ran) != 1 {
		t.Errorf("fail-fast should stop after the first failure, ran %d checks", len(engine.ran))
	}
	if report.Passed() {
		t.Error("report should not pass")
	}

	var failed *FailedError
	if !errors.As(err, &failed) || failed.Failed != 1 {
		t.Errorf("expected FailedError with 1 failure, got %v", err)
	}
}

func TestRunWithoutFailFastRunsEverything(t *testing.T) {
	t.Parallel()

	engine := newScriptedEngine(map[string]int{"scip": 1, "python": 1})
	runner := NewRunner(engine, "solvenv:abc", WithFailFast(false))

	checks := []Check{
		{Name: "scip version", Command: []string{"scip", "--version"}},
		{Name: "import", Command: []string{"python", "-c", "import x"}},
	}

	_, err := runner.Run(context.Background(), checks)
	var failed *FailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected FailedError, got %v", err)
	}
	if failed.Failed != 2 {
		t.Errorf("expected 2 failures, got %d", failed.Failed)
	}
	if len(engine.ran) != 2 {
		t.Errorf("all checks should run when fail-fast is off, ran %d", len(engine.ran))
	}
}

func TestRunOptionalFailureDoesNotFailReport(t *testing.T) {
	t.Parallel()

	engine := newScriptedEngine(map[string]int{"gurobi_cl": 127})
	runner := NewRunner(engine, "solvenv:abc")

	checks := []Check{
		{Name: "gurobi_cl version", Command: []string{"gurobi_cl", "--version"}, Optional: true},
		{Name: "scip version", Command: []string{"scip", "--version"}},
	}

	report, err := runner.Run(context.Background(), checks)
	if err != nil {
		t.Fatalf("Run() error = %v, optional failures should not fail the run", err)
	}
	if !report.Passed() {
		t.Error("optional failure should not fail the report")
	}
	if len(engine.ran) != 2 {
		t.Errorf("optional failure should not stop the run, ran %d checks", len(engine.ran))
	}
}

func TestReportRender(t *testing.T) {
	t.Parallel()

	engine := newScriptedEngine(map[string]int{"gurobi_cl": 127})
	runner := NewRunner(engine, "solvenv:abc")

	report, err := runner.Run(context.Background(), []Check{
		{Name: "scip version", Command: []string{"scip", "--version"}},
		{Name: "gurobi_cl version", Command: []string{"gurobi_cl", "--version"}, Optional: true},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	rendered := report.Render()
	if !strings.Contains(rendered, "solvenv:abc") {
		t.Error("rendered report should name the image")
	}
	if !strings.Contains(rendered, "scip version") {
		t.Error("rendered report should list each check")
	}
	if !strings.Contains(rendered, "optional, failed") {
		t.Error("rendered report should mark the optional failure")
	}
	if !strings.Contains(rendered, "All 2 checks passed") {
		t.Errorf("rendered report should summarize the pass, got:\n%s", rendered)
	}
}
