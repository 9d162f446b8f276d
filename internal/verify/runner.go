// SPDX-License-Identifier: MPL-2.0

package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"solvenv-cli/internal/container"
)

// ErrVerificationFailed is the sentinel error wrapped by FailedError.
var ErrVerificationFailed = errors.New("image verification failed")

type (
	// FailedError is returned when one or more required checks fail.
	FailedError struct {
		Image  string
		Failed int
		Total  int
	}

	// Runner executes smoke checks against one image.
	Runner struct {
		engine   container.Engine
		image    string
		timeout  time.Duration
		failFast bool
	}

	// RunnerOption is a functional option for configuring a Runner.
	RunnerOption func(*Runner)
)

// Error implements the error interface.
func (e *FailedError) Error() string {
	return fmt.Sprintf("image %s failed verification: %d of %d checks failed", e.Image, e.Failed, e.Total)
}

// Unwrap returns ErrVerificationFailed so callers can use errors.Is.
func (e *FailedError) Unwrap() error { return ErrVerificationFailed }

// NewRunner creates a Runner for the given engine and image tag.
func NewRunner(engine container.Engine, image string, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:   engine,
		image:    image,
		timeout:  10 * time.Minute,
		failFast: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithTimeout bounds each individual check.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.timeout = d }
}

// WithFailFast controls whether the first required failure stops the run.
// When false all checks run and the report carries every failure.
func WithFailFast(failFast bool) RunnerOption {
	return func(r *Runner) { r.failFast = failFast }
}

// Run executes the checks in order and returns the report. The returned
// error is non-nil when any required check failed; the report is always
// populated for the checks that ran.
func (r *Runner) Run(ctx context.Context, checks []Check) (*Report, error) {
	report := &Report{Image: r.image}

	for _, check := range checks {
		result := r.runCheck(ctx, check)
		report.Results = append(report.Results, result)

		if !result.Passed && !check.Optional && r.failFast {
			break
		}
	}

	if failed := report.FailedCount(); failed > 0 {
		return report, &FailedError{Image: r.image, Failed: failed, Total: len(report.Results)}
	}
	return report, nil
}

func (r *Runner) runCheck(ctx context.Context, check Check) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var output bytes.Buffer
	start := time.Now()

	runResult, err := r.engine.Run(checkCtx, container.RunOptions{
		Image:   r.image,
		Command: check.Command,
		Remove:  true,
		Stdout:  &output,
		Stderr:  &output,
	})

	result := CheckResult{
		Check:    check,
		Duration: time.Since(start),
		Output:   output.String(),
	}

	switch {
	case err != nil:
		result.Err = err
	case runResult.ExitCode != 0:
		result.ExitCode = runResult.ExitCode
		result.Err = fmt.Errorf("exit code %d", runResult.ExitCode)
	default:
		result.Passed = true
	}

	return result
}
