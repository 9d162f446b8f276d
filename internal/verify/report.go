// SPDX-License-Identifier: MPL-2.0

package verify

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type (
	// Report holds the outcome of a verification run.
	Report struct {
		// Image is the tag of the image under test.
		Image string

		// Results are the per-check outcomes, in execution order.
		Results []CheckResult
	}

	// CheckResult is the outcome of one smoke check.
	CheckResult struct {
		Check    Check
		Passed   bool
		ExitCode int
		Output   string
		Duration time.Duration
		Err      error
	}
)

// Passed reports whether every required check passed.
func (r *Report) Passed() bool {
	return r.FailedCount() == 0
}

// FailedCount returns the number of failed required checks. Optional check
// failures don't count.
func (r *Report) FailedCount() int {
	failed := 0
	for _, result := range r.Results {
		if !result.Passed && !result.Check.Optional {
			failed++
		}
	}
	return failed
}

// Render returns a human-readable summary of the report.
func (r *Report) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Verification of %s\n", r.Image)
	for _, result := range r.Results {
		sb.WriteString("  ")
		sb.WriteString(result.render())
		sb.WriteString("\n")
	}

	if r.Passed() {
		sb.WriteString(passStyle.Render(fmt.Sprintf("All %d checks passed", len(r.Results))))
	} else {
		sb.WriteString(failStyle.Render(fmt.Sprintf("%d of %d checks failed", r.FailedCount(), len(r.Results))))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (result *CheckResult) render() string {
	elapsed := dimStyle.Render(fmt.Sprintf("(%s)", result.Duration.Round(time.Millisecond)))

	switch {
	case result.Passed:
		return fmt.Sprintf("%s %s %s", passStyle.Render("✓"), result.Check.Name, elapsed)
	case result.Check.Optional:
		return fmt.Sprintf("%s %s %s %s", skipStyle.Render("~"), result.Check.Name,
			dimStyle.Render("(optional, failed)"), elapsed)
	default:
		return fmt.Sprintf("%s %s: %v %s", failStyle.Render("✗"), result.Check.Name, result.Err, elapsed)
	}
}
