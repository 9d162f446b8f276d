// SPDX-License-Identifier: MPL-2.0

package verify

import (
	"fmt"
	"path"

	"solvenv-cli/pkg/manifest"
)

// Check is one smoke command executed inside the image under test.
type Check struct {
	// Name identifies the check in the report.
	Name string

	// Command is the command line executed in a throwaway container.
	Command []string

	// Optional checks may fail without failing the report. Checks derived
	// from optional solvers (proprietary binaries that may be absent) are
	// optional; everything else is required.
	Optional bool
}

// BuildChecks derives the smoke checks from a manifest, in the order they
// run: solver versions first (cheapest, fail earliest on a broken PATH),
// then the library import, then the example script, then user checks.
func BuildChecks(m *manifest.Manifest) []Check {
	var checks []Check

	for i := range m.Solvers {
		solver := &m.Solvers[i]
		checks = append(checks, Check{
			Name:     fmt.Sprintf("solver %s responds to version query", solver.Name),
			Command:  solver.VersionCommand(),
			Optional: !solver.IsRequired(),
		})
	}

	checks = append(checks, Check{
		Name:    fmt.Sprintf("library %s imports", m.Library.Name),
		Command: []string{"python", "-c", fmt.Sprintf("import %s", m.Library.Name)},
	})

	if m.Example.Script != "" {
		checks = append(checks, Check{
			Name:    fmt.Sprintf("example %s runs to completion", m.Example.Script),
			Command: []string{"python", path.Join(m.Library.InstallDir, m.Example.Script)},
		})
	}

	for _, c := range m.Checks {
		checks = append(checks, Check{Name: c.Name, Command: c.Command})
	}

	return checks
}
