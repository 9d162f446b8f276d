// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"solvenv-cli/pkg/cueutil"
)

//go:embed manifest_schema.cue
var manifestSchema string

// Parse validates data against the manifest schema and decodes it.
// Defaults are applied and struct-level validation runs before returning.
func Parse(data []byte, filename string) (*Manifest, error) {
	result, err := cueutil.ParseAndDecode[Manifest](
		manifestSchema,
		data,
		"#Manifest",
		cueutil.WithFilename(filename),
	)
	if err != nil {
		return nil, err
	}

	m := result.Value
	m.ApplyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// Load reads and parses the manifest at path. Relative host paths in the
// manifest (library.path, solverDir) are resolved against the manifest's
// directory, so a manifest behaves the same regardless of the caller's CWD.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	m.FilePath = abs

	dir := filepath.Dir(abs)
	if m.Library.Path != "" && !filepath.IsAbs(m.Library.Path) {
		m.Library.Path = filepath.Join(dir, m.Library.Path)
	}
	if !filepath.IsAbs(m.SolverDir) {
		m.SolverDir = filepath.Join(dir, m.SolverDir)
	}

	return m, nil
}
