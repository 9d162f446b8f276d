// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"sort"
	"strings"

	"solvenv-cli/pkg/manifest"
)

// Context-relative names of the staged build inputs.
const (
	contextLibraryDir = "library"
	contextSolverDir  = "solvers"
	dockerfileName    = "Dockerfile"
)

// generateDockerfile renders the Dockerfile for the manifest. The layer
// order is fixed: base packages first (slowest to change), then the library
// install, then the solver binaries, then environment composition. Every
// input comes from the staged build context, never from the network beyond
// the pinned base image and pip.
func generateDockerfile(m *manifest.Manifest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "FROM %s\n\n", m.Base.Image)

	if len(m.Base.AptPackages) > 0 {
		sb.WriteString("# Toolchain for building the library's native extensions\n")
		fmt.Fprintf(&sb, "RUN apt-get update && apt-get install -y --no-install-recommends %s \\\n",
			strings.Join(m.Base.AptPackages, " "))
		sb.WriteString("    && rm -rf /var/lib/apt/lists/*\n\n")
	}

	sb.WriteString("# Install the scheduling library from the staged source copy\n")
	sb.WriteString("RUN pip install --no-cache-dir --upgrade pip\n")
	fmt.Fprintf(&sb, "COPY %s/ %s/\n", contextLibraryDir, m.Library.InstallDir)
	fmt.Fprintf(&sb, "RUN pip install --no-cache-dir %s/\n\n", m.Library.InstallDir)

	sb.WriteString("# Stage solver binaries and make them executable\n")
	fmt.Fprintf(&sb, "COPY %s/ %s/\n", contextSolverDir, m.Env.BinDir)
	fmt.Fprintf(&sb, "RUN chmod -R a+rx %s\n\n", m.Env.BinDir)

	sb.WriteString("# Compose the runtime environment\n")
	fmt.Fprintf(&sb, "ENV PATH=\"%s:$PATH\"\n", m.Env.BinDir)
	for _, key := range sortedKeys(m.Env.Vars) {
		fmt.Fprintf(&sb, "ENV %s=\"%s\"\n", key, m.Env.Vars[key])
	}
	sb.WriteString("\nCMD [\"/bin/bash\"]\n")

	return sb.String()
}

// buildEnvVars returns the environment the image composes, for callers that
// run checks or report what the image provides.
func buildEnvVars(m *manifest.Manifest) map[string]string {
	env := make(map[string]string, len(m.Env.Vars)+1)
	// PATH is set in the Dockerfile, but we also report it here for consistency
	env["PATH"] = m.Env.BinDir + ":/usr/local/bin:/usr/bin:/bin"
	for k, v := range m.Env.Vars {
		env[k] = v
	}
	return env
}

// sortedKeys returns map keys in deterministic order so generated
// Dockerfiles are byte-stable across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
