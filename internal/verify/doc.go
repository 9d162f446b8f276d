// SPDX-License-Identifier: MPL-2.0

// Package verify runs smoke checks against a provisioned image.
//
// Checks are derived from the manifest: one version invocation per solver,
// an import of the scheduling library, and the representative example
// script, plus any user-defined checks. Each check runs in a throwaway
// container of the image under test, so a passing report means the image
// itself works, not the host. Checks derived from optional solvers are
// marked optional and never fail the report.
package verify
