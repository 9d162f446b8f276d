// SPDX-License-Identifier: MPL-2.0

// Package pipeline sequences a full image delivery: resolve the library
// source, provision the image, and verify it with smoke checks.
//
// Stages run strictly in order and the first failure aborts the run; a
// verification failure never leaves a "verified" claim behind because the
// report is only marked passing after every required check succeeded. The
// manifest's host hooks run around the pipeline (pre_build before source
// resolution, post_verify after a passing report).
package pipeline
