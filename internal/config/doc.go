// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as
// the file format.
//
// Configuration is loaded from ~/.config/solvenv/config.cue (or the XDG /
// platform equivalent) and validated against an embedded CUE schema before
// being merged over the defaults. It covers host-side behavior only —
// container engine preference, cache and build-context directories, verify
// timeouts — never the image contents, which belong to the manifest.
package config
