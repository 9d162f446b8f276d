// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both the environment manifest and the application config are CUE files
// validated against embedded schemas. This package consolidates the parsing
// flow used by both:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode into a Go struct
//
// # Usage
//
//	//go:embed manifest_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecode[Manifest](
//	    schema,
//	    fileBytes,
//	    "#Manifest",
//	    cueutil.WithFilename("solvenv.cue"),
//	)
//	if err != nil {
//	    return nil, err // error carries the CUE path of the offending field
//	}
//	return result.Value, nil
package cueutil
