// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize is the largest CUE file accepted by ParseAndDecode.
// Manifests and config files are hand-written; anything bigger than this
// is almost certainly a mistake (or an attempt to exhaust memory).
const DefaultMaxFileSize int64 = 1 << 20 // 1 MiB

type (
	// ParseResult contains the result of a successful CUE parse operation.
	ParseResult[T any] struct {
		// Value is the decoded Go struct.
		Value *T

		// Unified is the unified CUE value, kept for callers that need to
		// extract metadata beyond the decoded struct.
		Unified cue.Value
	}

	// Option configures a ParseAndDecode call.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

// WithFilename sets the filename used in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides the input size limit.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete requires all fields to be concrete after unification.
// Leave unset for schemas with optional fields.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// ParseAndDecode compiles schema, unifies data against the definition at
// schemaPath (e.g. "#Manifest"), validates, and decodes into T.
func ParseAndDecode[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	o := options{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}

	filename := o.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, o.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)

	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{Value: &result, Unified: unified}, nil
}
