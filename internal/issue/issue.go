// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
)

type (
	// ActionableError is an error with context for user-facing messages:
	// what was attempted, what resource was involved, and how to fix it.
	ActionableError struct {
		// Operation describes what was being attempted (e.g. "build image",
		// "load manifest").
		Operation string

		// Resource identifies the file, path, or image involved (optional).
		Resource string

		// Suggestions are hints for fixing the issue (optional).
		Suggestions []string

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext is a fluent builder for ActionableError.
	//
	//	return issue.NewErrorContext().
	//	    WithOperation("provision solvers").
	//	    WithResource(solverDir).
	//	    WithSuggestion("Place the solver binaries in the directory named by solverDir").
	//	    Wrap(err).
	//	    Build()
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WithOperation sets the operation that failed.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource sets the resource involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a fix suggestion.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build constructs the ActionableError.
func (c *ErrorContext) Build() *ActionableError {
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}

// Error returns the concise single-line message.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Verbose returns the multi-line message including suggestions.
func (e *ActionableError) Verbose() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	for _, s := range e.Suggestions {
		msg.WriteString("\n  hint: ")
		msg.WriteString(s)
	}
	return msg.String()
}
