// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors.
//
// Pipeline failures are fatal by design, so the error a user sees is often
// the only diagnostic they get. ActionableError pairs the failed operation
// with the resource involved and concrete suggestions for fixing it.
package issue
