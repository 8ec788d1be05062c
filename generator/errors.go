// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"errors"
	"strings"
)

// Operation names as the host reports them.
const (
	OpGenerateRecipe    = "generate_recipe"
	OpExtractInputGlobs = "extract_input_globs_from_build"
	OpDefaultVariants   = "default_variants"
)

var (
	// ErrHandleReleased is returned when a handle is used after Release.
	ErrHandleReleased = errors.New("generator handle already released")

	// ErrNilGenerator is returned by NewHandle for a nil generator.
	ErrNilGenerator = errors.New("generator is nil")

	// ErrUnnamedGenerator is returned by NewHandle for a generator with no name.
	ErrUnnamedGenerator = errors.New("generator metadata has no name")

	// ErrNoRecipe is returned when generation succeeds without an envelope.
	// Wrapped in an OperationError it reads "<op> callback did not provide
	// a recipe handle".
	ErrNoRecipe = errors.New("did not provide a recipe handle")

	// ErrNoIntermediate is returned when an envelope carries no recipe.
	ErrNoIntermediate = errors.New("generated recipe has no intermediate recipe")

	// ErrNoSources is returned when a recipe has no source location.
	ErrNoSources = errors.New("intermediate recipe has no sources")

	// ErrInvalidManifestPath is returned when a manifest path cannot name a file.
	ErrInvalidManifestPath = errors.New("invalid manifest path")
)

// ErrorKind classifies generator failures.
type ErrorKind int

const (
	// KindAllocation means an object could not be created.
	KindAllocation ErrorKind = iota + 1

	// KindResolution means the source directory could not be determined.
	KindResolution
)

func (k ErrorKind) String() string {
	switch k {
	case KindAllocation:
		return "allocation"
	case KindResolution:
		return "resolution"
	default:
		return "unknown"
	}
}

// Error is a classified generator failure.
type Error struct {
	// Op is the generator that failed (e.g., "autotools").
	Op string

	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error renders "op: message" followed by the cause when present.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// AllocationError returns a KindAllocation error.
func AllocationError(op, message string, cause error) *Error {
	return &Error{Op: op, Kind: KindAllocation, Message: message, Cause: cause}
}

// ResolutionError returns a KindResolution error.
func ResolutionError(op, message string, cause error) *Error {
	return &Error{Op: op, Kind: KindResolution, Message: message, Cause: cause}
}

// IsKind reports whether err wraps a generator Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == kind
}

// OperationError is a failure reported through a handle operation.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	switch {
	case e.Err == nil || e.Err.Error() == "":
		return e.Op + " callback failed"
	case errors.Is(e.Err, ErrNoRecipe):
		return e.Op + " callback " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
