// Package fserrors provides the typed error hierarchy consumers of the
// file-system facade branch on. It is a leaf package with no internal
// dependencies, imported by the facade, the CLIs and anything else that
// needs to distinguish "not found" from "permission denied" without knowing
// about the transport underneath.
package fserrors

import (
	"errors"
	"fmt"
)

// Kind classifies a file-system failure.
type Kind int

const (
	// KindGeneric covers failures outside the closed taxonomy: transport
	// faults, unrecognized provider codes, panics rendered as text.
	KindGeneric Kind = iota

	// KindFileExists indicates the target already exists.
	KindFileExists

	// KindFileNotFound indicates the resource does not exist.
	KindFileNotFound

	// KindFileNotADirectory indicates a directory operation hit a file.
	KindFileNotADirectory

	// KindFileIsADirectory indicates a file operation hit a directory.
	KindFileIsADirectory

	// KindNoPermissions indicates the operation is not permitted.
	KindNoPermissions

	// KindUnavailable indicates the backing provider cannot serve the
	// request, including the case where no provider exists for a scheme.
	KindUnavailable
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFileExists:
		return "FileExists"
	case KindFileNotFound:
		return "FileNotFound"
	case KindFileNotADirectory:
		return "FileNotADirectory"
	case KindFileIsADirectory:
		return "FileIsADirectory"
	case KindNoPermissions:
		return "NoPermissions"
	case KindUnavailable:
		return "Unavailable"
	case KindGeneric:
		return "Generic"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is a typed file-system error. Message always carries the original
// human-readable text of the failure, whatever branch produced it. For
// generic errors, Code retains the original wire code (when there was one)
// so unknown codes are never silently swallowed.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindGeneric {
		if e.Code != "" {
			return fmt.Sprintf("%s: %s", e.Code, e.Message)
		}
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates an error of the given kind carrying the message verbatim.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewFileExists creates a FileExists error.
func NewFileExists(message string) *Error { return New(KindFileExists, message) }

// NewFileNotFound creates a FileNotFound error.
func NewFileNotFound(message string) *Error { return New(KindFileNotFound, message) }

// NewFileNotADirectory creates a FileNotADirectory error.
func NewFileNotADirectory(message string) *Error { return New(KindFileNotADirectory, message) }

// NewFileIsADirectory creates a FileIsADirectory error.
func NewFileIsADirectory(message string) *Error { return New(KindFileIsADirectory, message) }

// NewNoPermissions creates a NoPermissions error.
func NewNoPermissions(message string) *Error { return New(KindNoPermissions, message) }

// NewUnavailable creates an Unavailable error.
func NewUnavailable(message string) *Error { return New(KindUnavailable, message) }

// NewGeneric creates a generic error with no code.
func NewGeneric(message string) *Error { return New(KindGeneric, message) }

// NewGenericWithCode creates a generic error that retains the original wire
// code alongside the message, preserving information for codes outside the
// typed taxonomy.
func NewGenericWithCode(code, message string) *Error {
	return &Error{Kind: KindGeneric, Code: code, Message: message}
}

// kindOf extracts the kind from err, or (0, false) when err is not a typed
// file-system error.
func kindOf(err error) (Kind, bool) {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind, true
	}
	return 0, false
}

// IsFileExists reports whether err is a FileExists error.
func IsFileExists(err error) bool { k, ok := kindOf(err); return ok && k == KindFileExists }

// IsFileNotFound reports whether err is a FileNotFound error.
func IsFileNotFound(err error) bool { k, ok := kindOf(err); return ok && k == KindFileNotFound }

// IsFileNotADirectory reports whether err is a FileNotADirectory error.
func IsFileNotADirectory(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindFileNotADirectory
}

// IsFileIsADirectory reports whether err is a FileIsADirectory error.
func IsFileIsADirectory(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindFileIsADirectory
}

// IsNoPermissions reports whether err is a NoPermissions error.
func IsNoPermissions(err error) bool { k, ok := kindOf(err); return ok && k == KindNoPermissions }

// IsUnavailable reports whether err is an Unavailable error.
func IsUnavailable(err error) bool { k, ok := kindOf(err); return ok && k == KindUnavailable }
