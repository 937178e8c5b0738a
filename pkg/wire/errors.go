package wire

import (
	"fmt"
	"net/http"
)

// ErrorCode is the discriminant tag a provider attaches to a failure.
// The set below is the contract between host and client; providers may
// emit additional codes (for example DirectoryNotEmpty), which the client
// surfaces as a generic error that still carries the code.
type ErrorCode string

const (
	// CodeFileExists indicates the target already exists.
	CodeFileExists ErrorCode = "FileExists"

	// CodeFileNotFound indicates the resource does not exist.
	CodeFileNotFound ErrorCode = "FileNotFound"

	// CodeFileNotADirectory indicates a directory operation hit a file.
	CodeFileNotADirectory ErrorCode = "FileNotADirectory"

	// CodeFileIsADirectory indicates a file operation hit a directory.
	CodeFileIsADirectory ErrorCode = "FileIsADirectory"

	// CodeNoPermissions indicates the operation is not permitted,
	// including writes against a read-only mount.
	CodeNoPermissions ErrorCode = "NoPermissions"

	// CodeUnavailable indicates the provider exists but cannot serve the
	// request right now (backend down, store closed).
	CodeUnavailable ErrorCode = "Unavailable"

	// CodeNoProvider indicates no provider is registered for the
	// requested scheme.
	CodeNoProvider ErrorCode = "NoProvider"

	// CodeDirectoryNotEmpty indicates a non-recursive delete hit a
	// directory with children. Not part of the client's typed taxonomy;
	// travels through the generic-with-code path.
	CodeDirectoryNotEmpty ErrorCode = "DirectoryNotEmpty"

	// CodeUnknown tags failures the provider could not classify.
	CodeUnknown ErrorCode = "Unknown"
)

// ProviderError is the structured failure a provider or the host mount
// table reports for an operation. It crosses the process boundary verbatim:
// the host serializes it into the response body and the client decodes it
// back, so the code and the human-readable message survive the round trip.
type ProviderError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a ProviderError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *ProviderError {
	return &ProviderError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewFileExists creates a FileExists error for the given path.
func NewFileExists(path string) *ProviderError {
	return Errorf(CodeFileExists, "file already exists: %s", path)
}

// NewFileNotFound creates a FileNotFound error for the given path.
func NewFileNotFound(path string) *ProviderError {
	return Errorf(CodeFileNotFound, "no such file or directory: %s", path)
}

// NewFileNotADirectory creates a FileNotADirectory error for the given path.
func NewFileNotADirectory(path string) *ProviderError {
	return Errorf(CodeFileNotADirectory, "not a directory: %s", path)
}

// NewFileIsADirectory creates a FileIsADirectory error for the given path.
func NewFileIsADirectory(path string) *ProviderError {
	return Errorf(CodeFileIsADirectory, "is a directory: %s", path)
}

// NewNoPermissions creates a NoPermissions error.
func NewNoPermissions(message string) *ProviderError {
	return &ProviderError{Code: CodeNoPermissions, Message: message}
}

// NewNoProvider creates a NoProvider error for the given scheme.
func NewNoProvider(scheme string) *ProviderError {
	return Errorf(CodeNoProvider, "no file system provider registered for scheme %q", scheme)
}

// NewDirectoryNotEmpty creates a DirectoryNotEmpty error for the given path.
func NewDirectoryNotEmpty(path string) *ProviderError {
	return Errorf(CodeDirectoryNotEmpty, "directory not empty: %s", path)
}

// HTTPStatus maps the code to the HTTP status the host endpoint responds
// with. The client classifies by the code in the body, not by the status;
// the status is there for curl users and proxies.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeFileNotFound:
		return http.StatusNotFound
	case CodeFileExists, CodeDirectoryNotEmpty:
		return http.StatusConflict
	case CodeFileNotADirectory, CodeFileIsADirectory:
		return http.StatusBadRequest
	case CodeNoPermissions:
		return http.StatusForbidden
	case CodeUnavailable, CodeNoProvider:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
