package fsclient

import (
	"errors"

	"github.com/marmos91/bridgefs/pkg/fserrors"
	"github.com/marmos91/bridgefs/pkg/wire"
)

// translateError normalizes a remote failure into the typed hierarchy.
// Applied exactly once per failed call, uniformly across all operations.
//
// The mapping is total over the known code set and preserves the original
// message in every branch. Unrecognized codes are not swallowed: they come
// back as a generic error retaining both code and message.
func translateError(err error) *fserrors.Error {
	var perr *wire.ProviderError
	if !errors.As(err, &perr) {
		// Unstructured failure (transport fault, plain error): wrap its
		// textual form.
		return fserrors.NewGeneric(err.Error())
	}

	switch perr.Code {
	case wire.CodeNoProvider:
		return fserrors.NewUnavailable(perr.Message)
	case wire.CodeFileExists:
		return fserrors.NewFileExists(perr.Message)
	case wire.CodeFileNotFound:
		return fserrors.NewFileNotFound(perr.Message)
	case wire.CodeFileNotADirectory:
		return fserrors.NewFileNotADirectory(perr.Message)
	case wire.CodeFileIsADirectory:
		return fserrors.NewFileIsADirectory(perr.Message)
	case wire.CodeNoPermissions:
		return fserrors.NewNoPermissions(perr.Message)
	case wire.CodeUnavailable:
		return fserrors.NewUnavailable(perr.Message)
	default:
		return fserrors.NewGenericWithCode(string(perr.Code), perr.Message)
	}
}
