// Package fsclient implements the file-system facade handed to code running
// inside a plugin-host process. Every operation is forwarded over a Proxy to
// the privileged host process that owns the real providers; remote failures
// are translated into the typed hierarchy of pkg/fserrors; and a small
// registry tracks which URI schemes are writable.
//
// The facade performs no retries, no caching and keeps no per-call state.
// Each call is independent: it either returns its documented value or a
// *fserrors.Error, never both.
package fsclient

import (
	"context"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Proxy is the remote contract the facade forwards to. The HTTP client in
// pkg/apiclient implements it for the cross-process case; the host mount
// table in pkg/provider implements it too, which keeps in-process embedding
// and tests honest against the same contract.
//
// Options arrive fully resolved: the facade applies defaults before the
// call goes out, so implementations never need a default policy of their
// own. Failures should be reported as *wire.ProviderError where a code is
// known; any other error is treated as unstructured.
type Proxy interface {
	Stat(ctx context.Context, uri wire.URI) (wire.FileStat, error)
	ReadDirectory(ctx context.Context, uri wire.URI) ([]wire.DirEntry, error)
	CreateDirectory(ctx context.Context, uri wire.URI) error
	ReadFile(ctx context.Context, uri wire.URI) (wire.Buffer, error)
	WriteFile(ctx context.Context, uri wire.URI, content wire.Buffer) error
	Delete(ctx context.Context, uri wire.URI, opts wire.DeleteOptions) error
	Rename(ctx context.Context, source, target wire.URI, opts wire.RenameOptions) error
	Copy(ctx context.Context, source, target wire.URI, opts wire.CopyOptions) error
}
