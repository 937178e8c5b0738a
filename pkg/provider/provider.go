// Package provider defines the host-side file-system provider contract and
// the mount table that routes URIs to providers by scheme.
//
// Providers work on plain paths; the scheme has already been resolved by
// the mount table by the time a call arrives. Failures are reported as
// *wire.ProviderError so the code survives the trip back to the client.
package provider

import (
	"context"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Provider is one backing file-system implementation (in-memory tree, OS
// directory, BadgerDB store, S3 bucket). All paths are absolute and
// cleaned; implementations never see "..".
type Provider interface {
	// Stat returns metadata for the entry at path.
	Stat(ctx context.Context, path string) (wire.FileStat, error)

	// ReadDirectory lists the immediate children of a directory.
	ReadDirectory(ctx context.Context, path string) ([]wire.DirEntry, error)

	// CreateDirectory creates a directory. The parent must exist.
	CreateDirectory(ctx context.Context, path string) error

	// ReadFile returns the entire content of a file.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// WriteFile replaces the entire content of a file, creating it if
	// missing. The parent directory must exist.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Delete removes an entry. Non-recursive deletes of non-empty
	// directories fail with DirectoryNotEmpty.
	Delete(ctx context.Context, path string, opts wire.DeleteOptions) error

	// Rename moves an entry within the provider.
	Rename(ctx context.Context, oldPath, newPath string, opts wire.RenameOptions) error

	// Copy duplicates an entry within the provider.
	Copy(ctx context.Context, srcPath, dstPath string, opts wire.CopyOptions) error

	// Close releases backend resources. The mount table closes every
	// provider on shutdown.
	Close() error
}
