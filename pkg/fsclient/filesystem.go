package fsclient

import (
	"context"
	"sync"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// FileSystem is the facade. It owns exactly one downstream dependency (the
// Proxy) and the scheme capability registry; everything else is forwarding
// plus error translation.
//
// Safe for concurrent use. Calls may be in flight concurrently with no
// ordering guarantee between them; two concurrent writes to the same URI
// race at the host, not here.
type FileSystem struct {
	proxy Proxy

	mu      sync.RWMutex
	schemes map[string]SchemeCapabilities
}

// New creates a facade forwarding to the given proxy. The scheme registry
// starts empty; the owning subsystem populates it via RegisterScheme.
func New(proxy Proxy) *FileSystem {
	return &FileSystem{
		proxy:   proxy,
		schemes: make(map[string]SchemeCapabilities),
	}
}

// Stat returns the metadata record for the resource.
func (fs *FileSystem) Stat(ctx context.Context, uri wire.URI) (wire.FileStat, error) {
	stat, err := fs.proxy.Stat(ctx, uri)
	if err != nil {
		return wire.FileStat{}, translateError(err)
	}
	return stat, nil
}

// ReadDirectory lists the children of a directory as (name, type) pairs.
func (fs *FileSystem) ReadDirectory(ctx context.Context, uri wire.URI) ([]wire.DirEntry, error) {
	entries, err := fs.proxy.ReadDirectory(ctx, uri)
	if err != nil {
		return nil, translateError(err)
	}
	return entries, nil
}

// CreateDirectory creates a new directory.
func (fs *FileSystem) CreateDirectory(ctx context.Context, uri wire.URI) error {
	if err := fs.proxy.CreateDirectory(ctx, uri); err != nil {
		return translateError(err)
	}
	return nil
}

// ReadFile returns the entire content of a file as plain bytes, unwrapping
// the transport buffer.
func (fs *FileSystem) ReadFile(ctx context.Context, uri wire.URI) ([]byte, error) {
	buf, err := fs.proxy.ReadFile(ctx, uri)
	if err != nil {
		return nil, translateError(err)
	}
	return buf.Bytes(), nil
}

// WriteFile replaces the entire content of a file, wrapping the plain bytes
// into the transport buffer. Missing files are created by the provider.
func (fs *FileSystem) WriteFile(ctx context.Context, uri wire.URI, data []byte) error {
	if err := fs.proxy.WriteFile(ctx, uri, wire.Wrap(data)); err != nil {
		return translateError(err)
	}
	return nil
}

// Delete removes a file or directory. A nil opts selects the defaults
// (recursive=false, use_trash=false); a non-nil opts is sent as-is, already
// fully resolved.
func (fs *FileSystem) Delete(ctx context.Context, uri wire.URI, opts *wire.DeleteOptions) error {
	resolved := wire.DeleteOptions{}
	if opts != nil {
		resolved = *opts
	}
	if err := fs.proxy.Delete(ctx, uri, resolved); err != nil {
		return translateError(err)
	}
	return nil
}

// Rename moves a resource. A nil opts selects the default overwrite=false.
func (fs *FileSystem) Rename(ctx context.Context, source, target wire.URI, opts *wire.RenameOptions) error {
	resolved := wire.RenameOptions{}
	if opts != nil {
		resolved = *opts
	}
	if err := fs.proxy.Rename(ctx, source, target, resolved); err != nil {
		return translateError(err)
	}
	return nil
}

// Copy duplicates a resource. A nil opts selects the default overwrite=false.
func (fs *FileSystem) Copy(ctx context.Context, source, target wire.URI, opts *wire.CopyOptions) error {
	resolved := wire.CopyOptions{}
	if opts != nil {
		resolved = *opts
	}
	if err := fs.proxy.Copy(ctx, source, target, resolved); err != nil {
		return translateError(err)
	}
	return nil
}
