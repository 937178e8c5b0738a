package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Mounts is the host's routing table: scheme to provider, plus the
// read-only flag enforced here so individual providers stay policy-free.
//
// Mounts implements fsclient.Proxy, which means a facade can sit directly
// on top of it for in-process use and tests exercise the exact contract the
// HTTP endpoint exposes.
type Mounts struct {
	mu    sync.RWMutex
	table map[string]*mount
}

type mount struct {
	provider Provider
	readonly bool
}

// MountRegistration is the release handle returned by Register. Releasing
// removes the mount from the table; the provider itself is not closed until
// Mounts.Close.
type MountRegistration struct {
	mounts *Mounts
	scheme string
	once   sync.Once
}

// Release removes the mount. Idempotent.
func (r *MountRegistration) Release() {
	r.once.Do(func() {
		r.mounts.mu.Lock()
		delete(r.mounts.table, r.scheme)
		r.mounts.mu.Unlock()
	})
}

// NewMounts creates an empty mount table.
func NewMounts() *Mounts {
	return &Mounts{table: make(map[string]*mount)}
}

// Register adds a provider under the given scheme. Duplicate schemes are an
// error; remove the old mount first.
func (m *Mounts) Register(scheme string, p Provider, readonly bool) (*MountRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.table[scheme]; exists {
		return nil, fmt.Errorf("scheme %q is already mounted", scheme)
	}
	m.table[scheme] = &mount{provider: p, readonly: readonly}

	return &MountRegistration{mounts: m, scheme: scheme}, nil
}

// Schemes lists the current mounts sorted by scheme.
func (m *Mounts) Schemes() []wire.SchemeInfo {
	m.mu.RLock()
	infos := make([]wire.SchemeInfo, 0, len(m.table))
	for scheme, mnt := range m.table {
		infos = append(infos, wire.SchemeInfo{Scheme: scheme, Readonly: mnt.readonly})
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Scheme < infos[j].Scheme })
	return infos
}

// Close closes every mounted provider. Each provider is closed once even if
// mounted under several schemes.
func (m *Mounts) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := make(map[Provider]bool)
	var errs []error
	for scheme, mnt := range m.table {
		if closed[mnt.provider] {
			continue
		}
		closed[mnt.provider] = true
		if err := mnt.provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close provider for %q: %w", scheme, err))
		}
	}
	m.table = make(map[string]*mount)
	return errors.Join(errs...)
}

// resolve returns the mount for a scheme, or a NoProvider error.
func (m *Mounts) resolve(scheme string) (*mount, *wire.ProviderError) {
	m.mu.RLock()
	mnt, ok := m.table[scheme]
	m.mu.RUnlock()

	if !ok {
		return nil, wire.NewNoProvider(scheme)
	}
	return mnt, nil
}

// resolveWritable is resolve plus the read-only check shared by every
// mutating operation.
func (m *Mounts) resolveWritable(scheme string) (*mount, *wire.ProviderError) {
	mnt, perr := m.resolve(scheme)
	if perr != nil {
		return nil, perr
	}
	if mnt.readonly {
		return nil, wire.NewNoPermissions(fmt.Sprintf("scheme %q is mounted read-only", scheme))
	}
	return mnt, nil
}

// Stat implements fsclient.Proxy.
func (m *Mounts) Stat(ctx context.Context, uri wire.URI) (wire.FileStat, error) {
	mnt, perr := m.resolve(uri.Scheme)
	if perr != nil {
		return wire.FileStat{}, perr
	}
	return mnt.provider.Stat(ctx, uri.Path)
}

// ReadDirectory implements fsclient.Proxy.
func (m *Mounts) ReadDirectory(ctx context.Context, uri wire.URI) ([]wire.DirEntry, error) {
	mnt, perr := m.resolve(uri.Scheme)
	if perr != nil {
		return nil, perr
	}
	return mnt.provider.ReadDirectory(ctx, uri.Path)
}

// CreateDirectory implements fsclient.Proxy.
func (m *Mounts) CreateDirectory(ctx context.Context, uri wire.URI) error {
	mnt, perr := m.resolveWritable(uri.Scheme)
	if perr != nil {
		return perr
	}
	return mnt.provider.CreateDirectory(ctx, uri.Path)
}

// ReadFile implements fsclient.Proxy.
func (m *Mounts) ReadFile(ctx context.Context, uri wire.URI) (wire.Buffer, error) {
	mnt, perr := m.resolve(uri.Scheme)
	if perr != nil {
		return wire.Buffer{}, perr
	}
	data, err := mnt.provider.ReadFile(ctx, uri.Path)
	if err != nil {
		return wire.Buffer{}, err
	}
	return wire.Wrap(data), nil
}

// WriteFile implements fsclient.Proxy.
func (m *Mounts) WriteFile(ctx context.Context, uri wire.URI, content wire.Buffer) error {
	mnt, perr := m.resolveWritable(uri.Scheme)
	if perr != nil {
		return perr
	}
	return mnt.provider.WriteFile(ctx, uri.Path, content.Bytes())
}

// Delete implements fsclient.Proxy.
func (m *Mounts) Delete(ctx context.Context, uri wire.URI, opts wire.DeleteOptions) error {
	mnt, perr := m.resolveWritable(uri.Scheme)
	if perr != nil {
		return perr
	}
	return mnt.provider.Delete(ctx, uri.Path, opts)
}

// Rename implements fsclient.Proxy. Source and target must share a scheme;
// moving data between providers is a copy concern, not a rename.
func (m *Mounts) Rename(ctx context.Context, source, target wire.URI, opts wire.RenameOptions) error {
	if source.Scheme != target.Scheme {
		return wire.Errorf(wire.CodeUnknown,
			"cannot rename across schemes (%s -> %s)", source.Scheme, target.Scheme)
	}
	mnt, perr := m.resolveWritable(source.Scheme)
	if perr != nil {
		return perr
	}
	return mnt.provider.Rename(ctx, source.Path, target.Path, opts)
}

// Copy implements fsclient.Proxy. Same-scheme copies go straight to the
// provider; cross-scheme copies fall back to read-then-write for regular
// files.
func (m *Mounts) Copy(ctx context.Context, source, target wire.URI, opts wire.CopyOptions) error {
	if source.Scheme == target.Scheme {
		mnt, perr := m.resolveWritable(source.Scheme)
		if perr != nil {
			return perr
		}
		return mnt.provider.Copy(ctx, source.Path, target.Path, opts)
	}

	src, perr := m.resolve(source.Scheme)
	if perr != nil {
		return perr
	}
	dst, perr := m.resolveWritable(target.Scheme)
	if perr != nil {
		return perr
	}

	if !opts.Overwrite {
		if _, err := dst.provider.Stat(ctx, target.Path); err == nil {
			return wire.NewFileExists(target.Path)
		}
	}

	data, err := src.provider.ReadFile(ctx, source.Path)
	if err != nil {
		return err
	}
	return dst.provider.WriteFile(ctx, target.Path, data)
}
