package fsclient

import "sync"

// SchemeCapabilities records what the facade knows about a registered
// scheme. Absent fields default to the most permissive interpretation:
// a scheme registered with the zero value is writable.
type SchemeCapabilities struct {
	Readonly bool
}

// SchemeRegistration is the disposal handle returned by RegisterScheme.
// Disposing removes the entry; disposal is idempotent and must run on every
// exit path of the registering component (defer it).
type SchemeRegistration struct {
	fs     *FileSystem
	scheme string
	once   sync.Once
}

// Dispose removes the scheme from the registry. Subsequent
// IsWritableFileSystem calls for the scheme report unknown again.
func (r *SchemeRegistration) Dispose() {
	r.once.Do(func() {
		r.fs.mu.Lock()
		delete(r.fs.schemes, r.scheme)
		r.fs.mu.Unlock()
	})
}

// RegisterScheme records that a provider exists for the given scheme.
// Called by the subsystem that discovers providers, not by ordinary
// callers. Registering an already-known scheme replaces its capabilities.
func (fs *FileSystem) RegisterScheme(scheme string, caps SchemeCapabilities) *SchemeRegistration {
	fs.mu.Lock()
	fs.schemes[scheme] = caps
	fs.mu.Unlock()

	return &SchemeRegistration{fs: fs, scheme: scheme}
}

// IsWritableFileSystem reports whether the given scheme is backed by a
// writable provider. The result is tri-state:
//
//	nil   - the scheme was never registered (unknown)
//	true  - registered and writable
//	false - registered read-only
func (fs *FileSystem) IsWritableFileSystem(scheme string) *bool {
	fs.mu.RLock()
	caps, ok := fs.schemes[scheme]
	fs.mu.RUnlock()

	if !ok {
		return nil
	}
	writable := !caps.Readonly
	return &writable
}
