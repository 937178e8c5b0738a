// Package memory provides an in-memory file-system provider. Useful for
// tests and for scratch mounts that should not survive the host process.
package memory

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// node is one entry in the tree. Directories have children; files have
// data. Timestamps are Unix milliseconds, matching the wire contract.
type node struct {
	typ      wire.FileType
	data     []byte
	children map[string]*node
	ctime    int64
	mtime    int64
}

func newDir(now int64) *node {
	return &node{typ: wire.FileTypeDirectory, children: make(map[string]*node), ctime: now, mtime: now}
}

func newFile(data []byte, now int64) *node {
	return &node{typ: wire.FileTypeFile, data: data, ctime: now, mtime: now}
}

// Provider is an in-memory tree rooted at "/". Safe for concurrent use.
type Provider struct {
	mu   sync.RWMutex
	root *node
}

// New creates an empty in-memory provider.
func New() *Provider {
	return &Provider{root: newDir(nowMillis())}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// split breaks an absolute cleaned path into segments. "/" yields nil.
func split(p string) []string {
	p = strings.Trim(path.Clean(p), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// lookup walks to the node at p. Callers hold the lock.
func (pr *Provider) lookup(p string) (*node, *wire.ProviderError) {
	n := pr.root
	for _, seg := range split(p) {
		if !n.typ.IsDirectory() {
			return nil, wire.NewFileNotADirectory(p)
		}
		child, ok := n.children[seg]
		if !ok {
			return nil, wire.NewFileNotFound(p)
		}
		n = child
	}
	return n, nil
}

// lookupParent walks to the parent directory of p and returns it together
// with the final segment. Callers hold the lock.
func (pr *Provider) lookupParent(p string) (*node, string, *wire.ProviderError) {
	segs := split(p)
	if len(segs) == 0 {
		return nil, "", wire.Errorf(wire.CodeNoPermissions, "cannot modify the root directory")
	}
	parent, perr := pr.lookup(path.Dir(path.Clean(p)))
	if perr != nil {
		return nil, "", perr
	}
	if !parent.typ.IsDirectory() {
		return nil, "", wire.NewFileNotADirectory(path.Dir(p))
	}
	return parent, segs[len(segs)-1], nil
}

// Stat implements provider.Provider.
func (pr *Provider) Stat(_ context.Context, p string) (wire.FileStat, error) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()

	n, perr := pr.lookup(p)
	if perr != nil {
		return wire.FileStat{}, perr
	}
	return wire.FileStat{
		Type:  n.typ,
		Size:  uint64(len(n.data)),
		CTime: n.ctime,
		MTime: n.mtime,
	}, nil
}

// ReadDirectory implements provider.Provider.
func (pr *Provider) ReadDirectory(_ context.Context, p string) ([]wire.DirEntry, error) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()

	n, perr := pr.lookup(p)
	if perr != nil {
		return nil, perr
	}
	if !n.typ.IsDirectory() {
		return nil, wire.NewFileNotADirectory(p)
	}

	entries := make([]wire.DirEntry, 0, len(n.children))
	for name, child := range n.children {
		entries = append(entries, wire.DirEntry{Name: name, Type: child.typ})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// CreateDirectory implements provider.Provider.
func (pr *Provider) CreateDirectory(_ context.Context, p string) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	parent, name, perr := pr.lookupParent(p)
	if perr != nil {
		return perr
	}
	if _, exists := parent.children[name]; exists {
		return wire.NewFileExists(p)
	}

	now := nowMillis()
	parent.children[name] = newDir(now)
	parent.mtime = now
	return nil
}

// ReadFile implements provider.Provider.
func (pr *Provider) ReadFile(_ context.Context, p string) ([]byte, error) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()

	n, perr := pr.lookup(p)
	if perr != nil {
		return nil, perr
	}
	if n.typ.IsDirectory() {
		return nil, wire.NewFileIsADirectory(p)
	}

	out := make([]byte, len(n.data))
	copy(out, n.data)
	return out, nil
}

// WriteFile implements provider.Provider.
func (pr *Provider) WriteFile(_ context.Context, p string, data []byte) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	parent, name, perr := pr.lookupParent(p)
	if perr != nil {
		return perr
	}

	now := nowMillis()
	if existing, ok := parent.children[name]; ok {
		if existing.typ.IsDirectory() {
			return wire.NewFileIsADirectory(p)
		}
		existing.data = append([]byte(nil), data...)
		existing.mtime = now
		return nil
	}

	parent.children[name] = newFile(append([]byte(nil), data...), now)
	parent.mtime = now
	return nil
}

// Delete implements provider.Provider. UseTrash is ignored: the in-memory
// tree has no trash facility.
func (pr *Provider) Delete(_ context.Context, p string, opts wire.DeleteOptions) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	parent, name, perr := pr.lookupParent(p)
	if perr != nil {
		return perr
	}
	n, exists := parent.children[name]
	if !exists {
		return wire.NewFileNotFound(p)
	}
	if n.typ.IsDirectory() && len(n.children) > 0 && !opts.Recursive {
		return wire.NewDirectoryNotEmpty(p)
	}

	delete(parent.children, name)
	parent.mtime = nowMillis()
	return nil
}

// Rename implements provider.Provider.
func (pr *Provider) Rename(_ context.Context, oldPath, newPath string, opts wire.RenameOptions) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	oldParent, oldName, perr := pr.lookupParent(oldPath)
	if perr != nil {
		return perr
	}
	n, exists := oldParent.children[oldName]
	if !exists {
		return wire.NewFileNotFound(oldPath)
	}
	// A directory moved under itself would detach from the tree.
	if n.typ == wire.FileTypeDirectory &&
		strings.HasPrefix(path.Clean(newPath), path.Clean(oldPath)+"/") {
		return wire.Errorf(wire.CodeUnknown,
			"cannot rename %s into its own subtree", oldPath)
	}

	newParent, newName, perr := pr.lookupParent(newPath)
	if perr != nil {
		return perr
	}
	if _, taken := newParent.children[newName]; taken && !opts.Overwrite {
		return wire.NewFileExists(newPath)
	}

	delete(oldParent.children, oldName)
	newParent.children[newName] = n

	now := nowMillis()
	oldParent.mtime = now
	newParent.mtime = now
	return nil
}

// Copy implements provider.Provider. Directories are copied recursively.
func (pr *Provider) Copy(_ context.Context, srcPath, dstPath string, opts wire.CopyOptions) error {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	src, perr := pr.lookup(srcPath)
	if perr != nil {
		return perr
	}
	dstParent, dstName, perr := pr.lookupParent(dstPath)
	if perr != nil {
		return perr
	}
	if _, taken := dstParent.children[dstName]; taken && !opts.Overwrite {
		return wire.NewFileExists(dstPath)
	}

	dstParent.children[dstName] = deepCopy(src, nowMillis())
	dstParent.mtime = nowMillis()
	return nil
}

func deepCopy(n *node, now int64) *node {
	out := &node{typ: n.typ, ctime: now, mtime: now}
	if n.typ.IsDirectory() {
		out.children = make(map[string]*node, len(n.children))
		for name, child := range n.children {
			out.children[name] = deepCopy(child, now)
		}
		return out
	}
	out.data = append([]byte(nil), n.data...)
	return out
}

// Close implements provider.Provider. Nothing to release.
func (pr *Provider) Close() error {
	return nil
}
