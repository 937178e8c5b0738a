// Package local provides a file-system provider backed by a directory on
// the host's OS file system. Paths are confined to the configured root.
package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// Provider serves a subtree of the OS file system. The root directory must
// exist when the provider is created.
type Provider struct {
	root string
}

// New creates a provider rooted at dir.
func New(dir string) (*Provider, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, wire.NewFileNotADirectory(dir)
	}
	return &Provider{root: abs}, nil
}

// resolve maps a provider path onto the OS file system. Incoming paths are
// already cleaned by wire.ParseURI, so joining cannot escape the root.
func (p *Provider) resolve(path string) string {
	return filepath.Join(p.root, filepath.FromSlash(path))
}

// mapError translates an OS error into the wire code the client expects.
// The original error text is kept as the message.
func mapError(err error) *wire.ProviderError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &wire.ProviderError{Code: wire.CodeFileNotFound, Message: err.Error()}
	case errors.Is(err, fs.ErrExist):
		return &wire.ProviderError{Code: wire.CodeFileExists, Message: err.Error()}
	case errors.Is(err, fs.ErrPermission):
		return &wire.ProviderError{Code: wire.CodeNoPermissions, Message: err.Error()}
	case errors.Is(err, syscall.ENOTDIR):
		return &wire.ProviderError{Code: wire.CodeFileNotADirectory, Message: err.Error()}
	case errors.Is(err, syscall.EISDIR):
		return &wire.ProviderError{Code: wire.CodeFileIsADirectory, Message: err.Error()}
	case errors.Is(err, syscall.ENOTEMPTY):
		return &wire.ProviderError{Code: wire.CodeDirectoryNotEmpty, Message: err.Error()}
	default:
		return &wire.ProviderError{Code: wire.CodeUnknown, Message: err.Error()}
	}
}

func toFileType(mode fs.FileMode) wire.FileType {
	var t wire.FileType
	switch {
	case mode.IsDir():
		t = wire.FileTypeDirectory
	case mode.IsRegular():
		t = wire.FileTypeFile
	}
	if mode&fs.ModeSymlink != 0 {
		t |= wire.FileTypeSymbolicLink
	}
	if t == 0 {
		t = wire.FileTypeUnknown
	}
	return t
}

// Stat implements provider.Provider.
func (p *Provider) Stat(_ context.Context, path string) (wire.FileStat, error) {
	info, err := os.Stat(p.resolve(path))
	if err != nil {
		return wire.FileStat{}, mapError(err)
	}
	return wire.FileStat{
		Type: toFileType(info.Mode()),
		Size: uint64(info.Size()),
		// The OS does not expose a portable creation time; modification
		// time stands in for both.
		CTime: info.ModTime().UnixMilli(),
		MTime: info.ModTime().UnixMilli(),
	}, nil
}

// ReadDirectory implements provider.Provider.
func (p *Provider) ReadDirectory(_ context.Context, path string) ([]wire.DirEntry, error) {
	dirents, err := os.ReadDir(p.resolve(path))
	if err != nil {
		return nil, mapError(err)
	}

	entries := make([]wire.DirEntry, 0, len(dirents))
	for _, de := range dirents {
		entries = append(entries, wire.DirEntry{
			Name: de.Name(),
			Type: toFileType(de.Type()),
		})
	}
	return entries, nil
}

// CreateDirectory implements provider.Provider.
func (p *Provider) CreateDirectory(_ context.Context, path string) error {
	if err := os.Mkdir(p.resolve(path), 0o755); err != nil {
		return mapError(err)
	}
	return nil
}

// ReadFile implements provider.Provider.
func (p *Provider) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(p.resolve(path))
	if err != nil {
		return nil, mapError(err)
	}
	return data, nil
}

// WriteFile implements provider.Provider.
func (p *Provider) WriteFile(_ context.Context, path string, data []byte) error {
	target := p.resolve(path)

	// os.WriteFile truncates directories into EISDIR on open, which
	// mapError handles; no pre-check needed.
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return mapError(err)
	}
	return nil
}

// Delete implements provider.Provider. UseTrash is accepted but ignored:
// the host has no trash integration, entries are removed permanently.
func (p *Provider) Delete(_ context.Context, path string, opts wire.DeleteOptions) error {
	target := p.resolve(path)

	if opts.Recursive {
		// RemoveAll succeeds on missing paths; preserve the FileNotFound
		// contract with an explicit stat.
		if _, err := os.Stat(target); err != nil {
			return mapError(err)
		}
		if err := os.RemoveAll(target); err != nil {
			return mapError(err)
		}
		return nil
	}

	if err := os.Remove(target); err != nil {
		return mapError(err)
	}
	return nil
}

// Rename implements provider.Provider.
func (p *Provider) Rename(_ context.Context, oldPath, newPath string, opts wire.RenameOptions) error {
	src, dst := p.resolve(oldPath), p.resolve(newPath)

	if !opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return wire.NewFileExists(newPath)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return mapError(err)
	}
	return nil
}

// Copy implements provider.Provider. Regular files only; copying
// directories recursively on the OS provider is handled by callers that
// need it via readdir.
func (p *Provider) Copy(ctx context.Context, srcPath, dstPath string, opts wire.CopyOptions) error {
	stat, err := p.Stat(ctx, srcPath)
	if err != nil {
		return err
	}
	if stat.Type.IsDirectory() {
		return wire.NewFileIsADirectory(srcPath)
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(p.resolve(dstPath)); err == nil {
			return wire.NewFileExists(dstPath)
		}
	}

	data, err := p.ReadFile(ctx, srcPath)
	if err != nil {
		return err
	}
	return p.WriteFile(ctx, dstPath, data)
}

// Close implements provider.Provider. Nothing to release.
func (p *Provider) Close() error {
	return nil
}
