// Package badger provides a file-system provider persisted in BadgerDB.
// Each node (file or directory) is one key; file content lives inline in
// the value. Suited to many small files that must survive host restarts.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/bridgefs/pkg/wire"
)

// keyPrefix namespaces node keys so future record types can share the DB.
const keyPrefix = "node:"

// record is the stored form of one node.
type record struct {
	Type  wire.FileType `json:"type"`
	Data  []byte        `json:"data,omitempty"`
	CTime int64         `json:"ctime"`
	MTime int64         `json:"mtime"`
}

// Config holds configuration for the badger provider.
type Config struct {
	// Dir is the on-disk location of the database. Ignored when InMemory
	// is set.
	Dir string

	// InMemory runs the database without persistence. Used by tests.
	InMemory bool
}

// Provider is a BadgerDB-backed file system.
type Provider struct {
	db *badger.DB
}

// New opens (or creates) the database and ensures the root directory
// exists.
func New(cfg Config) (*Provider, error) {
	opts := badger.DefaultOptions(cfg.Dir).WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	p := &Provider{db: db}
	if err := p.ensureRoot(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

func (p *Provider) ensureRoot() error {
	return p.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(nodeKey("/"))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		now := time.Now().UnixMilli()
		return putRecord(txn, "/", &record{Type: wire.FileTypeDirectory, CTime: now, MTime: now})
	})
}

func nodeKey(p string) []byte {
	return []byte(keyPrefix + path.Clean(p))
}

func putRecord(txn *badger.Txn, p string, rec *record) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return txn.Set(nodeKey(p), value)
}

// getRecord loads the node at p, translating ErrKeyNotFound into the wire
// contract's FileNotFound.
func getRecord(txn *badger.Txn, p string) (*record, error) {
	item, err := txn.Get(nodeKey(p))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, wire.NewFileNotFound(p)
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := item.Value(func(value []byte) error {
		return json.Unmarshal(value, &rec)
	}); err != nil {
		return nil, err
	}
	return &rec, nil
}

// parentDir checks that the parent of p exists and is a directory.
func parentDir(txn *badger.Txn, p string) error {
	parent := path.Dir(path.Clean(p))
	rec, err := getRecord(txn, parent)
	if err != nil {
		return err
	}
	if !rec.Type.IsDirectory() {
		return wire.NewFileNotADirectory(parent)
	}
	return nil
}

// childPrefix returns the key prefix under which direct and indirect
// children of dir live.
func childPrefix(dir string) []byte {
	clean := path.Clean(dir)
	if clean == "/" {
		return []byte(keyPrefix + "/")
	}
	return []byte(keyPrefix + clean + "/")
}

// touchParent refreshes the parent directory's mtime after a child change.
func touchParent(txn *badger.Txn, p string) error {
	parent := path.Dir(path.Clean(p))
	rec, err := getRecord(txn, parent)
	if err != nil {
		return err
	}
	rec.MTime = time.Now().UnixMilli()
	return putRecord(txn, parent, rec)
}

// Stat implements provider.Provider.
func (p *Provider) Stat(_ context.Context, pth string) (wire.FileStat, error) {
	var stat wire.FileStat
	err := p.db.View(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, pth)
		if err != nil {
			return err
		}
		stat = wire.FileStat{
			Type:  rec.Type,
			Size:  uint64(len(rec.Data)),
			CTime: rec.CTime,
			MTime: rec.MTime,
		}
		return nil
	})
	if err != nil {
		return wire.FileStat{}, err
	}
	return stat, nil
}

// ReadDirectory implements provider.Provider.
func (p *Provider) ReadDirectory(_ context.Context, pth string) ([]wire.DirEntry, error) {
	var entries []wire.DirEntry

	err := p.db.View(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, pth)
		if err != nil {
			return err
		}
		if !rec.Type.IsDirectory() {
			return wire.NewFileNotADirectory(pth)
		}

		prefix := childPrefix(pth)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			rest := strings.TrimPrefix(string(item.Key()), string(prefix))
			if rest == "" || strings.Contains(rest, "/") {
				// Grandchildren show up under the same prefix; skip them.
				continue
			}

			var child record
			if err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &child)
			}); err != nil {
				return err
			}
			entries = append(entries, wire.DirEntry{Name: rest, Type: child.Type})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// CreateDirectory implements provider.Provider.
func (p *Provider) CreateDirectory(_ context.Context, pth string) error {
	return p.db.Update(func(txn *badger.Txn) error {
		if _, err := getRecord(txn, pth); err == nil {
			return wire.NewFileExists(pth)
		}
		if err := parentDir(txn, pth); err != nil {
			return err
		}
		now := time.Now().UnixMilli()
		if err := putRecord(txn, pth, &record{Type: wire.FileTypeDirectory, CTime: now, MTime: now}); err != nil {
			return err
		}
		return touchParent(txn, pth)
	})
}

// ReadFile implements provider.Provider.
func (p *Provider) ReadFile(_ context.Context, pth string) ([]byte, error) {
	var data []byte
	err := p.db.View(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, pth)
		if err != nil {
			return err
		}
		if rec.Type.IsDirectory() {
			return wire.NewFileIsADirectory(pth)
		}
		data = rec.Data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFile implements provider.Provider.
func (p *Provider) WriteFile(_ context.Context, pth string, data []byte) error {
	return p.db.Update(func(txn *badger.Txn) error {
		now := time.Now().UnixMilli()

		existing, err := getRecord(txn, pth)
		if err == nil {
			if existing.Type.IsDirectory() {
				return wire.NewFileIsADirectory(pth)
			}
			existing.Data = data
			existing.MTime = now
			return putRecord(txn, pth, existing)
		}
		var perr *wire.ProviderError
		if !errors.As(err, &perr) || perr.Code != wire.CodeFileNotFound {
			return err
		}

		if err := parentDir(txn, pth); err != nil {
			return err
		}
		if err := putRecord(txn, pth, &record{Type: wire.FileTypeFile, Data: data, CTime: now, MTime: now}); err != nil {
			return err
		}
		return touchParent(txn, pth)
	})
}

// Delete implements provider.Provider. UseTrash is ignored: the store has
// no trash facility.
func (p *Provider) Delete(_ context.Context, pth string, opts wire.DeleteOptions) error {
	return p.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, pth)
		if err != nil {
			return err
		}

		if rec.Type.IsDirectory() {
			children, err := collectKeys(txn, childPrefix(pth))
			if err != nil {
				return err
			}
			if len(children) > 0 && !opts.Recursive {
				return wire.NewDirectoryNotEmpty(pth)
			}
			for _, key := range children {
				if err := txn.Delete(key); err != nil {
					return err
				}
			}
		}

		if err := txn.Delete(nodeKey(pth)); err != nil {
			return err
		}
		return touchParent(txn, pth)
	})
}

// Rename implements provider.Provider. Directories move with their whole
// subtree.
func (p *Provider) Rename(_ context.Context, oldPath, newPath string, opts wire.RenameOptions) error {
	return p.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, oldPath)
		if err != nil {
			return err
		}
		// A directory moved under itself would detach from the tree.
		if rec.Type.IsDirectory() &&
			strings.HasPrefix(path.Clean(newPath), path.Clean(oldPath)+"/") {
			return wire.Errorf(wire.CodeUnknown,
				"cannot rename %s into its own subtree", oldPath)
		}

		if _, err := getRecord(txn, newPath); err == nil {
			if !opts.Overwrite {
				return wire.NewFileExists(newPath)
			}
		}
		if err := parentDir(txn, newPath); err != nil {
			return err
		}

		if rec.Type.IsDirectory() {
			if err := moveSubtree(txn, oldPath, newPath); err != nil {
				return err
			}
		}

		if err := putRecord(txn, newPath, rec); err != nil {
			return err
		}
		if err := txn.Delete(nodeKey(oldPath)); err != nil {
			return err
		}
		if err := touchParent(txn, oldPath); err != nil {
			return err
		}
		return touchParent(txn, newPath)
	})
}

// Copy implements provider.Provider.
func (p *Provider) Copy(_ context.Context, srcPath, dstPath string, opts wire.CopyOptions) error {
	return p.db.Update(func(txn *badger.Txn) error {
		rec, err := getRecord(txn, srcPath)
		if err != nil {
			return err
		}
		if _, err := getRecord(txn, dstPath); err == nil && !opts.Overwrite {
			return wire.NewFileExists(dstPath)
		}
		if err := parentDir(txn, dstPath); err != nil {
			return err
		}

		now := time.Now().UnixMilli()
		if rec.Type.IsDirectory() {
			if err := copySubtree(txn, srcPath, dstPath, now); err != nil {
				return err
			}
		}

		fresh := &record{Type: rec.Type, Data: rec.Data, CTime: now, MTime: now}
		if err := putRecord(txn, dstPath, fresh); err != nil {
			return err
		}
		return touchParent(txn, dstPath)
	})
}

// collectKeys gathers every key under prefix. Iterators cannot outlive
// writes inside a transaction, so deletion happens after collection.
func collectKeys(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var keys [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	return keys, nil
}

func moveSubtree(txn *badger.Txn, oldDir, newDir string) error {
	return rewriteSubtree(txn, oldDir, newDir, true, 0)
}

func copySubtree(txn *badger.Txn, oldDir, newDir string, now int64) error {
	return rewriteSubtree(txn, oldDir, newDir, false, now)
}

// rewriteSubtree re-keys every descendant of oldDir under newDir. When move
// is set the originals are deleted; otherwise timestamps are reset to now.
func rewriteSubtree(txn *badger.Txn, oldDir, newDir string, move bool, now int64) error {
	keys, err := collectKeys(txn, childPrefix(oldDir))
	if err != nil {
		return err
	}

	oldPrefix := string(childPrefix(oldDir))
	newPrefix := string(childPrefix(newDir))

	for _, key := range keys {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		if !move && now != 0 {
			var rec record
			if err := json.Unmarshal(value, &rec); err != nil {
				return err
			}
			rec.CTime = now
			rec.MTime = now
			if value, err = json.Marshal(&rec); err != nil {
				return err
			}
		}

		newKey := newPrefix + strings.TrimPrefix(string(key), oldPrefix)
		if err := txn.Set([]byte(newKey), value); err != nil {
			return err
		}
		if move {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close implements provider.Provider.
func (p *Provider) Close() error {
	return p.db.Close()
}
