package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marmos91/bridgefs/pkg/wire"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func codeOf(t *testing.T, err error) wire.ErrorCode {
	t.Helper()
	var perr *wire.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a ProviderError", err)
	}
	return perr.Code
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("New accepted a missing root")
	}

	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(f); err == nil {
		t.Error("New accepted a file as root")
	}
}

func TestWriteReadStat(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.WriteFile(ctx, "/notes.txt", []byte("content")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := p.ReadFile(ctx, "/notes.txt")
	if err != nil || string(data) != "content" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}

	stat, err := p.Stat(ctx, "/notes.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !stat.Type.IsFile() || stat.Size != 7 || stat.MTime == 0 {
		t.Errorf("stat = %+v", stat)
	}
}

func TestErrorMapping(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, err := p.Stat(ctx, "/missing"); codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("stat missing code = %v", codeOf(t, err))
	}

	if err := p.CreateDirectory(ctx, "/d"); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateDirectory(ctx, "/d"); codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("duplicate mkdir code = %v", codeOf(t, err))
	}
	if _, err := p.ReadFile(ctx, "/d"); codeOf(t, err) != wire.CodeFileIsADirectory {
		t.Errorf("read dir code = %v", codeOf(t, err))
	}

	if err := p.WriteFile(ctx, "/d/f", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ReadDirectory(ctx, "/d/f"); codeOf(t, err) != wire.CodeFileNotADirectory {
		t.Errorf("readdir on file code = %v", codeOf(t, err))
	}

	if err := p.Delete(ctx, "/d", wire.DeleteOptions{}); codeOf(t, err) != wire.CodeDirectoryNotEmpty {
		t.Errorf("non-recursive delete code = %v", codeOf(t, err))
	}
	if err := p.Delete(ctx, "/d", wire.DeleteOptions{Recursive: true}); err != nil {
		t.Fatalf("recursive delete failed: %v", err)
	}
	if err := p.Delete(ctx, "/d", wire.DeleteOptions{Recursive: true}); codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("recursive delete of missing path code = %v", codeOf(t, err))
	}
}

func TestReadDirectoryTypes(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.CreateDirectory(ctx, "/sub"); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteFile(ctx, "/f.txt", []byte("x")); err != nil {
		t.Fatal(err)
	}

	entries, err := p.ReadDirectory(ctx, "/")
	if err != nil {
		t.Fatalf("ReadDirectory failed: %v", err)
	}

	types := map[string]wire.FileType{}
	for _, e := range entries {
		types[e.Name] = e.Type
	}
	if !types["sub"].IsDirectory() {
		t.Errorf("sub type = %v", types["sub"])
	}
	if !types["f.txt"].IsFile() {
		t.Errorf("f.txt type = %v", types["f.txt"])
	}
}

func TestRenameOverwrite(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.WriteFile(ctx, "/a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := p.WriteFile(ctx, "/b", []byte("2")); err != nil {
		t.Fatal(err)
	}

	if err := p.Rename(ctx, "/a", "/b", wire.RenameOptions{}); codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("rename code = %v", codeOf(t, err))
	}
	if err := p.Rename(ctx, "/a", "/b", wire.RenameOptions{Overwrite: true}); err != nil {
		t.Fatalf("rename with overwrite failed: %v", err)
	}

	data, err := p.ReadFile(ctx, "/b")
	if err != nil || string(data) != "1" {
		t.Errorf("ReadFile after rename = %q, %v", data, err)
	}
}

func TestCopyFile(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if err := p.WriteFile(ctx, "/src", []byte("payload")); err != nil {
		t.Fatal(err)
	}

	if err := p.Copy(ctx, "/src", "/dst", wire.CopyOptions{}); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	data, err := p.ReadFile(ctx, "/dst")
	if err != nil || string(data) != "payload" {
		t.Errorf("copied content = %q, %v", data, err)
	}

	if err := p.Copy(ctx, "/src", "/dst", wire.CopyOptions{}); codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("copy without overwrite code = %v", codeOf(t, err))
	}

	if err := p.CreateDirectory(ctx, "/dir"); err != nil {
		t.Fatal(err)
	}
	if err := p.Copy(ctx, "/dir", "/dir2", wire.CopyOptions{}); codeOf(t, err) != wire.CodeFileIsADirectory {
		t.Errorf("copy directory code = %v", codeOf(t, err))
	}
}
