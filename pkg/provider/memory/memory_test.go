package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/marmos91/bridgefs/pkg/wire"
)

func codeOf(t *testing.T, err error) wire.ErrorCode {
	t.Helper()
	var perr *wire.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("error %v is not a ProviderError", err)
	}
	return perr.Code
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.WriteFile(ctx, "/hello.txt", []byte("hi")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := p.ReadFile(ctx, "/hello.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hi" {
		t.Errorf("data = %q", data)
	}

	stat, err := p.Stat(ctx, "/hello.txt")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if !stat.Type.IsFile() || stat.Size != 2 {
		t.Errorf("stat = %+v", stat)
	}
	if stat.MTime == 0 || stat.CTime == 0 {
		t.Errorf("timestamps missing: %+v", stat)
	}
}

func TestStatMissing(t *testing.T) {
	p := New()
	_, err := p.Stat(context.Background(), "/nope")
	if codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("code = %v", codeOf(t, err))
	}
}

func TestCreateDirectory(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.CreateDirectory(ctx, "/docs"); err != nil {
		t.Fatalf("CreateDirectory failed: %v", err)
	}
	if err := p.CreateDirectory(ctx, "/docs"); codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("duplicate mkdir code = %v", codeOf(t, err))
	}
	if err := p.CreateDirectory(ctx, "/missing/sub"); codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("orphan mkdir code = %v", codeOf(t, err))
	}
}

func TestReadDirectorySorted(t *testing.T) {
	ctx := context.Background()
	p := New()

	mustWrite(t, p, "/b.txt", "b")
	mustWrite(t, p, "/a.txt", "a")
	if err := p.CreateDirectory(ctx, "/c"); err != nil {
		t.Fatal(err)
	}

	entries, err := p.ReadDirectory(ctx, "/")
	if err != nil {
		t.Fatalf("ReadDirectory failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Name != "a.txt" || entries[1].Name != "b.txt" || entries[2].Name != "c" {
		t.Errorf("order wrong: %+v", entries)
	}
	if !entries[2].Type.IsDirectory() {
		t.Errorf("c should be a directory: %+v", entries[2])
	}
}

func TestReadDirectoryOnFile(t *testing.T) {
	p := New()
	mustWrite(t, p, "/f", "x")

	_, err := p.ReadDirectory(context.Background(), "/f")
	if codeOf(t, err) != wire.CodeFileNotADirectory {
		t.Errorf("code = %v", codeOf(t, err))
	}
}

func TestReadFileOnDirectory(t *testing.T) {
	ctx := context.Background()
	p := New()
	if err := p.CreateDirectory(ctx, "/d"); err != nil {
		t.Fatal(err)
	}

	_, err := p.ReadFile(ctx, "/d")
	if codeOf(t, err) != wire.CodeFileIsADirectory {
		t.Errorf("code = %v", codeOf(t, err))
	}

	if err := p.WriteFile(ctx, "/d", []byte("x")); codeOf(t, err) != wire.CodeFileIsADirectory {
		t.Errorf("write over dir code = %v", codeOf(t, err))
	}
}

func TestDeleteSemantics(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.CreateDirectory(ctx, "/d"); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, p, "/d/f", "x")

	err := p.Delete(ctx, "/d", wire.DeleteOptions{})
	if codeOf(t, err) != wire.CodeDirectoryNotEmpty {
		t.Errorf("non-recursive delete code = %v", codeOf(t, err))
	}

	if err := p.Delete(ctx, "/d", wire.DeleteOptions{Recursive: true}); err != nil {
		t.Fatalf("recursive delete failed: %v", err)
	}
	if _, err := p.Stat(ctx, "/d"); codeOf(t, err) != wire.CodeFileNotFound {
		t.Error("directory still present after delete")
	}

	if err := p.Delete(ctx, "/gone", wire.DeleteOptions{}); codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("delete missing code = %v", codeOf(t, err))
	}
}

func TestRenameSemantics(t *testing.T) {
	ctx := context.Background()
	p := New()

	mustWrite(t, p, "/a", "1")
	mustWrite(t, p, "/b", "2")

	err := p.Rename(ctx, "/a", "/b", wire.RenameOptions{})
	if codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("rename without overwrite code = %v", codeOf(t, err))
	}

	if err := p.Rename(ctx, "/a", "/b", wire.RenameOptions{Overwrite: true}); err != nil {
		t.Fatalf("rename with overwrite failed: %v", err)
	}
	data, err := p.ReadFile(ctx, "/b")
	if err != nil || string(data) != "1" {
		t.Errorf("ReadFile after rename = %q, %v", data, err)
	}
	if _, err := p.Stat(ctx, "/a"); codeOf(t, err) != wire.CodeFileNotFound {
		t.Error("source still present after rename")
	}

	if err := p.Rename(ctx, "/missing", "/x", wire.RenameOptions{}); codeOf(t, err) != wire.CodeFileNotFound {
		t.Errorf("rename missing code = %v", codeOf(t, err))
	}
}

func TestRenameDirectoryIntoItself(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.CreateDirectory(ctx, "/dir"); err != nil {
		t.Fatal(err)
	}
	if err := p.CreateDirectory(ctx, "/dir/sub"); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, p, "/dir/f", "x")

	err := p.Rename(ctx, "/dir", "/dir/sub/dir", wire.RenameOptions{})
	if codeOf(t, err) != wire.CodeUnknown {
		t.Fatalf("rename into own subtree code = %v", codeOf(t, err))
	}

	// The tree must be untouched after the rejected rename.
	if _, err := p.Stat(ctx, "/dir/f"); err != nil {
		t.Errorf("Stat after rejected rename failed: %v", err)
	}
	entries, err := p.ReadDirectory(ctx, "/dir")
	if err != nil || len(entries) != 2 {
		t.Errorf("ReadDirectory after rejected rename = %v, %v", entries, err)
	}

	// A target sharing the name as a prefix is a sibling, not a subtree.
	if err := p.Rename(ctx, "/dir", "/dirx", wire.RenameOptions{}); err != nil {
		t.Errorf("prefix-sibling rename failed: %v", err)
	}
	if _, err := p.Stat(ctx, "/dirx/f"); err != nil {
		t.Errorf("Stat after sibling rename failed: %v", err)
	}
}

func TestCopyRecursive(t *testing.T) {
	ctx := context.Background()
	p := New()

	if err := p.CreateDirectory(ctx, "/src"); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, p, "/src/f", "data")

	if err := p.Copy(ctx, "/src", "/dst", wire.CopyOptions{}); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	data, err := p.ReadFile(ctx, "/dst/f")
	if err != nil || string(data) != "data" {
		t.Errorf("copied content = %q, %v", data, err)
	}

	// Copies are independent of the source.
	mustWrite(t, p, "/src/f", "changed")
	data, _ = p.ReadFile(ctx, "/dst/f")
	if string(data) != "data" {
		t.Errorf("copy aliases source: %q", data)
	}

	if err := p.Copy(ctx, "/src", "/dst", wire.CopyOptions{}); codeOf(t, err) != wire.CodeFileExists {
		t.Errorf("copy without overwrite code = %v", codeOf(t, err))
	}
}

func mustWrite(t *testing.T, p *Provider, path, content string) {
	t.Helper()
	if err := p.WriteFile(context.Background(), path, []byte(content)); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", path, err)
	}
}
