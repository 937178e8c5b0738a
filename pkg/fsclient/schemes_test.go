package fsclient

import "testing"

func TestIsWritableFileSystemTriState(t *testing.T) {
	fs := New(&fakeProxy{})

	if got := fs.IsWritableFileSystem("mem"); got != nil {
		t.Errorf("unregistered scheme should be unknown, got %v", *got)
	}

	fs.RegisterScheme("mem", SchemeCapabilities{})
	if got := fs.IsWritableFileSystem("mem"); got == nil || !*got {
		t.Errorf("writable scheme reported %v", got)
	}

	fs.RegisterScheme("ro", SchemeCapabilities{Readonly: true})
	if got := fs.IsWritableFileSystem("ro"); got == nil || *got {
		t.Errorf("read-only scheme reported %v", got)
	}
}

func TestRegisterSchemeDispose(t *testing.T) {
	fs := New(&fakeProxy{})

	reg := fs.RegisterScheme("foo", SchemeCapabilities{})
	if fs.IsWritableFileSystem("foo") == nil {
		t.Fatal("scheme not registered")
	}

	reg.Dispose()
	if got := fs.IsWritableFileSystem("foo"); got != nil {
		t.Errorf("disposed scheme should be unknown, got %v", *got)
	}

	// Disposal is idempotent.
	reg.Dispose()
}

func TestRegisterSchemeReplacesCapabilities(t *testing.T) {
	fs := New(&fakeProxy{})

	fs.RegisterScheme("s", SchemeCapabilities{Readonly: true})
	fs.RegisterScheme("s", SchemeCapabilities{Readonly: false})

	if got := fs.IsWritableFileSystem("s"); got == nil || !*got {
		t.Errorf("re-registration should win, got %v", got)
	}
}
