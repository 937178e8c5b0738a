package wire

import "testing"

func TestParseURI(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    URI
		wantErr bool
	}{
		{name: "simple", raw: "mem:///notes/todo.txt", want: URI{Scheme: "mem", Path: "/notes/todo.txt"}},
		{name: "root only", raw: "local://", want: URI{Scheme: "local", Path: "/"}},
		{name: "missing leading slash", raw: "mem://a/b", want: URI{Scheme: "mem", Path: "/a/b"}},
		{name: "dot segments cleaned", raw: "mem:///a/../b/./c", want: URI{Scheme: "mem", Path: "/b/c"}},
		{name: "escape attempt clamped", raw: "mem:///../../etc/passwd", want: URI{Scheme: "mem", Path: "/etc/passwd"}},
		{name: "scheme with digits", raw: "s3:///bucket-data/x", want: URI{Scheme: "s3", Path: "/bucket-data/x"}},
		{name: "no separator", raw: "/just/a/path", wantErr: true},
		{name: "empty scheme", raw: ":///x", wantErr: true},
		{name: "scheme starts with digit", raw: "9p:///x", wantErr: true},
		{name: "scheme with slash", raw: "a/b:///x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURI(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseURI(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURI(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseURI(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	u := MustParseURI("mem:///a/b.txt")
	again, err := ParseURI(u.String())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if again != u {
		t.Errorf("round trip changed URI: %v -> %v", u, again)
	}
}

func TestURITextMarshaling(t *testing.T) {
	u := MustParseURI("badger:///k/v")

	text, err := u.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if string(text) != "badger:///k/v" {
		t.Errorf("MarshalText = %q, want %q", text, "badger:///k/v")
	}

	var decoded URI
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if decoded != u {
		t.Errorf("UnmarshalText = %v, want %v", decoded, u)
	}

	var bad URI
	if err := bad.UnmarshalText([]byte("no-scheme-here")); err == nil {
		t.Error("UnmarshalText accepted malformed URI")
	}
}

func TestFileTypeString(t *testing.T) {
	if got := FileTypeFile.String(); got != "file" {
		t.Errorf("FileTypeFile.String() = %q", got)
	}
	if got := FileTypeDirectory.String(); got != "directory" {
		t.Errorf("FileTypeDirectory.String() = %q", got)
	}
	if got := (FileTypeFile | FileTypeSymbolicLink).String(); got != "symlink-file" {
		t.Errorf("symlink file String() = %q", got)
	}
	if got := FileTypeUnknown.String(); got != "unknown" {
		t.Errorf("FileTypeUnknown.String() = %q", got)
	}
}

func TestProviderErrorHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeFileNotFound, 404},
		{CodeFileExists, 409},
		{CodeDirectoryNotEmpty, 409},
		{CodeFileNotADirectory, 400},
		{CodeFileIsADirectory, 400},
		{CodeNoPermissions, 403},
		{CodeUnavailable, 503},
		{CodeNoProvider, 503},
		{CodeUnknown, 500},
		{ErrorCode("SomethingNew"), 500},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}
