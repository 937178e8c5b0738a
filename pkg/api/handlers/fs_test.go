package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marmos91/bridgefs/pkg/provider"
	"github.com/marmos91/bridgefs/pkg/provider/memory"
	"github.com/marmos91/bridgefs/pkg/wire"
)

func newTestHandler(t *testing.T) *FSHandler {
	t.Helper()

	mounts := provider.NewMounts()
	if _, err := mounts.Register("memfs", memory.New(), false); err != nil {
		t.Fatalf("Failed to register mount: %v", err)
	}
	if _, err := mounts.Register("snapshots", memory.New(), true); err != nil {
		t.Fatalf("Failed to register mount: %v", err)
	}
	return NewFSHandler(mounts, nil, 1<<20)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *wire.ProviderError {
	t.Helper()

	var perr wire.ProviderError
	if err := json.NewDecoder(w.Body).Decode(&perr); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	return &perr
}

func TestStat_NotFound(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.Stat, uriRequest{URI: wire.MustParseURI("memfs:///missing")})

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	perr := decodeError(t, w)
	if perr.Code != wire.CodeFileNotFound {
		t.Errorf("Expected code %s, got %s", wire.CodeFileNotFound, perr.Code)
	}
	if perr.Message != "no such file or directory: /missing" {
		t.Errorf("Unexpected message: %q", perr.Message)
	}
}

func TestStat_UnknownScheme(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.Stat, uriRequest{URI: wire.MustParseURI("nope:///x")})

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	perr := decodeError(t, w)
	if perr.Code != wire.CodeNoProvider {
		t.Errorf("Expected code %s, got %s", wire.CodeNoProvider, perr.Code)
	}
}

func TestWriteThenStat(t *testing.T) {
	h := newTestHandler(t)
	uri := wire.MustParseURI("memfs:///hello.txt")

	w := postJSON(t, h.WriteFile, writeRequest{URI: uri, Content: wire.Wrap([]byte("hello"))})
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusNoContent, w.Code, w.Body.String())
	}

	w = postJSON(t, h.Stat, uriRequest{URI: uri})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var stat wire.FileStat
	if err := json.NewDecoder(w.Body).Decode(&stat); err != nil {
		t.Fatalf("Failed to decode stat: %v", err)
	}
	if !stat.Type.IsFile() {
		t.Errorf("Expected a file, got %s", stat.Type)
	}
	if stat.Size != 5 {
		t.Errorf("Expected size 5, got %d", stat.Size)
	}
}

func TestReadFile_ContentRoundTrip(t *testing.T) {
	h := newTestHandler(t)
	uri := wire.MustParseURI("memfs:///data.bin")
	payload := []byte{0x00, 0x01, 0xFF, 0xFE}

	w := postJSON(t, h.WriteFile, writeRequest{URI: uri, Content: wire.Wrap(payload)})
	if w.Code != http.StatusNoContent {
		t.Fatalf("Write failed with status %d", w.Code)
	}

	w = postJSON(t, h.ReadFile, uriRequest{URI: uri})
	if w.Code != http.StatusOK {
		t.Fatalf("Read failed with status %d", w.Code)
	}

	var content wire.Buffer
	if err := json.NewDecoder(w.Body).Decode(&content); err != nil {
		t.Fatalf("Failed to decode content: %v", err)
	}
	if !bytes.Equal(content.Bytes(), payload) {
		t.Errorf("Content mismatch: got %v, want %v", content.Bytes(), payload)
	}
}

func TestReadDirectory_EmptyIsArray(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.ReadDirectory, uriRequest{URI: wire.MustParseURI("memfs:///")})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := strings.TrimSpace(w.Body.String())
	if body != "[]" {
		t.Errorf("Expected empty array body, got %q", body)
	}
}

func TestWriteFile_ReadonlyMount(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.WriteFile, writeRequest{
		URI:     wire.MustParseURI("snapshots:///x"),
		Content: wire.Wrap([]byte("nope")),
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, w.Code)
	}

	perr := decodeError(t, w)
	if perr.Code != wire.CodeNoPermissions {
		t.Errorf("Expected code %s, got %s", wire.CodeNoPermissions, perr.Code)
	}
}

func TestWriteFile_ExceedsLimit(t *testing.T) {
	mounts := provider.NewMounts()
	if _, err := mounts.Register("memfs", memory.New(), false); err != nil {
		t.Fatalf("Failed to register mount: %v", err)
	}
	h := NewFSHandler(mounts, nil, 64)

	big := bytes.Repeat([]byte("a"), 256)
	w := postJSON(t, h.WriteFile, writeRequest{
		URI:     wire.MustParseURI("memfs:///big"),
		Content: wire.Wrap(big),
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	perr := decodeError(t, w)
	if !strings.Contains(perr.Message, "configured limit") {
		t.Errorf("Unexpected message: %q", perr.Message)
	}
}

func TestDelete_NonRecursiveNonEmpty(t *testing.T) {
	h := newTestHandler(t)

	w := postJSON(t, h.CreateDirectory, uriRequest{URI: wire.MustParseURI("memfs:///dir")})
	if w.Code != http.StatusNoContent {
		t.Fatalf("mkdir failed with status %d", w.Code)
	}
	w = postJSON(t, h.WriteFile, writeRequest{
		URI:     wire.MustParseURI("memfs:///dir/child"),
		Content: wire.Wrap([]byte("x")),
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("write failed with status %d", w.Code)
	}

	w = postJSON(t, h.Delete, deleteRequest{URI: wire.MustParseURI("memfs:///dir")})
	perr := decodeError(t, w)
	if perr.Code != wire.CodeDirectoryNotEmpty {
		t.Errorf("Expected code %s, got %s", wire.CodeDirectoryNotEmpty, perr.Code)
	}

	w = postJSON(t, h.Delete, deleteRequest{
		URI:     wire.MustParseURI("memfs:///dir"),
		Options: wire.DeleteOptions{Recursive: true},
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestRename_NoOverwrite(t *testing.T) {
	h := newTestHandler(t)

	for _, name := range []string{"a", "b"} {
		w := postJSON(t, h.WriteFile, writeRequest{
			URI:     wire.MustParseURI("memfs:///" + name),
			Content: wire.Wrap([]byte(name)),
		})
		if w.Code != http.StatusNoContent {
			t.Fatalf("write %s failed with status %d", name, w.Code)
		}
	}

	w := postJSON(t, h.Rename, renameRequest{
		Source: wire.MustParseURI("memfs:///a"),
		Target: wire.MustParseURI("memfs:///b"),
	})
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}

	w = postJSON(t, h.Rename, renameRequest{
		Source:  wire.MustParseURI("memfs:///a"),
		Target:  wire.MustParseURI("memfs:///b"),
		Options: wire.RenameOptions{Overwrite: true},
	})
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}

func TestMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	h.Stat(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	perr := decodeError(t, w)
	if perr.Code != wire.CodeUnknown {
		t.Errorf("Expected code %s, got %s", wire.CodeUnknown, perr.Code)
	}
	if !strings.Contains(perr.Message, "malformed request body") {
		t.Errorf("Unexpected message: %q", perr.Message)
	}
}

func TestTrailingBodyData(t *testing.T) {
	h := newTestHandler(t)

	body := `{"uri":"memfs:///x"}{"uri":"memfs:///y"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Stat(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	perr := decodeError(t, w)
	if perr.Code != wire.CodeUnknown {
		t.Errorf("Expected code %s, got %s", wire.CodeUnknown, perr.Code)
	}
	if !strings.Contains(perr.Message, "trailing data") {
		t.Errorf("Unexpected message: %q", perr.Message)
	}
}

func TestSchemes(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/v1/fs/schemes", nil)
	w := httptest.NewRecorder()
	h.Schemes(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var infos []wire.SchemeInfo
	if err := json.NewDecoder(w.Body).Decode(&infos); err != nil {
		t.Fatalf("Failed to decode schemes: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 schemes, got %d", len(infos))
	}
	if infos[0].Scheme != "memfs" || infos[0].Readonly {
		t.Errorf("Unexpected first scheme: %+v", infos[0])
	}
	if infos[1].Scheme != "snapshots" || !infos[1].Readonly {
		t.Errorf("Unexpected second scheme: %+v", infos[1])
	}
}
