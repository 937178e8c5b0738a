// Package handlers implements the HTTP handlers of the bridge endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/marmos91/bridgefs/pkg/metrics"
	"github.com/marmos91/bridgefs/pkg/provider"
	"github.com/marmos91/bridgefs/pkg/wire"
)

// FSHandler serves the file operation routes. Every handler decodes the
// request, routes it through the mount table and writes either the result
// value or the structured wire error.
type FSHandler struct {
	mounts       *provider.Mounts
	metrics      metrics.OperationMetrics
	maxWriteSize int64
}

// NewFSHandler creates the handler. metrics may be nil to disable
// collection; maxWriteSize caps write request bodies in bytes.
func NewFSHandler(mounts *provider.Mounts, m metrics.OperationMetrics, maxWriteSize int64) *FSHandler {
	return &FSHandler{mounts: mounts, metrics: m, maxWriteSize: maxWriteSize}
}

// Request bodies. URIs travel as strings; wire.URI handles the decoding.

type uriRequest struct {
	URI wire.URI `json:"uri"`
}

type writeRequest struct {
	URI     wire.URI    `json:"uri"`
	Content wire.Buffer `json:"content"`
}

type deleteRequest struct {
	URI     wire.URI           `json:"uri"`
	Options wire.DeleteOptions `json:"options"`
}

type renameRequest struct {
	Source  wire.URI           `json:"source"`
	Target  wire.URI           `json:"target"`
	Options wire.RenameOptions `json:"options"`
}

type copyRequest struct {
	Source  wire.URI         `json:"source"`
	Target  wire.URI         `json:"target"`
	Options wire.CopyOptions `json:"options"`
}

// decode unmarshals the request body into dst, rejecting trailing data
// after the JSON value. Body-size errors pass through untouched so callers
// can map them to the write limit message.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return wire.Errorf(wire.CodeUnknown, "malformed request body: %v", err)
	}
	if dec.More() {
		return wire.Errorf(wire.CodeUnknown, "malformed request body: unexpected trailing data")
	}
	return nil
}

// writeJSON writes a success payload.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the structured wire error with its mapped HTTP status.
func writeError(w http.ResponseWriter, err error) {
	var perr *wire.ProviderError
	if !errors.As(err, &perr) {
		perr = &wire.ProviderError{Code: wire.CodeUnknown, Message: err.Error()}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(perr.Code.HTTPStatus())
	_ = json.NewEncoder(w).Encode(perr)
}

// observe records one completed operation when metrics are enabled.
func (h *FSHandler) observe(operation, scheme string, start time.Time, err error) {
	if h.metrics == nil {
		return
	}
	code := ""
	if err != nil {
		var perr *wire.ProviderError
		if errors.As(err, &perr) {
			code = string(perr.Code)
		} else {
			code = string(wire.CodeUnknown)
		}
	}
	h.metrics.RecordOperation(operation, scheme, time.Since(start), code)
}

// Schemes handles GET /v1/fs/schemes: the current mount listing.
func (h *FSHandler) Schemes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.mounts.Schemes())
}

// Stat handles POST /v1/fs/stat.
func (h *FSHandler) Stat(w http.ResponseWriter, r *http.Request) {
	var req uriRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	stat, err := h.mounts.Stat(r.Context(), req.URI)
	h.observe("stat", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, stat)
}

// ReadDirectory handles POST /v1/fs/readdir.
func (h *FSHandler) ReadDirectory(w http.ResponseWriter, r *http.Request) {
	var req uriRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	entries, err := h.mounts.ReadDirectory(r.Context(), req.URI)
	h.observe("readdir", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []wire.DirEntry{}
	}
	writeJSON(w, entries)
}

// CreateDirectory handles POST /v1/fs/mkdir.
func (h *FSHandler) CreateDirectory(w http.ResponseWriter, r *http.Request) {
	var req uriRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	err := h.mounts.CreateDirectory(r.Context(), req.URI)
	h.observe("mkdir", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReadFile handles POST /v1/fs/read.
func (h *FSHandler) ReadFile(w http.ResponseWriter, r *http.Request) {
	var req uriRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	content, err := h.mounts.ReadFile(r.Context(), req.URI)
	h.observe("read", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordPayloadSize("read", req.URI.Scheme, len(content.Bytes()))
	}
	writeJSON(w, content)
}

// WriteFile handles POST /v1/fs/write. The body is capped at the
// configured write limit; oversized requests fail before reaching any
// provider.
func (h *FSHandler) WriteFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxWriteSize)

	var req writeRequest
	if err := decode(r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, wire.Errorf(wire.CodeUnknown,
				"write exceeds the configured limit of %d bytes", h.maxWriteSize))
			return
		}
		writeError(w, err)
		return
	}

	start := time.Now()
	err := h.mounts.WriteFile(r.Context(), req.URI, req.Content)
	h.observe("write", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordPayloadSize("write", req.URI.Scheme, len(req.Content.Bytes()))
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles POST /v1/fs/delete.
func (h *FSHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	err := h.mounts.Delete(r.Context(), req.URI, req.Options)
	h.observe("delete", req.URI.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rename handles POST /v1/fs/rename.
func (h *FSHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	err := h.mounts.Rename(r.Context(), req.Source, req.Target, req.Options)
	h.observe("rename", req.Source.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Copy handles POST /v1/fs/copy.
func (h *FSHandler) Copy(w http.ResponseWriter, r *http.Request) {
	var req copyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	start := time.Now()
	err := h.mounts.Copy(r.Context(), req.Source, req.Target, req.Options)
	h.observe("copy", req.Source.Scheme, start, err)
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
