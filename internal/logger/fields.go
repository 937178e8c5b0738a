package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so aggregated logs
// stay queryable.
const (
	// ========================================================================
	// Request correlation
	// ========================================================================
	KeyRequestID = "request_id" // HTTP request ID assigned by the router

	// ========================================================================
	// File System Operations
	// ========================================================================
	KeyOperation = "operation" // File operation name: stat, readdir, write, etc.
	KeyScheme    = "scheme"    // Mount scheme the operation targets
	KeyURI       = "uri"       // Full resource URI (scheme:///path)
	KeyPath      = "path"      // Provider-local path
	KeySource    = "source"    // Source URI for rename/copy operations
	KeyTarget    = "target"    // Destination URI for rename/copy operations
	KeySize      = "size"      // File or payload size in bytes

	// ========================================================================
	// Client Identification
	// ========================================================================
	KeyClientIP = "client_ip" // Client IP address

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Wire error code (FileNotFound, ...)
	KeyStatus     = "status"      // HTTP status code

	// ========================================================================
	// Storage Backend
	// ========================================================================
	KeyProvider = "provider" // Provider type: memory, local, badger, s3
	KeyReadonly = "readonly" // Read-only mount indicator
	KeyBucket   = "bucket"   // S3 bucket name
	KeyRegion   = "region"   // S3 region
	KeyDir      = "dir"      // On-disk directory (local root, badger dir)
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// RequestID returns a slog.Attr for the HTTP request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Operation returns a slog.Attr for a file operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Scheme returns a slog.Attr for a mount scheme
func Scheme(s string) slog.Attr {
	return slog.String(KeyScheme, s)
}

// URI returns a slog.Attr for a full resource URI
func URI(u string) slog.Attr {
	return slog.String(KeyURI, u)
}

// Path returns a slog.Attr for a provider-local path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Source returns a slog.Attr for the source URI of rename/copy
func Source(u string) slog.Attr {
	return slog.String(KeySource, u)
}

// Target returns a slog.Attr for the destination URI of rename/copy
func Target(u string) slog.Attr {
	return slog.String(KeyTarget, u)
}

// Size returns a slog.Attr for a size in bytes
func Size(s uint64) slog.Attr {
	return slog.Uint64(KeySize, s)
}

// ClientIP returns a slog.Attr for a client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a wire error code
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Provider returns a slog.Attr for a provider type
func Provider(t string) slog.Attr {
	return slog.String(KeyProvider, t)
}

// Readonly returns a slog.Attr for the read-only mount indicator
func Readonly(ro bool) slog.Attr {
	return slog.Bool(KeyReadonly, ro)
}

// Bucket returns a slog.Attr for an S3 bucket name
func Bucket(name string) slog.Attr {
	return slog.String(KeyBucket, name)
}

// Region returns a slog.Attr for an S3 region
func Region(r string) slog.Attr {
	return slog.String(KeyRegion, r)
}

// Dir returns a slog.Attr for an on-disk directory
func Dir(d string) slog.Attr {
	return slog.String(KeyDir, d)
}
