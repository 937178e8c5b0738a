// Package wire defines the types shared between the plugin-host client and
// the privileged host endpoint: resource URIs, file metadata, operation
// options and the structured error carried across the process boundary.
//
// This is a leaf package with no internal dependencies. Both halves of the
// bridge import it, so the wire contract lives in exactly one place.
package wire

import (
	"fmt"
	"path"
	"strings"
)

// URI identifies a resource as a (scheme, path) pair. The scheme selects the
// file-system provider that handles the request; the path is interpreted by
// that provider and always starts with "/".
type URI struct {
	Scheme string
	Path   string
}

// ParseURI parses a string of the form "scheme:///path/to/file".
//
// The path component is cleaned (".." and "." segments resolved, duplicate
// slashes collapsed) so providers never see escaping paths. An empty path
// maps to "/".
func ParseURI(raw string) (URI, error) {
	idx := strings.Index(raw, "://")
	if idx <= 0 {
		return URI{}, fmt.Errorf("invalid resource URI %q: missing scheme separator", raw)
	}

	scheme := raw[:idx]
	if !validScheme(scheme) {
		return URI{}, fmt.Errorf("invalid resource URI %q: malformed scheme %q", raw, scheme)
	}

	p := raw[idx+len("://"):]
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return URI{Scheme: scheme, Path: path.Clean(p)}, nil
}

// MustParseURI is like ParseURI but panics on malformed input.
// Intended for tests and compile-time-constant URIs.
func MustParseURI(raw string) URI {
	u, err := ParseURI(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// String renders the URI in "scheme:///path" form.
func (u URI) String() string {
	return u.Scheme + "://" + u.Path
}

// IsZero reports whether the URI is the zero value.
func (u URI) IsZero() bool {
	return u.Scheme == "" && u.Path == ""
}

// MarshalText implements encoding.TextMarshaler so URIs travel as plain
// strings in JSON bodies.
func (u URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URI) UnmarshalText(text []byte) error {
	parsed, err := ParseURI(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// validScheme reports whether s is a well-formed URI scheme:
// a letter followed by letters, digits, "+", "-" or ".".
func validScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}
