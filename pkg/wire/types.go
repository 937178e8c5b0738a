package wire

// FileType classifies a directory entry or stat result.
//
// SymbolicLink may be combined with File or Directory as a bit flag,
// mirroring how providers report links to their targets.
type FileType uint32

const (
	FileTypeUnknown      FileType = 0
	FileTypeFile         FileType = 1
	FileTypeDirectory    FileType = 2
	FileTypeSymbolicLink FileType = 64
)

// String returns a short human-readable name for the type.
func (t FileType) String() string {
	base := "unknown"
	switch {
	case t&FileTypeFile != 0:
		base = "file"
	case t&FileTypeDirectory != 0:
		base = "directory"
	}
	if t&FileTypeSymbolicLink != 0 {
		return "symlink-" + base
	}
	return base
}

// IsDirectory reports whether the type has the directory bit set.
func (t FileType) IsDirectory() bool { return t&FileTypeDirectory != 0 }

// IsFile reports whether the type has the regular-file bit set.
func (t FileType) IsFile() bool { return t&FileTypeFile != 0 }

// FileStat is the metadata record returned by stat. Timestamps are Unix
// milliseconds; providers that cannot supply a creation time report 0.
type FileStat struct {
	Type  FileType `json:"type"`
	Size  uint64   `json:"size"`
	CTime int64    `json:"ctime"`
	MTime int64    `json:"mtime"`
}

// DirEntry is one child of a directory listing.
type DirEntry struct {
	Name string   `json:"name"`
	Type FileType `json:"type"`
}

// DeleteOptions controls delete behavior. The client resolves defaults
// (both false) before the call goes out, so the host never applies its own
// default policy.
type DeleteOptions struct {
	// Recursive deletes directories together with their contents.
	Recursive bool `json:"recursive"`

	// UseTrash asks the provider to move the entry to a trash facility
	// instead of deleting permanently. Providers without trash support
	// ignore it.
	UseTrash bool `json:"use_trash"`
}

// RenameOptions controls rename behavior. Default: Overwrite false.
type RenameOptions struct {
	// Overwrite replaces an existing target instead of failing with
	// FileExists.
	Overwrite bool `json:"overwrite"`
}

// CopyOptions controls copy behavior. Default: Overwrite false.
type CopyOptions struct {
	Overwrite bool `json:"overwrite"`
}

// Buffer is the transport representation of file content. On the JSON wire
// the data travels base64-encoded; in process it is a plain byte slice.
// The client facade wraps outgoing content and unwraps incoming content so
// callers only ever see []byte.
type Buffer struct {
	Data []byte `json:"data"`
}

// Wrap adapts plain bytes into the transport representation.
func Wrap(data []byte) Buffer {
	return Buffer{Data: data}
}

// Bytes unwraps the transport representation into plain bytes.
func (b Buffer) Bytes() []byte {
	return b.Data
}

// SchemeInfo describes one mount exposed by the host: which scheme it
// serves and whether the mount is read-only.
type SchemeInfo struct {
	Scheme   string `json:"scheme"`
	Readonly bool   `json:"readonly"`
}
