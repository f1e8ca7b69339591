package source

type (
	// FileID identifies a loaded file within a FileSet; it is the in-memory
	// counterpart of spec.md §3's "FileId" (a canonical path, interned).
	FileID uint32
	// FileFlags records how a File's bytes were obtained, for diagnostics
	// rendering (e.g. a virtual file has no line-ending normalization to
	// report) rather than for any evaluation-affecting behavior.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory rather than read from disk
	// (used by Parse, which per spec.md §6 "does not touch the filesystem").
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds one loaded module's path, raw bytes, and line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based line/column position, used to render diagnostics.
type LineCol struct {
	Line uint32
	Col  uint32
}
