package plan

import (
	"path/filepath"
	"strings"
	"time"
)

// FileEntry describes one input file. It is built once from the filesystem
// at plan-construction time and never mutated.
type FileEntry struct {
	// Path is the path exactly as given on the command line.
	Path string
	// Dir is the directory portion including the trailing separator, or ""
	// when Path is a bare name.
	Dir string
	// Base is the file name including any extension.
	Base string
	// NoText and Ext split Base at its final dot; Ext includes the dot. A
	// leading dot does not start an extension, so dotfiles have none.
	NoText string
	Ext    string
	// ModTime is the file's modification time.
	ModTime time.Time
}

// NewFileEntry derives the path components for path. mtime may be the zero
// value when date/time substitution is disabled for the run.
func NewFileEntry(path string, mtime time.Time) FileEntry {
	dir, base := filepath.Split(path)
	noText, ext := splitExt(base)
	return FileEntry{
		Path:    path,
		Dir:     dir,
		Base:    base,
		NoText:  noText,
		Ext:     ext,
		ModTime: mtime,
	}
}

// splitExt splits name at its final dot. A dot at position zero does not
// begin an extension.
func splitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}
