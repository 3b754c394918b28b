// Package archive provides read-only entry access to zip-format plugin
// archives (jars). Entries are addressed by their exact internal path.
package archive

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mholt/archives"
)

// Reader opens plugin archives and reads single entries from them.
type Reader struct{}

// NewReader creates a new Reader instance.
func NewReader() *Reader {
	return &Reader{}
}

// ReadEntry returns the raw bytes of the named entry inside the archive.
// Entry names are case-sensitive internal paths, e.g. "plugin.yml" or
// "com/example/Main.class".
func (r *Reader) ReadEntry(ctx context.Context, archivePath, entryName string) ([]byte, error) {
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrArchiveNotFound
		}
		return nil, err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, ErrCorruptArchive
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	// FileSystem falls back to wrapping the plain file when no archive format
	// is recognized. A jar that cannot be read as a container is corrupt.
	if _, ok := fsys.(archives.FileFS); ok {
		return nil, ErrCorruptArchive
	}

	entry, err := fsys.Open(entryName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrEntryNotFound
		}
		return nil, ErrCorruptArchive
	}
	defer func() { _ = entry.Close() }()

	data, err := io.ReadAll(entry)
	if err != nil {
		return nil, ErrCorruptArchive
	}
	return data, nil
}

// ClassEntryPath converts a dotted class name into the archive entry path of
// its compiled class, e.g. "com.example.Main" -> "com/example/Main.class".
func ClassEntryPath(className string) string {
	return strings.ReplaceAll(className, ".", "/") + ".class"
}
