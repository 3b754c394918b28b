package archive

import "fmt"

// Common archive errors.
var (
	// ErrArchiveNotFound is returned when the archive file does not exist.
	ErrArchiveNotFound = fmt.Errorf("archive not found")

	// ErrEntryNotFound is returned when the named entry is absent inside the archive.
	ErrEntryNotFound = fmt.Errorf("entry not found in archive")

	// ErrCorruptArchive is returned when the file cannot be opened as a zip container.
	ErrCorruptArchive = fmt.Errorf("corrupt archive")
)
