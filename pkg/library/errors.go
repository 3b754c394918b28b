package library

import "fmt"

// Common library errors.
var (
	// ErrLibraryNotFound is returned when no library is registered under an id.
	ErrLibraryNotFound = fmt.Errorf("library not found")

	// ErrLibraryExists is returned when a library id is already registered.
	ErrLibraryExists = fmt.Errorf("library already exists")
)
