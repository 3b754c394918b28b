package server

import "fmt"

// Common server errors.
var (
	// ErrServerNotFound is returned when no server is registered under an id.
	ErrServerNotFound = fmt.Errorf("server not found")

	// ErrServerExists is returned when a server id is already registered.
	ErrServerExists = fmt.Errorf("server already exists")
)
