package deploy

import "fmt"

// Common deployment errors.
var (
	// ErrIncompatiblePlatform is returned when an archive does not claim the
	// target server's platform.
	ErrIncompatiblePlatform = fmt.Errorf("archive is not compatible with the server platform")
)
