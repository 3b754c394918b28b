package fsutil

// Default permissions for files and directories created by plugbay.
const (
	// DirModeDefault is the default permission for created directories.
	DirModeDefault = 0o755

	// FileModeDefault is the default permission for created files.
	FileModeDefault = 0o644
)
