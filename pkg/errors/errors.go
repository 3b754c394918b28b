package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to replace config file")
	ErrConfigFileChmod   = fmt.Errorf("failed to set config file permissions")
	ErrConfigMarshal     = fmt.Errorf("failed to marshal config")

	// Registration errors.
	ErrPathNotFound  = fmt.Errorf("path does not exist")
	ErrNotADirectory = fmt.Errorf("path is not a directory")

	// Hook errors.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
)

// ErrInvalidOutputFormatWithDetails returns a validation error naming the
// rejected output format.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("%w: invalid output format %q (valid: text, json)", ErrConfigValidation, format)
}

// ErrInvalidLogLevelWithDetails returns a validation error naming the
// rejected log level.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: invalid log level %q (valid: debug, info, warn, error)", ErrConfigValidation, level)
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
