package hook

// Type represents the type of hook.
type Type string

// Supported hook types.
const (
	PreDeploy  Type = "pre-deploy"
	PostDeploy Type = "post-deploy"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    Type
	Content string
}

// Context contains information passed to hooks.
type Context struct {
	PluginName    string
	PluginVersion string
	ArchivePath   string
	ServerPath    string
	Vars          map[string]interface{}
}

// Manager defines the interface for managing deploy hooks.
type Manager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType Type, ctx Context) error

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// RemoveHook removes a hook of the specified type
	RemoveHook(hookType Type) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType Type) bool
}
