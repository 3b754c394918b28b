package hook

import (
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/plugbay/plugbay/pkg/errors"
)

// TengoExecutor handles the execution of Tengo scripts.
type TengoExecutor struct {
	scripts map[Type]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[Type]string),
	}
}

// Execute runs the specified hook type with the given context.
func (e *TengoExecutor) Execute(hookType Type, ctx Context) error {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	script, exists := e.scripts[hookType]
	if !exists {
		return nil // No script for this hook type
	}

	scriptInstance := tengo.NewScript([]byte(script))

	// Add standard library modules
	modules := stdlib.GetModuleMap("fmt", "os", "strings", "times")
	scriptInstance.SetImports(modules)

	// Add context variables
	_ = scriptInstance.Add("pluginName", ctx.PluginName)
	_ = scriptInstance.Add("pluginVersion", ctx.PluginVersion)
	_ = scriptInstance.Add("archivePath", ctx.ArchivePath)
	_ = scriptInstance.Add("serverPath", ctx.ServerPath)

	// Add custom variables
	for k, v := range ctx.Vars {
		_ = scriptInstance.Add(k, v)
	}

	compiled, err := scriptInstance.Run()
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", hookType, err)
	}

	// Check for any returned error
	errVar := compiled.Get("err")
	if errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrap(errors.ErrHookScript, v.Error())
		case string:
			if v != "" {
				return errors.Wrap(errors.ErrHookScript, v)
			}
		}
	}

	return nil
}

// AddScript adds or updates a script for the specified hook type.
func (e *TengoExecutor) AddScript(hookType Type, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for the specified hook type.
func (e *TengoExecutor) RemoveScript(hookType Type) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for the specified hook type.
func (e *TengoExecutor) HasScript(hookType Type) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
