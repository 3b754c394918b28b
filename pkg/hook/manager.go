// Package hook runs operator-supplied Tengo scripts around deployments.
package hook

import (
	"os"
	"sync"

	"github.com/plugbay/plugbay/pkg/errors"
)

// DefaultManager is the default implementation of Manager.
type DefaultManager struct {
	executor *TengoExecutor
	mutex    sync.RWMutex
}

// NewManager creates a new hook manager.
func NewManager() *DefaultManager {
	return &DefaultManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the specified hook type with the given context.
func (m *DefaultManager) Execute(hookType Type, ctx Context) error {
	if !m.HasHook(hookType) {
		return nil // No hook registered for this type
	}

	ctxCopy := ctx
	if ctxCopy.Vars == nil {
		ctxCopy.Vars = make(map[string]interface{})
	}

	return m.executor.Execute(hookType, ctxCopy)
}

// AddHook adds a new hook.
func (m *DefaultManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return errors.ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// LoadHookFile reads a script file and registers it under the given type.
func (m *DefaultManager) LoadHookFile(hookType Type, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to load %s hook from %s", hookType, path)
	}
	return m.AddHook(Hook{Type: hookType, Content: string(content)})
}

// RemoveHook removes a hook of the specified type.
func (m *DefaultManager) RemoveHook(hookType Type) error {
	if hookType == "" {
		return errors.ErrHookTypeEmpty
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of the specified type exists.
func (m *DefaultManager) HasHook(hookType Type) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.executor.HasScript(hookType)
}
