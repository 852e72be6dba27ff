package tools

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/tools/types"
)

var ErrToolNotFound = errors.New("tool not found")

func IsToolNotFound(err error) bool {
	return errors.Is(err, ErrToolNotFound)
}

// Manager implements ToolRegistry. Registration happens once at startup;
// after the transports start the registry is only read, so dispatch needs
// no coordination beyond the read lock.
type Manager struct {
	tools map[string]types.Tool
	mutex sync.RWMutex
}

// NewManager creates a new tool manager
func NewManager() *Manager {
	return &Manager{
		tools: make(map[string]types.Tool),
	}
}

// RegisterTool registers a new tool. A duplicate name is an error: tool
// names identify registry entries and must be unique, and callers treat
// this as fatal at startup.
func (m *Manager) RegisterTool(tool types.Tool) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if tool == nil {
		return errors.New("tool cannot be nil")
	}

	name := tool.Name()
	if name == "" {
		return errors.New("tool name cannot be empty")
	}
	if _, exists := m.tools[name]; exists {
		return fmt.Errorf("tool already registered: %s", name)
	}

	m.tools[name] = tool
	logger.Debug("Tool registered", "name", name)
	return nil
}

// RegisterAll registers every tool in the slice, stopping at the first
// failure.
func (m *Manager) RegisterAll(toolList []types.Tool) error {
	for _, tool := range toolList {
		if err := m.RegisterTool(tool); err != nil {
			return err
		}
	}
	return nil
}

// GetTool retrieves a tool by name
func (m *Manager) GetTool(name string) (types.Tool, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tool, exists := m.tools[name]
	return tool, exists
}

// ListTools returns all registered tools sorted by name.
func (m *Manager) ListTools() []types.Tool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	tools := make([]types.Tool, 0, len(m.tools))
	for _, tool := range m.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name() < tools[j].Name()
	})
	return tools
}

// GetTools returns the registered tools as wire-format definitions.
func (m *Manager) GetTools() []mcp.Tool {
	tools := m.ListTools()
	mcpTools := make([]mcp.Tool, 0, len(tools))

	for _, tool := range tools {
		mcpTools = append(mcpTools, mcp.Tool{
			Name:        tool.Name(),
			Description: tool.Description(),
			InputSchema: tool.InputSchema(),
		})
	}

	return mcpTools
}
