package types

import (
	"context"

	"github.com/monadtools/monad-mcp-go/mcp"
)

// Tool interface defines the contract for all tools. Execute receives
// arguments already checked against InputSchema and returns the success
// text of the call; any returned error becomes the failure text.
type Tool interface {
	Name() string
	Description() string
	InputSchema() mcp.InputSchema
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// ToolRegistry interface defines the contract for tool registries
type ToolRegistry interface {
	RegisterTool(tool Tool) error
	GetTool(name string) (Tool, bool)
	ListTools() []Tool
}

// StringArg reads a string argument, returning "" when absent.
func StringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}
