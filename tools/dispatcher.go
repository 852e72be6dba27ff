package tools

import (
	"context"
	"fmt"

	"github.com/monadtools/monad-mcp-go/logger"
	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/tools/types"
)

// Dispatch resolves a tool call to a result envelope. Every failure path
// (unknown tool, schema violation, handler error, handler panic) becomes
// an isError envelope; nothing raises past this boundary, so the
// transport loop above always has exactly one response to write. There is
// no retry here: each dispatch is a single best-effort attempt, and
// state-changing tools must never be re-driven automatically.
func (m *Manager) Dispatch(ctx context.Context, name string, args map[string]any) *mcp.ToolResult {
	tool, exists := m.GetTool(name)
	if !exists {
		logger.Debug("Dispatch for unknown tool", "name", name)
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name))
	}

	validated, err := ValidateArgs(tool.InputSchema(), args)
	if err != nil {
		logger.Debug("Tool arguments rejected", "name", name, "error", err)
		return mcp.NewToolResultError(err.Error())
	}

	text, err := invoke(ctx, tool, validated)
	if err != nil {
		logger.Debug("Tool call failed", "name", name, "error", err)
		return mcp.NewToolResultError(err.Error())
	}

	logger.Debug("Tool call succeeded", "name", name)
	return mcp.NewToolResultText(text)
}

// invoke runs the handler inside a protected scope so a panicking tool
// degrades to a failure envelope instead of tearing down the serve loop.
func invoke(ctx context.Context, tool types.Tool, args map[string]any) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Tool panicked", "name", tool.Name(), "panic", r)
			err = fmt.Errorf("tool %s failed unexpectedly: %v", tool.Name(), r)
		}
	}()
	return tool.Execute(ctx, args)
}
