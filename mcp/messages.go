package mcp

// Tool represents a tool definition advertised via tools/list
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema represents the JSON schema for tool input
type InputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
	Title      string         `json:"title,omitempty"`
}

// Content is one entry of a tool result's content sequence.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolResult is the fixed-shape envelope every tool call produces,
// success and failure alike. Callers distinguish the two by IsError
// and the message text, never by envelope shape.
type ToolResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError,omitempty"`
}

// NewToolResultText wraps success text in a result envelope.
func NewToolResultText(text string) *ToolResult {
	return &ToolResult{
		Content: []Content{{Type: ContentTypeText, Text: text}},
	}
}

// NewToolResultError wraps a failure message in a result envelope.
func NewToolResultError(message string) *ToolResult {
	return &ToolResult{
		Content: []Content{{Type: ContentTypeText, Text: message}},
		IsError: true,
	}
}
