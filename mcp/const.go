package mcp

// Protocol version
const (
	ProtocolVersion = "2025-06-18"
)

// Content types carried in tool results
const (
	ContentTypeText = "text"
)
