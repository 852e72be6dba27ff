package shared

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/mcp/jsonrpc"
	"github.com/monadtools/monad-mcp-go/prompts"
	"github.com/monadtools/monad-mcp-go/tools"
)

const pageSize = 50

// ServerInfo identifies the server in initialize results.
type ServerInfo struct {
	Name    string
	Version string
}

// ResourceReader resolves a resource URI to its JSON-marshalable payload.
type ResourceReader func(uri string) (any, error)

const ChainInfoResourceURI = "monad://chain/info"

func BuildInitializeResponse(msg jsonrpc.Request, info ServerInfo) *jsonrpc.Response {
	return jsonrpc.NewResponse(msg.ID, map[string]any{
		"protocolVersion": mcp.ProtocolVersion,
		"capabilities":    ServerCapabilities(),
		"serverInfo": map[string]any{
			"name":    info.Name,
			"version": info.Version,
		},
	})
}

func BuildToolsListResponse(msg jsonrpc.Request, toolDefs []mcp.Tool) *jsonrpc.Response {
	start, err := ParseCursor(msg.Params, len(toolDefs))
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), err.Error(), nil)
	}
	end := min(start+pageSize, len(toolDefs))

	result := map[string]any{
		"tools": toolDefs[start:end],
	}
	if end < len(toolDefs) {
		result["nextCursor"] = strconv.Itoa(end)
	}
	return jsonrpc.NewResponse(msg.ID, result)
}

// BuildToolCallResponse resolves a tools/call request through the
// dispatcher. Malformed payloads are the only JSON-RPC level failures;
// everything past parsing comes back as a result envelope, so a tool
// failure is still a successful JSON-RPC exchange.
func BuildToolCallResponse(ctx context.Context, msg jsonrpc.Request, manager *tools.Manager) *jsonrpc.Response {
	var toolCall struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(msg.Params, &toolCall); err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Invalid tool call payload", nil)
	}

	toolName := strings.TrimSpace(toolCall.Name)
	if toolName == "" {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Tool name is required", nil)
	}

	arguments := toolCall.Arguments
	if arguments == nil {
		arguments = map[string]any{}
	}

	return jsonrpc.NewResponse(msg.ID, manager.Dispatch(ctx, toolName, arguments))
}

func BuildResourcesListResponse(msg jsonrpc.Request) *jsonrpc.Response {
	resources := defaultResources()
	start, err := ParseCursor(msg.Params, len(resources))
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), err.Error(), nil)
	}
	end := min(start+pageSize, len(resources))

	result := map[string]any{
		"resources": resources[start:end],
	}
	if end < len(resources) {
		result["nextCursor"] = strconv.Itoa(end)
	}
	return jsonrpc.NewResponse(msg.ID, result)
}

func BuildResourcesReadResponse(msg jsonrpc.Request, readResource ResourceReader) *jsonrpc.Response {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Invalid resources/read payload", nil)
	}
	if params.URI == "" {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Resource URI is required", nil)
	}
	if readResource == nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Resource handler is not configured", nil)
	}

	result, err := readResource(params.URI)
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), err.Error(), nil)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInternalError), "Failed to encode resource result", nil)
	}

	return jsonrpc.NewResponse(msg.ID, map[string]any{
		"contents": []map[string]any{
			{
				"uri":      params.URI,
				"mimeType": "application/json",
				"text":     string(resultJSON),
			},
		},
	})
}

func BuildPromptsListResponse(msg jsonrpc.Request, registry *prompts.Registry) *jsonrpc.Response {
	defs := registry.ListPrompts()
	start, err := ParseCursor(msg.Params, len(defs))
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), err.Error(), nil)
	}
	end := min(start+pageSize, len(defs))

	listed := make([]map[string]any, 0, end-start)
	for _, prompt := range defs[start:end] {
		entry := map[string]any{
			"name":        prompt.Name,
			"description": prompt.Description,
		}
		if len(prompt.Arguments) > 0 {
			args := make([]map[string]any, 0, len(prompt.Arguments))
			for _, arg := range prompt.Arguments {
				args = append(args, map[string]any{
					"name":        arg.Name,
					"description": arg.Description,
					"required":    arg.Required,
				})
			}
			entry["arguments"] = args
		}
		listed = append(listed, entry)
	}

	result := map[string]any{
		"prompts": listed,
	}
	if end < len(defs) {
		result["nextCursor"] = strconv.Itoa(end)
	}
	return jsonrpc.NewResponse(msg.ID, result)
}

func BuildPromptsGetResponse(msg jsonrpc.Request, registry *prompts.Registry) *jsonrpc.Response {
	var params struct {
		Name      string            `json:"name"`
		Arguments map[string]string `json:"arguments"`
	}
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Invalid prompts/get payload", nil)
		}
	}
	if strings.TrimSpace(params.Name) == "" {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), "Prompt name is required", nil)
	}

	prompt, ok := registry.GetPrompt(params.Name)
	if !ok {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), fmt.Sprintf("Unknown prompt: %s", params.Name), nil)
	}
	rendered, err := prompt.Render(params.Arguments)
	if err != nil {
		return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrInvalidParams), err.Error(), nil)
	}

	return jsonrpc.NewResponse(msg.ID, map[string]any{
		"description": prompt.Description,
		"messages": []map[string]any{
			{
				"role": "user",
				"content": map[string]any{
					"type": mcp.ContentTypeText,
					"text": rendered,
				},
			},
		},
	})
}

func BuildPingResponse(msg jsonrpc.Request) *jsonrpc.Response {
	return jsonrpc.NewResponse(msg.ID, map[string]any{})
}

// DispatchStandardMethod handles shared non-initialize JSON-RPC methods
// for all transports.
func DispatchStandardMethod(ctx context.Context, msg jsonrpc.Request, manager *tools.Manager, promptRegistry *prompts.Registry, readResource ResourceReader) any {
	switch msg.Method {
	case "tools/list":
		return BuildToolsListResponse(msg, manager.GetTools())
	case "tools/call":
		return BuildToolCallResponse(ctx, msg, manager)
	case "prompts/list":
		return BuildPromptsListResponse(msg, promptRegistry)
	case "prompts/get":
		return BuildPromptsGetResponse(msg, promptRegistry)
	case "resources/list":
		return BuildResourcesListResponse(msg)
	case "resources/read":
		return BuildResourcesReadResponse(msg, readResource)
	case "ping":
		return BuildPingResponse(msg)
	default:
		if msg.ID != nil {
			return jsonrpc.NewErrorResponse(msg.ID, int(jsonrpc.ErrMethodNotFound), "Method not found", map[string]any{
				"method": msg.Method,
			})
		}
		return nil
	}
}

func ServerCapabilities() map[string]any {
	return map[string]any{
		"tools":     map[string]any{},
		"prompts":   map[string]any{},
		"resources": map[string]any{},
	}
}

func ParseCursor(paramsRaw json.RawMessage, total int) (int, error) {
	if len(paramsRaw) == 0 {
		return 0, nil
	}

	var params struct {
		Cursor string `json:"cursor"`
	}
	if err := json.Unmarshal(paramsRaw, &params); err != nil {
		return 0, fmt.Errorf("invalid params payload")
	}
	if strings.TrimSpace(params.Cursor) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(params.Cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor value")
	}
	if offset < 0 || offset > total {
		return 0, fmt.Errorf("invalid cursor value")
	}
	return offset, nil
}

func defaultResources() []map[string]any {
	return []map[string]any{
		{
			"uri":      ChainInfoResourceURI,
			"name":     "Chain Info",
			"mimeType": "application/json",
		},
	}
}

// ParseJSONRPCFrame validates and parses one JSON-RPC message frame.
// Both stdio and streamable HTTP require a single message per frame.
func ParseJSONRPCFrame(frame []byte) ([]jsonrpc.Request, []any, bool, error) {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 {
		return nil, nil, false, fmt.Errorf("empty message")
	}

	if trimmed[0] == '[' {
		return nil, []any{jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil)}, false, nil
	}

	requests := make([]jsonrpc.Request, 0, 1)
	prebuiltResponses := make([]any, 0)
	acceptedOneWay := false

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrParseError), "Parse error", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	requestID, hasID, validID := parseIDFromEnvelope(envelope)
	if !validID {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	var msg jsonrpc.Request
	if err := json.Unmarshal(trimmed, &msg); err != nil {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(requestID, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	if msg.Method == "" {
		_, hasResult := envelope["result"]
		_, hasErr := envelope["error"]
		if hasResult || hasErr {
			// A client-originated response frame; accept it one-way.
			if msg.JSONRPC != jsonrpc.Version || !hasID || (hasResult && hasErr) {
				prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
			} else {
				acceptedOneWay = true
			}
			return requests, prebuiltResponses, acceptedOneWay, nil
		}
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(requestID, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	if msg.JSONRPC != jsonrpc.Version {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(requestID, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	if rawParams, ok := envelope["params"]; ok && !isValidParamsValue(rawParams) {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(requestID, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	if msg.Method == "initialize" && msg.ID == nil {
		prebuiltResponses = append(prebuiltResponses, jsonrpc.NewErrorResponse(nil, int(jsonrpc.ErrInvalidRequest), "Invalid request", nil))
		return requests, prebuiltResponses, acceptedOneWay, nil
	}

	requests = append(requests, msg)
	return requests, prebuiltResponses, acceptedOneWay, nil
}

func parseIDFromEnvelope(envelope map[string]json.RawMessage) (any, bool, bool) {
	rawID, exists := envelope["id"]
	if !exists {
		return nil, false, true
	}
	trimmed := bytes.TrimSpace(rawID)
	if len(trimmed) == 0 {
		return nil, true, false
	}

	var id any
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	if err := decoder.Decode(&id); err != nil {
		return nil, true, false
	}
	if !isValidJSONRPCID(id) {
		return nil, true, false
	}
	return id, true, true
}

func isValidJSONRPCID(id any) bool {
	switch v := id.(type) {
	case string:
		return true
	case json.Number:
		return isJSONInteger(v.String())
	default:
		return false
	}
}

func isValidParamsValue(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == '{'
}

func isJSONInteger(value string) bool {
	if value == "" || strings.ContainsAny(value, ".eE") {
		return false
	}
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return true
	}
	if strings.HasPrefix(value, "-") {
		return false
	}
	_, err := strconv.ParseUint(value, 10, 64)
	return err == nil
}
