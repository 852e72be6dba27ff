package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/monadtools/monad-mcp-go/mcp"
	"github.com/monadtools/monad-mcp-go/mcp/jsonrpc"
	"github.com/monadtools/monad-mcp-go/prompts"
	"github.com/monadtools/monad-mcp-go/tools"
)

type stubTool struct {
	name   string
	result string
	err    error
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "stub tool" }
func (t *stubTool) InputSchema() mcp.InputSchema {
	return mcp.InputSchema{Type: "object", Properties: map[string]any{}}
}
func (t *stubTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return t.result, t.err
}

func newTestManager(t *testing.T, toolCount int) *tools.Manager {
	t.Helper()
	manager := tools.NewManager()
	for i := 0; i < toolCount; i++ {
		tool := &stubTool{name: fmt.Sprintf("tool-%02d", i), result: "ok"}
		if err := manager.RegisterTool(tool); err != nil {
			t.Fatalf("RegisterTool() error = %v", err)
		}
	}
	return manager
}

func request(t *testing.T, id any, method, params string) jsonrpc.Request {
	t.Helper()
	msg := jsonrpc.Request{JSONRPC: jsonrpc.Version, ID: id, Method: method}
	if params != "" {
		msg.Params = json.RawMessage(params)
	}
	return msg
}

func TestParseJSONRPCFrame(t *testing.T) {
	tests := []struct {
		name         string
		frame        string
		wantRequests int
		wantPrebuilt int
		wantOneWay   bool
		wantErrCode  int
	}{
		{
			name:         "valid request",
			frame:        `{"jsonrpc":"2.0","id":1,"method":"ping"}`,
			wantRequests: 1,
		},
		{
			name:         "notification without id",
			frame:        `{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			wantRequests: 1,
		},
		{
			name:         "string id",
			frame:        `{"jsonrpc":"2.0","id":"abc","method":"ping"}`,
			wantRequests: 1,
		},
		{
			name:         "batch rejected",
			frame:        `[{"jsonrpc":"2.0","id":1,"method":"ping"}]`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:         "malformed json",
			frame:        `{"jsonrpc":`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrParseError),
		},
		{
			name:         "fractional id",
			frame:        `{"jsonrpc":"2.0","id":1.5,"method":"ping"}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:         "null id",
			frame:        `{"jsonrpc":"2.0","id":null,"method":"ping"}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:         "wrong version",
			frame:        `{"jsonrpc":"1.0","id":1,"method":"ping"}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:         "array params",
			frame:        `{"jsonrpc":"2.0","id":1,"method":"ping","params":[1,2]}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:         "initialize requires id",
			frame:        `{"jsonrpc":"2.0","method":"initialize"}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
		{
			name:       "client response accepted one-way",
			frame:      `{"jsonrpc":"2.0","id":1,"result":{}}`,
			wantOneWay: true,
		},
		{
			name:         "frame with neither method nor result",
			frame:        `{"jsonrpc":"2.0","id":1}`,
			wantPrebuilt: 1,
			wantErrCode:  int(jsonrpc.ErrInvalidRequest),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests, prebuilt, oneWay, err := ParseJSONRPCFrame([]byte(tt.frame))
			if err != nil {
				t.Fatalf("ParseJSONRPCFrame() error = %v", err)
			}
			if len(requests) != tt.wantRequests {
				t.Errorf("requests = %d, want %d", len(requests), tt.wantRequests)
			}
			if len(prebuilt) != tt.wantPrebuilt {
				t.Fatalf("prebuilt = %d, want %d", len(prebuilt), tt.wantPrebuilt)
			}
			if oneWay != tt.wantOneWay {
				t.Errorf("oneWay = %v, want %v", oneWay, tt.wantOneWay)
			}
			if tt.wantPrebuilt > 0 {
				resp, ok := prebuilt[0].(*jsonrpc.Response)
				if !ok {
					t.Fatalf("prebuilt[0] is %T, want *jsonrpc.Response", prebuilt[0])
				}
				if resp.Error == nil || resp.Error.Code != tt.wantErrCode {
					t.Errorf("error = %+v, want code %d", resp.Error, tt.wantErrCode)
				}
			}
		})
	}
}

func TestParseJSONRPCFrameEmpty(t *testing.T) {
	if _, _, _, err := ParseJSONRPCFrame([]byte("   ")); err == nil {
		t.Fatal("ParseJSONRPCFrame() expected error for empty frame")
	}
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name    string
		params  string
		total   int
		want    int
		wantErr bool
	}{
		{name: "no params", params: "", total: 10, want: 0},
		{name: "empty cursor", params: `{"cursor":""}`, total: 10, want: 0},
		{name: "valid cursor", params: `{"cursor":"5"}`, total: 10, want: 5},
		{name: "cursor at total", params: `{"cursor":"10"}`, total: 10, want: 10},
		{name: "negative cursor", params: `{"cursor":"-1"}`, total: 10, wantErr: true},
		{name: "out of range", params: `{"cursor":"11"}`, total: 10, wantErr: true},
		{name: "non numeric", params: `{"cursor":"abc"}`, total: 10, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.params != "" {
				raw = json.RawMessage(tt.params)
			}
			got, err := ParseCursor(raw, tt.total)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCursor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCursor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildToolsListResponsePagination(t *testing.T) {
	manager := newTestManager(t, 60)

	resp := BuildToolsListResponse(request(t, 1, "tools/list", ""), manager.GetTools())
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("result is %T, want map", resp.Result)
	}
	page, ok := result["tools"].([]mcp.Tool)
	if !ok {
		t.Fatalf("tools is %T, want []mcp.Tool", result["tools"])
	}
	if len(page) != 50 {
		t.Errorf("first page size = %d, want 50", len(page))
	}
	cursor, ok := result["nextCursor"].(string)
	if !ok || cursor != "50" {
		t.Fatalf("nextCursor = %v, want %q", result["nextCursor"], "50")
	}

	resp = BuildToolsListResponse(request(t, 2, "tools/list", `{"cursor":"50"}`), manager.GetTools())
	result = resp.Result.(map[string]any)
	page = result["tools"].([]mcp.Tool)
	if len(page) != 10 {
		t.Errorf("second page size = %d, want 10", len(page))
	}
	if _, exists := result["nextCursor"]; exists {
		t.Error("final page should not carry nextCursor")
	}
}

func TestBuildToolCallResponse(t *testing.T) {
	manager := newTestManager(t, 1)
	ctx := context.Background()

	resp := BuildToolCallResponse(ctx, request(t, 1, "tools/call", `{"name":"tool-00","arguments":{}}`), manager)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	envelope, ok := resp.Result.(*mcp.ToolResult)
	if !ok {
		t.Fatalf("result is %T, want *mcp.ToolResult", resp.Result)
	}
	if envelope.IsError {
		t.Errorf("IsError = true, want false")
	}
	if len(envelope.Content) != 1 || envelope.Content[0].Text != "ok" {
		t.Errorf("content = %+v, want single ok text", envelope.Content)
	}
}

func TestBuildToolCallResponseMissingName(t *testing.T) {
	manager := newTestManager(t, 1)

	resp := BuildToolCallResponse(context.Background(), request(t, 1, "tools/call", `{"arguments":{}}`), manager)
	if resp.Error == nil || resp.Error.Code != int(jsonrpc.ErrInvalidParams) {
		t.Fatalf("error = %+v, want invalid params", resp.Error)
	}
}

func TestBuildToolCallResponseUnknownTool(t *testing.T) {
	manager := newTestManager(t, 1)

	resp := BuildToolCallResponse(context.Background(), request(t, 1, "tools/call", `{"name":"missing"}`), manager)
	if resp.Error != nil {
		t.Fatalf("unknown tool must come back as an envelope, got error %+v", resp.Error)
	}
	envelope := resp.Result.(*mcp.ToolResult)
	if !envelope.IsError {
		t.Fatal("IsError = false, want true")
	}
	if !strings.Contains(envelope.Content[0].Text, "missing") {
		t.Errorf("text %q does not name the tool", envelope.Content[0].Text)
	}
}

func TestBuildResourcesReadResponse(t *testing.T) {
	reader := func(uri string) (any, error) {
		if uri != ChainInfoResourceURI {
			return nil, fmt.Errorf("unknown resource: %s", uri)
		}
		return map[string]any{"chain_id": 10143}, nil
	}

	resp := BuildResourcesReadResponse(request(t, 1, "resources/read", `{"uri":"monad://chain/info"}`), reader)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	contents := result["contents"].([]map[string]any)
	if len(contents) != 1 {
		t.Fatalf("contents = %d entries, want 1", len(contents))
	}
	if !strings.Contains(contents[0]["text"].(string), "10143") {
		t.Errorf("text %q does not carry chain id", contents[0]["text"])
	}

	resp = BuildResourcesReadResponse(request(t, 2, "resources/read", `{"uri":""}`), reader)
	if resp.Error == nil || resp.Error.Code != int(jsonrpc.ErrInvalidParams) {
		t.Fatalf("error = %+v, want invalid params", resp.Error)
	}
}

func TestBuildInitializeResponse(t *testing.T) {
	resp := BuildInitializeResponse(request(t, 1, "initialize", ""), ServerInfo{Name: "monad-mcp", Version: "1.0.0"})
	result := resp.Result.(map[string]any)
	if result["protocolVersion"] != mcp.ProtocolVersion {
		t.Errorf("protocolVersion = %v, want %v", result["protocolVersion"], mcp.ProtocolVersion)
	}
	info := result["serverInfo"].(map[string]any)
	if info["name"] != "monad-mcp" {
		t.Errorf("serverInfo name = %v", info["name"])
	}
}

func TestBuildPromptsListResponse(t *testing.T) {
	registry := prompts.NewDefaultRegistry()

	resp := BuildPromptsListResponse(request(t, 1, "prompts/list", ""), registry)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	listed := result["prompts"].([]map[string]any)
	if len(listed) != registry.PromptCount() {
		t.Fatalf("prompts = %d entries, want %d", len(listed), registry.PromptCount())
	}

	// A nil registry lists nothing rather than failing.
	resp = BuildPromptsListResponse(request(t, 2, "prompts/list", ""), nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	if listed := resp.Result.(map[string]any)["prompts"].([]map[string]any); len(listed) != 0 {
		t.Errorf("nil registry listed %d prompts", len(listed))
	}
}

func TestBuildPromptsGetResponse(t *testing.T) {
	registry := prompts.NewDefaultRegistry()

	resp := BuildPromptsGetResponse(request(t, 1, "prompts/get", `{"name":"check-wallet","arguments":{"address":"0xabc"}}`), registry)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	messages := result["messages"].([]map[string]any)
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(messages))
	}
	content := messages[0]["content"].(map[string]any)
	if !strings.Contains(content["text"].(string), "0xabc") {
		t.Errorf("text %q does not carry the address", content["text"])
	}

	resp = BuildPromptsGetResponse(request(t, 2, "prompts/get", `{"name":"check-wallet"}`), registry)
	if resp.Error == nil || resp.Error.Code != int(jsonrpc.ErrInvalidParams) {
		t.Fatalf("error = %+v, want invalid params for missing argument", resp.Error)
	}

	resp = BuildPromptsGetResponse(request(t, 3, "prompts/get", `{"name":"nope"}`), registry)
	if resp.Error == nil || !strings.Contains(resp.Error.Message, "nope") {
		t.Fatalf("error = %+v, want unknown prompt naming nope", resp.Error)
	}
}

func TestDispatchStandardMethodUnknown(t *testing.T) {
	manager := newTestManager(t, 0)

	got := DispatchStandardMethod(context.Background(), request(t, 7, "bogus/method", ""), manager, nil, nil)
	resp, ok := got.(*jsonrpc.Response)
	if !ok {
		t.Fatalf("got %T, want *jsonrpc.Response", got)
	}
	if resp.Error == nil || resp.Error.Code != int(jsonrpc.ErrMethodNotFound) {
		t.Fatalf("error = %+v, want method not found", resp.Error)
	}

	// Unknown notifications are dropped.
	if got := DispatchStandardMethod(context.Background(), request(t, nil, "bogus/notification", ""), manager, nil, nil); got != nil {
		t.Fatalf("notification response = %v, want nil", got)
	}
}
