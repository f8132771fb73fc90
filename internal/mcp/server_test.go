package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func newEchoServer(t *testing.T) (*Server, *echoCaller) {
	t.Helper()
	tb, caller := newEchoToolbox(t)
	return NewServer(tb), caller
}

func TestHandleInitialize(t *testing.T) {
	srv, _ := newEchoServer(t)
	resp, ok := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: 1.0, Method: "initialize"})
	if !ok || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	result := resp.Result.(map[string]any)
	if result["protocolVersion"] != ProtocolVersion {
		t.Fatalf("protocolVersion = %v", result["protocolVersion"])
	}
	info := result["serverInfo"].(map[string]string)
	if info["name"] != ServerName {
		t.Fatalf("serverInfo = %v", info)
	}
}

func TestHandleNotificationHasNoReply(t *testing.T) {
	srv, _ := newEchoServer(t)
	if _, ok := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", Method: "notifications/initialized"}); ok {
		t.Fatalf("notifications must not be answered")
	}
}

func TestHandleToolsList(t *testing.T) {
	srv, _ := newEchoServer(t)
	resp, _ := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: "a", Method: "tools/list"})
	list, ok := resp.Result.(protocol.ListResult)
	if !ok || len(list.Tools) != 1 || list.Tools[0].Name != "echo-id" {
		t.Fatalf("unexpected list: %+v", resp.Result)
	}
	if list.Tools[0].InputSchema.Properties["sort"].Enum[0] != "created_at" {
		t.Fatalf("enum not rendered: %+v", list.Tools[0].InputSchema)
	}
}

func TestHandleToolsCall(t *testing.T) {
	srv, _ := newEchoServer(t)
	params, _ := json.Marshal(protocol.CallParams{Name: "echo-id", Args: json.RawMessage(`{"id":"xyz"}`)})
	resp, _ := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: 7.0, Method: "tools/call", Params: params})
	if resp.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", resp.Error)
	}
	res := resp.Result.(protocol.CallResult)
	if res.IsError || res.Text() != "/item/xyz format=markdown page=false" {
		t.Fatalf("unexpected result: %+v", res)
	}

	params, _ = json.Marshal(protocol.CallParams{Name: "nope"})
	resp, _ = srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: 8.0, Method: "tools/call", Params: params})
	if resp.Error != nil {
		t.Fatalf("unknown tool must be a tool result, got rpc error %+v", resp.Error)
	}
	if res := resp.Result.(protocol.CallResult); !res.IsError {
		t.Fatalf("expected error result")
	}
}

func TestHandleErrors(t *testing.T) {
	srv, _ := newEchoServer(t)
	cases := []struct {
		name string
		req  protocol.Request
		code int
	}{
		{"unknown method", protocol.Request{JSONRPC: "2.0", ID: 1.0, Method: "resources/list"}, protocol.CodeMethodNotFound},
		{"bad version", protocol.Request{JSONRPC: "1.0", ID: 1.0, Method: "ping"}, protocol.CodeInvalidRequest},
		{"bad params", protocol.Request{JSONRPC: "2.0", ID: 1.0, Method: "tools/call", Params: json.RawMessage(`"x"`)}, protocol.CodeInvalidParams},
		{"missing name", protocol.Request{JSONRPC: "2.0", ID: 1.0, Method: "tools/call", Params: json.RawMessage(`{}`)}, protocol.CodeInvalidParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, ok := srv.Handle(context.Background(), tc.req)
			if !ok || resp.Error == nil || resp.Error.Code != tc.code {
				t.Fatalf("expected code %d, got %+v", tc.code, resp)
			}
		})
	}
}

func TestHandleInvalidNotificationHasNoReply(t *testing.T) {
	srv, _ := newEchoServer(t)
	if resp, ok := srv.Handle(context.Background(), protocol.Request{JSONRPC: "1.0", Method: "notifications/initialized"}); ok {
		t.Fatalf("notifications must not be answered, got %+v", resp)
	}
}

func TestHandleNullIDEchoedAsNull(t *testing.T) {
	srv, _ := newEchoServer(t)
	var req protocol.Request
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":null,"method":"ping"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	resp, ok := srv.Handle(context.Background(), req)
	if !ok || resp.Error != nil {
		t.Fatalf("expected an answer, got %+v", resp)
	}
	raw, _ := json.Marshal(resp)
	if !strings.Contains(string(raw), `"id":null`) {
		t.Fatalf("id must be echoed as null: %s", raw)
	}
}
