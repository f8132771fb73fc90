package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
	"github.com/xano-labs/xano-mcp-server/internal/version"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// ServerName is reported in the initialize handshake.
const ServerName = "xano-mcp"

// Server handles MCP JSON-RPC requests against a toolbox.
type Server struct {
	toolbox *Toolbox
}

// NewServer wires a toolbox into an MCP server.
func NewServer(tb *Toolbox) *Server {
	return &Server{toolbox: tb}
}

// Handle routes a single request. The bool result is false for notifications,
// which must not be answered.
func (s *Server) Handle(ctx context.Context, req protocol.Request) (protocol.Response, bool) {
	if req.IsNotification() {
		return protocol.Response{}, false
	}
	if err := validateJSONRPC(req); err != nil {
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: err}, true
	}

	switch req.Method {
	case "initialize":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo": map[string]string{
				"name":    ServerName,
				"version": version.Get().Version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}}, true
	case "ping":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: map[string]any{}}, true
	case "tools/list":
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: protocol.ListResult{Tools: s.toolbox.Describe()}}, true
	case "tools/call":
		var params protocol.CallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "invalid params"}}, true
		}
		if params.Name == "" {
			return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: protocol.CodeInvalidParams, Message: "tool name required"}}, true
		}
		result := s.toolbox.Call(ctx, params.Name, params.Args)
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Result: result}, true
	default:
		return protocol.Response{JSONRPC: "2.0", ID: normalizeID(req.ID), Error: &protocol.ResponseError{Code: protocol.CodeMethodNotFound, Message: "method not found"}}, true
	}
}

func validateJSONRPC(req protocol.Request) *protocol.ResponseError {
	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		return &protocol.ResponseError{Code: protocol.CodeInvalidRequest, Message: "invalid jsonrpc version"}
	}
	if req.Method == "" {
		return &protocol.ResponseError{Code: protocol.CodeInvalidRequest, Message: "method required"}
	}
	return nil
}

// normalizeID echoes the caller's id; a null id is answered with null.
func normalizeID(id any) any {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return v
	case int, int32, int64, uint32, uint64:
		return v
	case nil:
		return nil
	default:
		return fmt.Sprintf("%v", v)
	}
}
