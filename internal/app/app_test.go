package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xano-labs/xano-mcp-server/internal/config"
	"github.com/xano-labs/xano-mcp-server/internal/logging"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func TestNewMCPServerCallsXano(t *testing.T) {
	var gotPath, gotAuth, gotWorkspace string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth, gotWorkspace = r.URL.Path, r.Header.Get("Authorization"), r.Header.Get("X-Workspace")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":3,"name":"orders","created_at":0}`))
	}))
	defer upstream.Close()

	cfg := config.Config{APIKey: "k", Workspace: 12, BaseURL: upstream.URL + "/api:meta", AuthScheme: config.AuthBearer}
	srv := NewMCPServer(cfg, logging.Discard())

	params, _ := json.Marshal(protocol.CallParams{Name: "get-table-details", Args: json.RawMessage(`{"table_id":"3"}`)})
	resp, ok := srv.Handle(context.Background(), protocol.Request{JSONRPC: "2.0", ID: 1.0, Method: "tools/call", Params: params})
	if !ok || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	res := resp.Result.(protocol.CallResult)
	if res.IsError || !strings.HasPrefix(res.Text(), "# Table: orders") {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotPath != "/api:meta/workspace/12/table/3" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer k" || gotWorkspace != "12" {
		t.Fatalf("auth headers = %q / %q", gotAuth, gotWorkspace)
	}
}
