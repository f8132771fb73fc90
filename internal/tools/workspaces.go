package tools

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func workspaceTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-workspaces",
			Description: "List all available workspaces",
			Handler: func(ctx context.Context, _ mcp.Args) (protocol.CallResult, error) {
				var list []workspace
				if err := d.Caller.Call(ctx, "GET", "/workspace", nil, &list); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing workspaces: %w", err)
				}
				return listing("Available Workspaces", list, func(md *doc, w workspace) {
					md.section(w.Name).
						field("ID", w.ID).
						field("Description", orNone(w.Description)).
						optional("Branch", w.Branch)
				}).result(), nil
			},
		},
		{
			Name:        "get-workspace-details",
			Description: "Get details for a specific workspace",
			Params: []mcp.Param{{
				Name:        "workspace_id",
				Type:        mcp.TypeString,
				Description: "ID of the workspace to get details for. If not provided, uses the configured workspace.",
			}},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("workspace_id")
				if id == "" {
					id = strconv.Itoa(d.Workspace)
				}
				var w workspace
				if err := d.Caller.Call(ctx, "GET", "/workspace/"+url.PathEscape(id), nil, &w); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting workspace details: %w", err)
				}
				md := &doc{}
				md.title("Workspace: %s", w.Name).
					field("ID", w.ID).
					field("Description", orNone(w.Description)).
					optional("Branch", w.Branch)
				return md.result(), nil
			},
		},
	}
}
