package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func branchTools(d Deps) []mcp.Tool {
	branchBody := func(args mcp.Args) map[string]any {
		body := map[string]any{"name": args.String("name")}
		copyPresent(body, args, "description")
		return body
	}

	return []mcp.Tool{
		{
			Name:        "list-branches",
			Description: "List all branches in the workspace",
			Handler: func(ctx context.Context, _ mcp.Args) (protocol.CallResult, error) {
				var p page[branch]
				if err := d.Caller.Call(ctx, "GET", d.path("branch"), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing branches: %w", err)
				}
				return listing("Workspace Branches", p.Items, func(md *doc, b branch) {
					md.section(b.Name).
						field("ID", b.ID).
						field("Description", orNone(b.Description))
				}).result(), nil
			},
		},
		{
			Name:        "get-branch-details",
			Description: "Get details for a specific branch",
			Params:      []mcp.Param{idParam("branch_id", "branch to get details for")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var b branch
				if err := d.Caller.Call(ctx, "GET", d.path("branch", args.String("branch_id")), nil, &b); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting branch details: %w", err)
				}
				md := &doc{}
				md.title("Branch: %s", b.Name).
					field("ID", b.ID).
					optional("Description", b.Description).
					field("Created", b.CreatedAt).
					field("Updated", b.UpdatedAt)
				return md.result(), nil
			},
		},
		{
			Name:        "create-branch",
			Description: "Create a new branch in the workspace",
			Params: []mcp.Param{
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the branch"},
				{Name: "description", Type: mcp.TypeString, Description: "Description of the branch"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var b branch
				if err := d.Caller.Call(ctx, "POST", d.path("branch"), branchBody(args), &b); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating branch: %w", err)
				}
				md := &doc{}
				md.title("Branch Created").
					field("Name", b.Name).
					field("ID", b.ID).
					optional("Description", b.Description).
					field("Created", b.CreatedAt)
				return md.result(), nil
			},
		},
		{
			Name:        "update-branch",
			Description: "Update an existing branch",
			Params: []mcp.Param{
				idParam("branch_id", "branch to update"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Updated name of the branch"},
				{Name: "description", Type: mcp.TypeString, Description: "Updated description of the branch"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("branch_id")
				if err := d.Caller.Call(ctx, "PUT", d.path("branch", id), branchBody(args), nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating branch: %w", err)
				}
				var b branch
				if err := d.Caller.Call(ctx, "GET", d.path("branch", id), nil, &b); err != nil {
					return refetchFailed("Branch", id, err), nil
				}
				md := &doc{}
				md.title("Branch Updated").
					field("Name", b.Name).
					field("ID", b.ID).
					optional("Description", b.Description).
					field("Updated", b.UpdatedAt)
				return md.result(), nil
			},
		},
		{
			Name:        "delete-branch",
			Description: "Delete a branch from the workspace",
			Params:      []mcp.Param{idParam("branch_id", "branch to delete")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("branch_id")
				return deleteNamed(ctx, d, "branch", id, d.path("branch", id))
			},
		},
	}
}
