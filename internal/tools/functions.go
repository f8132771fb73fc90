package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func functionTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-functions",
			Description: "List all functions in the workspace",
			Handler: func(ctx context.Context, _ mcp.Args) (protocol.CallResult, error) {
				var p page[function]
				if err := d.Caller.Call(ctx, "GET", d.path("function"), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing functions: %w", err)
				}
				return listing("Workspace Functions", p.Items, func(md *doc, f function) {
					md.section(f.Name).
						field("ID", f.ID).
						field("Description", orNone(f.Description)).
						field("Created", f.CreatedAt).
						field("Updated", f.UpdatedAt).
						optional("Branch", f.Branch)
				}).result(), nil
			},
		},
		{
			Name:        "get-function-details",
			Description: "Get details for a specific function",
			Params:      []mcp.Param{idParam("function_id", "function to get details for")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var f function
				if err := d.Caller.Call(ctx, "GET", d.path("function", args.String("function_id")), nil, &f); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting function details: %w", err)
				}
				md := &doc{}
				md.title("Function: %s", f.Name).
					field("ID", f.ID).
					field("Description", orNone(f.Description)).
					optional("Documentation", f.Docs).
					field("Created", f.CreatedAt).
					field("Updated", f.UpdatedAt).
					optional("Branch", f.Branch)
				return md.result(), nil
			},
		},
		{
			Name:        "create-function",
			Description: "Create a new function in the workspace",
			Params: []mcp.Param{
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the function"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Description of the function"},
				{Name: "docs", Type: mcp.TypeString, Description: "Documentation for the function"},
				{Name: "branch", Type: mcp.TypeString, Description: "Branch name for the function"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				body := map[string]any{"name": args.String("name"), "description": args.String("description")}
				copyPresent(body, args, "docs", "branch")
				var f function
				if err := d.Caller.Call(ctx, "POST", d.path("function"), body, &f); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating function: %w", err)
				}
				md := &doc{}
				md.title("Function Created").
					field("Name", f.Name).
					field("ID", f.ID).
					field("Description", f.Description).
					optional("Documentation", f.Docs).
					field("Created", f.CreatedAt).
					optional("Branch", f.Branch)
				return md.result(), nil
			},
		},
		{
			Name:        "update-function",
			Description: "Update an existing function",
			Params: []mcp.Param{
				idParam("function_id", "function to update"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Updated name of the function"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Updated description of the function"},
				{Name: "docs", Type: mcp.TypeString, Description: "Updated documentation for the function"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("function_id")
				body := map[string]any{"name": args.String("name"), "description": args.String("description")}
				copyPresent(body, args, "docs")
				if err := d.Caller.Call(ctx, "PUT", d.path("function", id), body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating function: %w", err)
				}
				var f function
				if err := d.Caller.Call(ctx, "GET", d.path("function", id), nil, &f); err != nil {
					return refetchFailed("Function", id, err), nil
				}
				md := &doc{}
				md.title("Function Updated").
					field("Name", f.Name).
					field("ID", f.ID).
					field("Description", f.Description).
					optional("Documentation", f.Docs).
					field("Updated", f.UpdatedAt).
					optional("Branch", f.Branch)
				return md.result(), nil
			},
		},
		{
			Name:        "delete-function",
			Description: "Delete a function from the workspace",
			Params:      []mcp.Param{idParam("function_id", "function to delete")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("function_id")
				return deleteNamed(ctx, d, "function", id, d.path("function", id))
			},
		},
	}
}
