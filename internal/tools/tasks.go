package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func writeTask(md *doc, t task) {
	md.field("Datasource", t.Datasource).
		field("Active", yesNo(t.Active))
}

func taskTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-tasks",
			Description: "List all tasks in the workspace",
			Handler: func(ctx context.Context, _ mcp.Args) (protocol.CallResult, error) {
				var p page[task]
				if err := d.Caller.Call(ctx, "GET", d.path("task"), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing tasks: %w", err)
				}
				return listing("Workspace Tasks", p.Items, func(md *doc, t task) {
					md.section(t.Name).
						field("ID", t.ID).
						field("Description", orNone(t.Description))
					writeTask(md, t)
					md.field("Created", t.CreatedAt).
						field("Updated", t.UpdatedAt).
						optional("Branch", t.Branch).
						optional("Documentation", t.Docs)
				}).result(), nil
			},
		},
		{
			Name:        "get-task-details",
			Description: "Get details for a specific task",
			Params:      []mcp.Param{idParam("task_id", "task to get details for")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var t task
				if err := d.Caller.Call(ctx, "GET", d.path("task", args.String("task_id")), nil, &t); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting task details: %w", err)
				}
				md := &doc{}
				md.title("Task: %s", t.Name).
					field("ID", t.ID).
					field("Description", orNone(t.Description))
				writeTask(md, t)
				md.field("Created", t.CreatedAt).
					field("Updated", t.UpdatedAt).
					optional("Branch", t.Branch).
					optional("Documentation", t.Docs)
				return md.result(), nil
			},
		},
		{
			Name:        "create-task",
			Description: "Create a new task in the workspace",
			Params: []mcp.Param{
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the task"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Description of the task"},
				{Name: "datasource", Type: mcp.TypeString, Required: true, Description: "Datasource for the task"},
				{Name: "active", Type: mcp.TypeBoolean, Required: true, Description: "Whether the task is active"},
				{Name: "docs", Type: mcp.TypeString, Description: "Documentation for the task"},
				{Name: "branch", Type: mcp.TypeString, Description: "Branch name for the task"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				body := taskBody(args)
				copyPresent(body, args, "branch")
				var t task
				if err := d.Caller.Call(ctx, "POST", d.path("task"), body, &t); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating task: %w", err)
				}
				md := &doc{}
				md.title("Task Created").
					field("Name", t.Name).
					field("ID", t.ID).
					field("Description", t.Description)
				writeTask(md, t)
				md.field("Created", t.CreatedAt).
					optional("Branch", t.Branch).
					optional("Documentation", t.Docs)
				return md.result(), nil
			},
		},
		{
			Name:        "update-task",
			Description: "Update an existing task",
			Params: []mcp.Param{
				idParam("task_id", "task to update"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Updated name of the task"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Updated description of the task"},
				{Name: "datasource", Type: mcp.TypeString, Required: true, Description: "Updated datasource for the task"},
				{Name: "active", Type: mcp.TypeBoolean, Required: true, Description: "Whether the task is active"},
				{Name: "docs", Type: mcp.TypeString, Description: "Updated documentation for the task"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("task_id")
				if err := d.Caller.Call(ctx, "PUT", d.path("task", id), taskBody(args), nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating task: %w", err)
				}
				var t task
				if err := d.Caller.Call(ctx, "GET", d.path("task", id), nil, &t); err != nil {
					return refetchFailed("Task", id, err), nil
				}
				md := &doc{}
				md.title("Task Updated").
					field("Name", t.Name).
					field("ID", t.ID).
					field("Description", t.Description)
				writeTask(md, t)
				md.field("Updated", t.UpdatedAt).
					optional("Branch", t.Branch).
					optional("Documentation", t.Docs)
				return md.result(), nil
			},
		},
		{
			Name:        "delete-task",
			Description: "Delete a task from the workspace",
			Params:      []mcp.Param{idParam("task_id", "task to delete")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("task_id")
				return deleteNamed(ctx, d, "task", id, d.path("task", id))
			},
		},
	}
}

func taskBody(args mcp.Args) map[string]any {
	body := map[string]any{
		"name":        args.String("name"),
		"description": args.String("description"),
		"datasource":  args.String("datasource"),
		"active":      args.Bool("active"),
	}
	copyPresent(body, args, "docs")
	return body
}
