package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func columnTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "update-table-schema",
			Description: "Edit the schema of an existing table (add, remove, or modify columns)",
			Params: []mcp.Param{
				idParam("table_id", "table to edit"),
				{Name: "operation", Type: mcp.TypeString, Required: true, Enum: SchemaOperations, Description: "Type of schema operation to perform"},
				{
					Name:        "schema",
					Type:        mcp.TypeArray,
					Items:       &mcp.Param{Type: mcp.TypeObject, Properties: schemaElementProperties()},
					Description: "Full schema specification (for 'update' operation)",
				},
				{Name: "column", Type: mcp.TypeObject, Properties: columnProperties(true), Description: "Column specification (for 'add_column' operation)"},
				{Name: "rename", Type: mcp.TypeObject, Description: "Rename specification (for 'rename_column' operation)", Properties: []mcp.Param{
					{Name: "old_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "Current name of the column"},
					{Name: "new_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "New name for the column"},
				}},
				{Name: "column_name", Type: mcp.TypeString, Description: "Name of the column to remove (for 'remove_column' operation)"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("table_id")
				var (
					method, path, msg string
					body              any
				)
				switch args.String("operation") {
				case "update":
					schema, _ := args["schema"].([]any)
					if len(schema) == 0 {
						return protocol.ErrorResult("Error: Schema array must be provided for 'update' operation"), nil
					}
					if err := checkTableRefs(schema); err != nil {
						return protocol.CallResult{}, fmt.Errorf("error editing table schema: %w", err)
					}
					method, path, body = "PUT", d.path("table", id, "schema"), map[string]any{"schema": schema}
					msg = "Successfully updated the entire schema for table ID: " + id
				case "add_column":
					column, ok := args["column"].(map[string]any)
					if !ok {
						return protocol.ErrorResult("Error: Column specification must be provided for 'add_column' operation"), nil
					}
					typ, _ := column["type"].(string)
					method, path, body = "POST", d.path("table", id, "schema", "type", typ), column
					msg = fmt.Sprintf("Successfully added column '%v' of type '%s' to table ID: %s", column["name"], typ, id)
				case "rename_column":
					rename, ok := args["rename"].(map[string]any)
					if !ok {
						return protocol.ErrorResult("Error: Rename specification must be provided for 'rename_column' operation"), nil
					}
					method, path, body = "POST", d.path("table", id, "schema", "rename"), rename
					msg = fmt.Sprintf("Successfully renamed column from '%v' to '%v' in table ID: %s", rename["old_name"], rename["new_name"], id)
				case "remove_column":
					name := args.String("column_name")
					if name == "" {
						return protocol.ErrorResult("Error: Column name must be provided for 'remove_column' operation"), nil
					}
					method, path = "DELETE", d.path("table", id, "schema", name)
					msg = fmt.Sprintf("Successfully removed column '%s' from table ID: %s", name, id)
				default:
					return protocol.ErrorResult("Error: unknown schema operation " + args.String("operation")), nil
				}

				if err := d.Caller.Call(ctx, method, path, body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error editing table schema: %w", err)
				}
				return protocol.TextResult(msg), nil
			},
		},
		{
			Name:        "add-column",
			Description: "Add a new column to an existing table",
			Params: append([]mcp.Param{idParam("table_id", "table to add the column to")},
				columnParams(true)...),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id, name, typ := args.String("table_id"), args.String("name"), args.String("type")
				body := columnBody(args)
				body["name"] = name
				if err := d.Caller.Call(ctx, "POST", d.path("table", id, "schema", "type", typ), body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error adding column: %w", err)
				}
				return protocol.TextResult(fmt.Sprintf("Successfully added column %q of type %q to table ID: %s", name, typ, id)), nil
			},
		},
		{
			Name:        "rename-column",
			Description: "Rename a column in an existing table",
			Params: []mcp.Param{
				idParam("table_id", "table containing the column"),
				{Name: "old_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "Current name of the column"},
				{Name: "new_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "New name for the column"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id, from, to := args.String("table_id"), args.String("old_name"), args.String("new_name")
				body := map[string]any{"old_name": from, "new_name": to}
				if err := d.Caller.Call(ctx, "POST", d.path("table", id, "schema", "rename"), body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error renaming column: %w", err)
				}
				return protocol.TextResult(fmt.Sprintf("Successfully renamed column from %q to %q in table ID: %s", from, to, id)), nil
			},
		},
		{
			Name:        "update-column",
			Description: "Update a column in an existing table",
			Params: append([]mcp.Param{
				idParam("table_id", "table containing the column"),
				{Name: "column_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "Name of the column to update"},
			}, columnParams(false)[2:]...),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id, name := args.String("table_id"), args.String("column_name")
				body := columnBody(args)
				if len(body) == 0 {
					return protocol.ErrorResult(fmt.Sprintf("Error: no column settings supplied for %q", name)), nil
				}
				if err := d.Caller.Call(ctx, "PUT", d.path("table", id, "schema", name), body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating column: %w", err)
				}
				return protocol.TextResult(fmt.Sprintf("Successfully updated column %q in table ID: %s", name, id)), nil
			},
		},
		{
			Name:        "delete-column",
			Description: "Delete a column from an existing table",
			Params: []mcp.Param{
				idParam("table_id", "table containing the column"),
				{Name: "column_name", Type: mcp.TypeString, Required: true, MinLength: 1, Description: "Name of the column to delete"},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id, name := args.String("table_id"), args.String("column_name")
				if err := d.Caller.Call(ctx, "DELETE", d.path("table", id, "schema", name), nil, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error deleting column: %w", err)
				}
				return protocol.TextResult(fmt.Sprintf("Successfully deleted column %q from table ID: %s", name, id)), nil
			},
		},
	}
}

// columnParams is the flat form of a column used by add-column and update-column.
// The column default travels as default_value so it cannot be confused with a schema default.
func columnParams(withDefaults bool) []mcp.Param {
	props := columnProperties(withDefaults)
	out := make([]mcp.Param, 0, len(props))
	for _, p := range props {
		if p.Name == "default" {
			p.Name = "default_value"
		}
		out = append(out, p)
	}
	return out
}

// columnBody maps the supplied flat column arguments to Xano's column payload.
func columnBody(args mcp.Args) map[string]any {
	body := map[string]any{}
	copyPresent(body, args, "description", "nullable", "required", "access", "style", "config")
	if args.Has("default_value") {
		body["default"] = args["default_value"]
	}
	return body
}
