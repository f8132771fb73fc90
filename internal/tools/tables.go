package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func tableTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-tables",
			Description: "Browse all tables in the Xano workspace",
			Handler: func(ctx context.Context, _ mcp.Args) (protocol.CallResult, error) {
				var p page[table]
				if err := d.Caller.Call(ctx, "GET", d.path("table"), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing tables: %w", err)
				}
				return listing("Xano Database Tables", p.Items, func(md *doc, t table) {
					md.section(t.Name).
						field("ID", t.ID).
						field("Description", orNone(t.Description)).
						field("Created", t.CreatedAt).
						field("Updated", t.UpdatedAt).
						tags("Tags", t.Tags)
				}).result(), nil
			},
		},
		{
			Name:        "get-table-details",
			Description: "Get details for a specific table",
			Params:      []mcp.Param{idParam("table_id", "table to get details for")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var t table
				if err := d.Caller.Call(ctx, "GET", d.path("table", args.String("table_id")), nil, &t); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting table details: %w", err)
				}
				md := &doc{}
				md.title("Table: %s", t.Name).
					field("ID", t.ID).
					field("Description", orNone(t.Description)).
					field("Created", t.CreatedAt).
					field("Updated", t.UpdatedAt).
					tags("Tags", t.Tags)
				return md.result(), nil
			},
		},
		{
			Name:        "get-table-schema",
			Description: "Browse the schema of a table",
			Params: []mcp.Param{
				idParam("table_id", "table to get schema from"),
				formatParam("readable documentation"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("table_id")
				var raw json.RawMessage
				if err := d.Caller.Call(ctx, "GET", d.path("table", id, "schema"), nil, &raw); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting table schema: %w", err)
				}
				if args.String("format") == formatJSON {
					return jsonBlock("Table Schema (Full JSON)", raw)
				}
				return protocol.TextResult(schemaMarkdown(id, raw)), nil
			},
		},
		{
			Name:        "create-table",
			Description: "Add a new table to the Xano database",
			Params: []mcp.Param{
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the table"},
				{Name: "description", Type: mcp.TypeString, Description: "Description of the table"},
				{
					Name:  "schema",
					Type:  mcp.TypeArray,
					Items: &mcp.Param{Type: mcp.TypeObject, Properties: schemaElementProperties()},
					Description: "Schema configuration for the table. For foreign keys use type 'int' with tableref_id, " +
						`e.g. {"name":"contact_id","type":"int","tableref_id":"100"}`,
				},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				name := args.String("name")
				schema, _ := args["schema"].([]any)
				if err := checkTableRefs(schema); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating table: %w", err)
				}

				body := map[string]any{"name": name}
				copyPresent(body, args, "description")
				var created table
				if err := d.Caller.Call(ctx, "POST", d.path("table"), body, &created); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating table: %w", err)
				}

				if created.ID == "" {
					if len(schema) > 0 {
						return protocol.ErrorResult(fmt.Sprintf("Table %q was created, but the response carried no ID, so the schema was not added", name)), nil
					}
					return protocol.ErrorResult(fmt.Sprintf("Table %q was created, but the response carried no ID", name)), nil
				}
				if len(schema) == 0 {
					return protocol.TextResult(fmt.Sprintf("Successfully created table %q with ID: %s.", name, created.ID)), nil
				}
				if err := d.Caller.Call(ctx, "PUT", d.path("table", string(created.ID), "schema"), map[string]any{"schema": schema}, nil); err != nil {
					return protocol.ErrorResult(fmt.Sprintf("Table created with ID %s, but failed to add schema: %v", created.ID, err)), nil
				}
				return protocol.TextResult(fmt.Sprintf("Successfully created table %q with ID: %s and added the specified schema.", name, created.ID)), nil
			},
		},
		{
			Name:        "update-table",
			Description: "Update an existing table's details",
			Params: []mcp.Param{
				idParam("table_id", "table to update"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Updated name of the table"},
				{Name: "description", Type: mcp.TypeString, Description: "Updated description of the table"},
				tagsParam("tags", "table"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("table_id")
				body := map[string]any{"name": args.String("name")}
				copyPresent(body, args, "description", "tags")
				if err := d.Caller.Call(ctx, "PUT", d.path("table", id), body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating table: %w", err)
				}
				var t table
				if err := d.Caller.Call(ctx, "GET", d.path("table", id), nil, &t); err != nil {
					return refetchFailed("Table", id, err), nil
				}
				md := &doc{}
				md.title("Table Updated").
					field("Name", t.Name).
					field("ID", t.ID).
					field("Description", orNone(t.Description)).
					field("Updated", t.UpdatedAt).
					tags("Tags", t.Tags)
				return md.result(), nil
			},
		},
		{
			Name:        "delete-table",
			Description: "Delete a table from the Xano workspace",
			Params:      []mcp.Param{idParam("table_id", "table to delete")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("table_id")
				if err := d.Caller.Call(ctx, "DELETE", d.path("table", id), nil, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error deleting table: %w", err)
				}
				return protocol.TextResult("Successfully deleted table with ID: " + id), nil
			},
		},
	}
}

// checkTableRefs rejects foreign keys declared on anything but int columns.
func checkTableRefs(schema []any) error {
	var problems []string
	for _, el := range schema {
		field, ok := el.(map[string]any)
		if !ok {
			continue
		}
		ref, _ := field["tableref_id"].(string)
		if ref == "" || field["type"] == "int" {
			continue
		}
		problems = append(problems, fmt.Sprintf("field %q has tableref_id but type is not \"int\"; foreign key fields must be of type \"int\"", field["name"]))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// refetchFailed reports an update that went through but whose confirmation read did not.
func refetchFailed(kind, id string, err error) protocol.CallResult {
	return protocol.ErrorResult(fmt.Sprintf("%s %s updated, but fetching the updated record failed: %v", kind, id, err))
}

// schemaMarkdown renders a table schema document field by field.
func schemaMarkdown(tableID string, raw json.RawMessage) string {
	md := &doc{}
	md.title("Schema for Table ID: %s", tableID)

	fields := gjson.ParseBytes(raw)
	if !fields.IsArray() {
		md.line("Error: Unexpected schema format: " + string(raw))
		return md.String()
	}
	for i, f := range fields.Array() {
		if i > 0 {
			md.gap()
		}
		md.section(fmt.Sprintf("%s (%s)", f.Get("name").String(), f.Get("type").String())).
			field("Required", yesNo(f.Get("required").Bool())).
			field("Nullable", yesNo(f.Get("nullable").Bool())).
			field("Access", orDefault(f.Get("access").String(), "public")).
			field("Style", orDefault(f.Get("style").String(), "single")).
			optional("Description", f.Get("description").String())
		if def := f.Get("default"); def.Exists() {
			md.field("Default", def.String())
		}
		for _, part := range []struct{ label, key string }{
			{"Config", "config"}, {"Validators", "validators"}, {"Children", "children"},
		} {
			v := f.Get(part.key)
			if (v.IsObject() && len(v.Map()) > 0) || (v.IsArray() && len(v.Array()) > 0) {
				md.line("**" + part.label + "**:")
				md.line("```json\n" + indentJSON(v.Raw) + "\n```")
			}
		}
	}
	return md.String()
}

func indentJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
