package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

func apiTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-apis",
			Description: "Browse APIs in a specific API group",
			Params:      append([]mcp.Param{idParam("apigroup_id", "API group to browse")}, pageParams("APIs")...),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				group := args.String("apigroup_id")
				var p page[api]
				if err := d.Caller.Call(ctx, "GET", withQuery(d.path("apigroup", group, "api"), pageQuery(args)), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error browsing APIs: %w", err)
				}
				md := listing("APIs in API Group ID: "+group, p.Items, func(md *doc, a api) {
					md.section(a.Name).
						field("ID", a.ID).
						field("Verb", a.Verb).
						field("Description", orNone(a.Description)).
						optional("Documentation", a.Docs).
						field("Created", a.CreatedAt).
						field("Updated", a.UpdatedAt).
						optional("GUID", a.GUID).
						tags("Tags", a.Tag)
				})
				md.gap().line(p.summary())
				return md.result(), nil
			},
		},
		{
			Name:        "get-api-details",
			Description: "Get details for a specific API endpoint",
			Params: []mcp.Param{
				idParam("apigroup_id", "API group containing the API"),
				idParam("api_id", "API to get details for"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				group, id := args.String("apigroup_id"), args.String("api_id")
				var a api
				if err := d.Caller.Call(ctx, "GET", d.path("apigroup", group, "api", id), nil, &a); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting API details: %w", err)
				}
				md := &doc{}
				md.title("API Details: %s", a.Name).
					field("ID", a.ID).
					field("API Group ID", group).
					field("Verb", a.Verb).
					field("Description", orNone(a.Description)).
					optional("Documentation", a.Docs).
					field("Created", a.CreatedAt).
					field("Updated", a.UpdatedAt).
					optional("GUID", a.GUID).
					tags("Tags", a.Tag).
					field("Cache", cacheLine(a.Cache))
				return md.result(), nil
			},
		},
		{
			Name:        "create-api",
			Description: "Add a new API to an API group",
			Params: []mcp.Param{
				idParam("apigroup_id", "API group to add the API to"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the API"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Description of the API"},
				{Name: "docs", Type: mcp.TypeString, Description: "Documentation for the API"},
				{Name: "verb", Type: mcp.TypeString, Required: true, Enum: Verbs, Description: "HTTP verb for the API"},
				tagsParam("tag", "API"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				group := args.String("apigroup_id")
				body := map[string]any{
					"name":        args.String("name"),
					"description": args.String("description"),
					"verb":        args.String("verb"),
				}
				copyPresent(body, args, "docs", "tag")
				var a api
				if err := d.Caller.Call(ctx, "POST", d.path("apigroup", group, "api"), body, &a); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error adding API: %w", err)
				}
				md := &doc{}
				md.title("API Added").
					field("Name", a.Name).
					field("ID", a.ID).
					field("API Group ID", group).
					field("Verb", a.Verb).
					field("Description", a.Description).
					optional("Documentation", a.Docs).
					field("Created", a.CreatedAt).
					optional("GUID", a.GUID).
					tags("Tags", a.Tag)
				return md.result(), nil
			},
		},
		{
			Name:        "update-api",
			Description: "Update an existing API endpoint",
			Params: []mcp.Param{
				idParam("apigroup_id", "API group containing the API"),
				idParam("api_id", "API to update"),
				{Name: "name", Type: mcp.TypeString, Required: true, Description: "Updated name of the API"},
				{Name: "description", Type: mcp.TypeString, Required: true, Description: "Updated description of the API"},
				{Name: "docs", Type: mcp.TypeString, Description: "Updated documentation for the API"},
				{Name: "verb", Type: mcp.TypeString, Required: true, Enum: Verbs, Description: "Updated HTTP verb for the API"},
				tagsParam("tag", "API"),
				{Name: "cache", Type: mcp.TypeObject, Description: "Cache configuration for the API", Properties: []mcp.Param{
					{Name: "active", Type: mcp.TypeBoolean, Required: true, Description: "Whether caching is active"},
					{Name: "ttl", Type: mcp.TypeInteger, Description: "Cache time-to-live in seconds"},
					{Name: "input", Type: mcp.TypeBoolean, Description: "Whether to include request input in cache key"},
					{Name: "auth", Type: mcp.TypeBoolean, Description: "Whether to include auth in cache key"},
					{Name: "datasource", Type: mcp.TypeBoolean, Description: "Whether to include datasource in cache key"},
					{Name: "ip", Type: mcp.TypeBoolean, Description: "Whether to include IP address in cache key"},
					{Name: "headers", Type: mcp.TypeArray, Items: &mcp.Param{Type: mcp.TypeString}, Description: "Headers to include in cache key"},
				}},
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				group, id := args.String("apigroup_id"), args.String("api_id")
				path := d.path("apigroup", group, "api", id)
				body := map[string]any{
					"name":        args.String("name"),
					"description": args.String("description"),
					"verb":        args.String("verb"),
				}
				copyPresent(body, args, "docs", "tag", "cache")
				if err := d.Caller.Call(ctx, "PUT", path, body, nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating API: %w", err)
				}
				var a api
				if err := d.Caller.Call(ctx, "GET", path, nil, &a); err != nil {
					return refetchFailed("API", id, err), nil
				}
				md := &doc{}
				md.title("API Updated").
					field("Name", a.Name).
					field("ID", a.ID).
					field("API Group ID", group).
					field("Verb", a.Verb).
					field("Description", a.Description).
					optional("Documentation", a.Docs).
					field("Updated", a.UpdatedAt).
					optional("GUID", a.GUID).
					tags("Tags", a.Tag).
					field("Cache", cacheLine(a.Cache))
				return md.result(), nil
			},
		},
		{
			Name:        "delete-api",
			Description: "Delete an API endpoint from an API group",
			Params: []mcp.Param{
				idParam("apigroup_id", "API group containing the API"),
				idParam("api_id", "API to delete"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				group, id := args.String("apigroup_id"), args.String("api_id")
				res, err := deleteNamed(ctx, d, "API", id, d.path("apigroup", group, "api", id))
				if err != nil {
					return res, err
				}
				return protocol.TextResult(res.Text() + " from API group " + group), nil
			},
		},
	}
}
