package tools

import (
	"context"
	"fmt"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
	"github.com/xano-labs/xano-mcp-server/internal/swagger"
)

func apiGroupParams(verb string) []mcp.Param {
	return []mcp.Param{
		{Name: "name", Type: mcp.TypeString, Required: true, Description: verb + " name of the API group"},
		{Name: "description", Type: mcp.TypeString, Required: true, Description: verb + " description of the API group"},
		{Name: "swagger", Type: mcp.TypeBoolean, Required: true, Description: "Whether to enable Swagger documentation"},
		{Name: "docs", Type: mcp.TypeString, Description: "Documentation for the API group"},
		tagsParam("tag", "API group"),
		{Name: "branch", Type: mcp.TypeString, Description: "Branch name for the API group"},
	}
}

func apiGroupBody(args mcp.Args) map[string]any {
	body := map[string]any{
		"name":        args.String("name"),
		"description": args.String("description"),
		"swagger":     args.Bool("swagger"),
	}
	copyPresent(body, args, "docs", "tag", "branch")
	return body
}

func writeAPIGroup(md *doc, g apiGroup) {
	md.optional("GUID", g.GUID).
		optional("Canonical", g.Canonical).
		optional("Branch", g.Branch).
		tags("Tags", g.Tag)
}

func apiGroupTools(d Deps) []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        "list-api-groups",
			Description: "Browse all API groups in the Xano workspace",
			Params:      pageParams("API groups"),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var p page[apiGroup]
				if err := d.Caller.Call(ctx, "GET", withQuery(d.path("apigroup"), pageQuery(args)), nil, &p); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error listing API groups: %w", err)
				}
				md := listing("Xano API Groups", p.Items, func(md *doc, g apiGroup) {
					md.section(g.Name).
						field("ID", g.ID).
						field("Description", orNone(g.Description)).
						field("Created", g.CreatedAt).
						field("Updated", g.UpdatedAt).
						optional("GUID", g.GUID)
				})
				md.gap().line(p.summary())
				return md.result(), nil
			},
		},
		{
			Name:        "get-api-group-details",
			Description: "Get details for a specific API group",
			Params:      []mcp.Param{idParam("apigroup_id", "API group to get details for")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var g apiGroup
				if err := d.Caller.Call(ctx, "GET", d.path("apigroup", args.String("apigroup_id")), nil, &g); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting API group details: %w", err)
				}
				md := &doc{}
				md.title("API Group: %s", g.Name).
					field("ID", g.ID).
					field("Description", orNone(g.Description)).
					field("Created", g.CreatedAt).
					field("Updated", g.UpdatedAt).
					field("Swagger Documentation", enabled(g.Swagger))
				writeAPIGroup(md, g)
				if g.Documentation != nil {
					md.gap().
						field("Documentation Link", g.Documentation.Link).
						field("Documentation Token Required", yesNo(g.Documentation.RequireToken))
				}
				return md.result(), nil
			},
		},
		{
			Name:        "create-api-group",
			Description: "Create a new API group in the Xano workspace",
			Params:      apiGroupParams("The"),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				var g apiGroup
				if err := d.Caller.Call(ctx, "POST", d.path("apigroup"), apiGroupBody(args), &g); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error creating API group: %w", err)
				}
				md := &doc{}
				md.title("API Group Created").
					field("Name", g.Name).
					field("ID", g.ID).
					field("Description", orNone(g.Description)).
					optional("Documentation", g.Docs).
					field("Swagger Documentation", enabled(g.Swagger)).
					field("Created", g.CreatedAt).
					field("Updated", g.UpdatedAt)
				writeAPIGroup(md, g)
				return md.result(), nil
			},
		},
		{
			Name:        "update-api-group",
			Description: "Update an existing API group",
			Params:      append([]mcp.Param{idParam("apigroup_id", "API group to update")}, apiGroupParams("Updated")...),
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("apigroup_id")
				if err := d.Caller.Call(ctx, "PUT", d.path("apigroup", id), apiGroupBody(args), nil); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error updating API group: %w", err)
				}
				var g apiGroup
				if err := d.Caller.Call(ctx, "GET", d.path("apigroup", id), nil, &g); err != nil {
					return refetchFailed("API group", id, err), nil
				}
				md := &doc{}
				md.title("API Group Updated").
					field("Name", g.Name).
					field("ID", g.ID).
					field("Description", orNone(g.Description)).
					field("Updated", g.UpdatedAt).
					field("Swagger Documentation", enabled(g.Swagger))
				writeAPIGroup(md, g)
				return md.result(), nil
			},
		},
		{
			Name:        "delete-api-group",
			Description: "Delete an API group from the workspace",
			Params:      []mcp.Param{idParam("apigroup_id", "API group to delete")},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("apigroup_id")
				return deleteNamed(ctx, d, "API group", id, d.path("apigroup", id))
			},
		},
		{
			Name:        "get-api-specification",
			Description: "Get and convert Swagger specification for an API group to a minified markdown format",
			Params: []mcp.Param{
				idParam("apigroup_id", "API group to get specification for"),
				formatParam("concise documentation"),
			},
			Handler: func(ctx context.Context, args mcp.Args) (protocol.CallResult, error) {
				id := args.String("apigroup_id")
				var g apiGroup
				if err := d.Caller.Call(ctx, "GET", d.path("apigroup", id), nil, &g); err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting API specification: %w", err)
				}
				if !g.Swagger || g.Documentation == nil || g.Documentation.Link == "" {
					return protocol.ErrorResult(fmt.Sprintf("API group (ID: %s) does not have Swagger documentation available.", id)), nil
				}

				spec, err := d.Fetcher.FetchDocument(ctx, g.Documentation.Link)
				if err != nil {
					return protocol.CallResult{}, fmt.Errorf("error getting API specification: failed to fetch Swagger spec: %w", err)
				}
				if args.String("format") == formatJSON {
					return jsonBlock(g.Name+" API Specification (Full JSON)", spec)
				}
				return protocol.TextResult(swagger.ToMarkdown(spec, g.Name)), nil
			},
		},
	}
}

// deleteNamed reads the record first so the confirmation can name what was removed.
func deleteNamed(ctx context.Context, d Deps, kind, id, path string) (protocol.CallResult, error) {
	var rec struct {
		Name string `json:"name"`
	}
	if err := d.Caller.Call(ctx, "GET", path, nil, &rec); err != nil {
		return protocol.CallResult{}, fmt.Errorf("error deleting %s: %w", kind, err)
	}
	if err := d.Caller.Call(ctx, "DELETE", path, nil, nil); err != nil {
		return protocol.CallResult{}, fmt.Errorf("error deleting %s %q: %w", kind, rec.Name, err)
	}
	return protocol.TextResult(fmt.Sprintf("Successfully deleted %s %q (ID: %s)", kind, rec.Name, id)), nil
}
