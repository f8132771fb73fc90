package tools

import "github.com/xano-labs/xano-mcp-server/internal/mcp"

// Closed value sets shared by the tool schemas.
var (
	FieldTypes = mcp.Enum{
		"attachment", "audio", "bool", "date", "decimal", "email", "enum",
		"geo_linestring", "geo_multilinestring", "geo_multipoint", "geo_multipolygon",
		"geo_point", "geo_polygon", "image", "int", "json", "object", "password",
		"tableref", "tablerefuuid", "text", "timestamp", "uuid", "vector", "video",
	}
	AccessLevels     = mcp.Enum{"public", "private", "internal"}
	FieldStyles      = mcp.Enum{"single", "list"}
	Verbs            = mcp.Enum{"GET", "POST", "DELETE", "PUT", "PATCH", "HEAD"}
	SortFields       = mcp.Enum{"created_at", "updated_at", "name"}
	SortOrders       = mcp.Enum{"asc", "desc"}
	OutputFormats    = mcp.Enum{"markdown", "json"}
	SchemaOperations = mcp.Enum{"update", "add_column", "rename_column", "remove_column"}
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

func idParam(name, what string) mcp.Param {
	return mcp.Param{Name: name, Type: mcp.TypeString, Required: true, MinLength: 1, Description: "ID of the " + what}
}

func formatParam(markdownHint string) mcp.Param {
	return mcp.Param{
		Name:        "format",
		Type:        mcp.TypeString,
		Enum:        OutputFormats,
		Default:     formatMarkdown,
		Description: "Output format: 'markdown' for " + markdownHint + " or 'json' for the full document",
	}
}

func pageParams(what string) []mcp.Param {
	return []mcp.Param{
		{Name: "page", Type: mcp.TypeInteger, Description: "Page number for pagination"},
		{Name: "per_page", Type: mcp.TypeInteger, Description: "Number of items per page"},
		{Name: "search", Type: mcp.TypeString, Description: "Search term to filter " + what},
		{Name: "sort", Type: mcp.TypeString, Enum: SortFields, Description: "Field to sort by"},
		{Name: "order", Type: mcp.TypeString, Enum: SortOrders, Description: "Sort order"},
	}
}

func tagsParam(name, what string) mcp.Param {
	return mcp.Param{Name: name, Type: mcp.TypeArray, Items: &mcp.Param{Type: mcp.TypeString}, Description: "Tags to associate with the " + what}
}

// columnProperties describes one schema element. Flags and presentation settings default
// to the values Xano itself assumes.
func columnProperties(withDefaults bool) []mcp.Param {
	def := func(v any) any {
		if withDefaults {
			return v
		}
		return nil
	}
	return []mcp.Param{
		{Name: "name", Type: mcp.TypeString, Required: true, Description: "Name of the column"},
		{Name: "type", Type: mcp.TypeString, Required: true, Enum: FieldTypes, Description: "Data type of the column"},
		{Name: "description", Type: mcp.TypeString, Description: "Description of the column"},
		{Name: "nullable", Type: mcp.TypeBoolean, Default: def(false), Description: "Whether the field can be null"},
		{Name: "required", Type: mcp.TypeBoolean, Default: def(false), Description: "Whether the field is required"},
		{Name: "access", Type: mcp.TypeString, Enum: AccessLevels, Default: def("public"), Description: "Access level for the field"},
		{Name: "style", Type: mcp.TypeString, Enum: FieldStyles, Default: def("single"), Description: "Whether the field is a single value or a list"},
		{Name: "default", Type: mcp.TypeString, Description: "Default value for the field"},
		{Name: "config", Type: mcp.TypeObject, Description: "Additional configuration for specific field types"},
	}
}

// schemaElementProperties extends a column with the settings only a full schema write accepts.
func schemaElementProperties() []mcp.Param {
	return append(columnProperties(true),
		mcp.Param{Name: "validators", Type: mcp.TypeObject, Description: "Validation rules for the field", Properties: []mcp.Param{
			{Name: "lower", Type: mcp.TypeBoolean},
			{Name: "max", Type: mcp.TypeNumber},
			{Name: "maxLength", Type: mcp.TypeNumber},
			{Name: "min", Type: mcp.TypeNumber},
			{Name: "minLength", Type: mcp.TypeNumber},
			{Name: "pattern", Type: mcp.TypeString},
			{Name: "precision", Type: mcp.TypeNumber},
			{Name: "scale", Type: mcp.TypeNumber},
			{Name: "trim", Type: mcp.TypeBoolean},
		}},
		mcp.Param{Name: "children", Type: mcp.TypeArray, Description: "Nested fields for object types"},
		mcp.Param{Name: "tableref_id", Type: mcp.TypeString, Description: "ID of the referenced table (only valid when type is 'int')"},
		mcp.Param{Name: "values", Type: mcp.TypeArray, Items: &mcp.Param{Type: mcp.TypeString}, Description: "Allowed values (only for enum type)"},
	)
}
