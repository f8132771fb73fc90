package mcp

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

// ParamType is the closed set of argument types a tool may declare.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

func (t ParamType) valid() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	}
	return false
}

// Enum is a closed set of allowed string values. Declare shared sets once and reuse them.
type Enum []string

// Contains reports whether v is a member of the set.
func (e Enum) Contains(v string) bool {
	return slices.Contains(e, v)
}

// Param declares one tool argument.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	// Required params without a Default must be supplied by the caller.
	Required bool
	// Default is applied when the caller omits the param. Optional params without
	// a default stay absent rather than being sent as null.
	Default any
	Enum    Enum
	// MinLength rejects strings shorter than this many characters. Zero means no bound.
	MinLength int
	// Items describes array elements.
	Items *Param
	// Properties describes object fields. An object param without Properties accepts any keys.
	Properties []Param
}

func (p Param) mustSupply() bool {
	return p.Required && p.Default == nil
}

func (p Param) check(path string) error {
	if !p.Type.valid() {
		return fmt.Errorf("%s: unknown type %q", path, p.Type)
	}
	if len(p.Enum) > 0 && p.Type != TypeString {
		return fmt.Errorf("%s: enum is only supported on string params", path)
	}
	if p.MinLength < 0 || (p.MinLength > 0 && p.Type != TypeString) {
		return fmt.Errorf("%s: minLength is only supported on string params", path)
	}
	if p.Default != nil && len(p.Enum) > 0 {
		s, ok := p.Default.(string)
		if !ok || !p.Enum.Contains(s) {
			return fmt.Errorf("%s: default %v is not in the allowed set", path, p.Default)
		}
	}
	if p.Items != nil {
		if p.Type != TypeArray {
			return fmt.Errorf("%s: items declared on non-array param", path)
		}
		if err := p.Items.check(path + "[]"); err != nil {
			return err
		}
	}
	if len(p.Properties) > 0 {
		if p.Type != TypeObject {
			return fmt.Errorf("%s: properties declared on non-object param", path)
		}
		if err := checkParams(path, p.Properties); err != nil {
			return err
		}
	}
	return nil
}

func checkParams(prefix string, params []Param) error {
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}
		if p.Name == "" {
			return fmt.Errorf("%s: param name is empty", prefix)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%s: declared twice", path)
		}
		seen[p.Name] = struct{}{}
		if err := p.check(path); err != nil {
			return err
		}
	}
	return nil
}

// schema renders the param as JSON Schema.
func (p Param) schema() protocol.JSONSchema {
	s := protocol.JSONSchema{
		Type:        string(p.Type),
		Description: p.Description,
		Default:     p.Default,
		MinLength:   p.MinLength,
	}
	if len(p.Enum) > 0 {
		s.Enum = append([]string(nil), p.Enum...)
	}
	if p.Items != nil {
		items := p.Items.schema()
		s.Items = &items
	}
	if p.Type == TypeObject {
		if len(p.Properties) > 0 {
			s.Properties, s.Required = objectSchema(p.Properties)
		} else {
			s.AdditionalProperties = true
		}
	}
	return s
}

func objectSchema(params []Param) (map[string]protocol.JSONSchema, []string) {
	props := make(map[string]protocol.JSONSchema, len(params))
	var required []string
	for _, p := range params {
		props[p.Name] = p.schema()
		if p.mustSupply() {
			required = append(required, p.Name)
		}
	}
	return props, required
}

// InputSchema renders the full argument schema of a tool.
func InputSchema(params []Param) *protocol.JSONSchema {
	props, required := objectSchema(params)
	if props == nil {
		props = map[string]protocol.JSONSchema{}
	}
	return &protocol.JSONSchema{Type: string(TypeObject), Properties: props, Required: required}
}

// applyDefaults fills absent params with their defaults, descending into declared objects and arrays of objects.
func applyDefaults(params []Param, values map[string]any) {
	for _, p := range params {
		v, ok := values[p.Name]
		if !ok || v == nil {
			if p.Default != nil {
				values[p.Name] = cloneValue(p.Default)
			}
			continue
		}
		switch {
		case p.Type == TypeObject && len(p.Properties) > 0:
			if m, ok := v.(map[string]any); ok {
				applyDefaults(p.Properties, m)
			}
		case p.Type == TypeArray && p.Items != nil && len(p.Items.Properties) > 0:
			if list, ok := v.([]any); ok {
				for _, el := range list {
					if m, ok := el.(map[string]any); ok {
						applyDefaults(p.Items.Properties, m)
					}
				}
			}
		}
	}
}

// cloneValue deep-copies JSON-like defaults so invocations never share mutable state.
func cloneValue(v any) any {
	switch v.(type) {
	case string, bool, int, int64, float64, nil:
		return v
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
