package protocol

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Request represents a minimal JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// idPresent is set when the decoded message carried an id member, even a null one.
	idPresent bool
}

// UnmarshalJSON records whether the id member was present so that an explicit
// null id is still answered.
func (r *Request) UnmarshalJSON(data []byte) error {
	type plain Request
	var wire struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Request(wire.plain)
	r.ID = nil
	r.idPresent = wire.ID != nil
	if r.idPresent {
		if err := json.Unmarshal(wire.ID, &r.ID); err != nil {
			return err
		}
	}
	return nil
}

// IsNotification reports whether the request carries no id member and expects no response.
func (r Request) IsNotification() bool {
	return r.ID == nil && !r.idPresent
}

// Response models a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string         `json:"jsonrpc,omitempty"`
	ID      any            `json:"id"`
	Result  any            `json:"result,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError holds JSON-RPC error data.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ToolDescriptor describes a tool available from the MCP server.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema *JSONSchema `json:"inputSchema,omitempty"`
}

// JSONSchema is the subset of JSON Schema used to describe tool input shapes.
type JSONSchema struct {
	Type                 string                `json:"type,omitempty"`
	Properties           map[string]JSONSchema `json:"properties,omitempty"`
	Required             []string              `json:"required,omitempty"`
	Enum                 []string              `json:"enum,omitempty"`
	MinLength            int                   `json:"minLength,omitempty"`
	Items                *JSONSchema           `json:"items,omitempty"`
	Default              any                   `json:"default,omitempty"`
	Description          string                `json:"description,omitempty"`
	AdditionalProperties any                   `json:"additionalProperties,omitempty"`
}

// ListResult is the payload for tools/list.
type ListResult struct {
	Tools []ToolDescriptor `json:"tools"`
}

// CallParams represents parameters for tools/call.
type CallParams struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"arguments,omitempty"`
}

// Content block types.
const (
	ContentText     = "text"
	ContentImage    = "image"
	ContentResource = "resource"
)

// ContentPart is a single piece of tool output: a text, image or embedded resource block.
type ContentPart struct {
	Type     string            `json:"type"`
	Text     string            `json:"text,omitempty"`
	Data     string            `json:"data,omitempty"`
	MimeType string            `json:"mimeType,omitempty"`
	Resource *ResourceContents `json:"resource,omitempty"`
}

// ResourceContents is the payload of an embedded resource block.
// Exactly one of Text or Blob (base64) is set.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     string `json:"blob,omitempty"`
}

// CallResult is the payload for a tool invocation.
type CallResult struct {
	Content []ContentPart `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// TextPart builds a text block.
func TextPart(text string) ContentPart {
	return ContentPart{Type: ContentText, Text: text}
}

// ImagePart builds an image block from raw bytes.
func ImagePart(data []byte, mimeType string) ContentPart {
	return ContentPart{Type: ContentImage, Data: base64.StdEncoding.EncodeToString(data), MimeType: mimeType}
}

// ResourceTextPart embeds a textual resource.
func ResourceTextPart(uri, mimeType, text string) ContentPart {
	return ContentPart{Type: ContentResource, Resource: &ResourceContents{URI: uri, MimeType: mimeType, Text: text}}
}

// ResourceBlobPart embeds a binary resource.
func ResourceBlobPart(uri, mimeType string, blob []byte) ContentPart {
	return ContentPart{Type: ContentResource, Resource: &ResourceContents{
		URI:      uri,
		MimeType: mimeType,
		Blob:     base64.StdEncoding.EncodeToString(blob),
	}}
}

// TextResult is a successful result with a single text block.
func TextResult(text string) CallResult {
	return CallResult{Content: []ContentPart{TextPart(text)}}
}

// ErrorResult is an error-flagged result with a single diagnostic text block.
func ErrorResult(text string) CallResult {
	if strings.TrimSpace(text) == "" {
		text = "tool failed without a diagnostic message"
	}
	return CallResult{Content: []ContentPart{TextPart(text)}, IsError: true}
}

// HasText reports whether any block carries non-empty text.
func (r CallResult) HasText() bool {
	for _, c := range r.Content {
		if strings.TrimSpace(c.Text) != "" {
			return true
		}
		if c.Resource != nil && strings.TrimSpace(c.Resource.Text) != "" {
			return true
		}
	}
	return false
}

// Text concatenates every text block, one per line.
func (r CallResult) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, c := range r.Content {
		if c.Type == ContentText {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, "\n")
}
