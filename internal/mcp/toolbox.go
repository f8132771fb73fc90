package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

// ErrDuplicateTool is returned when a tool name is registered twice.
var ErrDuplicateTool = errors.New("duplicate tool name")

// HandlerFunc runs a tool with validated arguments. A returned error becomes an
// error-flagged result carrying the error text.
type HandlerFunc func(ctx context.Context, args Args) (protocol.CallResult, error)

// Tool is a named, schema-described unit of functionality.
type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     HandlerFunc
}

type registered struct {
	tool   Tool
	desc   protocol.ToolDescriptor
	schema *gojsonschema.Schema
}

// Toolbox stores and dispatches tools by name.
// Registration happens at startup; once serving starts the toolbox is read-only.
type Toolbox struct {
	tools map[string]*registered
	log   *logrus.Entry
}

// NewToolbox constructs an empty toolbox. A nil logger discards output.
func NewToolbox(log *logrus.Entry) *Toolbox {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Toolbox{tools: make(map[string]*registered), log: log}
}

// Register adds a tool. Duplicate names are rejected and the first registration stays in place.
func (tb *Toolbox) Register(t Tool) error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return errors.New("tool name is empty")
	}
	if t.Handler == nil {
		return fmt.Errorf("tool %s: handler is nil", name)
	}
	if _, exists := tb.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}
	if err := checkParams("", t.Params); err != nil {
		return fmt.Errorf("tool %s: %w", name, err)
	}

	input := InputSchema(t.Params)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(input))
	if err != nil {
		return fmt.Errorf("tool %s: compile schema: %w", name, err)
	}

	t.Name = name
	tb.tools[name] = &registered{
		tool:   t,
		desc:   protocol.ToolDescriptor{Name: name, Description: t.Description, InputSchema: input},
		schema: schema,
	}
	return nil
}

// MustRegister registers tools and panics on the first failure. Meant for startup wiring.
func (tb *Toolbox) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := tb.Register(t); err != nil {
			panic(err)
		}
	}
}

// Len returns the number of registered tools.
func (tb *Toolbox) Len() int {
	return len(tb.tools)
}

// Describe returns all tool descriptors sorted by name.
func (tb *Toolbox) Describe() []protocol.ToolDescriptor {
	list := make([]protocol.ToolDescriptor, 0, len(tb.tools))
	for _, r := range tb.tools {
		list = append(list, r.desc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Call validates raw arguments and invokes the named tool. It always returns a
// well-formed result: lookup, validation, handler errors and panics all become
// error-flagged results.
func (tb *Toolbox) Call(ctx context.Context, name string, raw json.RawMessage) (result protocol.CallResult) {
	log := tb.log.WithFields(logrus.Fields{"tool": name, "invocation": uuid.NewString()})
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("tool panicked")
			result = protocol.ErrorResult(fmt.Sprintf("internal error: %v", r))
		}
		if result.IsError && !result.HasText() {
			result.Content = append(result.Content, protocol.TextPart("tool "+name+" failed"))
		}
		log.WithFields(logrus.Fields{
			"dur":      time.Since(start).Round(time.Millisecond),
			"is_error": result.IsError,
		}).Info("tool call")
	}()

	r, ok := tb.tools[name]
	if !ok {
		return protocol.ErrorResult("tool not found: " + name)
	}

	args, err := r.validate(raw)
	if err != nil {
		log.WithError(err).Debug("invalid arguments")
		return protocol.ErrorResult(err.Error())
	}

	res, err := r.tool.Handler(ctx, args)
	if err != nil {
		log.WithError(err).Warn("tool failed")
		return protocol.ErrorResult(err.Error())
	}
	return res
}

func (r *registered) validate(raw json.RawMessage) (Args, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	res, err := r.schema.Validate(gojsonschema.NewBytesLoader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %v", r.tool.Name, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			if e.Field() == "(root)" {
				msgs = append(msgs, e.Description())
				continue
			}
			msgs = append(msgs, e.Field()+": "+e.Description())
		}
		return nil, fmt.Errorf("invalid arguments for %s: %s", r.tool.Name, strings.Join(msgs, "; "))
	}

	var values map[string]any
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("invalid arguments for %s: %v", r.tool.Name, err)
	}

	args := make(Args, len(r.tool.Params))
	for _, p := range r.tool.Params {
		if v, ok := values[p.Name]; ok {
			args[p.Name] = v
		}
	}
	applyDefaults(r.tool.Params, args)
	return args, nil
}
