package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xano-labs/xano-mcp-server/internal/protocol"
)

// doc accumulates a markdown answer.
type doc struct {
	b strings.Builder
}

func (d *doc) title(format string, a ...any) *doc {
	d.b.WriteString("# ")
	fmt.Fprintf(&d.b, format, a...)
	d.b.WriteString("\n\n")
	return d
}

func (d *doc) section(name string) *doc {
	d.b.WriteString("## " + name + "\n")
	return d
}

func (d *doc) line(s string) *doc {
	d.b.WriteString(s + "\n")
	return d
}

// field writes "**Label**: value".
func (d *doc) field(label string, value any) *doc {
	fmt.Fprintf(&d.b, "**%s**: %v\n", label, value)
	return d
}

// optional writes the field only when value is non-empty.
func (d *doc) optional(label, value string) *doc {
	if value != "" {
		d.field(label, value)
	}
	return d
}

func (d *doc) tags(label string, tags []string) *doc {
	if len(tags) > 0 {
		d.field(label, strings.Join(tags, ", "))
	}
	return d
}

func (d *doc) gap() *doc {
	d.b.WriteString("\n")
	return d
}

func (d *doc) String() string {
	return strings.TrimRight(d.b.String(), "\n")
}

func (d *doc) result() protocol.CallResult {
	return protocol.TextResult(d.String())
}

func orNone(s string) string {
	if s == "" {
		return "No description"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

// jsonBlock renders a titled, indented JSON code fence. raw keeps the key order the API used.
func jsonBlock(title string, raw json.RawMessage) (protocol.CallResult, error) {
	var buf bytes.Buffer
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return protocol.CallResult{}, fmt.Errorf("format json: %w", err)
	}
	return protocol.TextResult(fmt.Sprintf("# %s\n\n```json\n%s\n```", title, buf.String())), nil
}

// listing renders one "## name" block per item, separated by blank lines.
func listing[T any](heading string, items []T, render func(*doc, T)) *doc {
	d := &doc{}
	d.title("%s", heading)
	if len(items) == 0 {
		d.line("No items found.")
		return d
	}
	for i, it := range items {
		if i > 0 {
			d.gap()
		}
		render(d, it)
	}
	return d
}

func cacheLine(c *apiCache) string {
	if c != nil && c.Active {
		return fmt.Sprintf("Active (TTL: %ds)", c.TTL)
	}
	return "Inactive"
}
