package mcp

import (
	"encoding/json"
	"fmt"
	"math"
)

// Args holds validated, defaulted tool arguments.
type Args map[string]any

// Has reports whether the caller supplied (or a default filled) name.
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}

// String returns a string argument or "".
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Int returns an integer argument. JSON numbers arrive as float64.
func (a Args) Int(name string) (int, bool) {
	switch v := a[name].(type) {
	case float64:
		if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		if err != nil || n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// Bool returns a boolean argument or false.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Decode copies the arguments into a tagged struct.
func (a Args) Decode(into any) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}
