package tools

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ID is a Xano identifier. The API answers with numbers; older endpoints use strings.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Timestamp accepts epoch milliseconds or an RFC 3339 string.
type Timestamp struct {
	time.Time
	raw string
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed
			return nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.UnixMilli(ms)
			return nil
		}
		t.raw = s
		return nil
	}
	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(int64(ms))
	return nil
}

// String renders the timestamp in UTC, or "unknown" when the API sent nothing.
func (t Timestamp) String() string {
	if !t.IsZero() {
		return t.UTC().Format("2006-01-02 15:04:05 UTC")
	}
	if t.raw != "" {
		return t.raw
	}
	return "unknown"
}

type page[T any] struct {
	Items    []T `json:"items"`
	CurPage  int `json:"curPage"`
	NextPage int `json:"nextPage"`
	PrevPage int `json:"prevPage"`
}

func (p page[T]) summary() string {
	var b strings.Builder
	b.WriteString("Page ")
	b.WriteString(strconv.Itoa(p.CurPage))
	if p.NextPage > 0 {
		b.WriteString(" (Next: " + strconv.Itoa(p.NextPage) + ")")
	}
	if p.PrevPage > 0 {
		b.WriteString(" (Prev: " + strconv.Itoa(p.PrevPage) + ")")
	}
	return b.String()
}

type workspace struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Branch      string `json:"branch"`
}

type table struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type documentation struct {
	RequireToken bool   `json:"require_token"`
	Token        string `json:"token"`
	Link         string `json:"link"`
}

type apiGroup struct {
	ID            ID             `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Docs          string         `json:"docs"`
	CreatedAt     Timestamp      `json:"created_at"`
	UpdatedAt     Timestamp      `json:"updated_at"`
	GUID          string         `json:"guid"`
	Canonical     string         `json:"canonical"`
	Swagger       bool           `json:"swagger"`
	Documentation *documentation `json:"documentation"`
	Branch        string         `json:"branch"`
	Tag           []string       `json:"tag"`
}

type apiCache struct {
	Active bool `json:"active"`
	TTL    int  `json:"ttl"`
}

type api struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Docs        string    `json:"docs"`
	GUID        string    `json:"guid"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	Verb        string    `json:"verb"`
	Tag         []string  `json:"tag"`
	Cache       *apiCache `json:"cache"`
}

type function struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Docs        string    `json:"docs"`
	Branch      string    `json:"branch"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type task struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Docs        string    `json:"docs"`
	Datasource  string    `json:"datasource"`
	Active      bool      `json:"active"`
	Branch      string    `json:"branch"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type branch struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}
