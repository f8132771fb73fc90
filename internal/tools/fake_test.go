package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/protocol"
	"github.com/xano-labs/xano-mcp-server/internal/xano"
)

type recordedCall struct {
	Method string
	Path   string
	Body   any
}

type reply struct {
	body string
	err  error
}

// fakeXano answers calls from a script keyed by "METHOD path".
type fakeXano struct {
	mu      sync.Mutex
	replies map[string]reply
	docs    map[string]string
	calls   []recordedCall
}

func newFakeXano() *fakeXano {
	return &fakeXano{replies: map[string]reply{}, docs: map[string]string{}}
}

func (f *fakeXano) on(method, path, body string) *fakeXano {
	f.replies[method+" "+path] = reply{body: body}
	return f
}

func (f *fakeXano) fail(method, path string, status int, body string) *fakeXano {
	f.replies[method+" "+path] = reply{err: &xano.APIError{Method: method, Path: path, Status: status, Body: body}}
	return f
}

func (f *fakeXano) Call(_ context.Context, method, path string, body, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{Method: method, Path: path, Body: body})
	r, ok := f.replies[method+" "+path]
	if !ok {
		return fmt.Errorf("unexpected call %s %s", method, path)
	}
	if r.err != nil {
		return r.err
	}
	if out == nil || r.body == "" {
		return nil
	}
	return json.Unmarshal([]byte(r.body), out)
}

func (f *fakeXano) FetchDocument(_ context.Context, url string) ([]byte, error) {
	doc, ok := f.docs[url]
	if !ok {
		return nil, errors.New("no document at " + url)
	}
	return []byte(doc), nil
}

func (f *fakeXano) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

// harness registers the full catalogue against a fake workspace 7.
func harness(t *testing.T) (*mcp.Toolbox, *fakeXano) {
	t.Helper()
	fake := newFakeXano()
	tb := mcp.NewToolbox(nil)
	for _, tool := range Catalogue(Deps{Caller: fake, Fetcher: fake, Workspace: 7}) {
		if err := tb.Register(tool); err != nil {
			t.Fatalf("register %s: %v", tool.Name, err)
		}
	}
	return tb, fake
}

func call(t *testing.T, tb *mcp.Toolbox, name, args string) protocol.CallResult {
	t.Helper()
	return tb.Call(context.Background(), name, json.RawMessage(args))
}

func bodyOf(t *testing.T, c recordedCall) map[string]any {
	t.Helper()
	raw, err := json.Marshal(c.Body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("body is not an object: %s", raw)
	}
	return m
}
