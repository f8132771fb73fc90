package protocol

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestErrorResultAlwaysHasText(t *testing.T) {
	res := ErrorResult("   ")
	if !res.IsError {
		t.Fatalf("expected error flag")
	}
	if !res.HasText() {
		t.Fatalf("expected diagnostic text, got %+v", res)
	}
}

func TestContentPartShapes(t *testing.T) {
	res := CallResult{Content: []ContentPart{
		TextPart("hi"),
		ImagePart([]byte{0x89, 0x50}, "image/png"),
		ResourceTextPart("xano://table/1/schema", "application/json", `{"a":1}`),
		ResourceBlobPart("xano://blob", "application/octet-stream", []byte("x")),
	}}

	raw, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(raw)
	for _, want := range []string{
		`{"type":"text","text":"hi"}`,
		`{"type":"image","data":"iVA=","mimeType":"image/png"}`,
		`"resource":{"uri":"xano://table/1/schema","mimeType":"application/json","text":"{\"a\":1}"}`,
		`"blob":"eA=="`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
	if strings.Contains(got, "isError") {
		t.Fatalf("isError should be omitted on success: %s", got)
	}
}

func TestRequestIsNotification(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.IsNotification() {
		t.Fatalf("expected notification")
	}
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":0,"method":"ping"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.IsNotification() {
		t.Fatalf("id 0 is a request, not a notification")
	}
}

func TestRequestExplicitNullIDIsAnswered(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":null,"method":"tools/call"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.IsNotification() {
		t.Fatalf("an explicit null id is a request")
	}
	if req.ID != nil || req.Method != "tools/call" {
		t.Fatalf("unexpected request: %+v", req)
	}

	var reused Request
	_ = json.Unmarshal([]byte(`{"id":"a","method":"ping"}`), &reused)
	if err := json.Unmarshal([]byte(`{"method":"notifications/initialized"}`), &reused); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reused.IsNotification() {
		t.Fatalf("a message without id is a notification, got %+v", reused)
	}
}
