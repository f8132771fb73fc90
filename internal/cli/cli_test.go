package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xano-labs/xano-mcp-server/internal/config"
	"github.com/xano-labs/xano-mcp-server/internal/version"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(IOStreams{In: strings.NewReader(stdin), Out: &out, ErrOut: &errOut})
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func clearXanoEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"XANO_API_KEY", "XANO_WORKSPACE", "XANO_API_BASE", "XANO_MCP_HTTP_ADDR", "XANO_AUTH_SCHEME"} {
		t.Setenv(k, "")
	}
}

func TestServeWithoutCredentialsFails(t *testing.T) {
	clearXanoEnv(t)
	out, err := run(t, "")

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, config.ErrMissingConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	for _, name := range []string{"XANO_API_KEY", "XANO_WORKSPACE", "XANO_API_BASE"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error should name %s: %v", name, err)
		}
	}
	if out != "" {
		t.Fatalf("nothing may be written to the protocol channel: %q", out)
	}
}

func TestServeAnswersOnStdio(t *testing.T) {
	clearXanoEnv(t)
	t.Setenv("XANO_API_KEY", "k")
	t.Setenv("XANO_WORKSPACE", "3")
	t.Setenv("XANO_API_BASE", "http://127.0.0.1:1")
	t.Setenv("XANO_LOG_FILE", filepath.Join(t.TempDir(), "xano.log"))

	out, err := run(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`+"\n", "serve")
	if err != nil {
		t.Fatalf("serve: %v", err)
	}
	var resp struct {
		Result struct {
			Tools []json.RawMessage `json:"tools"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(resp.Result.Tools) != len(BuildManifest().Tools) {
		t.Fatalf("tools/list returned %d tools", len(resp.Result.Tools))
	}
}

func TestServeFlagOverridesEnv(t *testing.T) {
	clearXanoEnv(t)
	t.Setenv("XANO_API_KEY", "k")
	t.Setenv("XANO_WORKSPACE", "3")
	t.Setenv("XANO_API_BASE", "http://127.0.0.1:1")

	_, err := run(t, "", "serve", "--workspace", "abc")
	if err == nil || !strings.Contains(err.Error(), "positive integer") {
		t.Fatalf("flag value should be validated, got %v", err)
	}
}

func TestToolsManifestNeedsNoCredentials(t *testing.T) {
	clearXanoEnv(t)
	out, err := run(t, "", "tools")
	if err != nil {
		t.Fatalf("tools: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if m.Name != "xano-mcp" || len(m.Tools) != 39 {
		t.Fatalf("unexpected manifest: name=%s tools=%d", m.Name, len(m.Tools))
	}
}

func TestToolsManifestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist", "tools.json")
	if _, err := run(t, "", "tools", "-o", path); err != nil {
		t.Fatalf("tools: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if !bytes.Contains(raw, []byte(`"list-tables"`)) {
		t.Fatalf("manifest missing tools: %s", raw)
	}
}

func TestVersionCommand(t *testing.T) {
	orig := version.Version
	version.Version = "1.4.0"
	t.Cleanup(func() { version.Version = orig })

	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "xano-mcp 1.4.0 ") {
		t.Fatalf("unexpected output %q", out)
	}
}
