package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/xano-labs/xano-mcp-server/internal/config"
	"github.com/xano-labs/xano-mcp-server/internal/version"
)

// ErrUnsupportedMethod is returned for verbs other than GET, POST, PUT and DELETE.
var ErrUnsupportedMethod = errors.New("unsupported http method")

// Caller performs one call against the Xano API.
// body is JSON-encoded for POST and PUT; the decoded response lands in out (which may be nil).
type Caller interface {
	Call(ctx context.Context, method, path string, body, out any) error
}

// DocumentFetcher retrieves absolute URLs that live outside the metadata API, such as Swagger documents.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) ([]byte, error)
}

// APIError is a non-2xx answer from Xano. Body is kept verbatim; Xano sometimes answers in plain text.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("xano api error (%d): %s", e.Status, e.Body)
}

// Client is the HTTP implementation of Caller and DocumentFetcher.
type Client struct {
	baseURL    string
	apiKey     string
	workspace  int
	scheme     config.AuthScheme
	httpClient *http.Client
	log        *logrus.Entry
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) { c.log = l }
}

// NewClient builds a dispatcher from explicit credentials.
func NewClient(cfg config.Config, opts ...Option) *Client {
	scheme := cfg.AuthScheme
	if scheme == "" {
		scheme = config.AuthBearer
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		workspace:  cfg.Workspace,
		scheme:     scheme,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = logrus.NewEntry(l)
	}
	return c
}

// Call issues a single request. There are no retries; the outcome is reported as-is.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path})

	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
		log.WithField("body", string(buf)).Debug("xano request")
	} else {
		log.Debug("xano request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("xano request failed")
		return fmt.Errorf("xano request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("xano response read failed")
		return fmt.Errorf("read response: %w", err)
	}
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "dur": time.Since(start).Round(time.Millisecond)})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("xano request rejected")
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(raw)}
	}
	log.Debug("xano response")

	return decode(raw, resp.StatusCode, out)
}

// FetchDocument performs an unauthenticated GET against an absolute URL.
func (c *Client) FetchDocument(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: http.MethodGet, Path: url, Status: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

func (c *Client) authorize(req *http.Request) {
	switch c.scheme {
	case config.AuthAPIKey:
		req.Header.Set("X-Api-Key", c.apiKey)
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("X-Workspace", fmt.Sprint(c.workspace))
	}
}

// decode treats an empty 2xx body as success and anything unparsable as an error.
// out is only assigned once the whole body has decoded.
func decode(raw []byte, status int, out any) error {
	if status == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if out == nil {
		var discard any
		out = &discard
	}
	if !json.Valid(raw) {
		return fmt.Errorf("decode response: invalid JSON body %q", truncate(string(raw), 200))
	}
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("decode response: out must be a non-nil pointer, got %T", out)
	}
	tmp := reflect.New(target.Type().Elem())
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	target.Elem().Set(tmp.Elem())
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
