// Package tools defines the Xano metadata tools served over MCP.
package tools

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/xano-labs/xano-mcp-server/internal/mcp"
	"github.com/xano-labs/xano-mcp-server/internal/xano"
)

// Deps carries everything a tool body needs. Tools never read process state.
type Deps struct {
	Caller    xano.Caller
	Fetcher   xano.DocumentFetcher
	Workspace int
}

// Catalogue returns every Xano tool bound to d.
func Catalogue(d Deps) []mcp.Tool {
	var all []mcp.Tool
	for _, group := range [][]mcp.Tool{
		workspaceTools(d),
		tableTools(d),
		columnTools(d),
		apiGroupTools(d),
		apiTools(d),
		functionTools(d),
		taskTools(d),
		branchTools(d),
	} {
		all = append(all, group...)
	}
	return all
}

// path builds "/workspace/{ws}/seg/seg...", escaping each segment.
func (d Deps) path(segments ...string) string {
	var b strings.Builder
	b.WriteString("/workspace/")
	b.WriteString(strconv.Itoa(d.Workspace))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// withQuery appends the non-empty values of q.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// pageQuery collects the optional pagination and sorting arguments shared by list tools.
// Absent arguments are omitted rather than sent empty.
func pageQuery(args mcp.Args) url.Values {
	q := url.Values{}
	if n, ok := args.Int("page"); ok {
		q.Set("page", strconv.Itoa(n))
	}
	if n, ok := args.Int("per_page"); ok {
		q.Set("per_page", strconv.Itoa(n))
	}
	for _, key := range []string{"search", "sort", "order"} {
		if v := args.String(key); v != "" {
			q.Set(key, v)
		}
	}
	return q
}

// copyPresent copies the supplied arguments named in keys into body.
func copyPresent(body map[string]any, args mcp.Args, keys ...string) {
	for _, k := range keys {
		if args.Has(k) {
			body[k] = args[k]
		}
	}
}
