// Package swagger renders OpenAPI documents published by Xano API groups as compact markdown.
package swagger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

var operationMethods = map[string]struct{}{
	"get": {}, "post": {}, "put": {}, "delete": {}, "patch": {},
}

const responsesTable = "## Responses\n" +
	"| Code | Description |\n" +
	"|------|-------------|\n" +
	"| 200  | Success!    |\n" +
	"| 400  | Input Error |\n" +
	"| 401  | Unauthorized|\n" +
	"| 403  | Access Denied|\n" +
	"| 404  | Not Found  |\n" +
	"| 429  | Rate Limited|\n" +
	"| 500  | Server Error|\n\n"

// ToMarkdown summarises an OpenAPI document: info block, shared response codes,
// one section per operation with its parameter table, and the security schemes.
// Paths are sorted; methods keep document order. Malformed input yields an "# Error" document.
func ToMarkdown(spec []byte, groupName string) string {
	if !gjson.ValidBytes(spec) {
		return "# Error\n\ninvalid swagger document: not valid JSON"
	}
	doc := gjson.ParseBytes(spec)
	if !doc.IsObject() {
		return "# Error\n\ninvalid swagger document: expected a JSON object"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s API\n\n", groupName)
	b.WriteString("## API Info\n")
	fmt.Fprintf(&b, "- Title: %s\n", orDefault(doc.Get("info.title").String(), groupName))
	fmt.Fprintf(&b, "- Version: %s\n", orDefault(doc.Get("info.version").String(), "N/A"))
	fmt.Fprintf(&b, "- Base URL: %s\n\n", orDefault(doc.Get("servers.0.url").String(), "https://"))

	b.WriteString(responsesTable)

	b.WriteString("## Endpoints\n\n")
	paths := doc.Get("paths")
	items := make(map[string]gjson.Result)
	var keys []string
	paths.ForEach(func(k, v gjson.Result) bool {
		keys = append(keys, k.String())
		items[k.String()] = v
		return true
	})
	sort.Strings(keys)

	for _, path := range keys {
		items[path].ForEach(func(m, op gjson.Result) bool {
			method := strings.ToLower(m.String())
			if _, ok := operationMethods[method]; !ok {
				return true
			}
			writeOperation(&b, method, path, op)
			return true
		})
	}

	schemes := doc.Get("components.securitySchemes")
	if schemes.IsObject() && len(schemes.Map()) > 0 {
		b.WriteString("## Auth\n")
		schemes.ForEach(func(name, scheme gjson.Result) bool {
			fmt.Fprintf(&b, "- %s: %s", name.String(), scheme.Get("type").String())
			if s := scheme.Get("scheme").String(); s != "" {
				fmt.Fprintf(&b, " (%s)", s)
			}
			b.WriteString("\n")
			return true
		})
	}
	return b.String()
}

func writeOperation(b *strings.Builder, method, path string, op gjson.Result) {
	fmt.Fprintf(b, "### %s %s\n", strings.ToUpper(method), path)
	fmt.Fprintf(b, "%s\n", orDefault(op.Get("summary").String(), "No summary"))

	params := op.Get("parameters").Array()
	if len(params) > 0 {
		b.WriteString("| Param | In | Req | Type |\n")
		b.WriteString("|-------|----|-----|------|\n")
		for _, p := range params {
			req := "N"
			if p.Get("required").Bool() {
				req = "Y"
			}
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
				p.Get("name").String(), p.Get("in").String(), req,
				orDefault(p.Get("schema.type").String(), "unknown"))
		}
	}
	b.WriteString("\n")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
