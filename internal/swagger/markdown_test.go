package swagger

import (
	"strings"
	"testing"
)

const sampleSpec = `{
  "openapi": "3.0.0",
  "info": {"title": "Shop", "version": "0.0.1"},
  "servers": [{"url": "https://x8ki-letl-twmt.n7.xano.io/api:shop"}],
  "paths": {
    "/product/{product_id}": {
      "parameters": [],
      "delete": {"summary": "Delete product"},
      "get": {
        "summary": "Get product",
        "parameters": [
          {"name": "product_id", "in": "path", "required": true, "schema": {"type": "integer"}},
          {"name": "expand", "in": "query"}
        ]
      }
    },
    "/auth/login": {
      "post": {"summary": ""}
    }
  },
  "components": {
    "securitySchemes": {
      "bearerAuth": {"type": "http", "scheme": "bearer"},
      "apiKey": {"type": "apiKey"}
    }
  }
}`

const sampleMarkdown = "# Shop API\n\n" +
	"## API Info\n" +
	"- Title: Shop\n" +
	"- Version: 0.0.1\n" +
	"- Base URL: https://x8ki-letl-twmt.n7.xano.io/api:shop\n\n" +
	responsesTable +
	"## Endpoints\n\n" +
	"### POST /auth/login\n" +
	"No summary\n\n" +
	"### DELETE /product/{product_id}\n" +
	"Delete product\n\n" +
	"### GET /product/{product_id}\n" +
	"Get product\n" +
	"| Param | In | Req | Type |\n" +
	"|-------|----|-----|------|\n" +
	"| product_id | path | Y | integer |\n" +
	"| expand | query | N | unknown |\n\n" +
	"## Auth\n" +
	"- bearerAuth: http (bearer)\n" +
	"- apiKey: apiKey\n"

func TestToMarkdown(t *testing.T) {
	got := ToMarkdown([]byte(sampleSpec), "Shop")
	if got != sampleMarkdown {
		t.Fatalf("unexpected markdown:\n%s\nwant:\n%s", got, sampleMarkdown)
	}
}

func TestToMarkdownDefaults(t *testing.T) {
	got := ToMarkdown([]byte(`{"paths":{}}`), "Billing")
	for _, want := range []string{
		"# Billing API\n",
		"- Title: Billing\n",
		"- Version: N/A\n",
		"- Base URL: https://\n",
		"## Endpoints\n\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "## Auth") {
		t.Fatalf("auth section must be omitted without security schemes")
	}
}

func TestToMarkdownInvalid(t *testing.T) {
	for _, in := range []string{"{", "[1,2]", ""} {
		if got := ToMarkdown([]byte(in), "x"); !strings.HasPrefix(got, "# Error\n\n") {
			t.Fatalf("%q: expected error document, got %q", in, got)
		}
	}
}
