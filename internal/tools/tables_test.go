package tools

import (
	"strings"
	"testing"
)

const tablesPage = `{"items":[
  {"id":1,"name":"user","description":"","created_at":1700000000000,"updated_at":1700000000000,"tags":["auth","core"]},
  {"id":2,"name":"order","description":"Orders","created_at":1700000000000,"updated_at":1700000000000}
],"curPage":1}`

func TestListTables(t *testing.T) {
	tb, fake := harness(t)
	fake.on("GET", "/workspace/7/table", tablesPage)

	res := call(t, tb, "list-tables", `{}`)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text())
	}
	text := res.Text()
	for _, want := range []string{
		"# Xano Database Tables",
		"## user\n**ID**: 1\n**Description**: No description\n**Created**: 2023-11-14 22:13:20 UTC",
		"**Tags**: auth, core",
		"## order\n**ID**: 2\n**Description**: Orders",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestGetTableSchemaMarkdown(t *testing.T) {
	tb, fake := harness(t)
	fake.on("GET", "/workspace/7/table/3/schema", `[
		{"name":"id","type":"int","required":true},
		{"name":"email","type":"email","nullable":true,"access":"private","default":"","validators":{"trim":true,"lower":true}}
	]`)

	res := call(t, tb, "get-table-schema", `{"table_id":"3"}`)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text())
	}
	text := res.Text()
	for _, want := range []string{
		"# Schema for Table ID: 3",
		"## id (int)\n**Required**: Yes\n**Nullable**: No\n**Access**: public\n**Style**: single",
		"## email (email)\n**Required**: No\n**Nullable**: Yes\n**Access**: private",
		"**Default**: \n",
		"**Validators**:\n```json\n{\n  \"trim\": true,\n  \"lower\": true\n}\n```",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestGetTableSchemaJSON(t *testing.T) {
	tb, fake := harness(t)
	fake.on("GET", "/workspace/7/table/3/schema", `[{"name":"id","type":"int"}]`)

	res := call(t, tb, "get-table-schema", `{"table_id":"3","format":"json"}`)
	want := "# Table Schema (Full JSON)\n\n```json\n[\n  {\n    \"name\": \"id\",\n    \"type\": \"int\"\n  }\n]\n```"
	if res.Text() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", res.Text(), want)
	}
}

func TestGetTableSchemaUnexpectedShape(t *testing.T) {
	tb, fake := harness(t)
	fake.on("GET", "/workspace/7/table/3/schema", `{"oops":true}`)

	res := call(t, tb, "get-table-schema", `{"table_id":"3"}`)
	if !strings.Contains(res.Text(), "Error: Unexpected schema format") {
		t.Fatalf("unexpected text: %s", res.Text())
	}
}

func TestCreateTableWithSchema(t *testing.T) {
	tb, fake := harness(t)
	fake.on("POST", "/workspace/7/table", `{"id":9,"name":"contact"}`).
		on("PUT", "/workspace/7/table/9/schema", `{}`)

	res := call(t, tb, "create-table", `{"name":"contact","schema":[{"name":"owner_id","type":"int","tableref_id":"2"}]}`)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text())
	}
	if !strings.Contains(res.Text(), `"contact" with ID: 9 and added the specified schema`) {
		t.Fatalf("unexpected text: %s", res.Text())
	}

	calls := fake.recorded()
	if len(calls) != 2 {
		t.Fatalf("expected two calls, got %+v", calls)
	}
	if _, ok := bodyOf(t, calls[0])["description"]; ok {
		t.Fatalf("absent description must be omitted: %+v", calls[0].Body)
	}
	field := bodyOf(t, calls[1])["schema"].([]any)[0].(map[string]any)
	if field["access"] != "public" || field["style"] != "single" || field["nullable"] != false {
		t.Fatalf("column defaults not applied: %v", field)
	}
}

func TestCreateTableReportsPartialSuccess(t *testing.T) {
	tb, fake := harness(t)
	fake.on("POST", "/workspace/7/table", `{"id":7}`).
		fail("PUT", "/workspace/7/table/7/schema", 400, "bad schema")

	res := call(t, tb, "create-table", `{"name":"t","schema":[{"name":"a","type":"text"}]}`)
	if !res.IsError {
		t.Fatalf("expected error result")
	}
	if !strings.HasPrefix(res.Text(), "Table created with ID 7, but failed to add schema:") || !strings.Contains(res.Text(), "bad schema") {
		t.Fatalf("unexpected text: %s", res.Text())
	}
}

func TestCreateTableRejectsTableRefOnNonInt(t *testing.T) {
	tb, fake := harness(t)
	res := call(t, tb, "create-table", `{"name":"t","schema":[{"name":"owner","type":"text","tableref_id":"2"}]}`)
	if !res.IsError || !strings.Contains(res.Text(), `"owner"`) {
		t.Fatalf("expected tableref rejection, got %+v", res)
	}
	if len(fake.recorded()) != 0 {
		t.Fatalf("no table may be created when the schema is invalid")
	}
}

func TestCreateTableRejectsUnknownFieldType(t *testing.T) {
	tb, fake := harness(t)
	res := call(t, tb, "create-table", `{"name":"t","schema":[{"name":"a","type":"blob"}]}`)
	if !res.IsError || len(fake.recorded()) != 0 {
		t.Fatalf("unknown field type must be rejected before any call: %+v", res)
	}
}

func TestUpdateTable(t *testing.T) {
	tb, fake := harness(t)
	fake.on("PUT", "/workspace/7/table/4", `{}`).
		on("GET", "/workspace/7/table/4", `{"id":4,"name":"renamed","updated_at":"2024-03-01T10:00:00Z","tags":["x"]}`)

	res := call(t, tb, "update-table", `{"table_id":"4","name":"renamed","tags":["x"]}`)
	if res.IsError {
		t.Fatalf("unexpected error: %s", res.Text())
	}
	for _, want := range []string{"# Table Updated", "**Name**: renamed", "**Updated**: 2024-03-01 10:00:00 UTC", "**Tags**: x"} {
		if !strings.Contains(res.Text(), want) {
			t.Fatalf("missing %q in:\n%s", want, res.Text())
		}
	}
	body := bodyOf(t, fake.recorded()[0])
	if _, ok := body["description"]; ok {
		t.Fatalf("absent description must be omitted: %v", body)
	}
}

func TestUpdateTableRefetchFailure(t *testing.T) {
	tb, fake := harness(t)
	fake.on("PUT", "/workspace/7/table/4", `{}`).
		fail("GET", "/workspace/7/table/4", 500, "boom")

	res := call(t, tb, "update-table", `{"table_id":"4","name":"n"}`)
	if !res.IsError || !strings.HasPrefix(res.Text(), "Table 4 updated, but fetching the updated record failed") {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestDeleteTableSurfacesAPIError(t *testing.T) {
	tb, fake := harness(t)
	fake.fail("DELETE", "/workspace/7/table/5", 404, "not found")

	res := call(t, tb, "delete-table", `{"table_id":"5"}`)
	if !res.IsError || !strings.Contains(res.Text(), "error deleting table: xano api error (404): not found") {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCreateTableWithoutReturnedIDSkipsSchema(t *testing.T) {
	tb, fake := harness(t)
	fake.on("POST", "/workspace/7/table", "")

	res := call(t, tb, "create-table", `{"name":"t","schema":[{"name":"a","type":"text"}]}`)
	if !res.IsError || !strings.Contains(res.Text(), "no ID") {
		t.Fatalf("expected missing-id report, got %+v", res)
	}
	if calls := fake.recorded(); len(calls) != 1 || calls[0].Method != "POST" {
		t.Fatalf("schema must not be sent without a table id: %+v", calls)
	}
}

func TestEmptyIdentifiersRejectedBeforeAnyCall(t *testing.T) {
	cases := map[string]string{
		"delete-table":     `{"table_id":""}`,
		"get-table-schema": `{"table_id":""}`,
		"delete-api-group": `{"apigroup_id":""}`,
		"delete-api":       `{"apigroup_id":"2","api_id":""}`,
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			tb, fake := harness(t)
			res := call(t, tb, name, args)
			if !res.IsError || !strings.HasPrefix(res.Text(), "invalid arguments for "+name) {
				t.Fatalf("expected validation error, got %+v", res)
			}
			if len(fake.recorded()) != 0 {
				t.Fatalf("no call may reach the API: %+v", fake.recorded())
			}
		})
	}
}
