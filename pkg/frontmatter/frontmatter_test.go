package frontmatter

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantVals map[string]Value
		wantBody string
	}{
		{
			name: "full skill header",
			input: `---
name: deploy-helper
description: Ships a release. Use when: cutting a tag
version: 1.2.3
tags: [release, ci]
created: 2024-01-02
updated: 2024-03-04
---

# Deploy Helper
`,
			wantKeys: []string{"name", "description", "version", "tags", "created", "updated"},
			wantVals: map[string]Value{
				"name":        Text("deploy-helper"),
				"description": Text("Ships a release. Use when: cutting a tag"),
				"version":     Text("1.2.3"),
				"tags":        List("release", "ci"),
				"created":     Text("2024-01-02"),
				"updated":     Text("2024-03-04"),
			},
			wantBody: "\n# Deploy Helper\n",
		},
		{
			name:     "no header",
			input:    "# Just a markdown file\n\nNo frontmatter here.",
			wantKeys: nil,
			wantBody: "# Just a markdown file\n\nNo frontmatter here.",
		},
		{
			name:     "empty header",
			input:    "---\n---\nBody content here.\n",
			wantKeys: nil,
			wantBody: "Body content here.\n",
		},
		{
			name:     "empty list",
			input:    "---\ntags: []\n---\n",
			wantKeys: []string{"tags"},
			wantVals: map[string]Value{"tags": List()},
			wantBody: "",
		},
		{
			name:     "closing delimiter at end of input",
			input:    "---\nname: minimal\n---",
			wantKeys: []string{"name"},
			wantVals: map[string]Value{"name": Text("minimal")},
			wantBody: "",
		},
		{
			name:     "Windows CRLF line endings",
			input:    "---\r\nname: windows-skill\r\ndescription: Uses CRLF\r\n---\r\n\r\nBody with CRLF.\r\n",
			wantKeys: []string{"name", "description"},
			wantVals: map[string]Value{
				"name":        Text("windows-skill"),
				"description": Text("Uses CRLF"),
			},
			wantBody: "\r\nBody with CRLF.\r\n",
		},
		{
			name:     "lines without colon are ignored",
			input:    "---\nname: x\njust words\n: no key\n---\nbody",
			wantKeys: []string{"name"},
			wantVals: map[string]Value{"name": Text("x")},
			wantBody: "body",
		},
		{
			name:     "unclosed header is body",
			input:    "---\nname: unclosed\n",
			wantKeys: nil,
			wantBody: "---\nname: unclosed\n",
		},
		{
			name:     "partial delimiter",
			input:    "--\nname: nope\n--\n",
			wantKeys: nil,
			wantBody: "--\nname: nope\n--\n",
		},
		{
			name:     "list items are trimmed",
			input:    "---\ntags: [ a ,b,  c ]\n---\n",
			wantKeys: []string{"tags"},
			wantVals: map[string]Value{"tags": List("a", "b", "c")},
			wantBody: "",
		},
		{
			name:     "empty input",
			input:    "",
			wantKeys: nil,
			wantBody: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body := Parse(tt.input)

			if got := meta.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("keys = %v, want %v", got, tt.wantKeys)
			}
			for key, want := range tt.wantVals {
				got, ok := meta.Get(key)
				if !ok {
					t.Errorf("missing key %q", key)
					continue
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("%s = %#v, want %#v", key, got, want)
				}
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	meta := &Meta{}
	meta.Set("extra", Text("kept"))
	meta.Set("updated", Text("2024-03-04"))
	meta.Set("tags", List("a", "b"))
	meta.Set("name", Text("demo"))
	meta.Set("version", Text("1.0.0"))

	got := Format(meta, "\n# Demo\n")
	want := "---\nname: demo\nversion: 1.0.0\ntags: [a, b]\nupdated: 2024-03-04\nextra: kept\n---\n\n# Demo\n"
	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormat_EmptyMeta(t *testing.T) {
	if got := Format(&Meta{}, "body"); got != "---\n---\nbody" {
		t.Errorf("Format() = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		fields [][2]any
		body   string
	}{
		{
			name: "typical skill",
			fields: [][2]any{
				{"name", Text("round-trip")},
				{"description", Text("Does things. Use when: needed")},
				{"version", Text("2.0.1")},
				{"tags", List("x", "y z")},
				{"created", Text("2023-05-06")},
				{"updated", Text("2024-05-06")},
			},
			body: "\n# Round Trip\n\nSteps go here.\n",
		},
		{
			name:   "no fields",
			fields: nil,
			body:   "plain",
		},
		{
			name: "empty values",
			fields: [][2]any{
				{"name", Text("")},
				{"tags", List()},
			},
			body: "",
		},
		{
			name: "body containing delimiter",
			fields: [][2]any{
				{"name", Text("hr")},
			},
			body: "before\n---\nafter\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &Meta{}
			for _, f := range tt.fields {
				meta.Set(f[0].(string), f[1].(Value))
			}

			gotMeta, gotBody := Parse(Format(meta, tt.body))

			if gotBody != tt.body {
				t.Errorf("body = %q, want %q", gotBody, tt.body)
			}
			if gotMeta.Len() != meta.Len() {
				t.Fatalf("len = %d, want %d", gotMeta.Len(), meta.Len())
			}
			for _, key := range meta.Keys() {
				want, _ := meta.Get(key)
				got, _ := gotMeta.Get(key)
				if !reflect.DeepEqual(got, want) {
					t.Errorf("%s = %#v, want %#v", key, got, want)
				}
			}
		})
	}
}

func TestMeta_Accessors(t *testing.T) {
	meta := &Meta{}
	meta.Set("name", Text("a"))
	meta.Set("tags", List("t1", "t2"))
	meta.Set("name", Text("b"))

	if got := meta.Keys(); !reflect.DeepEqual(got, []string{"name", "tags"}) {
		t.Errorf("Keys() = %v", got)
	}
	if got := meta.String("name"); got != "b" {
		t.Errorf("String(name) = %q, want b", got)
	}
	if got := meta.String("tags"); got != "[t1, t2]" {
		t.Errorf("String(tags) = %q", got)
	}
	if got := meta.Strings("tags"); !reflect.DeepEqual(got, []string{"t1", "t2"}) {
		t.Errorf("Strings(tags) = %v", got)
	}
	if got := meta.Strings("name"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Strings(name) = %v", got)
	}
	if got := meta.Strings("missing"); got != nil {
		t.Errorf("Strings(missing) = %v, want nil", got)
	}

	var nilMeta *Meta
	if nilMeta.Len() != 0 || nilMeta.String("x") != "" {
		t.Error("nil Meta should behave as empty")
	}
}

func TestNameField(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"---\nname: foo\n---\n", "foo"},
		{"description: x\nname:   spaced  \n", "spaced"},
		{"no name here", ""},
		{"  name: indented\n", ""},
		{"name: first\nname: second\n", "first"},
	}
	for _, tt := range tests {
		if got := NameField(tt.input); got != tt.want {
			t.Errorf("NameField(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
