package frontmatter

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleFields() Fields {
	f := NewFields()
	f.Set("status", String("In Progress"))
	f.Set("priority", Number(3))
	f.Set("estimate", Number(1.5))
	f.Set("done", Bool(false))
	f.Set("tags", List([]string{"alpha", "beta gamma"}))
	f.Set("due", Null())
	f.Set("looks_like_bool", String("true"))
	f.Set("looks_like_number", String("42"))
	f.Set("empty", String(""))
	f.Set("multiline", String("line one\nline two"))
	f.Set("dashes", String("---"))
	f.Set("no_tags", List(nil))
	f.Set("big", Number(1e20))
	f.Set("big_negative", Number(-1e19))
	return f
}

func TestRoundTrip(t *testing.T) {
	bodies := []string{
		"",
		"# Title\n\nSome text.\n",
		"no trailing newline",
		"---\nbody that starts with a delimiter\n",
		"\n\nleading blank lines",
	}
	for _, body := range bodies {
		fields := sampleFields()
		text := Serialize(fields, body)

		gotFields, gotBody := Parse(text)
		if !gotFields.Equal(fields) {
			gj, _ := json.Marshal(gotFields)
			wj, _ := json.Marshal(fields)
			t.Errorf("fields round-trip mismatch for body %q:\n got  %s\n want %s", body, gj, wj)
		}
		if gotBody != body {
			t.Errorf("body round-trip = %q, want %q", gotBody, body)
		}
	}
}

func TestSerialize_EmptyFieldsReturnsBody(t *testing.T) {
	body := "# Just a body\n"
	if got := Serialize(NewFields(), body); got != body {
		t.Errorf("Serialize = %q, want %q", got, body)
	}
}

func TestSerialize_KeepsKeyOrder(t *testing.T) {
	f := NewFields()
	f.Set("zeta", String("z"))
	f.Set("alpha", String("a"))
	f.Set("mid", String("m"))

	text := Serialize(f, "")
	zi := strings.Index(text, "zeta:")
	ai := strings.Index(text, "alpha:")
	mi := strings.Index(text, "mid:")
	if !(zi < ai && ai < mi) {
		t.Errorf("keys out of order:\n%s", text)
	}
	if !strings.HasPrefix(text, "---\n") {
		t.Errorf("missing opening delimiter:\n%s", text)
	}
}

func TestParse_FailsSoft(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no front matter", "# Heading\n\nbody"},
		{"unclosed block", "---\nstatus: Todo\nbody without close"},
		{"invalid yaml", "---\nstatus: [unclosed\n---\nbody"},
		{"scalar yaml", "---\njust a string\n---\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, body := Parse(tt.text)
			if fields.Len() != 0 {
				t.Errorf("fields = %v, want empty", fields.Keys())
			}
			if body != tt.text {
				t.Errorf("body = %q, want original text", body)
			}
		})
	}
}

func TestParse_EmptyHeader(t *testing.T) {
	fields, body := Parse("---\n---\nbody")
	if fields.Len() != 0 {
		t.Errorf("fields = %v, want empty", fields.Keys())
	}
	if body != "body" {
		t.Errorf("body = %q, want %q", body, "body")
	}
}

func TestParse_TypedValues(t *testing.T) {
	text := "---\ncount: 7\nratio: 0.25\nok: true\nwhen: 2024-03-01\ntags:\n  - a\n  - b\nnothing:\n---\nbody"
	fields, body := Parse(text)
	if body != "body" {
		t.Errorf("body = %q", body)
	}

	checks := map[string]Value{
		"count":   Number(7),
		"ratio":   Number(0.25),
		"ok":      Bool(true),
		"when":    String("2024-03-01"),
		"tags":    List([]string{"a", "b"}),
		"nothing": Null(),
	}
	for k, want := range checks {
		got, ok := fields.Get(k)
		if !ok {
			t.Errorf("missing key %q", k)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s = %v (%s), want %v (%s)", k, got.Any(), got.Kind(), want.Any(), want.Kind())
		}
	}
	if got := fields.Keys(); strings.Join(got, ",") != "count,ratio,ok,when,tags,nothing" {
		t.Errorf("key order = %v", got)
	}
}

func TestFields_RenameKeepsPosition(t *testing.T) {
	f := NewFields()
	f.Set("a", String("1"))
	f.Set("b", String("2"))
	f.Set("c", String("3"))

	if !f.Rename("b", "beta") {
		t.Fatal("Rename returned false")
	}
	if got := strings.Join(f.Keys(), ","); got != "a,beta,c" {
		t.Errorf("keys = %s, want a,beta,c", got)
	}
	v, _ := f.Get("beta")
	if s, _ := v.Str(); s != "2" {
		t.Errorf("beta = %q, want 2", s)
	}
	if f.Rename("missing", "x") {
		t.Error("Rename of missing key should return false")
	}
}

func TestFields_JSON(t *testing.T) {
	f := NewFields()
	f.Set("b", Number(2))
	f.Set("a", List([]string{"x"}))
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"b":2,"a":["x"]}` {
		t.Errorf("json = %s", data)
	}
}

func TestValueFromAny(t *testing.T) {
	tests := []struct {
		in   any
		want Value
	}{
		{"x", String("x")},
		{float64(2), Number(2)},
		{true, Bool(true)},
		{nil, Null()},
		{[]any{"a", float64(1), true}, List([]string{"a", "1", "true"})},
	}
	for _, tt := range tests {
		got, err := ValueFromAny(tt.in)
		if err != nil {
			t.Errorf("ValueFromAny(%v): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ValueFromAny(%v) = %v, want %v", tt.in, got.Any(), tt.want.Any())
		}
	}

	if _, err := ValueFromAny(map[string]any{"nested": 1}); err == nil {
		t.Error("nested objects should be rejected")
	}
}
