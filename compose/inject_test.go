package compose

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/schemacompose/schemacompose/ir"
)

func TestInjectPropertiesOrderAndPolicy(t *testing.T) {
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Widget", `{
		"type": "object",
		"properties": {"width": {"type": "number"}, "height": {"type": "number"}}
	}`)
	InjectProperties(ctx)

	props := root.Get("properties")
	want := []string{"type", "copyFrom", "name", "width", "height"}
	if diff := cmp.Diff(want, props.Keys()); diff != "" {
		t.Errorf("property order (-want +got):\n%s", diff)
	}

	disc := props.Get("type")
	enum := disc.Get("enum")
	if enum == nil || len(enum.Values) != 1 || enum.Values[0].String != "Widget" {
		t.Errorf("discriminator enum = %v", enum)
	}
	if disc.GetString("description") == "" {
		t.Error("discriminator lost canonical keys")
	}

	ap := root.Get("additionalProperties")
	if ap == nil || ap.Type != ir.BoolType || ap.Bool {
		t.Error("definition not closed")
	}
	pat := root.Get("patternProperties")
	if pat == nil || pat.Get("^_") == nil || pat.Get("^_").GetString("type") != "string" {
		t.Errorf("extension pattern rule = %v", pat)
	}
}

func TestInjectRequiredDuality(t *testing.T) {
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Widget", `{
		"properties": {"a": {"type": "string"}, "b": {"type": "string"}},
		"required": ["a", "b"]
	}`)
	InjectProperties(ctx)

	req := root.Get("required")
	if len(req.Values) != 1 || req.Values[0].String != "type" {
		t.Fatalf("required = %v", req)
	}
	anyOf := root.Get("anyOf")
	if anyOf == nil || len(anyOf.Values) != 2 {
		t.Fatalf("anyOf = %v", anyOf)
	}
	copyBranch := anyOf.Values[0].Get("required")
	if len(copyBranch.Values) != 1 || copyBranch.Values[0].String != "copyFrom" {
		t.Errorf("copy branch = %v", copyBranch)
	}
	fullBranch := anyOf.Values[1].Get("required")
	got := []string{}
	for _, v := range fullBranch.Values {
		got = append(got, v.String)
	}
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("inline branch (-want +got):\n%s", diff)
	}
}

func TestInjectWithoutRequired(t *testing.T) {
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Widget", `{"properties": {"a": {"type": "string"}}}`)
	InjectProperties(ctx)
	req := root.Get("required")
	if len(req.Values) != 1 || req.Values[0].String != "type" {
		t.Errorf("required = %v", req)
	}
	if root.Get("anyOf") != nil {
		t.Error("anyOf added without an original required list")
	}
}

func TestInjectSkipsUnions(t *testing.T) {
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Shape", `{"$role": "unionType"}`)
	InjectProperties(ctx)
	if root.Get("properties") != nil {
		t.Error("union container got properties injected")
	}
}

func TestInjectUserPropertyCollision(t *testing.T) {
	// a user property named like an injected one keeps the injected
	// position but wins the value
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Widget", `{"properties": {"name": {"type": "number"}}}`)
	InjectProperties(ctx)
	props := root.Get("properties")
	if got := props.Keys(); got[2] != "name" || len(got) != 3 {
		t.Errorf("keys = %v", got)
	}
	if props.Get("name").GetString("type") != "number" {
		t.Error("user property value lost")
	}
}
