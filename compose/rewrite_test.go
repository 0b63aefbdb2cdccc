package compose

import (
	"testing"
)

func TestRewriteRefs(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"definitions ref is namespaced",
			"#/definitions/Color",
			"#/definitions/Widget/definitions/Color"},
		{"nested path kept",
			"#/definitions/Color/properties/hue",
			"#/definitions/Widget/definitions/Color/properties/hue"},
		{"external ref untouched",
			"other.schema.json#/definitions/Color",
			"other.schema.json#/definitions/Color"},
		{"non-definitions fragment untouched",
			"#/properties/x",
			"#/properties/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			root := mustAdd(t, ctx, "Widget", `{
				"properties": {"c": {"$ref": "`+tt.ref+`"}}
			}`)
			RewriteRefs(ctx)
			got := root.Get("properties").Get("c").GetString("$ref")
			if got != tt.want {
				t.Errorf("ref = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteRefsScopesPerType(t *testing.T) {
	ctx := testContext(t)
	a := mustAdd(t, ctx, "Alpha", `{"properties": {"x": {"$ref": "#/definitions/Shared"}}}`)
	b := mustAdd(t, ctx, "Beta", `{"properties": {"x": {"$ref": "#/definitions/Shared"}}}`)
	RewriteRefs(ctx)
	aRef := a.Get("properties").Get("x").GetString("$ref")
	bRef := b.Get("properties").Get("x").GetString("$ref")
	if aRef == bRef {
		t.Fatalf("same-named internal refs still collide: %q", aRef)
	}
	if aRef != "#/definitions/Alpha/definitions/Shared" {
		t.Errorf("Alpha ref = %q", aRef)
	}
	if bRef != "#/definitions/Beta/definitions/Shared" {
		t.Errorf("Beta ref = %q", bRef)
	}
}
