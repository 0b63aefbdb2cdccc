package compose

import (
	"strings"
	"testing"
)

func TestRoleArg(t *testing.T) {
	tests := []struct {
		role, head, arg string
	}{
		{"unionType", "unionType", ""},
		{"unionType(Bar)", "unionType", "Bar"},
		{"langProperty", "langProperty", ""},
		{"unionType(", "unionType(", ""},
	}
	for _, tt := range tests {
		head, arg := roleArg(tt.role)
		if head != tt.head || arg != tt.arg {
			t.Errorf("roleArg(%q) = (%q, %q), want (%q, %q)",
				tt.role, head, arg, tt.head, tt.arg)
		}
	}
}

func TestUnionAggregation(t *testing.T) {
	// declaration order Zeta before Alpha; the sorted list must not
	// depend on it
	ctx := testContext(t)
	union := mustAdd(t, ctx, "Shape", `{"$role": "unionType"}`)
	mustAdd(t, ctx, "Zeta", `{"$role": "unionType(Shape)", "description": "last letter"}`)
	mustAdd(t, ctx, "Alpha", `{"$role": "unionType(Shape)"}`)
	ProcessRoles(ctx)
	SortUnions(ctx)

	oneOf := union.Get("oneOf")
	if oneOf == nil || len(oneOf.Values) != 2 {
		t.Fatalf("oneOf = %v", oneOf)
	}
	first, second := oneOf.Values[0], oneOf.Values[1]
	if first.GetString("title") != "Alpha" || second.GetString("title") != "Zeta" {
		t.Errorf("titles = %q, %q", first.GetString("title"), second.GetString("title"))
	}
	if second.GetString("description") != "last letter" {
		t.Errorf("description = %q", second.GetString("description"))
	}
	if first.GetString("description") != "" {
		t.Errorf("missing description should be empty, got %q", first.GetString("description"))
	}
	if got := second.GetString("$ref"); got != "#/definitions/Zeta" {
		t.Errorf("ref = %q", got)
	}
	if errs := errorMessages(ctx); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestMemberOfSeveralUnions(t *testing.T) {
	ctx := testContext(t)
	u1 := mustAdd(t, ctx, "Drawable", `{"$role": "unionType"}`)
	u2 := mustAdd(t, ctx, "Movable", `{"$role": "unionType"}`)
	mustAdd(t, ctx, "Sprite", `{"$role": ["unionType(Drawable)", "unionType(Movable)"]}`)
	ProcessRoles(ctx)
	if got := len(u1.Get("oneOf").Values); got != 1 {
		t.Errorf("Drawable members = %d, want 1", got)
	}
	if got := len(u2.Get("oneOf").Values); got != 1 {
		t.Errorf("Movable members = %d, want 1", got)
	}
}

func TestMembershipBelowRootUsesRootDescription(t *testing.T) {
	ctx := testContext(t)
	union := mustAdd(t, ctx, "Shape", `{"$role": "unionType"}`)
	mustAdd(t, ctx, "Circle", `{
		"description": "a round thing",
		"properties": {"r": {"$role": "unionType(Shape)"}}
	}`)
	ProcessRoles(ctx)
	if errs := errorMessages(ctx); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	oneOf := union.Get("oneOf")
	if oneOf == nil || len(oneOf.Values) != 1 {
		t.Fatalf("oneOf = %v", oneOf)
	}
	entry := oneOf.Values[0]
	if got := entry.GetString("description"); got != "a round thing" {
		t.Errorf("description = %q, want the defining document's", got)
	}
	if got := entry.GetString("title"); got != "Circle" {
		t.Errorf("title = %q", got)
	}
}

func TestRoleErrors(t *testing.T) {
	tests := []struct {
		name    string
		defs    map[string]string
		wantErr string
	}{
		{
			"unionType below root",
			map[string]string{
				"Widget": `{"properties": {"p": {"$role": "unionType"}}}`,
			},
			"can only be defined at the top of the schema definition",
		},
		{
			"membership in undefined union",
			map[string]string{
				"Widget": `{"$role": "unionType(Ghost)"}`,
			},
			`"Ghost" is not defined`,
		},
		{
			"membership in non-union type",
			map[string]string{
				"Plain":  `{"type": "object"}`,
				"Widget": `{"$role": "unionType(Plain)"}`,
			},
			`"Plain" is missing role of unionType`,
		},
		{
			"langProperty outside property definition",
			map[string]string{
				"Widget": `{"$role": "langProperty"}`,
			},
			"must be in a property definition",
		},
		{
			"langProperty with structural type",
			map[string]string{
				"Widget": `{"properties": {"label": {"$role": "langProperty", "type": "string"}}}`,
			},
			"should not have a type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			for name, src := range tt.defs {
				mustAdd(t, ctx, name, src)
			}
			ProcessRoles(ctx)
			errs := errorMessages(ctx)
			if len(errs) == 0 {
				t.Fatal("expected an error")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", errs, tt.wantErr)
			}
		})
	}
}

func TestLangPropertyInjection(t *testing.T) {
	ctx := testContext(t)
	root := mustAdd(t, ctx, "Widget", `{
		"properties": {"label": {"$role": "langProperty", "description": "the label"}}
	}`)
	ProcessRoles(ctx)
	if errs := errorMessages(ctx); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	label := root.Get("properties").Get("label")
	if label.Get("oneOf") == nil {
		t.Error("canonical langProperty keys not copied")
	}
	// canonical keys overwrite on collision
	if got := label.GetString("description"); got != "generated text" {
		t.Errorf("description = %q, want canonical value", got)
	}
	// existing keys not named by the canonical definition survive
	if label.GetString("$role") != "langProperty" {
		t.Errorf("$role = %q", label.GetString("$role"))
	}
}
