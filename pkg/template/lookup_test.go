package template

import "testing"

func TestLookup(t *testing.T) {
	ctx := Context{
		"name": "stamp",
		"author": map[string]interface{}{
			"name": "Ada",
			"tags": map[string]string{"role": "maintainer"},
		},
		"empty": nil,
	}

	tests := []struct {
		path      string
		want      interface{}
		wantFound bool
	}{
		{"name", "stamp", true},
		{"author.name", "Ada", true},
		{"author.tags.role", "maintainer", true},
		{"empty", nil, true},
		{"missing", nil, false},
		{"author.missing", nil, false},
		{"name.deeper", nil, false},
	}

	for _, tt := range tests {
		got, found := Lookup(ctx, tt.path)
		if found != tt.wantFound {
			t.Errorf("Lookup(%q): found = %v, want %v", tt.path, found, tt.wantFound)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLookupNilContext(t *testing.T) {
	if _, found := Lookup(nil, "anything"); found {
		t.Error("nil context should resolve nothing")
	}
}

func TestTruthy(t *testing.T) {
	falsy := []interface{}{nil, false, "", 0, int64(0), 0.0, uint(0)}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("Truthy(%#v) = true, want false", v)
		}
	}

	truthy := []interface{}{true, "x", 1, -1, 0.5, []interface{}{}, map[string]interface{}{}}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("Truthy(%#v) = false, want true", v)
		}
	}
}

func TestValidationResultMerge(t *testing.T) {
	a := NewValidationResult()
	a.AddWarning("w1")

	b := NewValidationResult()
	b.AddError("e1")

	a.Merge(b)
	if a.Valid {
		t.Error("merging an invalid result must invalidate")
	}
	if len(a.Errors) != 1 || len(a.Warnings) != 1 {
		t.Errorf("unexpected merged contents: %+v", a)
	}
}
