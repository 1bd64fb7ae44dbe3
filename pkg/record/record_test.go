package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOfKeepsInsertionOrder(t *testing.T) {
	r := Of("zeta", 1, "alpha", 2, "mid", 3)
	want := []string{"zeta", "alpha", "mid"}
	if got := r.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if v, ok := r.Get("alpha"); !ok || v != 2 {
		t.Errorf("Get(alpha) = %v, %v, want 2, true", v, ok)
	}
}

func TestOfPanicsOnOddArguments(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for odd argument count")
		}
	}()
	_ = Of("a")
}

func TestWithIsCopyOnWrite(t *testing.T) {
	base := Of("a", 1, "b", 2)
	next := base.With("a", 10).With("c", 3)

	if v, _ := base.Get("a"); v != 1 {
		t.Errorf("base mutated: a = %v", v)
	}
	if base.Has("c") {
		t.Error("base gained key c")
	}
	if got, want := next.Keys(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("next.Keys() = %v, want %v", got, want)
	}
	if v, _ := next.Get("a"); v != 10 {
		t.Errorf("next a = %v, want 10", v)
	}
}

func TestWithoutAndMerge(t *testing.T) {
	r := Of("a", 1, "b", 2, "c", 3).Without("b")
	if got, want := r.Keys(), []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	merged := r.Merge(Of("d", 4, "a", 9))
	if got, want := merged.Keys(), []string{"a", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("merged Keys() = %v, want %v", got, want)
	}
	if v, _ := merged.Get("a"); v != 9 {
		t.Errorf("merged a = %v, want 9", v)
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var r Record
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
	r = r.With("x", true)
	if v, ok := r.Get("x"); !ok || v != true {
		t.Errorf("Get(x) = %v, %v", v, ok)
	}
}

func TestAs(t *testing.T) {
	tests := []struct {
		name string
		in   any
		ok   bool
		keys []string
	}{
		{"record", Of("b", 1, "a", 2), true, []string{"b", "a"}},
		{"map sorted", map[string]any{"b": 1, "a": 2}, true, []string{"a", "b"}},
		{"string", "foo", false, nil},
		{"int", 42, false, nil},
		{"nil", nil, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := As(tt.in)
			if ok != tt.ok {
				t.Fatalf("As() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !reflect.DeepEqual(r.Keys(), tt.keys) {
				t.Errorf("Keys() = %v, want %v", r.Keys(), tt.keys)
			}
			if Is(tt.in) != tt.ok {
				t.Errorf("Is() = %v, want %v", Is(tt.in), tt.ok)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Of("x", 1, "nested", Of("y", []int{1, 2}))
	b := Of("x", 1, "nested", Of("y", []int{1, 2}))
	if !a.Equal(b) {
		t.Error("expected equal records")
	}
	if a.Equal(Of("nested", Of("y", []int{1, 2}), "x", 1)) {
		t.Error("records with different key order should not be equal")
	}
	if a.Equal(Of("x", 1, "nested", Of("y", []int{1, 3}))) {
		t.Error("records with different nested values should not be equal")
	}
}

func TestJSONRoundTripKeepsOrder(t *testing.T) {
	input := `{"zeta":1,"alpha":{"inner":2.5,"list":[1,"two",{"k":true}]},"beta":null}`

	r, err := ParseJSON([]byte(input))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got, want := r.Keys(), []string{"zeta", "alpha", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if v, _ := r.Get("zeta"); v != int64(1) {
		t.Errorf("zeta = %#v, want int64(1)", v)
	}
	alpha, _ := r.Get("alpha")
	nested, ok := alpha.(Record)
	if !ok {
		t.Fatalf("alpha = %T, want Record", alpha)
	}
	if v, _ := nested.Get("inner"); v != 2.5 {
		t.Errorf("inner = %v, want 2.5", v)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != input {
		t.Errorf("Marshal = %s, want %s", out, input)
	}
}

func TestParseJSONRejectsNonObject(t *testing.T) {
	if _, err := ParseJSON([]byte(`"foo"`)); err == nil {
		t.Error("expected error for non-object JSON")
	}
}

func TestParseTOMLKeepsDocumentOrder(t *testing.T) {
	doc := `
title = "demo"
count = 3

[user]
name = "Ada"
age = 36

[[items]]
sku = "a-1"
qty = 2
`
	r, err := ParseTOML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if got, want := r.Keys(), []string{"title", "count", "user", "items"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	userVal, _ := r.Get("user")
	user, ok := userVal.(Record)
	if !ok {
		t.Fatalf("user = %T, want Record", userVal)
	}
	if got, want := user.Keys(), []string{"name", "age"}; !reflect.DeepEqual(got, want) {
		t.Errorf("user.Keys() = %v, want %v", got, want)
	}
	itemsVal, _ := r.Get("items")
	items, ok := itemsVal.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("items = %#v", itemsVal)
	}
	if _, ok := items[0].(Record); !ok {
		t.Errorf("items[0] = %T, want Record", items[0])
	}
}
