package catalog

import (
	"math"
	"testing"

	"paramd/pkg/types"
)

func names(es []types.CatalogEntry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ItemName
	}
	return out
}

func TestItems_Windows(t *testing.T) {
	c := New()
	cases := []struct {
		skip, limit int
		want        []string
	}{
		{0, 10, []string{"Foo", "Bar", "Baz"}},
		{0, 2, []string{"Foo", "Bar"}},
		{1, 1, []string{"Bar"}},
		{2, 10, []string{"Baz"}},
		{10, 5, []string{}},
		{0, 0, []string{}},
		{-1, 10, []string{"Baz"}},
		{-10, 2, []string{}},
		{1, -1, []string{}},
		{1, math.MaxInt, []string{"Bar", "Baz"}},
		{math.MinInt, -1, []string{}},
	}
	for _, tc := range cases {
		got := names(c.Items(tc.skip, tc.limit))
		if len(got) != len(tc.want) {
			t.Fatalf("Items(%d,%d) = %v, want %v", tc.skip, tc.limit, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Items(%d,%d) = %v, want %v", tc.skip, tc.limit, got, tc.want)
			}
		}
	}
}

func TestItems_EmptyIsNotNil(t *testing.T) {
	if got := New().Items(10, 5); got == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := New()
	got := c.Items(0, 1)
	got[0].ItemName = "mutated"
	if c.Items(0, 1)[0].ItemName != "Foo" {
		t.Fatalf("catalog was mutated through a returned slice")
	}
}

func TestModel_Messages(t *testing.T) {
	c := New()
	want := map[types.ModelName]string{
		types.ModelAlexNet: "Deep Learning FTW!",
		types.ModelLeNet:   "LeCNN all the images",
		types.ModelResNet:  "Have some residuals",
	}
	for m, msg := range want {
		got, err := c.Model(m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if got.ModelName != m || got.Message != msg {
			t.Fatalf("%s: got %+v", m, got)
		}
	}
	if _, err := c.Model("foo"); !IsModelNotFound(err) {
		t.Fatalf("expected model not found, got %v", err)
	}
}

func TestReady(t *testing.T) {
	if !New().Ready() {
		t.Fatalf("default catalog should be ready")
	}
	var c *Catalog
	if c.Ready() {
		t.Fatalf("nil catalog should not be ready")
	}
}
