// Package catalog holds the read-only data the demo routes serve: a fixed
// item catalog and the canned model messages.
package catalog

import (
	"math"

	"paramd/pkg/types"
)

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	entries []types.CatalogEntry
}

// New returns the default catalog: Foo, Bar, Baz.
func New() *Catalog {
	return NewWith(
		types.CatalogEntry{ItemName: "Foo"},
		types.CatalogEntry{ItemName: "Bar"},
		types.CatalogEntry{ItemName: "Baz"},
	)
}

// NewWith builds a catalog over a copy of entries.
func NewWith(entries ...types.CatalogEntry) *Catalog {
	return &Catalog{entries: append(make([]types.CatalogEntry, 0, len(entries)), entries...)}
}

// Len is the number of catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Items returns the window [skip, skip+limit) of the catalog. Bounds behave
// like sequence slicing: negative bounds count from the end and windows
// outside the catalog are empty rather than errors.
func (c *Catalog) Items(skip, limit int) []types.CatalogEntry {
	n := len(c.entries)
	start, stop := clamp(skip, n), clamp(addSat(skip, limit), n)
	if stop <= start {
		return []types.CatalogEntry{}
	}
	return append([]types.CatalogEntry(nil), c.entries[start:stop]...)
}

// addSat adds without wrapping, pinning at the int bounds.
func addSat(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func clamp(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}

// Model returns the canned response for a model name. Names outside the
// closed ModelName set, which the router already rejects but other callers
// can construct, yield an error matching IsModelNotFound.
func (c *Catalog) Model(m types.ModelName) (types.ModelResponse, error) {
	switch m {
	case types.ModelAlexNet:
		return types.ModelResponse{ModelName: m, Message: "Deep Learning FTW!"}, nil
	case types.ModelLeNet:
		return types.ModelResponse{ModelName: m, Message: "LeCNN all the images"}, nil
	case types.ModelResNet:
		return types.ModelResponse{ModelName: m, Message: "Have some residuals"}, nil
	}
	return types.ModelResponse{}, ErrModelNotFound(string(m))
}

// Ready reports whether the catalog can serve requests.
func (c *Catalog) Ready() bool { return c != nil && c.entries != nil }
