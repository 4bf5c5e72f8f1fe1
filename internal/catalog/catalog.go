package catalog

import (
	"sort"
	"strings"

	"pricelist/internal"
	"pricelist/internal/util"
)

// Catalog is the ordered, read-only result of a load.
type Catalog struct {
	items  []internal.PricedItem
	folded []string
}

// Builder accumulates items during the load phase.
type Builder struct {
	items []internal.PricedItem
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Append(item internal.PricedItem) {
	b.items = append(b.items, item)
}

func (b *Builder) Len() int {
	return len(b.items)
}

// Build freezes the builder contents. The builder must not be reused.
func (b *Builder) Build() *Catalog {
	return New(b.items)
}

func New(items []internal.PricedItem) *Catalog {
	c := &Catalog{
		items:  make([]internal.PricedItem, len(items)),
		folded: make([]string, len(items)),
	}
	copy(c.items, items)
	for i, item := range c.items {
		c.folded[i] = util.FoldName(item.Name)
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns a copy in load order.
func (c *Catalog) Items() []internal.PricedItem {
	out := make([]internal.PricedItem, len(c.items))
	copy(out, c.items)
	return out
}

// Files lists distinct source files in the order they were first seen.
func (c *Catalog) Files() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, item := range c.items {
		if _, ok := seen[item.SourceFile]; ok {
			continue
		}
		seen[item.SourceFile] = struct{}{}
		out = append(out, item.SourceFile)
	}
	return out
}

// Find returns items whose name contains text, case-insensitively, ordered by
// price per kg. Equal prices keep load order.
func (c *Catalog) Find(text string) []internal.PricedItem {
	query := util.FoldName(text)
	out := make([]internal.PricedItem, 0)
	for i, name := range c.folded {
		if strings.Contains(name, query) {
			out = append(out, c.items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PricePerKg < out[j].PricePerKg })
	return out
}
