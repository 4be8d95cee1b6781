package receipt

import (
	"log/slog"
	"strings"
)

// Group is the ordered list of items assigned to one full category path.
type Group struct {
	Path  string      `json:"path"`
	Items []*LineItem `json:"items"`
}

// Groups holds categorized items in first-seen path order. Paths are unique.
// An ordered slice rather than a map, because downstream tie-breaking and
// anomaly ordering depend on insertion order.
type Groups []Group

// CategoryTotal is the summed price of one category path.
type CategoryTotal struct {
	Path   string  `json:"path"`
	Amount float64 `json:"amount"`
}

// Categorizer assigns items to taxonomy categories by keyword matching.
type Categorizer struct {
	taxonomy []Category
}

// NewCategorizer creates a Categorizer over the default taxonomy.
func NewCategorizer() *Categorizer {
	return NewCategorizerWithTaxonomy(DefaultTaxonomy())
}

// NewCategorizerWithTaxonomy creates a Categorizer over a custom taxonomy.
func NewCategorizerWithTaxonomy(taxonomy []Category) *Categorizer {
	return &Categorizer{taxonomy: taxonomy}
}

// Categorize groups items by full category path. It sets each item's
// Category field in place as a documented side effect; items must not be
// shared between concurrent calls. Re-categorizing already categorized items
// yields the same paths.
func (c *Categorizer) Categorize(items []*LineItem) Groups {
	groups := Groups{}
	index := make(map[string]int)

	for _, item := range items {
		main, sub := c.match(item.Name)
		path := main
		if sub != "" {
			path = main + PathSeparator + sub
		}
		item.Category = path

		i, ok := index[path]
		if !ok {
			i = len(groups)
			index[path] = i
			groups = append(groups, Group{Path: path})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	slog.Info("categorized items", "items", len(items), "categories", len(groups))
	return groups
}

// CategoryTotals sums item prices per category path, preserving group order.
func (c *Categorizer) CategoryTotals(groups Groups) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(groups))
	for _, g := range groups {
		var amount float64
		for _, item := range g.Items {
			amount += item.Price
		}
		totals = append(totals, CategoryTotal{Path: g.Path, Amount: amount})
	}
	return totals
}

// match finds the (main, sub) pair for an item name. Categories are tried in
// taxonomy order; within a category, subcategories in their defined order.
//
// The second loop deliberately bypasses the main-keyword gate: a subcategory
// keyword matches even when the parent's top-level keywords do not. That
// broadening lets "milk" land in Groceries > Dairy without a "grocery" token
// on the line, and it means an earlier category's subcategory keywords win
// over a later category's main keywords. First match in iteration order is
// the tie-break; do not reorder.
func (c *Categorizer) match(name string) (string, string) {
	lower := strings.ToLower(name)

	for _, cat := range c.taxonomy {
		if containsAny(lower, cat.Keywords) {
			for _, sub := range cat.Subcategories {
				if containsAny(lower, sub.Keywords) {
					return cat.Name, sub.Name
				}
			}
			return cat.Name, ""
		}

		for _, sub := range cat.Subcategories {
			if containsAny(lower, sub.Keywords) {
				return cat.Name, sub.Name
			}
		}
	}

	return FallbackCategory, ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
