package catalogsync

import (
	"sort"

	"github.com/goliatone/go-catalog-sync/catalog"
)

// sortCategories orders categories ascending by display order, stable for
// equal orders.
func sortCategories(categories []catalog.Category) []catalog.Category {
	out := append([]catalog.Category(nil), categories...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// sortItems orders items for display. orderFor resolves a category id to its
// display order; the second result is false for unknown or empty ids.
//
// An item with a resolved category ranks by the category's display order, an
// unresolved item ranks by its own display order, so unresolved items
// interleave with the category groups instead of sinking to the end. On a
// rank tie the resolved item comes first, then item display order decides.
func sortItems(items []catalog.Item, orderFor func(string) (int, bool)) []catalog.Item {
	out := append([]catalog.Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		rankA, resolvedA := a.DisplayOrder, false
		if ord, ok := orderFor(a.CategoryID); ok {
			rankA, resolvedA = ord, true
		}
		rankB, resolvedB := b.DisplayOrder, false
		if ord, ok := orderFor(b.CategoryID); ok {
			rankB, resolvedB = ord, true
		}

		if rankA != rankB {
			return rankA < rankB
		}
		if resolvedA != resolvedB {
			return resolvedA
		}
		return a.DisplayOrder < b.DisplayOrder
	})
	return out
}

// categoryOrderResolver builds an orderFor func over a category snapshot.
func categoryOrderResolver(categories []catalog.Category) func(string) (int, bool) {
	orders := make(map[string]int, len(categories))
	for _, c := range categories {
		orders[c.ID] = c.DisplayOrder
	}
	return func(id string) (int, bool) {
		if id == "" {
			return 0, false
		}
		ord, ok := orders[id]
		return ord, ok
	}
}
