package testsupport

import (
	"context"
	"fmt"

	"github.com/goliatone/go-catalog-sync/catalog"
)

// SampleCategories returns a small coffee-shop category set with localized
// names and deliberate display-order gaps.
func SampleCategories() []catalog.Category {
	return []catalog.Category{
		{
			Names:        map[string]string{"en": "Espresso Drinks", "de": "Espressogetränke"},
			DisplayOrder: 10,
		},
		{
			Names:        map[string]string{"en": "Brewed Coffee", "de": "Filterkaffee"},
			DisplayOrder: 20,
		},
		{
			Names:        map[string]string{"en": "Teas", "de": "Tees"},
			DisplayOrder: 30,
		},
		{
			Names:        map[string]string{"en": "Pastries", "de": "Gebäck"},
			DisplayOrder: 40,
		},
	}
}

// SampleItems returns items referencing categories by their English name.
// categoryID resolves a name to the created category's ID; an empty result
// leaves the item uncategorized.
func SampleItems(categoryID func(name string) string) []catalog.Item {
	return []catalog.Item{
		{
			Names:        map[string]string{"en": "Espresso", "de": "Espresso"},
			CategoryID:   categoryID("Espresso Drinks"),
			DisplayOrder: 1,
			Variants: []catalog.Variant{
				{Size: "single", Price: 2.20},
				{Size: "double", Price: 2.80},
			},
			Tags: []string{"classic"},
		},
		{
			Names:        map[string]string{"en": "Cappuccino", "de": "Cappuccino"},
			CategoryID:   categoryID("Espresso Drinks"),
			DisplayOrder: 2,
			Price:        3.60,
			Tags:         []string{"classic", "milk"},
		},
		{
			Names:        map[string]string{"en": "Pour Over", "de": "Handfilter"},
			CategoryID:   categoryID("Brewed Coffee"),
			DisplayOrder: 1,
			Price:        3.20,
		},
		{
			Names:        map[string]string{"en": "Earl Grey", "de": "Earl Grey"},
			CategoryID:   categoryID("Teas"),
			DisplayOrder: 1,
			Price:        2.90,
		},
		{
			Names:        map[string]string{"en": "Croissant", "de": "Croissant"},
			CategoryID:   categoryID("Pastries"),
			DisplayOrder: 1,
			Price:        2.50,
			Tags:         []string{"vegetarian"},
		},
		{
			Names:        map[string]string{"en": "Bottled Water", "de": "Wasser"},
			DisplayOrder: 99,
			Price:        1.50,
		},
	}
}

// Seed writes the sample categories and items through the service so every
// catalog invariant applies. It reports how many records were created.
func Seed(ctx context.Context, svc *catalog.Service) (categories, items int, err error) {
	idByName := make(map[string]string)
	for _, c := range SampleCategories() {
		created, err := svc.CreateCategory(ctx, c)
		if err != nil {
			return categories, 0, fmt.Errorf("seed category %q: %w", c.Names["en"], err)
		}
		idByName[created.Names["en"]] = created.ID
		categories++
	}

	createdItems, err := svc.BulkCreateItems(ctx, SampleItems(func(name string) string {
		return idByName[name]
	}))
	if err != nil {
		return categories, 0, fmt.Errorf("seed items: %w", err)
	}

	return categories, len(createdItems), nil
}
