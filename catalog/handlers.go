package catalog

import (
	"time"

	"github.com/goliatone/go-catalog-sync/record"
)

// CategoryHandlers returns the record accessors for the category kind.
func CategoryHandlers() record.Handlers[Category] {
	return record.Handlers[Category]{
		Kind: "category",
		ID:   func(c Category) string { return c.ID },
		SetID: func(c Category, id string) Category {
			c.ID = id
			return c
		},
		SetCreatedAt: func(c Category, t time.Time) Category {
			c.CreatedAt = t
			return c
		},
		SetArchival: func(c Category, a *record.Archival) Category {
			c.Archived = a
			return c
		},
	}
}

// ItemHandlers returns the record accessors for the item kind.
func ItemHandlers() record.Handlers[Item] {
	return record.Handlers[Item]{
		Kind: "item",
		ID:   func(i Item) string { return i.ID },
		SetID: func(i Item, id string) Item {
			i.ID = id
			return i
		},
		SetCreatedAt: func(i Item, t time.Time) Item {
			i.CreatedAt = t
			return i
		},
		SetArchival: func(i Item, a *record.Archival) Item {
			i.Archived = a
			return i
		},
	}
}

// OrderHandlers returns the record accessors for the order kind.
func OrderHandlers() record.Handlers[Order] {
	return record.Handlers[Order]{
		Kind: "order",
		ID:   func(o Order) string { return o.ID },
		SetID: func(o Order, id string) Order {
			o.ID = id
			return o
		},
		SetCreatedAt: func(o Order, t time.Time) Order {
			o.CreatedAt = t
			return o
		},
		SetArchival: func(o Order, a *record.Archival) Order {
			o.Archived = a
			return o
		},
	}
}
