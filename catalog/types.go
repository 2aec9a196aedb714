// Package catalog defines the catalog record kinds and the service that
// enforces catalog-level invariants on top of the generic record
// repositories: category existence for item linkage, archive-only category
// deletion, and the closed order-status enum.
package catalog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-catalog-sync/record"
)

// Category groups items and carries a display order plus localized names
// keyed by locale tag (e.g. "en", "de").
type Category struct {
	ID           string            `json:"id" msgpack:"id"`
	Names        map[string]string `json:"names" msgpack:"names"`
	DisplayOrder int               `json:"display_order" msgpack:"display_order"`
	CreatedAt    time.Time         `json:"created_at,omitempty" msgpack:"created_at,omitempty"`
	Archived     *record.Archival  `json:"archived,omitempty" msgpack:"archived,omitempty"`
}

// Validate checks the invariants required of a stored category.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Names, validation.Required),
		validation.Field(&c.DisplayOrder, validation.Min(0)),
	)
}

// Variant is a size/price pair. When an item carries variants they
// supersede the flat Price field for display purposes.
type Variant struct {
	Size  string  `json:"size" msgpack:"size"`
	Price float64 `json:"price" msgpack:"price"`
}

// Validate checks a single variant.
func (v Variant) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Size, validation.Required),
		validation.Field(&v.Price, validation.Min(0.0)),
	)
}

// Item is a purchasable catalog entry. CategoryID is optional: an item may
// be uncategorized. DisplayOrder sorts items within their category.
type Item struct {
	ID           string            `json:"id" msgpack:"id"`
	Names        map[string]string `json:"names" msgpack:"names"`
	CategoryID   string            `json:"category_id,omitempty" msgpack:"category_id,omitempty"`
	DisplayOrder int               `json:"display_order" msgpack:"display_order"`
	Price        float64           `json:"price,omitempty" msgpack:"price,omitempty"`
	Variants     []Variant         `json:"variants,omitempty" msgpack:"variants,omitempty"`
	Tags         []string          `json:"tags,omitempty" msgpack:"tags,omitempty"`
	CreatedAt    time.Time         `json:"created_at,omitempty" msgpack:"created_at,omitempty"`
	Archived     *record.Archival  `json:"archived,omitempty" msgpack:"archived,omitempty"`
}

// Validate checks the invariants required of a stored item. Category
// existence is a service-level check because it needs a repository.
func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Names, validation.Required),
		validation.Field(&i.DisplayOrder, validation.Min(0)),
		validation.Field(&i.Price, validation.Min(0.0)),
		validation.Field(&i.Variants, validation.Each()),
	)
}

// OrderStatus is the closed status enum. Status is the only mutable order
// field after creation.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the three allowed values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderLine is one purchased line item, denormalized at order time so later
// catalog edits do not rewrite history.
type OrderLine struct {
	ItemID   string  `json:"item_id" msgpack:"item_id"`
	Name     string  `json:"name" msgpack:"name"`
	Quantity int     `json:"quantity" msgpack:"quantity"`
	Price    float64 `json:"price" msgpack:"price"`
	Size     string  `json:"size,omitempty" msgpack:"size,omitempty"`
}

// Validate checks a single order line.
func (l OrderLine) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ItemID, validation.Required),
		validation.Field(&l.Quantity, validation.Min(1)),
		validation.Field(&l.Price, validation.Min(0.0)),
	)
}

// Order is an immutable list of purchased lines plus a mutable status.
type Order struct {
	ID        string           `json:"id" msgpack:"id"`
	Lines     []OrderLine      `json:"lines" msgpack:"lines"`
	Status    OrderStatus      `json:"status" msgpack:"status"`
	CreatedAt time.Time        `json:"created_at,omitempty" msgpack:"created_at,omitempty"`
	Archived  *record.Archival `json:"archived,omitempty" msgpack:"archived,omitempty"`
}

// Validate checks the invariants required of a stored order.
func (o Order) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Lines, validation.Required, validation.Each()),
		validation.Field(&o.Status, validation.Required, validation.In(StatusPending, StatusCompleted, StatusCancelled)),
	)
}
