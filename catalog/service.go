package catalog

import (
	"context"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/record"
)

// Service composes the category, item, and order repositories and enforces
// catalog-level invariants the generic repositories cannot know about.
//
// Deleting a category always routes through Archive so item references keep
// resolving to "archived category" instead of dangling. The category filter
// on item listings is applied after the fetch; the key-value store has no
// secondary-index query capability to push it into.
type Service struct {
	categories record.API[Category]
	items      record.API[Item]
	orders     record.API[Order]
}

// NewService wires the three repositories into a catalog service. The
// repositories are typically the caching decorators from repositorycache,
// but any record.API implementation works.
func NewService(categories record.API[Category], items record.API[Item], orders record.API[Order]) *Service {
	return &Service{
		categories: categories,
		items:      items,
		orders:     orders,
	}
}

// --------------------------------------------------------------------------
// Categories
// --------------------------------------------------------------------------

// ListCategories returns the active categories in index order. Semantic
// sorting (by display order) is the consumer's concern.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.categories.List(ctx)
}

// ListArchivedCategories returns the archived categories.
func (s *Service) ListArchivedCategories(ctx context.Context) ([]Category, error) {
	return s.categories.ListArchived(ctx)
}

// GetCategory returns one active category.
func (s *Service) GetCategory(ctx context.Context, id string) (Category, error) {
	return s.categories.Get(ctx, id)
}

// CreateCategory validates and stores a new category.
func (s *Service) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if err := c.Validate(); err != nil {
		return Category{}, apperr.Wrap(apperr.KindInvalidInput, "invalid category", err)
	}
	return s.categories.Create(ctx, c)
}

// UpdateCategory merges a partial update over the stored category.
func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error) {
	cur, err := s.categories.Get(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if err := patch.Apply(cur).Validate(); err != nil {
		return Category{}, apperr.Wrap(apperr.KindInvalidInput, "invalid category", err)
	}
	return s.categories.Update(ctx, id, patch.Apply)
}

// ArchiveCategory soft-deletes a category. Categories are never
// hard-deleted; the record stays restorable and item references stay
// resolvable.
func (s *Service) ArchiveCategory(ctx context.Context, id, actor string) (Category, error) {
	return s.categories.Archive(ctx, id, actor)
}

// RestoreCategory moves an archived category back to the active set.
func (s *Service) RestoreCategory(ctx context.Context, id string) (Category, error) {
	return s.categories.Restore(ctx, id)
}

// --------------------------------------------------------------------------
// Items
// --------------------------------------------------------------------------

// ListItems returns active items, optionally filtered to one category.
// The filter runs after the fetch.
func (s *Service) ListItems(ctx context.Context, categoryID string) ([]Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return items, nil
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// ListArchivedItems returns the archived items.
func (s *Service) ListArchivedItems(ctx context.Context) ([]Item, error) {
	return s.items.ListArchived(ctx)
}

// GetItem returns one active item.
func (s *Service) GetItem(ctx context.Context, id string) (Item, error) {
	return s.items.Get(ctx, id)
}

// CreateItem validates and stores a new item. A non-empty category
// reference must point at an active category.
func (s *Service) CreateItem(ctx context.Context, item Item) (Item, error) {
	if err := item.Validate(); err != nil {
		return Item{}, apperr.Wrap(apperr.KindInvalidInput, "invalid item", err)
	}
	if err := s.checkCategoryLink(ctx, item.CategoryID); err != nil {
		return Item{}, err
	}
	return s.items.Create(ctx, item)
}

// UpdateItem merges a partial update over the stored item.
func (s *Service) UpdateItem(ctx context.Context, id string, patch ItemPatch) (Item, error) {
	cur, err := s.items.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	merged := patch.Apply(cur)
	if err := merged.Validate(); err != nil {
		return Item{}, apperr.Wrap(apperr.KindInvalidInput, "invalid item", err)
	}
	if patch.CategoryID != nil {
		if err := s.checkCategoryLink(ctx, *patch.CategoryID); err != nil {
			return Item{}, err
		}
	}
	return s.items.Update(ctx, id, patch.Apply)
}

// ArchiveItem soft-deletes an item.
func (s *Service) ArchiveItem(ctx context.Context, id, actor string) (Item, error) {
	return s.items.Archive(ctx, id, actor)
}

// RestoreItem moves an archived item back to the active set.
func (s *Service) RestoreItem(ctx context.Context, id string) (Item, error) {
	return s.items.Restore(ctx, id)
}

// BulkCreateItems is the administrative re-seeding path. It checks required
// fields only and skips the per-item linkage validation of CreateItem.
func (s *Service) BulkCreateItems(ctx context.Context, items []Item) ([]Item, error) {
	for i, item := range items {
		if len(item.Names) == 0 {
			return nil, apperr.Newf(apperr.KindInvalidInput, "item %d: names are required", i)
		}
	}
	return s.items.BulkCreate(ctx, items)
}

// BulkDeleteItems hard-wipes the active item set. Archived items survive.
func (s *Service) BulkDeleteItems(ctx context.Context) (int, error) {
	return s.items.BulkDeleteAll(ctx)
}

// checkCategoryLink verifies that a non-empty category reference resolves
// to an active category.
func (s *Service) checkCategoryLink(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return apperr.Newf(apperr.KindInvalidInput, "unknown category %s", categoryID)
		}
		return err
	}
	return nil
}

// --------------------------------------------------------------------------
// Orders
// --------------------------------------------------------------------------

// ListOrders returns every order in index order.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	return s.orders.List(ctx)
}

// GetOrder returns one order.
func (s *Service) GetOrder(ctx context.Context, id string) (Order, error) {
	return s.orders.Get(ctx, id)
}

// CreateOrder stores a new order. The line list is immutable afterwards;
// an empty status defaults to pending.
func (s *Service) CreateOrder(ctx context.Context, lines []OrderLine) (Order, error) {
	order := Order{Lines: lines, Status: StatusPending}
	if err := order.Validate(); err != nil {
		return Order{}, apperr.Wrap(apperr.KindInvalidInput, "invalid order", err)
	}
	return s.orders.Create(ctx, order)
}

// UpdateOrderStatus transitions the status, the only mutable order field.
// Values outside the closed enum are rejected.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (Order, error) {
	if !status.Valid() {
		return Order{}, apperr.Newf(apperr.KindInvalidInput, "invalid status %q (expected pending, completed or cancelled)", status)
	}
	return s.orders.Update(ctx, id, func(o Order) Order {
		o.Status = status
		return o
	})
}
