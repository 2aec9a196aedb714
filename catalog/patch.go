package catalog

// Patch types express partial updates: nil fields are "not supplied" and
// leave the stored value untouched. The HTTP layer builds these from
// partial JSON bodies; Apply merges them over the current record.

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Names        map[string]string `json:"names,omitempty"`
	DisplayOrder *int              `json:"display_order,omitempty"`
}

// Apply merges the patch over cur and returns the result.
func (p CategoryPatch) Apply(cur Category) Category {
	if p.Names != nil {
		cur.Names = p.Names
	}
	if p.DisplayOrder != nil {
		cur.DisplayOrder = *p.DisplayOrder
	}
	return cur
}

// ItemPatch is a partial item update. CategoryID distinguishes "not
// supplied" (nil) from "clear the category" (pointer to empty string).
type ItemPatch struct {
	Names        map[string]string `json:"names,omitempty"`
	CategoryID   *string           `json:"category_id,omitempty"`
	DisplayOrder *int              `json:"display_order,omitempty"`
	Price        *float64          `json:"price,omitempty"`
	Variants     *[]Variant        `json:"variants,omitempty"`
	Tags         *[]string         `json:"tags,omitempty"`
}

// Apply merges the patch over cur and returns the result.
func (p ItemPatch) Apply(cur Item) Item {
	if p.Names != nil {
		cur.Names = p.Names
	}
	if p.CategoryID != nil {
		cur.CategoryID = *p.CategoryID
	}
	if p.DisplayOrder != nil {
		cur.DisplayOrder = *p.DisplayOrder
	}
	if p.Price != nil {
		cur.Price = *p.Price
	}
	if p.Variants != nil {
		cur.Variants = *p.Variants
	}
	if p.Tags != nil {
		cur.Tags = *p.Tags
	}
	return cur
}
