package cart

import (
	"github.com/google/uuid"
	"github.com/zanco/backend/internal/domain/shared"
)

// Line is one entry in a shopping cart. Lines are identified by the
// combination of product, size and color, so the same product in two
// sizes occupies two lines.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// Matches reports whether the line has the given identity
func (l Line) Matches(productID uuid.UUID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Cart holds the current set of lines for one shopper, guest or
// authenticated. Mutations validate against the product's stock level
// supplied by the caller.
type Cart struct {
	lines []Line
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// FromLines creates a cart from an existing line list
func FromLines(lines []Line) *Cart {
	c := &Cart{lines: make([]Line, len(lines))}
	copy(c.lines, lines)
	return c
}

// Lines returns a copy of the cart's lines
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total quantity across all lines
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Add puts one unit of the product into the cart. An existing matching
// line is incremented unless it already holds the full stock, in which
// case the cart is left unchanged and ErrStockLimit is returned. A new
// line starts at quantity 1.
func (c *Cart) Add(productID uuid.UUID, stock int, size, color string) error {
	for i, l := range c.lines {
		if l.Matches(productID, size, color) {
			if l.Quantity >= stock {
				return shared.ErrStockLimit
			}
			c.lines[i].Quantity++
			return nil
		}
	}

	if stock < 1 {
		return shared.ErrStockLimit
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: 1, Size: size, Color: color})
	return nil
}

// Remove deletes the matching line. Removing an absent line is a no-op.
func (c *Cart) Remove(productID uuid.UUID, size, color string) {
	for i, l := range c.lines {
		if l.Matches(productID, size, color) {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the matching line's quantity, clamped to the stock
// level. Quantities below 1 are rejected and the cart is unchanged, as
// is a line whose product has no stock left at all.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity, stock int, size, color string) error {
	if quantity < 1 {
		return shared.ErrInvalidQuantity
	}

	for i, l := range c.lines {
		if l.Matches(productID, size, color) {
			if stock < 1 {
				return shared.ErrStockLimit
			}
			if quantity > stock {
				quantity = stock
			}
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes every line
func (c *Cart) Clear() {
	c.lines = nil
}

// ProductIDs returns the distinct product IDs referenced by the cart
func (c *Cart) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(c.lines))
	ids := make([]uuid.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	return ids
}

// Retain keeps only the lines whose product passes the keep predicate.
// Used to drop lines whose product no longer exists in the catalog.
func (c *Cart) Retain(keep func(productID uuid.UUID) bool) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if keep(l.ProductID) {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}
