package cart

import "github.com/example/storefront/internal/domain/catalog"

// Item wraps a product with its zero-based position in the cart. Indices are
// always a contiguous 0..n-1 renumbering of the current sequence.
type Item struct {
	Product catalog.Product `json:"product"`
	Index   int             `json:"index"`
}

// Model holds the user's in-progress selection in insertion order, unique by
// product ID, plus a cached total price.
type Model struct {
	items []Item
	total int
}

func NewModel() *Model {
	return &Model{}
}

// Add appends the product unless an item with the same ID is already present,
// in which case it is a no-op.
func (m *Model) Add(p catalog.Product) {
	if m.Has(p.ID) {
		return
	}
	m.items = append(m.items, Item{Product: p, Index: len(m.items)})
	m.recompute()
}

// Remove drops the item with the given product ID and renumbers the remaining
// items. Removing an absent ID is a no-op: the "already removed" race is
// expected and must not fail.
func (m *Model) Remove(productID string) {
	kept := m.items[:0]
	for _, it := range m.items {
		if it.Product.ID != productID {
			it.Index = len(kept)
			kept = append(kept, it)
		}
	}
	m.items = kept
	m.recompute()
}

// Items returns the cart items in insertion order.
func (m *Model) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// Products returns just the products, in insertion order.
func (m *Model) Products() []catalog.Product {
	out := make([]catalog.Product, len(m.items))
	for i, it := range m.items {
		out[i] = it.Product
	}
	return out
}

func (m *Model) Has(productID string) bool {
	for _, it := range m.items {
		if it.Product.ID == productID {
			return true
		}
	}
	return false
}

func (m *Model) Len() int {
	return len(m.items)
}

func (m *Model) Total() int {
	return m.total
}

func (m *Model) Clear() {
	m.items = nil
	m.total = 0
}

// recompute rebuilds the total as a fresh sum over current items. Totals are
// never adjusted in place, so repeated add/remove cycles cannot drift.
func (m *Model) recompute() {
	total := 0
	for _, it := range m.items {
		if it.Product.Price != nil {
			total += *it.Product.Price
		}
	}
	m.total = total
}
