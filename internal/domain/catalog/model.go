package catalog

import "errors"

var ErrNotFound = errors.New("product not found")

// Product is an immutable catalog entry. A nil Price marks the product as
// priceless and not purchasable.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       *int   `json:"price"`
	Image       string `json:"image"`
}

// Model holds the product collection fetched from the remote store.
type Model struct {
	products []Product
}

func NewModel() *Model {
	return &Model{}
}

// SetProducts replaces the held collection outright. Each fetch is the new
// source of truth.
func (m *Model) SetProducts(products []Product) {
	m.products = make([]Product, len(products))
	copy(m.products, products)
}

func (m *Model) Products() []Product {
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Model) ByID(id string) (Product, bool) {
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ByTitle returns the first product with the given title. Titles are not
// guaranteed unique; callers that control the key should use ByID instead.
func (m *Model) ByTitle(title string) (Product, bool) {
	for _, p := range m.products {
		if p.Title == title {
			return p, true
		}
	}
	return Product{}, false
}
