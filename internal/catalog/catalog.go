package catalog

import (
	"strings"
)

// Product is one sellable print. The catalog is fixed at build time; nothing
// mutates a Product at runtime.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}

// Catalog holds the static product list with id lookup.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from the given products, dropping entries with empty
// or duplicate ids.
func New(products []Product) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, exists := c.byID[id]; exists {
			continue
		}
		p.ID = id
		c.byID[id] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Default returns the catalog built from the shipped product data.
func Default() *Catalog {
	return New(products)
}

// All returns the products in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a product by its stable id.
func (c *Catalog) ByID(id string) (Product, bool) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// Len reports the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}
