// Package catalog loads and projects the purchasable product list, either
// from the storefront API or from the bundled static catalog.
package catalog

import (
	"strings"
)

// Product is the client-side view of a catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	Descripcion string  `json:"descripcion,omitempty"`
	Precio      float64 `json:"precio"`
	Categoria   string  `json:"categoria"`
	Imagen      string  `json:"imagen"`
	Stock       int     `json:"stock"`
}

// Agotado reports whether the product cannot be added to a cart.
func (p Product) Agotado() bool {
	return p.Stock <= 0
}

// FindByID returns the product with the given id, or false.
func FindByID(products []Product, id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// FilterCategory narrows a catalog to one category, case-insensitively.
// Empty or "todos" keeps everything.
func FilterCategory(products []Product, categoria string) []Product {
	if categoria == "" || strings.EqualFold(categoria, "todos") {
		return products
	}
	var out []Product
	for _, p := range products {
		if strings.EqualFold(p.Categoria, categoria) {
			out = append(out, p)
		}
	}
	return out
}

// FilterSearch keeps products whose name or category contains the term,
// case-insensitively. An empty term keeps everything, matching the live
// search box behavior.
func FilterSearch(products []Product, termino string) []Product {
	termino = strings.ToLower(termino)
	var out []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Nombre), termino) ||
			strings.Contains(strings.ToLower(p.Categoria), termino) {
			out = append(out, p)
		}
	}
	return out
}
