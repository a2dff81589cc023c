package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kamehouse-store/storefront/storage"
)

// Bundled catalog for running without a server.
//
//go:embed products.json
var productsJSON []byte

// Embedded decodes the bundled static catalog.
func Embedded() ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("catálogo estático inválido: %w", err)
	}
	return products, nil
}

// LoadOverrides reads the locally persisted stock overrides. An absent or
// corrupt slot means no overrides, never an error.
func LoadOverrides(st storage.Store) map[string]int {
	data, ok, err := st.Get(storage.KeyStock)
	if err != nil || !ok {
		return nil
	}
	var overrides map[string]int
	if json.Unmarshal(data, &overrides) != nil {
		return nil
	}
	return overrides
}

// SaveOverrides persists the stock override map.
func SaveOverrides(st storage.Store, overrides map[string]int) error {
	data, err := json.Marshal(overrides)
	if err != nil {
		return err
	}
	return st.Set(storage.KeyStock, data)
}

// ApplyOverrides returns a copy of the catalog with stock replaced wherever
// an override matches the product id. Pure: neither argument is mutated.
func ApplyOverrides(products []Product, overrides map[string]int) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	if len(overrides) == 0 {
		return out
	}
	for i := range out {
		if stock, ok := overrides[out[i].ID]; ok {
			out[i].Stock = stock
		}
	}
	return out
}
