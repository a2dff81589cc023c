package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Loader fetches the catalog from the storefront API.
type Loader struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger
}

func NewLoader(baseURL string, log *zap.Logger) *Loader {
	return &Loader{
		client:  http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// WithClient swaps the HTTP client, mainly for tests.
func (l *Loader) WithClient(c *http.Client) *Loader {
	l.client = c
	return l
}

func (l *Loader) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := l.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("conectar con el servidor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("el servidor respondió %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Load fetches the product list, optionally narrowed to one category.
// On failure the catalog stays empty and the error carries the inline
// message to render.
func (l *Loader) Load(ctx context.Context, categoria string) ([]Product, error) {
	query := url.Values{}
	if categoria != "" && !strings.EqualFold(categoria, "todos") {
		query.Set("categoria", categoria)
	}
	var products []Product
	if err := l.getJSON(ctx, "/api/productos", query, &products); err != nil {
		l.log.Warn("catalog load failed", zap.Error(err))
		return nil, err
	}
	l.log.Debug("catalog loaded", zap.Int("productos", len(products)))
	return products, nil
}

// Search asks the server for products matching the term by code or name.
func (l *Loader) Search(ctx context.Context, termino string) ([]Product, error) {
	termino = strings.TrimSpace(termino)
	if termino == "" {
		return nil, nil
	}
	query := url.Values{}
	query.Set("q", termino)
	var products []Product
	if err := l.getJSON(ctx, "/api/productos/buscar", query, &products); err != nil {
		l.log.Warn("catalog search failed", zap.Error(err))
		return nil, err
	}
	return products, nil
}

// Detail fetches a single product by id.
func (l *Loader) Detail(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := l.getJSON(ctx, "/api/productos/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
