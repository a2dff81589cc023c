// Package cart implements the shopping cart engine: one line per product,
// quantity capped by known stock, every mutation immediately mirrored to the
// persisted store.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kamehouse-store/storefront/catalog"
	"github.com/kamehouse-store/storefront/storage"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrOutOfStock        = errors.New("producto agotado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Line is one cart entry. Product fields are copied at add time so the cart
// renders without the catalog present.
type Line struct {
	ProductID string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Precio    float64 `json:"precio"`
	Categoria string  `json:"categoria"`
	Imagen    string  `json:"imagen"`
	Stock     int     `json:"stock"`
	Cantidad  int     `json:"cantidad"`
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() float64 {
	return l.Precio * float64(l.Cantidad)
}

// Notifier receives the user-facing notices the engine emits. The
// presentation layer decides how to show them.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ViewState is the cart view's position in its lifecycle.
type ViewState int

const (
	StateEmpty ViewState = iota
	StatePopulated
	StatePurchased
)

func (s ViewState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StatePurchased:
		return "purchased"
	default:
		return "unknown"
	}
}

// Engine owns the in-memory cart and its persisted mirror.
type Engine struct {
	store   storage.Store
	notify  Notifier
	confirm Confirmer
	log     *zap.Logger

	lines []Line
	state ViewState
}

// NewEngine re-hydrates the cart from the store. An absent or corrupt slot
// yields an empty cart.
func NewEngine(store storage.Store, notify Notifier, confirm Confirmer, log *zap.Logger) *Engine {
	e := &Engine{
		store:   store,
		notify:  notify,
		confirm: confirm,
		log:     log,
		state:   StateEmpty,
	}

	data, ok, err := store.Get(storage.KeyCart)
	if err != nil {
		log.Warn("cart slot unreadable, starting empty", zap.Error(err))
		return e
	}
	if ok {
		if err := json.Unmarshal(data, &e.lines); err != nil {
			log.Warn("cart slot corrupt, starting empty", zap.Error(err))
			e.lines = nil
		}
	}
	if len(e.lines) > 0 {
		e.state = StatePopulated
	}
	return e
}

// persist mirrors the in-memory lines to the store. Always called right
// after a mutation, before control returns to the caller.
func (e *Engine) persist() error {
	lines := e.lines
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return e.store.Set(storage.KeyCart, data)
}

func (e *Engine) find(productID string) int {
	for i, l := range e.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add puts cantidad units of a catalog product in the cart. The request is
// rejected outright, never clamped, when it would push the line past the
// product's known stock.
func (e *Engine) Add(productID string, products []catalog.Product, cantidad int) error {
	if cantidad < 1 {
		cantidad = 1
	}

	product, ok := catalog.FindByID(products, productID)
	if !ok {
		e.notify.Error("Producto no encontrado")
		return ErrProductNotFound
	}
	if product.Agotado() {
		e.notify.Error("Sin stock disponible")
		return ErrOutOfStock
	}

	idx := e.find(productID)
	enCarrito := 0
	if idx >= 0 {
		enCarrito = e.lines[idx].Cantidad
	}
	if enCarrito+cantidad > product.Stock {
		e.notify.Error("No hay más stock disponible")
		return ErrInsufficientStock
	}

	if idx >= 0 {
		e.lines[idx].Cantidad += cantidad
	} else {
		e.lines = append(e.lines, Line{
			ProductID: product.ID,
			Nombre:    product.Nombre,
			Precio:    product.Precio,
			Categoria: product.Categoria,
			Imagen:    product.Imagen,
			Stock:     product.Stock,
			Cantidad:  cantidad,
		})
	}
	e.state = StatePopulated

	if err := e.persist(); err != nil {
		e.log.Error("cart persist failed", zap.Error(err))
		return err
	}
	e.log.Debug("line added", zap.String("producto", productID), zap.Int("cantidad", cantidad))
	e.notify.Success("Producto añadido")
	return nil
}

// Remove drops the whole line for a product. Removing an absent line is an
// intentional idempotent no-op.
func (e *Engine) Remove(productID string) error {
	idx := e.find(productID)
	if idx < 0 {
		return nil
	}

	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	if len(e.lines) == 0 {
		e.state = StateEmpty
	}

	if err := e.persist(); err != nil {
		e.log.Error("cart persist failed", zap.Error(err))
		return err
	}
	e.notify.Success("Producto eliminado")
	return nil
}

// Empty clears the cart after the user confirms. Returns whether the cart
// was actually emptied.
func (e *Engine) Empty() (bool, error) {
	prompt := fmt.Sprintf("Se van a borrar %d productos.", e.Count())
	if !e.confirm.Confirm(prompt) {
		return false, nil
	}

	e.lines = nil
	e.state = StateEmpty
	if err := e.persist(); err != nil {
		e.log.Error("cart persist failed", zap.Error(err))
		return false, err
	}
	return true, nil
}

// CompletePurchase clears the cart after a successful checkout and leaves
// the view in the purchased state.
func (e *Engine) CompletePurchase() error {
	e.lines = nil
	e.state = StatePurchased
	if err := e.persist(); err != nil {
		e.log.Error("cart persist failed", zap.Error(err))
		return err
	}
	return nil
}

// Total is the single source of truth for the displayed cart total.
func (e *Engine) Total() float64 {
	var total float64
	for _, l := range e.lines {
		total += l.Subtotal()
	}
	return total
}

// Count is the number the cart badge shows: total units across all lines.
func (e *Engine) Count() int {
	var n int
	for _, l := range e.lines {
		n += l.Cantidad
	}
	return n
}

// Lines returns a snapshot of the cart in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

func (e *Engine) State() ViewState {
	return e.state
}
