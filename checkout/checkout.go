// Package checkout submits the cart to the purchase endpoint and settles
// the local state according to the outcome.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/kamehouse-store/storefront/cart"
	"github.com/kamehouse-store/storefront/receipt"
	"go.uber.org/zap"
)

var (
	// ErrPurchaseInFlight means a previous purchase has not answered yet;
	// the disabled-button analog.
	ErrPurchaseInFlight = errors.New("compra en curso")
	ErrEmptyCart        = errors.New("no hay productos en el carrito")
)

const genericError = "Error al procesar la compra"

// Flow drives one purchase attempt per user action. No retries, no
// timeouts of its own.
type Flow struct {
	client  *http.Client
	baseURL string
	engine  *cart.Engine
	notify  cart.Notifier
	cfg     receipt.Config
	log     *zap.Logger

	busy atomic.Bool
}

func New(baseURL string, engine *cart.Engine, notify cart.Notifier, cfg receipt.Config, log *zap.Logger) *Flow {
	return &Flow{
		client:  http.DefaultClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		engine:  engine,
		notify:  notify,
		cfg:     cfg,
		log:     log,
	}
}

// WithClient swaps the HTTP client, mainly for tests.
func (f *Flow) WithClient(c *http.Client) *Flow {
	f.client = c
	return f
}

type purchaseRequest struct {
	Productos []cart.Line `json:"productos"`
}

// Purchase submits the whole cart. On any failure the cart is left exactly
// as it was; on success it is cleared, persisted empty, and the view moves
// to the purchased state. The returned receipt is the pre-submit snapshot.
func (f *Flow) Purchase(ctx context.Context) (*receipt.Receipt, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return nil, ErrPurchaseInFlight
	}
	defer f.busy.Store(false)

	lines := f.engine.Lines()
	if len(lines) == 0 {
		f.notify.Error("No hay productos en el carrito")
		return nil, ErrEmptyCart
	}

	body, err := json.Marshal(purchaseRequest{Productos: lines})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		f.baseURL+"/api/procesar-compra", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// Network failures and rejections surface identically
		f.log.Warn("purchase request failed", zap.Error(err))
		f.notify.Error(genericError)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := genericError
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		f.log.Warn("purchase rejected", zap.Int("status", resp.StatusCode), zap.String("error", msg))
		f.notify.Error(msg)
		return nil, errors.New(msg)
	}

	rec := receipt.Generate(lines, f.cfg)
	if err := f.engine.CompletePurchase(); err != nil {
		return nil, err
	}

	f.log.Info("purchase completed", zap.String("factura", rec.ID), zap.Int("lineas", len(lines)))
	f.notify.Success("¡Compra realizada exitosamente!")
	return rec, nil
}
