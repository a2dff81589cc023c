package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kamehouse-store/storefront/cart"
	"github.com/kamehouse-store/storefront/catalog"
	"github.com/kamehouse-store/storefront/receipt"
	"github.com/kamehouse-store/storefront/storage"
)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type alwaysYes struct{}

func (alwaysYes) Confirm(string) bool { return true }

func testCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "P1", Nombre: "Gi naranja", Precio: 10.00, Stock: 5},
		{ID: "P2", Nombre: "Caparazón", Precio: 5.00, Stock: 5},
	}
}

func newLoadedEngine(t *testing.T) (*cart.Engine, *storage.MemStore, *recordingNotifier) {
	t.Helper()
	st := storage.NewMemStore()
	n := &recordingNotifier{}
	e := cart.NewEngine(st, n, alwaysYes{}, zap.NewNop())
	require.NoError(t, e.Add("P1", testCatalog(), 2))
	require.NoError(t, e.Add("P2", testCatalog(), 3))
	return e, st, n
}

// TestPurchase_Success verifies the happy path: the submitted body carries
// the full line list, the cart empties, storage reflects the empty array,
// the view moves to purchased and the receipt matches the snapshot.
func TestPurchase_Success(t *testing.T) {
	t.Parallel()

	e, st, n := newLoadedEngine(t)

	var submitted struct {
		Productos []cart.Line `json:"productos"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/procesar-compra", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &submitted))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"mensaje":                "Compra procesada exitosamente",
			"productos_actualizados": 2,
		})
	}))
	defer srv.Close()

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())
	rec, err := flow.Purchase(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)

	require.Len(t, submitted.Productos, 2)
	assert.Equal(t, "P1", submitted.Productos[0].ProductID)
	assert.Equal(t, 2, submitted.Productos[0].Cantidad)

	// receipt figures: subtotal 35.00, tax 5.60, total 40.60
	assert.InDelta(t, 35.00, rec.Subtotal, 1e-9)
	assert.InDelta(t, 5.60, rec.Tax, 1e-9)
	assert.InDelta(t, 40.60, rec.Total, 1e-9)

	assert.Empty(t, e.Lines())
	assert.Equal(t, cart.StatePurchased, e.State())
	assert.Contains(t, n.successes, "¡Compra realizada exitosamente!")

	data, ok, err := st.Get(storage.KeyCart)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []cart.Line
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Empty(t, stored)
}

// TestPurchase_Rejected verifies a 409 with an error body leaves the cart
// untouched, surfaces the server message and releases the guard.
func TestPurchase_Rejected(t *testing.T) {
	t.Parallel()

	e, _, n := newLoadedEngine(t)
	before := e.Lines()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "out of stock"})
	}))
	defer srv.Close()

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())
	rec, err := flow.Purchase(context.Background())
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.EqualError(t, err, "out of stock")

	assert.Equal(t, before, e.Lines())
	assert.Equal(t, cart.StatePopulated, e.State())
	assert.Contains(t, n.errors, "out of stock")

	// guard released: the next attempt reaches the server again
	_, err = flow.Purchase(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPurchaseInFlight)
}

// TestPurchase_MalformedErrorBody verifies the generic fallback message.
func TestPurchase_MalformedErrorBody(t *testing.T) {
	t.Parallel()

	e, _, n := newLoadedEngine(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())
	_, err := flow.Purchase(context.Background())
	require.Error(t, err)
	assert.Contains(t, n.errors, "Error al procesar la compra")
	assert.Len(t, e.Lines(), 2)
}

// TestPurchase_NetworkFailure verifies transport errors behave like
// rejections: notice shown, cart intact.
func TestPurchase_NetworkFailure(t *testing.T) {
	t.Parallel()

	e, _, n := newLoadedEngine(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())
	_, err := flow.Purchase(context.Background())
	require.Error(t, err)
	assert.Contains(t, n.errors, "Error al procesar la compra")
	assert.Len(t, e.Lines(), 2)
	assert.Equal(t, cart.StatePopulated, e.State())
}

// TestPurchase_EmptyCart verifies an empty cart never reaches the wire.
func TestPurchase_EmptyCart(t *testing.T) {
	t.Parallel()

	st := storage.NewMemStore()
	n := &recordingNotifier{}
	e := cart.NewEngine(st, n, alwaysYes{}, zap.NewNop())

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())
	_, err := flow.Purchase(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, hits)
}

// TestPurchase_ReentrancyGuard verifies a second attempt while the first is
// in flight fails fast with ErrPurchaseInFlight.
func TestPurchase_ReentrancyGuard(t *testing.T) {
	t.Parallel()

	e, _, n := newLoadedEngine(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		json.NewEncoder(w).Encode(map[string]string{"mensaje": "Compra procesada exitosamente"})
	}))
	defer srv.Close()

	flow := New(srv.URL, e, n, receipt.DefaultConfig(), zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := flow.Purchase(context.Background())
		done <- err
	}()

	<-entered
	_, err := flow.Purchase(context.Background())
	assert.ErrorIs(t, err, ErrPurchaseInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, cart.StatePurchased, e.State())
}
