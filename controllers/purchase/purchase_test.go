package purchasecontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamehouse-store/storefront/models"
)

// TestCheckStock_Sufficient verifies a line that fits passes.
func TestCheckStock_Sufficient(t *testing.T) {
	t.Parallel()

	p := models.Product{Nombre: "Gi naranja", Stock: 5}
	assert.NoError(t, CheckStock(p, 5))
	assert.NoError(t, CheckStock(p, 1))
}

// TestCheckStock_Insufficient verifies the exact message the web client
// shows the shopper.
func TestCheckStock_Insufficient(t *testing.T) {
	t.Parallel()

	p := models.Product{Nombre: "Radar de esferas", Stock: 2}
	err := CheckStock(p, 3)
	require.Error(t, err)

	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Disponible)
	assert.Equal(t, 3, stockErr.Solicitado)
	assert.Equal(t, "Stock insuficiente para Radar de esferas. Disponible: 2, Solicitado: 3", err.Error())
}

// TestNotFoundError_Message verifies the id is embedded in the message.
func TestNotFoundError_Message(t *testing.T) {
	t.Parallel()

	err := &NotFoundError{ProductID: "kh-404"}
	assert.Equal(t, "Producto kh-404 no encontrado", err.Error())
}
