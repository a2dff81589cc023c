package purchasecontroller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PurchaseLine is one cart line as submitted by the client. The client
// denormalizes the whole product onto each line; the server only needs the
// id and the quantity.
type PurchaseLine struct {
	ID       string `json:"id"`
	Cantidad int    `json:"cantidad"`
}

type PurchaseRequest struct {
	Productos []PurchaseLine `json:"productos"`
}

// NotFoundError identifies a submitted product id with no catalog row.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Producto %s no encontrado", e.ProductID)
}

// StockError reports a line whose quantity exceeds the available stock.
type StockError struct {
	Nombre     string
	Disponible int
	Solicitado int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para %s. Disponible: %d, Solicitado: %d",
		e.Nombre, e.Disponible, e.Solicitado)
}

// CheckStock validates one line against the current product row.
func CheckStock(p models.Product, cantidad int) error {
	if p.Stock < cantidad {
		return &StockError{Nombre: p.Nombre, Disponible: p.Stock, Solicitado: cantidad}
	}
	return nil
}

// generatePurchaseRef builds the confirmation id, e.g. 20250908130500-<uuid>.
func generatePurchaseRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// ProcessPurchase validates every line of the submitted cart and then
// decrements stock, all inside one transaction with row locks. Either the
// whole cart goes through or nothing does.
//
// POST /api/procesar-compra
func ProcessPurchase(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
			return
		}
		if len(req.Productos) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No hay productos en el carrito"})
			return
		}
		for _, line := range req.Productos {
			if line.ID == "" || line.Cantidad <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cuerpo de la petición inválido"})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Verify stock for every line before touching anything
			for _, line := range req.Productos {
				var product models.Product
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&product, "id = ?", line.ID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return &NotFoundError{ProductID: line.ID}
					}
					return err
				}
				if err := CheckStock(product, line.Cantidad); err != nil {
					return err
				}
			}

			// All lines fit, deduct stock
			for _, line := range req.Productos {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", line.ID).
					UpdateColumn("stock", gorm.Expr("stock - ?", line.Cantidad)).Error; err != nil {
					return err
				}
			}
			return nil
		})

		if err != nil {
			var notFound *NotFoundError
			var stock *StockError
			switch {
			case errors.As(err, &notFound):
				c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			case errors.As(err, &stock):
				c.JSON(http.StatusBadRequest, gin.H{"error": stock.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al procesar la compra"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mensaje":                "Compra procesada exitosamente",
			"productos_actualizados": len(req.Productos),
			"compra_id":              generatePurchaseRef(),
		})
	}
}
