package productcontroller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

type ResetStockInput struct {
	StockDefault *int `json:"stock_default"`
}

// ResetStock sets every product's stock to the same value (10 when the body
// omits it). Demo-store maintenance endpoint.
func ResetStock(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		stockDefault := 10

		var input ResetStockInput
		if err := c.ShouldBindJSON(&input); err == nil && input.StockDefault != nil {
			stockDefault = *input.StockDefault
		}
		if stockDefault < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El stock no puede ser negativo"})
			return
		}

		result := db.Model(&models.Product{}).Where("1 = 1").Update("stock", stockDefault)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al restablecer el stock"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"mensaje":                fmt.Sprintf("Stock restablecido a %d unidades", stockDefault),
			"productos_actualizados": result.RowsAffected,
		})
	}
}
