package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

// DeleteProduct removes a product from the catalog.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
			return
		}

		result := db.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar el producto"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"mensaje": "Producto eliminado exitosamente"})
	}
}
