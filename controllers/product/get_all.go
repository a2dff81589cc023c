package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

// GetProducts returns the catalog, optionally narrowed to one category.
// ?categoria=todos (or no parameter) means the full catalog; the match is
// case-insensitive and exact.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoria := c.Query("categoria")

		query := db.Model(&models.Product{})
		if categoria != "" && !strings.EqualFold(categoria, "todos") {
			query = query.Where("LOWER(categoria) = LOWER(?)", categoria)
		}

		var products []models.Product
		if err := query.Order("nombre asc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los productos"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}

// SearchProducts matches a free-text term against product code and name.
// GET /api/productos/buscar?q=<term>
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		termino := strings.TrimSpace(c.Query("q"))
		if termino == "" {
			c.JSON(http.StatusOK, []models.Product{})
			return
		}

		likePattern := "%" + termino + "%"
		var products []models.Product
		if err := db.
			Where("codigo ILIKE ? OR nombre ILIKE ?", likePattern, likePattern).
			Order("nombre asc").
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar productos"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
