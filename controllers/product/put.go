package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Nombre      *string  `json:"nombre"`
	Precio      *float64 `json:"precio"`
	Descripcion *string  `json:"descripcion"`
	Codigo      *string  `json:"codigo"`
	Categoria   *string  `json:"categoria"`
	Imagen      *string  `json:"imagen"`
	Stock       *int     `json:"stock"`
}

// UpdateProduct applies a partial update to an existing product. Only the
// fields present in the body are touched; a code change is re-checked for
// uniqueness.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Producto no encontrado"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el producto"})
			}
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Codigo != nil && *input.Codigo != product.Codigo {
			var other models.Product
			err := db.Where("codigo = ?", *input.Codigo).First(&other).Error
			if err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "El código ya existe"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al validar el código"})
				return
			}
		}

		updates := make(map[string]interface{})
		if input.Nombre != nil {
			updates["nombre"] = *input.Nombre
		}
		if input.Precio != nil {
			if *input.Precio < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "El precio no puede ser negativo"})
				return
			}
			updates["precio"] = *input.Precio
		}
		if input.Descripcion != nil {
			updates["descripcion"] = *input.Descripcion
		}
		if input.Codigo != nil {
			updates["codigo"] = *input.Codigo
		}
		if input.Categoria != nil {
			updates["categoria"] = *input.Categoria
		}
		if input.Imagen != nil {
			updates["imagen"] = *input.Imagen
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "El stock no puede ser negativo"})
				return
			}
			updates["stock"] = *input.Stock
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar el producto"})
				return
			}
		}

		// Return the fresh row
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el producto"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
