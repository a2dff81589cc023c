package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kamehouse-store/storefront/models"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Nombre      string   `json:"nombre" binding:"required"`
	Precio      *float64 `json:"precio" binding:"required"`
	Codigo      string   `json:"codigo" binding:"required"`
	Categoria   string   `json:"categoria" binding:"required"`
	Descripcion string   `json:"descripcion"`
	Imagen      string   `json:"imagen"`
	Stock       int      `json:"stock"`
}

// CreateProduct registers a new catalog product. Product codes are unique
// across the catalog.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Faltan campos requeridos"})
			return
		}

		if *input.Precio < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El precio no puede ser negativo"})
			return
		}
		if input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El stock no puede ser negativo"})
			return
		}

		// Reject duplicate product codes
		var existing models.Product
		err := db.Where("codigo = ?", input.Codigo).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El código ya existe"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al validar el código"})
			return
		}

		imagen := input.Imagen
		if imagen == "" {
			imagen = models.DefaultImage
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Codigo:      input.Codigo,
			Nombre:      input.Nombre,
			Descripcion: input.Descripcion,
			Precio:      *input.Precio,
			Categoria:   input.Categoria,
			Imagen:      imagen,
			Stock:       input.Stock,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear el producto"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
