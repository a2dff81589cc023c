package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kamehouse-store/storefront/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ExportProductsToExcel streams the full catalog as an .xlsx download for
// the admin panel.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("nombre asc").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los productos"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Productos")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al crear la hoja de cálculo"})
			return
		}

		// Header row
		headers := []string{"ID", "Codigo", "Nombre", "Descripcion", "Precio", "Categoria", "Stock", "Imagen", "CreatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Codigo)
			row.AddCell().SetValue(p.Nombre)
			row.AddCell().SetValue(p.Descripcion)
			row.AddCell().SetValue(p.Precio)
			row.AddCell().SetValue(p.Categoria)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Imagen)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=productos.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el archivo"})
			return
		}
	}
}
