package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/kamehouse-store/storefront/controllers/product"
	purchasecontroller "github.com/kamehouse-store/storefront/controllers/purchase"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public “/api/*” endpoints the web client
// consumes.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// ──────────────── Browse Catalog ────────────────
		api.GET("/productos", productcontroller.GetProducts(db))          // GET /api/productos?categoria=
		api.GET("/productos/buscar", productcontroller.SearchProducts(db)) // GET /api/productos/buscar?q=
		api.GET("/productos/:id", productcontroller.GetProductByID(db))   // GET /api/productos/:id

		// ──────────────── Checkout ────────────────
		api.POST("/procesar-compra", purchasecontroller.ProcessPurchase(db)) // POST /api/procesar-compra
	}
}
