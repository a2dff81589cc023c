package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/kamehouse-store/storefront/controllers/product"
	userControllers "github.com/kamehouse-store/storefront/controllers/user"
	"github.com/kamehouse-store/storefront/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the admin-panel endpoints. Requires API-Key
// middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		adminGroup.POST("/productos", productcontroller.CreateProduct(db))
		adminGroup.PUT("/productos/:id", productcontroller.UpdateProduct(db))
		adminGroup.DELETE("/productos/:id", productcontroller.DeleteProduct(db))
		adminGroup.POST("/productos/restablecer-stock", productcontroller.ResetStock(db))
		adminGroup.GET("/admin/productos/export", productcontroller.ExportProductsToExcel(db))

		// ─────────── User Management ───────────
		adminGroup.GET("/usuarios", userControllers.GetAllUsers(db))
		adminGroup.PUT("/usuarios/:id/rol", userControllers.UpdateUserRole(db))
		adminGroup.DELETE("/usuarios/:id", userControllers.DeleteUser(db))
	}
}
