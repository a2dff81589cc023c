package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public catalog
// and the API-key-protected admin surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// 1️⃣ Public storefront routes
	SetupCatalogRoutes(r, db)

	// 2️⃣ Admin routes (API-Key-protected)
	SetupAdminRoutes(r, db)
}
