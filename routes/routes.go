package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the Product, User,
// and Order route groups under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	SetupProductRoutes(api, db)

	SetupUserRoutes(api, db)

	SetupOrderRoutes(api, db)
}
