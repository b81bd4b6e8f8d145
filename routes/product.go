package routes

import (
	"github.com/gin-gonic/gin"
	productControllers "github.com/offanish/proshop/controllers/product"
	"github.com/offanish/proshop/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/api/products/*" endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		// ──────────────── Public Catalog ────────────────
		products.GET("", productControllers.GetProducts(db))         // GET /api/products
		products.GET("/top", productControllers.GetTopProducts(db))  // GET /api/products/top
		products.GET("/:id", productControllers.GetProductByID(db))  // GET /api/products/:id

		// ──────────────── Reviews (JWT-protected) ────────────────
		products.POST("/:id/reviews", middleware.ValidateToken, productControllers.CreateReview(db))

		// ──────────────── Admin Catalog Management ────────────────
		admin := products.Group("")
		admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("", productControllers.CreateProduct(db))              // POST /api/products
			admin.GET("/export", productControllers.ExportProductsToExcel(db)) // GET /api/products/export
			admin.PUT("/:id", productControllers.UpdateProduct(db))           // PUT /api/products/:id
			admin.DELETE("/:id", productControllers.DeleteProduct(db))        // DELETE /api/products/:id
		}
	}
}
