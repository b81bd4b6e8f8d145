package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/offanish/proshop/controllers/order"
	"github.com/offanish/proshop/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints. Everything here
// requires a valid token.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.CreateOrder(db))            // POST /api/orders
		orders.GET("/myorders", orderControllers.GetMyOrders(db))    // GET /api/orders/myorders
		orders.GET("/:id", orderControllers.GetOrderByID(db))        // GET /api/orders/:id
		orders.PUT("/:id/pay", orderControllers.PayOrder(db))        // PUT /api/orders/:id/pay

		// ──────────────── Admin ────────────────
		admin := orders.Group("")
		admin.Use(middleware.RequireAdmin)
		{
			admin.GET("", orderControllers.GetAllOrders(db))              // GET /api/orders
			admin.GET("/ws", orderControllers.OrderWebSocketHandler)      // GET /api/orders/ws
			admin.PUT("/:id/deliver", orderControllers.DeliverOrder(db))  // PUT /api/orders/:id/deliver
		}
	}
}
