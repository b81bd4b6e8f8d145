package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/offanish/proshop/controllers/user"
	"github.com/offanish/proshop/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/users/*" endpoints.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	users := api.Group("/users")
	{
		// ──────────────── Public Auth ────────────────
		users.POST("", userControllers.RegisterUser(db))      // POST /api/users
		users.POST("/login", userControllers.LoginUser(db))   // POST /api/users/login

		// ──────────────── Own Profile (JWT-protected) ────────────────
		profile := users.Group("/profile")
		profile.Use(middleware.ValidateToken)
		{
			profile.GET("", userControllers.GetProfile(db))    // GET /api/users/profile
			profile.PUT("", userControllers.UpdateProfile(db)) // PUT /api/users/profile
		}

		// ──────────────── Admin User Management ────────────────
		admin := users.Group("")
		admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.GET("", userControllers.GetAllUsers(db))        // GET /api/users
			admin.GET("/:id", userControllers.GetUserByID(db))    // GET /api/users/:id
			admin.PUT("/:id", userControllers.UpdateUser(db))     // PUT /api/users/:id
			admin.DELETE("/:id", userControllers.DeleteUser(db))  // DELETE /api/users/:id
		}
	}
}
