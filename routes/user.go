package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/carmarket-dev/carmarket-api/controllers/user"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupUserRoutes registers all "/api/users/*" endpoints.
func SetupUserRoutes(r *gin.RouterGroup, db *gorm.DB) {
	users := r.Group("/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/me", userControllers.GetUser(db))
		users.PUT("/me", userControllers.UpdateUser(db))
		users.GET("/cars", middleware.RequireSeller("see your cars"), userControllers.GetSellerCars(db))
	}
}
