package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/carmarket-dev/carmarket-api/controllers/cart"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupCartRoutes registers all "/api/carts/*" endpoints (buyer-only).
func SetupCartRoutes(r *gin.RouterGroup, db *gorm.DB) {
	carts := r.Group("/carts")
	carts.Use(middleware.ValidateToken)
	{
		carts.GET("", middleware.RequireBuyer("view cart"), cartControllers.GetCartItems(db))
		carts.POST("", middleware.RequireBuyer("add items to cart"), cartControllers.AddCartItem(db))
		carts.PUT("/:id", middleware.RequireBuyer("update cart item"), cartControllers.UpdateCartItem(db))
		carts.DELETE("/:id", middleware.RequireBuyer("remove item from cart"), cartControllers.RemoveCartItem(db))
	}
}
