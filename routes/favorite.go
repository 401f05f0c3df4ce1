package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	favoriteControllers "github.com/carmarket-dev/carmarket-api/controllers/favorite"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupFavoriteRoutes registers all "/api/favorites/*" endpoints (buyer-only).
func SetupFavoriteRoutes(r *gin.RouterGroup, db *gorm.DB) {
	favorites := r.Group("/favorites")
	favorites.Use(middleware.ValidateToken, middleware.RequireBuyer("manage favorites"))
	{
		favorites.GET("", favoriteControllers.GetFavorites(db))
		favorites.POST("", favoriteControllers.AddFavorite(db))
		favorites.DELETE("/:id", favoriteControllers.RemoveFavorite(db))
	}
}
