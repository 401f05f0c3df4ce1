package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	reviewControllers "github.com/carmarket-dev/carmarket-api/controllers/review"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupReviewRoutes registers all "/api/reviews/*" endpoints.
func SetupReviewRoutes(r *gin.RouterGroup, db *gorm.DB) {
	reviews := r.Group("/reviews")
	{
		reviews.GET("/:carID", reviewControllers.GetCarReviews(db))
		reviews.POST("/:carID",
			middleware.ValidateToken,
			middleware.RequireBuyer("review a car"),
			reviewControllers.AddReview(db))
	}
}
