package reviewControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type AddReviewRequest struct {
	Star int    `json:"star" binding:"required,min=1,max=5"`
	Desc string `json:"desc"`
}

// POST /api/reviews/:carID — one review per (buyer, car).
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req AddReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var car models.Car
		if err := db.First(&car, "id = ?", c.Param("carID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Car not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch car", err))
			return
		}

		review := models.Review{
			BuyerID: identity.ID,
			CarID:   car.ID,
			Star:    req.Star,
			Desc:    req.Desc,
		}
		// One review per (buyer, car), enforced by the unique index so
		// concurrent submissions cannot slip through.
		if err := db.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Conflict("You have already reviewed this car!"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to add review", err))
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// GET /api/reviews/:carID — reviews with the reviewer's username.
func GetCarReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.
			Where("car_id = ?", c.Param("carID")).
			Preload("Buyer").
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch reviews", err))
			return
		}

		out := make([]gin.H, 0, len(reviews))
		for _, review := range reviews {
			out = append(out, gin.H{
				"id":         review.ID,
				"star":       review.Star,
				"desc":       review.Desc,
				"created_at": review.CreatedAt,
				"buyer":      gin.H{"username": review.Buyer.Username},
			})
		}
		c.JSON(http.StatusOK, gin.H{"length": len(out), "reviews": out})
	}
}
