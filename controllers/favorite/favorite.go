package favoriteControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type AddFavoriteRequest struct {
	CarID uint `json:"car_id" binding:"required"`
}

// POST /api/favorites
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req AddFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var car models.Car
		if err := db.First(&car, "id = ?", req.CarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Car not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch car", err))
			return
		}

		favorite := models.Favorite{
			BuyerID: identity.ID,
			CarID:   car.ID,
		}
		if err := db.Create(&favorite).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to add to favorites", err))
			return
		}

		c.JSON(http.StatusCreated, favorite)
	}
}

// GET /api/favorites
func GetFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var favorites []models.Favorite
		if err := db.
			Where("buyer_id = ?", identity.ID).
			Preload("Car").
			Order("created_at DESC").
			Find(&favorites).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch favorites", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"length": len(favorites), "favorites": favorites})
	}
}

// DELETE /api/favorites/:id
func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND buyer_id = ?", c.Param("id"), identity.ID).
			Delete(&models.Favorite{})
		if result.Error != nil {
			apperr.Respond(c, apperr.Internal("Failed to remove from favorites", result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("Favorite not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
	}
}
