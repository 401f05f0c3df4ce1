package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Whatsapp *string `json:"whatsapp"`
}

// GET /api/users/me
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", identity.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("User not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch user details", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": user.Username,
			"email":    user.Email,
			"whatsapp": user.Whatsapp,
		})
	}
}

// PUT /api/users/me
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		updates := map[string]interface{}{}
		if req.Username != nil {
			updates["username"] = *req.Username
		}
		if req.Whatsapp != nil {
			updates["whatsapp"] = *req.Whatsapp
		}

		var user models.User
		if err := db.First(&user, "id = ?", identity.ID).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("User not found"))
			return
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				apperr.Respond(c, apperr.Internal("Failed to update user details", err))
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"username": user.Username,
			"email":    user.Email,
			"whatsapp": user.Whatsapp,
		})
	}
}

// GET /api/users/cars — the calling seller's listings.
func GetSellerCars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cars []models.Car
		if err := db.Where("seller_id = ?", identity.ID).Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch cars", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"length": len(cars), "cars": cars})
	}
}
