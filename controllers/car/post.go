package carControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type CreateCarRequest struct {
	Brand           string  `json:"brand" binding:"required"`
	Color           string  `json:"color"`
	Country         string  `json:"country"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	QuantityInStock int     `json:"quantity_in_stock" binding:"min=0"`
	CoverImage      string  `json:"cover_image"`
}

// CreateCar adds a listing owned by the calling seller.
func CreateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateCarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		car := models.Car{
			Brand:           req.Brand,
			Color:           req.Color,
			Country:         req.Country,
			Description:     req.Description,
			Price:           req.Price,
			QuantityInStock: req.QuantityInStock,
			CoverImage:      req.CoverImage,
			SellerID:        identity.ID,
		}
		if err := db.Create(&car).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to add car", err))
			return
		}

		c.JSON(http.StatusCreated, car)
	}
}
