package carControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type UpdateCarRequest struct {
	Brand           *string  `json:"brand"`
	Color           *string  `json:"color"`
	Country         *string  `json:"country"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	QuantityInStock *int     `json:"quantity_in_stock"`
	CoverImage      *string  `json:"cover_image"`
}

// UpdateCar applies a partial update to a listing the caller owns.
func UpdateCar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var car models.Car
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Car not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch car", err))
			return
		}
		if car.SellerID != identity.ID {
			apperr.Respond(c, apperr.Forbidden("You are not allowed to update this car!"))
			return
		}

		var req UpdateCarRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		updates := map[string]interface{}{}
		if req.Brand != nil {
			updates["brand"] = *req.Brand
		}
		if req.Color != nil {
			updates["color"] = *req.Color
		}
		if req.Country != nil {
			updates["country"] = *req.Country
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				apperr.Respond(c, apperr.Validation("Price must be positive"))
				return
			}
			updates["price"] = *req.Price
		}
		if req.QuantityInStock != nil {
			if *req.QuantityInStock < 0 {
				apperr.Respond(c, apperr.Validation("Stock cannot be negative"))
				return
			}
			updates["quantity_in_stock"] = *req.QuantityInStock
		}
		if req.CoverImage != nil {
			updates["cover_image"] = *req.CoverImage
		}

		if len(updates) > 0 {
			if err := db.Model(&car).Updates(updates).Error; err != nil {
				apperr.Respond(c, apperr.Internal("Failed to update car", err))
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Car updated successfully", "car": car})
	}
}
