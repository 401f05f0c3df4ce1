package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

type AddCartItemRequest struct {
	CarID    uint `json:"car_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// POST /api/carts
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddCartItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var car models.Car
		if err := db.First(&car, "id = ?", input.CarID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Car not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to validate car", err))
			return
		}

		item := models.CartItem{
			BuyerID:    identity.ID,
			CarID:      car.ID,
			Quantity:   input.Quantity,
			TotalPrice: car.Price * float64(input.Quantity),
			AddedAt:    time.Now(),
		}
		// One line per (buyer, car), enforced by the unique index so
		// concurrent adds cannot slip through.
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				apperr.Respond(c, apperr.Conflict("Car is already in your cart"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to add item to cart", err))
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// PUT /api/carts/:id — recomputes the total from the car's current price.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateCartItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var item models.CartItem
		if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Cart item not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch cart item", err))
			return
		}
		if item.BuyerID != identity.ID {
			apperr.Respond(c, apperr.NotFound("Cart item not found"))
			return
		}

		var car models.Car
		if err := db.First(&car, "id = ?", item.CarID).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("Car not found"))
			return
		}

		item.Quantity = input.Quantity
		item.TotalPrice = car.Price * float64(input.Quantity)
		if err := db.Save(&item).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to update cart item", err))
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/carts/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		result := db.Where("id = ? AND buyer_id = ?", c.Param("id"), identity.ID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			apperr.Respond(c, apperr.Internal("Failed to delete cart item", result.Error))
			return
		}
		if result.RowsAffected == 0 {
			apperr.Respond(c, apperr.NotFound("Cart item not found"))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// GET /api/carts — lines with the car summary embedded for display.
func GetCartItems(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var items []models.CartItem
		if err := db.
			Where("buyer_id = ?", identity.ID).
			Preload("Car").
			Preload("Car.Seller").
			Order("added_at DESC").
			Find(&items).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch cart", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"length": len(items), "items": items})
	}
}
