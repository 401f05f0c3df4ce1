package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
	"github.com/carmarket-dev/carmarket-api/payment"
)

// -------- Request Structs --------

type ConfirmOrderRequest struct {
	PaymentRef  string `json:"payment_ref" binding:"required"`
	CartItemIDs []uint `json:"cart_item_ids" binding:"required,min=1"`
}

type PaymentIntentRequest struct {
	CartItemIDs []uint `json:"cart_item_ids" binding:"required,min=1"`
	Currency    string `json:"currency" binding:"required"`
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// ConfirmOrders turns the buyer's cart lines into orders in a single
// transaction. The whole batch is validated before any write; each line's
// stock decrement, order creation and cart-line deletion commit together or
// not at all. Stock is taken with a conditional update so two checkouts
// racing on the same car can never drive quantity_in_stock below zero.
func ConfirmOrders(db *gorm.DB, buyerID string, cartItemIDs []uint, paymentRef string) ([]models.Order, error) {
	var orders []models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		lines := make([]models.CartItem, 0, len(cartItemIDs))
		cars := make(map[uint]models.Car, len(cartItemIDs))

		// Validate the entire batch before any mutation.
		seen := make(map[uint]bool, len(cartItemIDs))
		for _, id := range cartItemIDs {
			if seen[id] {
				return apperr.Validation("Duplicate cart item %d", id)
			}
			seen[id] = true
			var line models.CartItem
			if err := tx.First(&line, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Cart item %d not found", id)
				}
				return apperr.Internal("Failed to fetch cart item", err)
			}
			if line.BuyerID != buyerID {
				return apperr.NotFound("Cart item %d not found", id)
			}

			var car models.Car
			if err := tx.First(&car, "id = ?", line.CarID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Car %d not found", line.CarID)
				}
				return apperr.Internal("Failed to fetch car", err)
			}
			if car.QuantityInStock < line.Quantity {
				return apperr.InsufficientStock("Insufficient stock for %s", car.Brand)
			}

			lines = append(lines, line)
			cars[car.ID] = car
		}

		now := time.Now()
		for _, line := range lines {
			car := cars[line.CarID]

			res := tx.Model(&models.Car{}).
				Where("id = ? AND quantity_in_stock >= ?", line.CarID, line.Quantity).
				Updates(map[string]interface{}{
					"quantity_in_stock": gorm.Expr("quantity_in_stock - ?", line.Quantity),
					"quantity_sold":     gorm.Expr("quantity_sold + ?", line.Quantity),
				})
			if res.Error != nil {
				return apperr.Internal("Failed to update stock", res.Error)
			}
			if res.RowsAffected == 0 {
				// A concurrent checkout took the stock after validation.
				return apperr.InsufficientStock("Insufficient stock for %s", car.Brand)
			}

			order := models.Order{
				BuyerID:    buyerID,
				CarID:      line.CarID,
				Quantity:   line.Quantity,
				TotalPrice: car.Price * float64(line.Quantity),
				PaymentRef: paymentRef,
				OrderRef:   generateOrderRef(),
				CreatedAt:  now,
			}
			if err := tx.Create(&order).Error; err != nil {
				return apperr.Internal("Failed to create order", err)
			}

			if err := tx.Delete(&models.CartItem{}, line.ID).Error; err != nil {
				return apperr.Internal("Failed to remove cart item", err)
			}

			orders = append(orders, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// -------- Handlers --------

// ConfirmOrderHandler requires a captured payment reference before the order
// workflow runs.
func ConfirmOrderHandler(db *gorm.DB, pay payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req ConfirmOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		paid, err := pay.Verify(req.PaymentRef)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to verify payment", err))
			return
		}
		if !paid {
			apperr.Respond(c, apperr.Validation("Payment %s is not confirmed", req.PaymentRef))
			return
		}

		orders, err := ConfirmOrders(db, identity.ID, req.CartItemIDs, req.PaymentRef)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		for _, order := range orders {
			broadcastNewOrder(order)
		}

		c.JSON(http.StatusCreated, gin.H{"length": len(orders), "orders": orders})
	}
}

// CreatePaymentIntentHandler opens a checkout session for the buyer's
// selected cart lines and returns the gateway reference and URL.
func CreatePaymentIntentHandler(db *gorm.DB, pay payment.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PaymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", identity.ID).Error; err != nil {
			apperr.Respond(c, apperr.NotFound("User not found"))
			return
		}

		var total float64
		for _, id := range req.CartItemIDs {
			var line models.CartItem
			if err := db.First(&line, "id = ? AND buyer_id = ?", id, identity.ID).Error; err != nil {
				apperr.Respond(c, apperr.NotFound("Cart item %d not found", id))
				return
			}
			total += line.TotalPrice
		}

		ref, url, err := pay.CreateCheckoutSession(total, req.Currency, user.Email, "Car purchase")
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to create checkout session", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"payment_ref": ref, "payment_url": url})
	}
}

// GetBuyerOrdersHandler lists the caller's orders, newest first.
func GetBuyerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		// Unscoped: order history must keep its car even after the listing
		// is soft-deleted.
		if err := db.
			Where("buyer_id = ?", identity.ID).
			Preload("Car", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch orders", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"length": len(orders), "orders": orders})
	}
}

// GetSellerOrdersHandler lists orders placed against the seller's cars.
func GetSellerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var orders []models.Order
		if err := db.
			Joins("JOIN cars ON cars.id = orders.car_id").
			Where("cars.seller_id = ?", identity.ID).
			Preload("Car", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
			Order("orders.created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch orders", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"length": len(orders), "orders": orders})
	}
}
