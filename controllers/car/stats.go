package carControllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

// GetSoldCarsStatistics aggregates the calling seller's inventory: totals,
// sold/available ratios, revenue and the remaining vs. sold listings.
func GetSoldCarsStatistics(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cars []models.Car
		if err := db.Where("seller_id = ?", identity.ID).Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch car statistics", err))
			return
		}

		var totalQuantity, totalSoldQuantity int
		var remainingCars, soldCars []models.Car
		for _, car := range cars {
			totalQuantity += car.QuantityInStock
			totalSoldQuantity += car.QuantitySold
			if car.QuantityInStock > 0 {
				remainingCars = append(remainingCars, car)
			}
			if car.QuantitySold > 0 {
				soldCars = append(soldCars, car)
			}
		}

		var soldRatio, availableRatio float64
		if total := totalQuantity + totalSoldQuantity; total > 0 {
			soldRatio = float64(totalSoldQuantity) / float64(total)
			availableRatio = float64(totalQuantity) / float64(total)
		}

		var revenue float64
		err := db.Model(&models.Order{}).
			Joins("JOIN cars ON cars.id = orders.car_id").
			Where("cars.seller_id = ?", identity.ID).
			Select("COALESCE(SUM(orders.total_price), 0)").
			Scan(&revenue).Error
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to compute revenue", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_cars":          len(cars),
			"total_quantity":      totalQuantity,
			"total_sold_quantity": totalSoldQuantity,
			"sold_ratio":          soldRatio,
			"available_ratio":     availableRatio,
			"revenue":             revenue,
			"remaining_cars":      remainingCars,
			"sold_cars":           soldCars,
		})
	}
}

// GetTopSellingCars lists the best-selling cars across the catalog.
func GetTopSellingCars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 || limit > 50 {
			limit = 10
		}

		var cars []models.Car
		if err := db.
			Where("quantity_sold > 0").
			Order("quantity_sold DESC").
			Limit(limit).
			Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch top selling cars", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"length": len(cars), "cars": cars})
	}
}

// FetchSellerDetails returns the seller profile with the review aggregate
// over all their listings.
func FetchSellerDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cars []models.Car
		if err := db.
			Where("seller_id = ?", identity.ID).
			Preload("Reviews").
			Preload("Seller").
			Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch seller details", err))
			return
		}
		if len(cars) == 0 {
			apperr.Respond(c, apperr.NotFound("No cars found for this seller"))
			return
		}

		totalReviews := 0
		totalStars := 0
		for _, car := range cars {
			totalReviews += len(car.Reviews)
			for _, review := range car.Reviews {
				totalStars += review.Star
			}
		}
		averageStars := 0.0
		if totalReviews > 0 {
			averageStars = math.Round(float64(totalStars)/float64(totalReviews)*100) / 100
		}

		seller := cars[0].Seller
		c.JSON(http.StatusOK, gin.H{
			"length": len(cars),
			"seller": gin.H{
				"username":      seller.Username,
				"email":         seller.Email,
				"whatsapp":      seller.Whatsapp,
				"average_stars": averageStars,
			},
		})
	}
}
