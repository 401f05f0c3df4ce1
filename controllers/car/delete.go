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

// DeleteCar removes a listing the caller owns. Dependent cart lines, reviews
// and favorites go with it in the same transaction; the car row itself is
// soft-deleted so existing orders keep a resolvable reference.
func DeleteCar(db *gorm.DB) gin.HandlerFunc {
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
			apperr.Respond(c, apperr.Forbidden("You are not allowed to delete this car!"))
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("car_id = ?", car.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("car_id = ?", car.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("car_id = ?", car.ID).Delete(&models.Favorite{}).Error; err != nil {
				return err
			}
			return tx.Delete(&car).Error
		})
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to delete car", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
	}
}
