package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	carControllers "github.com/carmarket-dev/carmarket-api/controllers/car"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupCarRoutes registers all "/api/cars/*" endpoints. Browsing is public;
// mutation and seller projections require a seller token.
func SetupCarRoutes(r *gin.RouterGroup, db *gorm.DB) {
	cars := r.Group("/cars")
	{
		// Seller-only, registered before "/:id" so the literal paths win.
		sellerGroup := cars.Group("")
		sellerGroup.Use(middleware.ValidateToken)
		{
			sellerGroup.GET("/statistics", middleware.RequireSeller("see statistics"), carControllers.GetSoldCarsStatistics(db))
			sellerGroup.GET("/seller", middleware.RequireSeller("see seller details"), carControllers.FetchSellerDetails(db))
			sellerGroup.GET("/export", middleware.RequireSeller("export cars"), carControllers.ExportCarsToExcel(db))
			sellerGroup.POST("", middleware.RequireSeller("create a car"), carControllers.CreateCar(db))
			sellerGroup.PUT("/:id", middleware.RequireSeller("update a car"), carControllers.UpdateCar(db))
			sellerGroup.DELETE("/:id", middleware.RequireSeller("delete a car"), carControllers.DeleteCar(db))
		}

		cars.GET("/top-selling", carControllers.GetTopSellingCars(db))
		cars.GET("", carControllers.GetCars(db))
		cars.GET("/:id", carControllers.GetCarByID(db))
	}
}
