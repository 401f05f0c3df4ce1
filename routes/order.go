package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/carmarket-dev/carmarket-api/controllers/order"
	"github.com/carmarket-dev/carmarket-api/middleware"
	"github.com/carmarket-dev/carmarket-api/payment"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(r *gin.RouterGroup, db *gorm.DB, pay payment.Client) {
	orders := r.Group("/orders")
	{
		// Real-time feed of confirmed orders.
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		protected := orders.Group("")
		protected.Use(middleware.ValidateToken)
		{
			protected.POST("/payment-intent", middleware.RequireBuyer("request payment"), orderControllers.CreatePaymentIntentHandler(db, pay))
			protected.POST("/confirm", middleware.RequireBuyer("confirm orders"), orderControllers.ConfirmOrderHandler(db, pay))
			protected.GET("/buyer", orderControllers.GetBuyerOrdersHandler(db))
			protected.GET("/seller", middleware.RequireSeller("see orders"), orderControllers.GetSellerOrdersHandler(db))
		}
	}
}
