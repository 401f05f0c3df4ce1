package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/email"
	"github.com/carmarket-dev/carmarket-api/payment"
)

// Deps carries the external collaborators the handlers need.
type Deps struct {
	Payment payment.Client
	Mail    email.Sender
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, deps.Mail)
	SetupCarRoutes(api, db)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db, deps.Payment)
	SetupReviewRoutes(api, db)
	SetupFavoriteRoutes(api, db)
	SetupUserRoutes(api, db)
	SetupUploadRoutes(api)
}
