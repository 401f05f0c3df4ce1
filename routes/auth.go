package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/email"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints (public).
func SetupAuthRoutes(r *gin.RouterGroup, db *gorm.DB, mail email.Sender) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/request-otp", auth.RequestOTPHandler(db, mail))
		authGroup.POST("/verify-otp", auth.VerifyOTPHandler(db))
		authGroup.POST("/reset-password", auth.ResetPasswordHandler(db))
	}
}
