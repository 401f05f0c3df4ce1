package routes

import (
	"github.com/gin-gonic/gin"

	uploadControllers "github.com/carmarket-dev/carmarket-api/controllers/upload"
	"github.com/carmarket-dev/carmarket-api/middleware"
)

// SetupUploadRoutes registers the image upload endpoint.
func SetupUploadRoutes(r *gin.RouterGroup) {
	r.POST("/upload", middleware.ValidateToken, uploadControllers.UploadImage())
}
