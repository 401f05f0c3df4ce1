package uploadControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carmarket-dev/carmarket-api/apperr"
)

// UploadDir returns the image upload directory, defaulting to ./uploads.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// UploadImage saves a multipart image and returns its public URL.
func UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			apperr.Respond(c, apperr.Validation("No image file uploaded"))
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png":
		default:
			apperr.Respond(c, apperr.Validation("Only jpg, jpeg and png images are allowed"))
			return
		}

		saveDir := UploadDir()
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			apperr.Respond(c, apperr.Internal("Failed to create upload folder", err))
			return
		}

		filename := uuid.NewString() + ext
		savePath := filepath.Join(saveDir, filename)
		if err := c.SaveUploadedFile(file, savePath); err != nil {
			apperr.Respond(c, apperr.Internal("Failed to save image", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"url": fmt.Sprintf("/uploads/%s", filename)})
	}
}
