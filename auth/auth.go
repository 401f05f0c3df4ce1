package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/models"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Whatsapp string `json:"whatsapp"`
	IsSeller bool   `json:"is_seller"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates a user with a bcrypt-hashed password.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: %s", err.Error()))
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			apperr.Respond(c, apperr.Conflict("User already exists with this email"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.Internal("Failed to check existing user", err))
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to hash password", err))
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Username: req.Username,
			Email:    req.Email,
			Password: string(hashed),
			Whatsapp: req.Whatsapp,
			IsSeller: req.IsSeller,
		}
		if err := db.Create(&user).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to create user", err))
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler checks credentials and issues a bearer token.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Email and password are required"))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("User not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch user", err))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			apperr.Respond(c, apperr.Forbidden("Wrong password"))
			return
		}

		token, err := IssueToken(user.ID, user.IsSeller)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to issue token", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}
