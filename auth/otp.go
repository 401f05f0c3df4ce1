package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/email"
	"github.com/carmarket-dev/carmarket-api/models"
)

const otpTTL = 10 * time.Minute

type otpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// findValidOTP returns the newest unused, unexpired reset row matching the
// code, or a classified error.
func findValidOTP(db *gorm.DB, emailAddr, code string) (*models.PasswordReset, error) {
	var resets []models.PasswordReset
	err := db.Where("email = ? AND used = ?", emailAddr, false).
		Order("created_at DESC").
		Find(&resets).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch reset codes", err)
	}

	now := time.Now()
	for i := range resets {
		r := &resets[i]
		if r.ExpiresAt.Before(now) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(r.CodeHash), []byte(code)) == nil {
			return r, nil
		}
	}
	return nil, apperr.Validation("Invalid or expired code")
}

// RequestOTPHandler issues a hashed, time-boxed one-time code and mails it.
func RequestOTPHandler(db *gorm.DB, sender email.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Email is required"))
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

		code, err := generateOTP()
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to generate code", err))
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to hash code", err))
			return
		}

		reset := models.PasswordReset{
			Email:     req.Email,
			CodeHash:  string(hash),
			ExpiresAt: time.Now().Add(otpTTL),
		}
		if err := db.Create(&reset).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to store reset code", err))
			return
		}

		body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
			code, int(otpTTL.Minutes()))
		if err := sender.Send(req.Email, "Password reset code", body); err != nil {
			apperr.Respond(c, apperr.Internal("Failed to send reset email", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Reset code sent"})
	}
}

// VerifyOTPHandler checks a code without consuming it, so the client can
// gate its reset form.
func VerifyOTPHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Email and code are required"))
			return
		}

		if _, err := findValidOTP(db, req.Email, req.Code); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Code is valid"})
	}
}

// ResetPasswordHandler consumes a valid code and replaces the password.
func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Email, code and new password are required"))
			return
		}

		reset, err := findValidOTP(db, req.Email, req.Code)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to hash password", err))
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.PasswordReset{}).
				Where("id = ? AND used = ?", reset.ID, false).
				Update("used", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.Conflict("Code already used")
			}
			return tx.Model(&models.User{}).
				Where("email = ?", req.Email).
				Update("password", string(hashed)).Error
		})
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
