package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
)

// ValidateToken parses the bearer token and stores the caller identity on the
// context. Every protected route group uses it.
func ValidateToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(401, gin.H{"error": gin.H{"kind": "unauthorized", "message": "Authorization header is missing"}})
		c.Abort()
		return
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	identity, err := auth.ParseToken(tokenString)
	if err != nil {
		c.JSON(401, gin.H{"error": gin.H{"kind": "unauthorized", "message": "Invalid or expired token"}})
		c.Abort()
		return
	}

	auth.SetIdentity(c, identity)
	c.Next()
}

// RequireSeller rejects callers without the seller flag.
func RequireSeller(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.GetIdentity(c)
		if !ok || !id.IsSeller {
			apperr.Respond(c, apperr.Forbidden("You are not allowed to %s!", action))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireBuyer rejects sellers from buyer-only surfaces.
func RequireBuyer(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.GetIdentity(c)
		if !ok || id.IsSeller {
			apperr.Respond(c, apperr.Forbidden("You are not allowed to %s!", action))
			c.Abort()
			return
		}
		c.Next()
	}
}
