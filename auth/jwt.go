package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs a bearer token carrying the caller identity.
func IssueToken(userID string, isSeller bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   userID,
		"is_seller": isSeller,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken validates a bearer token and extracts the caller identity.
func ParseToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Identity{}, errors.New("invalid token claims")
	}
	isSeller, _ := claims["is_seller"].(bool)

	return Identity{ID: userID, IsSeller: isSeller}, nil
}
