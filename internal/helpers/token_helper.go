package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jotickets/jotickets/internal/models"
)

// GenerateToken issues the HS256 session token carried as a bearer header
// by API clients and as a cookie by the admin console.
func GenerateToken(secret string, user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}
