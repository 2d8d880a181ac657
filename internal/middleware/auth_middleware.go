package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jotickets/jotickets/internal/helpers"
	"github.com/jotickets/jotickets/internal/models"
)

// AuthCookieName is the cookie carrying the session token for browser
// flows (the admin console). API clients send a bearer header instead.
const AuthCookieName = "auth_token"

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

func parseIdentity(tokenString, secret string) (uuid.UUID, models.Role, bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", false
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, models.Role(roleStr), true
}

// Authenticate requires a valid session token and stores the caller's id
// and role in the request context.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authentication required.")
			c.Abort()
			return
		}

		userID, role, ok := parseIdentity(tokenString, secret)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// AuthenticateOptional stores the caller's identity when a valid token is
// present and lets the request through either way. Used by browser routes
// that redirect instead of failing, and by the scanner verify route that
// also accepts a device credential.
func AuthenticateOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if userID, role, ok := parseIdentity(tokenString, secret); ok {
				c.Set("user_id", userID)
				c.Set("role", role)
			}
		}
		c.Next()
	}
}

// RequireStaff gates API routes: a non-staff caller gets a 403.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			helpers.RespondWithError(c, http.StatusForbidden, "Staff access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaffPage gates browser routes: anyone without a staff session is
// sent back to the login page.
func RequireStaffPage(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated caller's id, if any.
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}

// IsStaff reports whether the authenticated caller has the staff role.
func IsStaff(c *gin.Context) bool {
	v, exists := c.Get("role")
	if !exists {
		return false
	}
	role, ok := v.(models.Role)
	return ok && role == models.RoleStaff
}
