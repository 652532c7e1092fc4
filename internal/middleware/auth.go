package middleware

import (
	"net/http"
	"strings"

	"github.com/AngelD89/holbertonschool-hbnb/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// Identity is the authenticated caller extracted from the access token.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// TokenValidator verifies a raw bearer token.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's identity on the context.
func AuthMiddleware(tokens TokenValidator, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Middleware: Invalid Authorization header format")
			abort(c, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		rawToken := parts[1]
		if rawToken == "" {
			log.Warn("Middleware: Bearer token is empty")
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		claims, err := tokens.ValidateToken(rawToken)
		if err != nil {
			log.Warnf("Middleware: Token rejected: %v", err)
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(identityKey, Identity{
			UserID:  claims.Subject,
			Email:   claims.Email,
			IsAdmin: claims.IsAdmin,
		})
		c.Next()
	}
}

// OptionalAuth records the caller's identity when a valid bearer token is
// present and lets anonymous requests through untouched.
func OptionalAuth(tokens TokenValidator, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" && parts[1] != "" {
			if claims, err := tokens.ValidateToken(parts[1]); err == nil {
				c.Set(identityKey, Identity{
					UserID:  claims.Subject,
					Email:   claims.Email,
					IsAdmin: claims.IsAdmin,
				})
			} else {
				log.Debugf("Middleware: Ignoring invalid optional token: %v", err)
			}
		}
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !identity.IsAdmin {
			log.Warnf("Middleware: Admin privileges required for %s %s", c.Request.Method, c.Request.URL.Path)
			abort(c, http.StatusForbidden, "Admin privileges required")
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// abort uses the same envelope as the delivery layer.
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"Status":  "Fail",
		"Message": message,
	})
}
