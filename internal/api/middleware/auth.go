package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/logger"
)

const (
	// AdminAddressKey is the gin context key holding the authenticated
	// admin address
	AdminAddressKey = "admin_address"
)

// TokenValidator validates a bearer token and returns the address it
// belongs to
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AdminAuth returns a gin middleware enforcing bearer-token authentication
// on admin routes
func AdminAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid Authorization header format")
			return
		}

		address, err := validator.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(AdminAddressKey, address)
		c.Next()
	}
}

// AdminAddress returns the authenticated admin address from the request
// context, empty when the request was not authenticated
func AdminAddress(c *gin.Context) string {
	address, _ := c.Get(AdminAddressKey)
	s, _ := address.(string)
	return s
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
	})
}
