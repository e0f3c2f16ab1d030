package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gallerium/marketplace-v2/internal/logger"
)

// envelope is the success/error response shape admin clients depend on.
// Extra payload fields (tokenIds, token, ...) ride alongside statusCode
// and message.
type envelope map[string]interface{}

// respondSuccess sends the 200 envelope with optional extra payload fields
func respondSuccess(c *gin.Context, extra envelope) {
	body := envelope{
		"statusCode": http.StatusOK,
		"message":    "success",
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondBadRequest sends a 400 with the business-rule failure message
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{
		"statusCode": http.StatusBadRequest,
		"message":    message,
	})
}

// respondUnauthorized sends a 401
func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, envelope{
		"statusCode": http.StatusUnauthorized,
		"message":    message,
	})
}

// respondForbidden sends a 403
func respondForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, envelope{
		"statusCode": http.StatusForbidden,
		"message":    message,
	})
}

// respondNotFound sends a 404
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, envelope{
		"statusCode": http.StatusNotFound,
		"message":    message,
	})
}

// respondInternalError sends a 500 and logs the underlying error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	c.JSON(http.StatusInternalServerError, envelope{
		"statusCode": http.StatusInternalServerError,
		"message":    message,
	})
}
