package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/middleware"
)

// respondError maps a service error to its HTTP status. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var status int
	msg := err.Error()

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = apperrors.ErrInvalidCredentials.Error()
	case errors.Is(err, apperrors.ErrUnauthenticated), errors.Is(err, apperrors.ErrInvalidToken):
		status = http.StatusUnauthorized
		msg = "unauthorized"
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	default:
		logger.Error("request failed",
			zap.String("requestID", middleware.GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		status = http.StatusInternalServerError
		msg = "internal server error"
	}

	c.JSON(status, gin.H{"error": msg})
}

// bindJSON decodes the request body into obj, writing a 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// userID returns the caller set by the auth middleware, or writes a 401.
func userID(c *gin.Context, logger *zap.Logger) (string, bool) {
	id, ok := middleware.UserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, logger, apperrors.ErrUnauthenticated)
		return "", false
	}
	return id, true
}
