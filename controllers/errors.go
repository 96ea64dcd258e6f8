package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/marketplace-api/services"
	"go.uber.org/zap"
)

// respondError writes the JSON error body for err and logs it.
// Validation → 400, not found → 404, backend → 500, anything else → generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	_ = c.Error(err)

	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var backendErr *services.BackendError

	switch {
	case errors.As(err, &validationErr):
		body := gin.H{"error": validationErr.Message, "code": validationErr.Code}
		if validationErr.Details != "" {
			body["details"] = validationErr.Details
		}
		logger.Debug("Rejected request", zap.String("code", validationErr.Code), zap.Error(err))
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFoundErr):
		logger.Debug("Resource not found", zap.String("code", notFoundErr.Code))
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message, "code": notFoundErr.Code})
	case errors.As(err, &backendErr):
		logger.Error("Backend error", zap.String("code", backendErr.Code), zap.Error(backendErr.Err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": backendErr.Message, "code": backendErr.Code})
	default:
		logger.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred.", "code": "INTERNAL_ERROR"})
	}
}

func invalidBody(err error) *services.ValidationError {
	return &services.ValidationError{
		Code:    "VALIDATION_ERROR",
		Message: "Invalid request data",
		Details: err.Error(),
	}
}
