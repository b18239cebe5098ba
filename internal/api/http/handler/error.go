package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyvault/skyvault-server/internal/model"
)

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, model.ErrPermissionDenied):
		return http.StatusForbidden, "permission denied"
	case errors.Is(err, model.ErrQuotaExceeded):
		return http.StatusInsufficientStorage, "storage quota exceeded"
	case errors.Is(err, model.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, model.ErrInvalidName):
		return http.StatusBadRequest, "invalid name"
	case errors.Is(err, model.ErrInvalidSize):
		return http.StatusBadRequest, "invalid size"
	case errors.Is(err, model.ErrInvalidMembership):
		return http.StatusBadRequest, "invalid membership"
	case errors.Is(err, model.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, model.ErrUserLimit):
		return http.StatusForbidden, "user limit reached"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}
