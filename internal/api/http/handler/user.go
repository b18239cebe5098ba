package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

// UserService defines business operations for user provisioning.
type UserService interface {
	CreateUser(ctx context.Context, username string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// User handles endpoints for user provisioning.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{userService: userService, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
}

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	StorageUsed  int64     `json:"storage_used"`
	StorageLimit int64     `json:"storage_limit"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Username:     u.Username,
		StorageUsed:  u.StorageUsed,
		StorageLimit: u.StorageLimit,
		CreatedAt:    u.CreatedAt,
	}
}

// Register provisions a new user account.
func (h *User) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Debug("failed to create user", "username", req.Username, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, toUserResponse(user))
}
