package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

// IdentityHeader carries the caller's username, set by the fronting
// proxy after it has authenticated the request.
const IdentityHeader = "X-Storage-User"

const userContextKey = "currentUser"

// UserResolver resolves usernames to user records.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// Identity resolves the proxy-supplied identity header and injects
// the matching user into the request context.
type Identity struct {
	users  UserResolver
	logger *logger.Logger
}

// NewIdentity creates a new Identity middleware.
func NewIdentity(users UserResolver, logger *logger.Logger) *Identity {
	return &Identity{users: users, logger: logger}
}

// Handle rejects requests without a resolvable identity header.
func (m *Identity) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader(IdentityHeader)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing identity header",
			})
			return
		}

		user, err := m.users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"message": "unknown user",
				})
				return
			}

			m.logger.Error("failed to resolve identity", "username", username, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "internal server error",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the user injected by the Identity middleware.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
