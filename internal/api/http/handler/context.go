package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyvault/skyvault-server/internal/api/http/middleware"
	"github.com/skyvault/skyvault-server/internal/model"
)

// currentUser returns the user injected by the identity middleware.
// A missing user means a route was wired without that middleware; the
// request is aborted and the handler must return.
func currentUser(c *gin.Context) (model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "missing identity",
		})
	}
	return user, ok
}
