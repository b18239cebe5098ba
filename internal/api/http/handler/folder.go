package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

// FolderService defines business operations for shared folders.
type FolderService interface {
	CreateFolder(ctx context.Context, ownerID uuid.UUID, name string, memberIDs []uuid.UUID) (model.SharedFolder, error)
	GetFolder(ctx context.Context, folderID, userID uuid.UUID) (model.SharedFolder, error)
	DeleteFolder(ctx context.Context, folderID, requesterID uuid.UUID) error
	ListFolders(ctx context.Context, userID uuid.UUID) ([]model.SharedFolder, error)
}

// Folder handles endpoints for shared folder management.
type Folder struct {
	folderService FolderService
	userService   UserService
	logger        *logger.Logger
}

// NewFolder creates a new Folder handler.
func NewFolder(folderService FolderService, userService UserService, logger *logger.Logger) *Folder {
	return &Folder{folderService: folderService, userService: userService, logger: logger}
}

type createFolderRequest struct {
	Name    string   `json:"name" binding:"required"`
	Members []string `json:"members" binding:"required"`
}

type folderResponse struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	OwnerID   uuid.UUID   `json:"owner_id"`
	MemberIDs []uuid.UUID `json:"member_ids"`
	CreatedAt time.Time   `json:"created_at"`
}

func toFolderResponse(f model.SharedFolder) folderResponse {
	return folderResponse{
		ID:        f.ID,
		Name:      f.Name,
		OwnerID:   f.OwnerID,
		MemberIDs: f.MemberIDs,
		CreatedAt: f.CreatedAt,
	}
}

// resolveMembers maps member usernames to user IDs. Unknown usernames
// surface as an invalid membership set.
func (h *Folder) resolveMembers(ctx context.Context, usernames []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(usernames))
	for _, username := range usernames {
		user, err := h.userService.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown member %q", model.ErrInvalidMembership, username)
			}
			return nil, fmt.Errorf("failed to resolve member: %w", err)
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

// Create registers a new shared folder owned by the caller.
func (h *Folder) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	memberIDs, err := h.resolveMembers(c.Request.Context(), req.Members)
	if err != nil {
		respondError(c, err)
		return
	}

	folder, err := h.folderService.CreateFolder(c.Request.Context(), user.ID, req.Name, memberIDs)
	if err != nil {
		h.logger.Debug("folder creation rejected", "owner_id", user.ID, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, toFolderResponse(folder))
}

// Get returns a single folder visible to the caller.
func (h *Folder) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid folder id",
		})
		return
	}

	folder, err := h.folderService.GetFolder(c.Request.Context(), folderID, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, toFolderResponse(folder))
}

// List returns the folders the caller owns or belongs to.
func (h *Folder) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	folders, err := h.folderService.ListFolders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]folderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}

	respondOK(c, http.StatusOK, out)
}

// Delete removes a folder and everything in it. Owner only.
func (h *Folder) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	folderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid folder id",
		})
		return
	}

	if err := h.folderService.DeleteFolder(c.Request.Context(), folderID, user.ID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}
