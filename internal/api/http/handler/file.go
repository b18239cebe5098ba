package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

// FileService defines business operations for file storage.
type FileService interface {
	UploadPersonal(ctx context.Context, params model.UploadParams) (model.StoredFile, error)
	UploadShared(ctx context.Context, userID, folderID uuid.UUID, params model.UploadParams) (model.StoredFile, error)
	DeletePersonal(ctx context.Context, userID, fileID uuid.UUID) error
	DeleteShared(ctx context.Context, userID, folderID, fileID uuid.UUID) error
	Download(ctx context.Context, userID, fileID uuid.UUID) (model.StoredFile, io.ReadCloser, error)
	ListPersonal(ctx context.Context, userID uuid.UUID) ([]model.StoredFile, error)
	ListFolder(ctx context.Context, userID, folderID uuid.UUID) ([]model.StoredFile, error)
	Account(ctx context.Context, userID uuid.UUID) (model.AccountSummary, error)
}

// File handles endpoints for personal and shared file storage.
type File struct {
	fileService FileService
	logger      *logger.Logger
}

// NewFile creates a new File handler.
func NewFile(fileService FileService, logger *logger.Logger) *File {
	return &File{fileService: fileService, logger: logger}
}

type fileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploaderID uuid.UUID `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFileResponse(f model.StoredFile) fileResponse {
	return fileResponse{
		ID:         f.ID,
		Name:       f.Name,
		Size:       f.Size,
		UploaderID: f.UploaderID,
		CreatedAt:  f.CreatedAt,
	}
}

func toFileResponses(files []model.StoredFile) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, toFileResponse(f))
	}
	return out
}

func (h *File) uploadParams(c *gin.Context, userID uuid.UUID) (model.UploadParams, io.Closer, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return model.UploadParams{}, nil, fmt.Errorf("failed to read multipart file: %w", err)
	}

	data, err := header.Open()
	if err != nil {
		return model.UploadParams{}, nil, fmt.Errorf("failed to open multipart file: %w", err)
	}

	return model.UploadParams{
		UserID: userID,
		Name:   header.Filename,
		Size:   header.Size,
		Data:   data,
	}, data, nil
}

// UploadPersonal stores a file in the caller's personal space.
func (h *File) UploadPersonal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	params, closer, err := h.uploadParams(c, user.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "missing file field",
		})
		return
	}
	defer closer.Close()

	file, err := h.fileService.UploadPersonal(c.Request.Context(), params)
	if err != nil {
		h.logger.Debug("personal upload rejected", "user_id", user.ID, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, toFileResponse(file))
}

// UploadShared stores a file in a shared folder.
func (h *File) UploadShared(c *gin.Context) {
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

	params, closer, err := h.uploadParams(c, user.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "missing file field",
		})
		return
	}
	defer closer.Close()

	file, err := h.fileService.UploadShared(c.Request.Context(), user.ID, folderID, params)
	if err != nil {
		h.logger.Debug("shared upload rejected", "user_id", user.ID, "folder_id", folderID, "error", err)
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, toFileResponse(file))
}

// ListPersonal returns the caller's personal files, newest first.
func (h *File) ListPersonal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	files, err := h.fileService.ListPersonal(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, toFileResponses(files))
}

// ListFolder returns the files in a shared folder, newest first.
func (h *File) ListFolder(c *gin.Context) {
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

	files, err := h.fileService.ListFolder(c.Request.Context(), user.ID, folderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, toFileResponses(files))
}

// Download streams a file's content to the caller.
func (h *File) Download(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid file id",
		})
		return
	}

	h.stream(c, user.ID, fileID, uuid.Nil)
}

// DownloadShared streams a shared file's content to the caller. The
// file must belong to the folder named in the path.
func (h *File) DownloadShared(c *gin.Context) {
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

	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid file id",
		})
		return
	}

	h.stream(c, user.ID, fileID, folderID)
}

func (h *File) stream(c *gin.Context, userID, fileID, folderID uuid.UUID) {
	file, data, err := h.fileService.Download(c.Request.Context(), userID, fileID)
	if err != nil {
		respondError(c, err)
		return
	}
	defer data.Close()

	if folderID != uuid.Nil && file.FolderID != folderID {
		respondError(c, model.ErrNotFound)
		return
	}

	c.DataFromReader(http.StatusOK, file.Size, "application/octet-stream", data, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	})
}

// DeletePersonal removes a file from the caller's personal space.
func (h *File) DeletePersonal(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid file id",
		})
		return
	}

	if err := h.fileService.DeletePersonal(c.Request.Context(), user.ID, fileID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}

// DeleteShared removes a file from a shared folder.
func (h *File) DeleteShared(c *gin.Context) {
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

	fileID, err := uuid.Parse(c.Param("fileID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid file id",
		})
		return
	}

	if err := h.fileService.DeleteShared(c.Request.Context(), user.ID, folderID, fileID); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil)
}

type accountResponse struct {
	Username     string `json:"username"`
	StorageUsed  int64  `json:"storage_used"`
	StorageLimit int64  `json:"storage_limit"`
	FileCount    int    `json:"file_count"`
}

// Account returns the caller's storage summary.
func (h *File) Account(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.fileService.Account(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, accountResponse{
		Username:     user.Username,
		StorageUsed:  summary.StorageUsed,
		StorageLimit: summary.StorageLimit,
		FileCount:    summary.FileCount,
	})
}
