package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

var _ model.FolderSweeper = (*Files)(nil)

// Files performs byte-level placement, retrieval and deletion for
// personal and shared storage. Personal uploads are admitted through the
// quota ledger before any byte reaches durable storage; shared uploads
// are admitted through the folder registry and never metered.
type Files struct {
	files       model.FileStore
	storage     model.Storage
	quota       model.QuotaLedger
	registry    *Registry
	logger      *logger.Logger
	maxFileSize int64
}

// NewFiles creates the file service.
func NewFiles(
	files model.FileStore,
	storage model.Storage,
	quota model.QuotaLedger,
	registry *Registry,
	maxFileSize int64,
	logger *logger.Logger,
) *Files {
	return &Files{
		files:       files,
		storage:     storage,
		quota:       quota,
		registry:    registry,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadPersonal stores a file in the user's personal space. The quota
// reservation is taken before the blob write; any failure after the
// reservation releases it again before the error propagates.
func (s *Files) UploadPersonal(ctx context.Context, params model.UploadParams) (model.StoredFile, error) {
	name, err := cleanFilename(params.Name)
	if err != nil {
		return model.StoredFile{}, err
	}
	if params.Size > s.maxFileSize {
		return model.StoredFile{}, model.ErrFileTooLarge
	}

	if err := s.quota.Reserve(ctx, params.UserID, params.Size); err != nil {
		return model.StoredFile{}, err
	}

	file, err := s.store(ctx, model.StoredFile{
		ID:         uuid.New(),
		Scope:      model.ScopePersonal,
		OwnerID:    params.UserID,
		UploaderID: params.UserID,
		Name:       name,
		Size:       params.Size,
	}, params.Data)
	if err != nil {
		s.quota.Release(ctx, params.UserID, params.Size)
		return model.StoredFile{}, err
	}

	return file, nil
}

// UploadShared stores a file in a shared folder. Any owner or member may
// upload; no quota ledger is touched. The commit runs under the folder's
// read guard, so it either completes before a concurrent folder deletion
// sweeps it, or is rejected because the folder is already gone.
func (s *Files) UploadShared(ctx context.Context, userID, folderID uuid.UUID, params model.UploadParams) (model.StoredFile, error) {
	name, err := cleanFilename(params.Name)
	if err != nil {
		return model.StoredFile{}, err
	}
	if params.Size > s.maxFileSize {
		return model.StoredFile{}, model.ErrFileTooLarge
	}

	_, release, err := s.registry.GuardFileOp(ctx, folderID, userID)
	if err != nil {
		return model.StoredFile{}, err
	}
	defer release()

	return s.store(ctx, model.StoredFile{
		ID:         uuid.New(),
		Scope:      model.ScopeShared,
		FolderID:   folderID,
		UploaderID: userID,
		Name:       name,
		Size:       params.Size,
	}, params.Data)
}

// DeletePersonal removes a file from the user's personal space and
// returns its size to the user's quota.
func (s *Files) DeletePersonal(ctx context.Context, userID, fileID uuid.UUID) error {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get file by id: %w", err)
	}
	// Files outside the caller's personal space are indistinguishable
	// from absent ones.
	if file.Scope != model.ScopePersonal || file.OwnerID != userID {
		return model.ErrNotFound
	}

	if err := s.removeStored(ctx, file); err != nil {
		return err
	}

	s.quota.Release(ctx, userID, file.Size)
	return nil
}

// DeleteShared removes a file from a shared folder. Any authorized
// participant may delete any file, not just the uploader.
func (s *Files) DeleteShared(ctx context.Context, userID, folderID, fileID uuid.UUID) error {
	_, release, err := s.registry.GuardFileOp(ctx, folderID, userID)
	if err != nil {
		return err
	}
	defer release()

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get file by id: %w", err)
	}
	if file.Scope != model.ScopeShared || file.FolderID != folderID {
		return model.ErrNotFound
	}

	return s.removeStored(ctx, file)
}

// Download opens the file's byte stream after checking access: personal
// files require ownership, shared files require folder authorization.
// The caller owns closing the returned reader.
func (s *Files) Download(ctx context.Context, userID, fileID uuid.UUID) (model.StoredFile, io.ReadCloser, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.StoredFile{}, nil, model.ErrNotFound
		}
		return model.StoredFile{}, nil, fmt.Errorf("failed to get file by id: %w", err)
	}

	switch file.Scope {
	case model.ScopePersonal:
		if file.OwnerID != userID {
			return model.StoredFile{}, nil, model.ErrPermissionDenied
		}
	case model.ScopeShared:
		tier, err := s.registry.Authorize(ctx, file.FolderID, userID)
		if err != nil {
			return model.StoredFile{}, nil, err
		}
		if tier == model.TierDenied {
			return model.StoredFile{}, nil, model.ErrPermissionDenied
		}
	default:
		return model.StoredFile{}, nil, fmt.Errorf("unknown file scope %q", file.Scope)
	}

	exists, err := s.storage.Exists(ctx, file.ObjectKey)
	if err != nil {
		return model.StoredFile{}, nil, fmt.Errorf("%w: failed to stat object: %v", model.ErrStorageIO, err)
	}
	if !exists {
		return model.StoredFile{}, nil, fmt.Errorf("%w: object missing for stored file %s", model.ErrStorageIO, file.ID)
	}

	reader, err := s.storage.Download(ctx, file.ObjectKey)
	if err != nil {
		return model.StoredFile{}, nil, fmt.Errorf("%w: failed to download object: %v", model.ErrStorageIO, err)
	}

	return file, reader, nil
}

// ListPersonal returns the user's personal files, most recent first.
func (s *Files) ListPersonal(ctx context.Context, userID uuid.UUID) ([]model.StoredFile, error) {
	files, err := s.files.ListPersonal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal files: %w", err)
	}
	return files, nil
}

// ListFolder returns the files of a shared folder the user is authorized
// for, most recent first.
func (s *Files) ListFolder(ctx context.Context, userID, folderID uuid.UUID) ([]model.StoredFile, error) {
	tier, err := s.registry.Authorize(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}
	if tier == model.TierDenied {
		return nil, model.ErrPermissionDenied
	}

	files, err := s.files.ListFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder files: %w", err)
	}
	return files, nil
}

// Account summarizes the user's personal storage standing.
func (s *Files) Account(ctx context.Context, userID uuid.UUID) (model.AccountSummary, error) {
	usage, err := s.quota.Usage(ctx, userID)
	if err != nil {
		return model.AccountSummary{}, err
	}
	limit, err := s.quota.Limit(ctx, userID)
	if err != nil {
		return model.AccountSummary{}, err
	}
	count, err := s.files.CountPersonal(ctx, userID)
	if err != nil {
		return model.AccountSummary{}, fmt.Errorf("failed to count personal files: %w", err)
	}

	return model.AccountSummary{
		StorageUsed:  usage,
		StorageLimit: limit,
		FileCount:    count,
	}, nil
}

// PurgeFolder removes every file contained in the folder. Called by the
// registry under the folder's write guard during cascade deletion, so no
// new file can be admitted while the sweep runs.
func (s *Files) PurgeFolder(ctx context.Context, folderID uuid.UUID) error {
	files, err := s.files.ListFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("failed to list folder files: %w", err)
	}

	for _, file := range files {
		if err := s.removeStored(ctx, file); err != nil && !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to remove file %s: %w", file.ID, err)
		}
	}
	return nil
}

// store writes the blob then inserts the metadata row, undoing the blob
// on insert failure. A file becomes externally visible only once both
// steps succeeded.
func (s *Files) store(ctx context.Context, file model.StoredFile, data io.Reader) (model.StoredFile, error) {
	name, err := s.uniqueName(ctx, file)
	if err != nil {
		return model.StoredFile{}, err
	}
	file.Name = name
	file.ObjectKey = objectKey(file)

	if err := s.storage.Upload(ctx, file.ObjectKey, io.LimitReader(data, file.Size)); err != nil {
		return model.StoredFile{}, fmt.Errorf("%w: failed to upload object: %v", model.ErrStorageIO, err)
	}

	saved, err := s.files.Create(ctx, file)
	if err != nil {
		if delErr := s.storage.Delete(ctx, file.ObjectKey); delErr != nil {
			s.logger.Error("failed to delete orphaned object", "object_key", file.ObjectKey, "error", delErr)
		}
		return model.StoredFile{}, fmt.Errorf("%w: failed to create file record: %v", model.ErrStorageIO, err)
	}

	return saved, nil
}

// removeStored deletes blob then metadata row. A blob that cannot be
// deleted is logged and left for out-of-band cleanup; metadata removal is
// what makes the file externally Deleted.
func (s *Files) removeStored(ctx context.Context, file model.StoredFile) error {
	if err := s.storage.Delete(ctx, file.ObjectKey); err != nil {
		s.logger.Error("failed to delete object from storage", "object_key", file.ObjectKey, "error", err)
	}

	if err := s.files.Delete(ctx, file.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

const maxNameAttempts = 100

// uniqueName resolves display-name collisions inside one container by
// appending a counter suffix: "report.pdf", "report (1).pdf", ...
func (s *Files) uniqueName(ctx context.Context, file model.StoredFile) (string, error) {
	containerID := file.OwnerID
	if file.Scope == model.ScopeShared {
		containerID = file.FolderID
	}

	ext := filepath.Ext(file.Name)
	base := strings.TrimSuffix(file.Name, ext)

	candidate := file.Name
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		taken, err := s.files.NameExists(ctx, file.Scope, containerID, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check name: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, attempt, ext)
	}

	// Pathological collision run; fall back to an id-derived name.
	return fmt.Sprintf("%s-%s%s", base, file.ID.String()[:8], ext), nil
}

// cleanFilename strips any path components and rejects empty names.
// filepath.Base leaves "." and ".." intact, so both are refused here.
func cleanFilename(name string) (string, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", model.ErrInvalidName
	}
	return name, nil
}

func objectKey(file model.StoredFile) string {
	switch file.Scope {
	case model.ScopeShared:
		return fmt.Sprintf("shared/folder-%s/file-%s", file.FolderID, file.ID)
	default:
		return fmt.Sprintf("personal/user-%s/file-%s", file.OwnerID, file.ID)
	}
}
