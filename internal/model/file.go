package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// FileScope distinguishes where a stored file lives.
type FileScope string

const (
	// ScopePersonal files live in a single user's space and count
	// against that user's quota.
	ScopePersonal FileScope = "personal"
	// ScopeShared files live in a shared folder and are unmetered.
	ScopeShared FileScope = "shared"
)

// FileStore defines persistence operations for file metadata. A row
// exists only for fully stored files: it is inserted after the blob write
// succeeds and removed on deletion, so callers never observe a partial
// upload.
type FileStore interface {
	Create(ctx context.Context, file StoredFile) (StoredFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (StoredFile, error)
	ListPersonal(ctx context.Context, ownerID uuid.UUID) ([]StoredFile, error)
	ListFolder(ctx context.Context, folderID uuid.UUID) ([]StoredFile, error)
	CountPersonal(ctx context.Context, ownerID uuid.UUID) (int, error)
	NameExists(ctx context.Context, scope FileScope, containerID uuid.UUID, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoredFile represents a stored file entity. OwnerID is set for personal
// files, FolderID for shared files; exactly one of the two is non-nil.
type StoredFile struct {
	ID         uuid.UUID
	Scope      FileScope
	OwnerID    uuid.UUID
	FolderID   uuid.UUID
	UploaderID uuid.UUID
	Name       string
	Size       int64
	ObjectKey  string
	CreatedAt  time.Time
}

// UploadParams contains parameters to upload a file.
type UploadParams struct {
	UserID uuid.UUID
	Name   string
	Size   int64
	Data   io.Reader
}

// Storage is the byte-blob backend addressed by opaque object key. Keys
// are minted per upload, so no two writers ever target the same key.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
