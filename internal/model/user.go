package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Count(ctx context.Context) (int, error)
	UpdateStorageUsed(ctx context.Context, id uuid.UUID, used int64) error
}

// User represents a stored user and their personal-storage accounting.
// StorageUsed covers personal files only; shared-folder files are
// unmetered.
type User struct {
	ID           uuid.UUID
	Username     string
	StorageUsed  int64
	StorageLimit int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AccountSummary aggregates a user's storage standing for the account
// endpoint.
type AccountSummary struct {
	StorageUsed  int64
	StorageLimit int64
	FileCount    int
}
