package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FolderStore defines persistence operations for shared folders.
type FolderStore interface {
	Create(ctx context.Context, folder SharedFolder) (SharedFolder, error)
	GetByID(ctx context.Context, id uuid.UUID) (SharedFolder, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]SharedFolder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SharedFolder is a multi-user file container with one owner and a fixed
// member set. Membership is immutable after creation; the owner is not
// part of MemberIDs.
type SharedFolder struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	MemberIDs []uuid.UUID
	CreatedAt time.Time
}

// AccessTier enumerates what a user may do with a shared folder.
type AccessTier string

const (
	// TierOwner has full control including folder deletion.
	TierOwner AccessTier = "owner"
	// TierMember may upload, download and delete files in the folder.
	TierMember AccessTier = "member"
	// TierDenied has no access to the folder.
	TierDenied AccessTier = "denied"
)

// Tier reports the access tier of userID for the folder.
func (f SharedFolder) Tier(userID uuid.UUID) AccessTier {
	if userID == f.OwnerID {
		return TierOwner
	}
	for _, id := range f.MemberIDs {
		if id == userID {
			return TierMember
		}
	}
	return TierDenied
}

// FolderSweeper removes all files contained in a folder. The registry
// invokes it while holding the folder's write guard so the cascade is
// atomic from an external observer's perspective.
type FolderSweeper interface {
	PurgeFolder(ctx context.Context, folderID uuid.UUID) error
}
