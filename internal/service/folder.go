package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/skyvault/skyvault-server/internal/logger"
	"github.com/skyvault/skyvault-server/internal/model"
)

type folderState int

const (
	folderActive folderState = iota
	folderDeleting
	folderGone
)

// folderGuard serializes folder deletion against file operations. File
// commits hold the read lock; deletion flips state and sweeps under the
// write lock, so a racing upload either lands before the sweep (and is
// swept) or observes a non-active state and is rejected.
type folderGuard struct {
	mu    sync.RWMutex
	state folderState
}

// Registry owns shared-folder lifecycle and membership authorization.
type Registry struct {
	folders    model.FolderStore
	users      model.UserStore
	sweeper    model.FolderSweeper
	logger     *logger.Logger
	maxMembers int

	mu     sync.Mutex
	guards map[uuid.UUID]*folderGuard
}

// NewRegistry creates a Registry. The sweeper is wired afterwards via
// SetSweeper because the file service and the registry reference each
// other.
func NewRegistry(
	folders model.FolderStore,
	users model.UserStore,
	maxMembers int,
	logger *logger.Logger,
) *Registry {
	return &Registry{
		folders:    folders,
		users:      users,
		maxMembers: maxMembers,
		logger:     logger,
		guards:     make(map[uuid.UUID]*folderGuard),
	}
}

// SetSweeper wires the cascade target for folder deletion.
func (r *Registry) SetSweeper(sweeper model.FolderSweeper) {
	r.sweeper = sweeper
}

// CreateFolder creates a shared folder owned by ownerID with the given
// fixed member set. Members must be 1..max existing users, none of them
// the owner. Name collisions across folders are allowed; folders are
// identified by id.
func (r *Registry) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string, memberIDs []uuid.UUID) (model.SharedFolder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SharedFolder{}, model.ErrInvalidName
	}

	if len(memberIDs) == 0 || len(memberIDs) > r.maxMembers {
		return model.SharedFolder{}, model.ErrInvalidMembership
	}

	seen := make(map[uuid.UUID]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		if id == ownerID || id == uuid.Nil {
			return model.SharedFolder{}, model.ErrInvalidMembership
		}
		if _, dup := seen[id]; dup {
			return model.SharedFolder{}, model.ErrInvalidMembership
		}
		seen[id] = struct{}{}
	}

	if _, err := r.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.SharedFolder{}, model.ErrNotFound
		}
		return model.SharedFolder{}, fmt.Errorf("failed to get owner by id: %w", err)
	}
	for _, id := range memberIDs {
		if _, err := r.users.GetByID(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.SharedFolder{}, model.ErrInvalidMembership
			}
			return model.SharedFolder{}, fmt.Errorf("failed to get member by id: %w", err)
		}
	}

	folder := model.SharedFolder{
		ID:        uuid.New(),
		Name:      name,
		OwnerID:   ownerID,
		MemberIDs: memberIDs,
	}

	folder, err := r.folders.Create(ctx, folder)
	if err != nil {
		return model.SharedFolder{}, fmt.Errorf("failed to create folder: %w", err)
	}

	r.mu.Lock()
	r.guards[folder.ID] = &folderGuard{state: folderActive}
	r.mu.Unlock()

	return folder, nil
}

// Authorize reports the requester's access tier for the folder. Folders
// mid-deletion or gone report model.ErrNotFound; callers must reject all
// operations on TierDenied.
func (r *Registry) Authorize(ctx context.Context, folderID, userID uuid.UUID) (model.AccessTier, error) {
	if g := r.guardIfKnown(folderID); g != nil && g.currentState() != folderActive {
		return model.TierDenied, model.ErrNotFound
	}

	folder, err := r.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TierDenied, model.ErrNotFound
		}
		return model.TierDenied, fmt.Errorf("failed to get folder by id: %w", err)
	}

	return folder.Tier(userID), nil
}

// GetFolder returns the folder record if the requester is owner or member.
func (r *Registry) GetFolder(ctx context.Context, folderID, userID uuid.UUID) (model.SharedFolder, error) {
	if g := r.guardIfKnown(folderID); g != nil && g.currentState() != folderActive {
		return model.SharedFolder{}, model.ErrNotFound
	}

	folder, err := r.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.SharedFolder{}, model.ErrNotFound
		}
		return model.SharedFolder{}, fmt.Errorf("failed to get folder by id: %w", err)
	}

	if folder.Tier(userID) == model.TierDenied {
		return model.SharedFolder{}, model.ErrPermissionDenied
	}
	return folder, nil
}

// DeleteFolder deletes the folder and cascades to all contained files.
// Only the owner may delete. The cascade runs under the folder's write
// guard: external observers see either the folder with all its files, or
// neither. A failed cascade leaves the folder in deleting state, hidden
// from every operation; calling DeleteFolder again resumes the sweep.
func (r *Registry) DeleteFolder(ctx context.Context, folderID, requesterID uuid.UUID) error {
	g := r.guardFor(folderID)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == folderGone {
		return model.ErrNotFound
	}

	folder, err := r.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			r.dropGuard(folderID)
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get folder by id: %w", err)
	}

	if folder.Tier(requesterID) != model.TierOwner {
		return model.ErrPermissionDenied
	}

	g.state = folderDeleting

	if err := r.sweeper.PurgeFolder(ctx, folderID); err != nil {
		// The sweep may have removed some files already, so the folder
		// must not become visible again with partial contents. It stays
		// in deleting state until a retry finishes the cascade.
		return fmt.Errorf("failed to purge folder files: %w", err)
	}

	if err := r.folders.Delete(ctx, folderID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			g.state = folderGone
			r.dropGuard(folderID)
			return nil
		}
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	g.state = folderGone
	r.dropGuard(folderID)

	r.logger.Info("shared folder deleted", "folder_id", folderID, "owner_id", folder.OwnerID)
	return nil
}

// ListFolders returns the folders where the user is owner or member,
// most recently created first.
func (r *Registry) ListFolders(ctx context.Context, userID uuid.UUID) ([]model.SharedFolder, error) {
	folders, err := r.folders.GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get folders for user: %w", err)
	}
	return folders, nil
}

// GuardFileOp authorizes a file operation on the folder and holds the
// folder's read guard until the returned release func is called. A folder
// being deleted (or already gone) rejects with model.ErrNotFound; an
// unauthorized user rejects with model.ErrPermissionDenied. On error no
// lock is held and release is nil.
func (r *Registry) GuardFileOp(ctx context.Context, folderID, userID uuid.UUID) (model.AccessTier, func(), error) {
	g := r.guardFor(folderID)
	g.mu.RLock()

	if g.state != folderActive {
		g.mu.RUnlock()
		return model.TierDenied, nil, model.ErrNotFound
	}

	folder, err := r.folders.GetByID(ctx, folderID)
	if err != nil {
		g.mu.RUnlock()
		if errors.Is(err, model.ErrNotFound) {
			r.dropGuard(folderID)
			return model.TierDenied, nil, model.ErrNotFound
		}
		return model.TierDenied, nil, fmt.Errorf("failed to get folder by id: %w", err)
	}

	tier := folder.Tier(userID)
	if tier == model.TierDenied {
		g.mu.RUnlock()
		return tier, nil, model.ErrPermissionDenied
	}

	var once sync.Once
	release := func() { once.Do(g.mu.RUnlock) }
	return tier, release, nil
}

func (r *Registry) guardFor(folderID uuid.UUID) *folderGuard {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.guards[folderID]
	if !ok {
		g = &folderGuard{state: folderActive}
		r.guards[folderID] = g
	}
	return g
}

func (r *Registry) guardIfKnown(folderID uuid.UUID) *folderGuard {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guards[folderID]
}

// dropGuard forgets the guard for a folder that no longer exists so the
// map does not grow with dead ids. Holders of the old guard still observe
// its terminal state.
func (r *Registry) dropGuard(folderID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guards, folderID)
}

func (g *folderGuard) currentState() folderState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}
