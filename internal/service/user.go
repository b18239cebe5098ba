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

const minUsernameLength = 3

// Users provisions user accounts. Authentication is handled outside the
// service by the fronting proxy; this only owns the account records and
// their storage limits.
type Users struct {
	users        model.UserStore
	logger       *logger.Logger
	storageLimit int64
	maxUsers     int

	// mu serializes provisioning so the capacity check and the insert
	// act as one step.
	mu sync.Mutex
}

// NewUsers creates the user service.
func NewUsers(users model.UserStore, storageLimit int64, maxUsers int, logger *logger.Logger) *Users {
	return &Users{
		users:        users,
		logger:       logger,
		storageLimit: storageLimit,
		maxUsers:     maxUsers,
	}
}

// CreateUser provisions a new user with the configured storage limit and
// zero usage. Fails with model.ErrUserExists on a taken username and
// model.ErrUserLimit when the instance is full.
func (s *Users) CreateUser(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength {
		return model.User{}, model.ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.users.Count(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to count users: %w", err)
	}
	if count >= s.maxUsers {
		return model.User{}, model.ErrUserLimit
	}

	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		StorageLimit: s.storageLimit,
	})
	if err != nil {
		if errors.Is(err, model.ErrUserExists) {
			return model.User{}, model.ErrUserExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user provisioned", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetByUsername resolves a proxy-supplied identity to a user record.
func (s *Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}
