package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/skyvault/skyvault-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) UpdateStorageUsed(ctx context.Context, id uuid.UUID, used int64) error {
	args := m.Called(ctx, id, used)
	return args.Error(0)
}

// MockFolderStore mocks the FolderStore interface
type MockFolderStore struct {
	mock.Mock
}

func (m *MockFolderStore) Create(ctx context.Context, folder model.SharedFolder) (model.SharedFolder, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(model.SharedFolder), args.Error(1)
}

func (m *MockFolderStore) GetByID(ctx context.Context, id uuid.UUID) (model.SharedFolder, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SharedFolder), args.Error(1)
}

func (m *MockFolderStore) GetForUser(ctx context.Context, userID uuid.UUID) ([]model.SharedFolder, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.SharedFolder), args.Error(1)
}

func (m *MockFolderStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFileStore mocks the FileStore interface
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Create(ctx context.Context, file model.StoredFile) (model.StoredFile, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(model.StoredFile), args.Error(1)
}

func (m *MockFileStore) GetByID(ctx context.Context, id uuid.UUID) (model.StoredFile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.StoredFile), args.Error(1)
}

func (m *MockFileStore) ListPersonal(ctx context.Context, ownerID uuid.UUID) ([]model.StoredFile, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.StoredFile), args.Error(1)
}

func (m *MockFileStore) ListFolder(ctx context.Context, folderID uuid.UUID) ([]model.StoredFile, error) {
	args := m.Called(ctx, folderID)
	return args.Get(0).([]model.StoredFile), args.Error(1)
}

func (m *MockFileStore) CountPersonal(ctx context.Context, ownerID uuid.UUID) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockFileStore) NameExists(ctx context.Context, scope model.FileScope, containerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, scope, containerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockQuotaLedger mocks the QuotaLedger interface
type MockQuotaLedger struct {
	mock.Mock
}

func (m *MockQuotaLedger) Reserve(ctx context.Context, userID uuid.UUID, bytes int64) error {
	args := m.Called(ctx, userID, bytes)
	return args.Error(0)
}

func (m *MockQuotaLedger) Release(ctx context.Context, userID uuid.UUID, bytes int64) {
	m.Called(ctx, userID, bytes)
}

func (m *MockQuotaLedger) Usage(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuotaLedger) Limit(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSweeper mocks the FolderSweeper interface
type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) PurgeFolder(ctx context.Context, folderID uuid.UUID) error {
	args := m.Called(ctx, folderID)
	return args.Error(0)
}
