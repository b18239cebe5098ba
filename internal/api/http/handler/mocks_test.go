package handler_test

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/skyvault/skyvault-server/internal/model"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) UploadPersonal(ctx context.Context, params model.UploadParams) (model.StoredFile, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.StoredFile), args.Error(1)
}

func (m *MockFileService) UploadShared(ctx context.Context, userID, folderID uuid.UUID, params model.UploadParams) (model.StoredFile, error) {
	args := m.Called(ctx, userID, folderID, params)
	return args.Get(0).(model.StoredFile), args.Error(1)
}

func (m *MockFileService) DeletePersonal(ctx context.Context, userID, fileID uuid.UUID) error {
	args := m.Called(ctx, userID, fileID)
	return args.Error(0)
}

func (m *MockFileService) DeleteShared(ctx context.Context, userID, folderID, fileID uuid.UUID) error {
	args := m.Called(ctx, userID, folderID, fileID)
	return args.Error(0)
}

func (m *MockFileService) Download(ctx context.Context, userID, fileID uuid.UUID) (model.StoredFile, io.ReadCloser, error) {
	args := m.Called(ctx, userID, fileID)
	var rc io.ReadCloser
	if v := args.Get(1); v != nil {
		rc = v.(io.ReadCloser)
	}
	return args.Get(0).(model.StoredFile), rc, args.Error(2)
}

func (m *MockFileService) ListPersonal(ctx context.Context, userID uuid.UUID) ([]model.StoredFile, error) {
	args := m.Called(ctx, userID)
	var files []model.StoredFile
	if v := args.Get(0); v != nil {
		files = v.([]model.StoredFile)
	}
	return files, args.Error(1)
}

func (m *MockFileService) ListFolder(ctx context.Context, userID, folderID uuid.UUID) ([]model.StoredFile, error) {
	args := m.Called(ctx, userID, folderID)
	var files []model.StoredFile
	if v := args.Get(0); v != nil {
		files = v.([]model.StoredFile)
	}
	return files, args.Error(1)
}

func (m *MockFileService) Account(ctx context.Context, userID uuid.UUID) (model.AccountSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.AccountSummary), args.Error(1)
}

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) CreateFolder(ctx context.Context, ownerID uuid.UUID, name string, memberIDs []uuid.UUID) (model.SharedFolder, error) {
	args := m.Called(ctx, ownerID, name, memberIDs)
	return args.Get(0).(model.SharedFolder), args.Error(1)
}

func (m *MockFolderService) GetFolder(ctx context.Context, folderID, userID uuid.UUID) (model.SharedFolder, error) {
	args := m.Called(ctx, folderID, userID)
	return args.Get(0).(model.SharedFolder), args.Error(1)
}

func (m *MockFolderService) DeleteFolder(ctx context.Context, folderID, requesterID uuid.UUID) error {
	args := m.Called(ctx, folderID, requesterID)
	return args.Error(0)
}

func (m *MockFolderService) ListFolders(ctx context.Context, userID uuid.UUID) ([]model.SharedFolder, error) {
	args := m.Called(ctx, userID)
	var folders []model.SharedFolder
	if v := args.Get(0); v != nil {
		folders = v.([]model.SharedFolder)
	}
	return folders, args.Error(1)
}
