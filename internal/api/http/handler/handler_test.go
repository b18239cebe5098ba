package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skyvault/skyvault-server/internal/api/http/middleware"
	"github.com/skyvault/skyvault-server/internal/api/http/router"
	"github.com/skyvault/skyvault-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	users   *MockUserService
	files   *MockFileService
	folders *MockFolderService
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:   &MockUserService{},
		files:   &MockFileService{},
		folders: &MockFolderService{},
	}
	env.handler = router.New(env.users, env.files, env.folders, testutil.MakeNoopLogger()).Handler()

	t.Cleanup(func() {
		env.users.AssertExpectations(t)
		env.files.AssertExpectations(t)
		env.folders.AssertExpectations(t)
	})

	return env
}

func withIdentity(req *http.Request, username string) *http.Request {
	req.Header.Set(middleware.IdentityHeader, username)
	return req
}
