package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyvault/skyvault-server/internal/api/http/handler"
	"github.com/skyvault/skyvault-server/internal/api/http/middleware"
	"github.com/skyvault/skyvault-server/internal/logger"
)

// Router assembles the HTTP API out of handlers and middleware.
type Router struct {
	userService   handler.UserService
	fileService   handler.FileService
	folderService handler.FolderService
	logger        *logger.Logger
}

// New creates a new Router instance.
func New(
	userService handler.UserService,
	fileService handler.FileService,
	folderService handler.FolderService,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:   userService,
		fileService:   fileService,
		folderService: folderService,
		logger:        logger,
	}
}

// Handler builds the gin engine with all routes registered.
func (r *Router) Handler() http.Handler {
	userHandler := handler.NewUser(r.userService, r.logger)
	fileHandler := handler.NewFile(r.fileService, r.logger)
	folderHandler := handler.NewFolder(r.folderService, r.userService, r.logger)
	identity := middleware.NewIdentity(r.userService, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogging(r.logger))

	api := engine.Group("/api")
	{
		api.POST("/users", userHandler.Register)

		authed := api.Group("")
		authed.Use(identity.Handle())
		{
			authed.GET("/account", fileHandler.Account)

			authed.GET("/files", fileHandler.ListPersonal)
			authed.POST("/files", fileHandler.UploadPersonal)
			authed.GET("/files/:id", fileHandler.Download)
			authed.DELETE("/files/:id", fileHandler.DeletePersonal)

			authed.GET("/folders", folderHandler.List)
			authed.POST("/folders", folderHandler.Create)
			authed.GET("/folders/:id", folderHandler.Get)
			authed.DELETE("/folders/:id", folderHandler.Delete)

			authed.GET("/folders/:id/files", fileHandler.ListFolder)
			authed.POST("/folders/:id/files", fileHandler.UploadShared)
			authed.GET("/folders/:id/files/:fileID", fileHandler.DownloadShared)
			authed.DELETE("/folders/:id/files/:fileID", fileHandler.DeleteShared)
		}
	}

	return engine
}
