// Package routers assembles the gin engines.
package routers

import (
	"time"

	"github.com/skyring/file-explorer-service/internal/app"
	"github.com/skyring/file-explorer-service/internal/middleware"
	"github.com/skyring/file-explorer-service/internal/routers/api_router"
	"github.com/skyring/file-explorer-service/pkg/limiter"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/files/upload",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter builds the public router carrying the API surface.
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		if cfg.Tracer.Enabled {
			api.Use(middleware.TraceMiddleware(cfg.Tracer.Header))
		}
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLog())
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		folderHandler := api_router.NewFolderHandler(appContainer)
		fileHandler := api_router.NewFileHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)
		exportHandler := api_router.NewExportHandler(appContainer)

		api.GET("/health", healthHandler.Check)

		api.GET("/folders", folderHandler.Roots)
		api.POST("/folders", folderHandler.Create)
		api.GET("/folders/:id", folderHandler.Get)
		api.GET("/folders/:id/children", folderHandler.Children)
		api.GET("/folders/:id/subfolders", folderHandler.Subfolders)
		api.PUT("/folders/:id/rename", folderHandler.Rename)
		api.DELETE("/folders/:id", folderHandler.Delete)

		api.POST("/files/upload", fileHandler.Upload)
		api.GET("/files/:id", fileHandler.Get)
		api.GET("/files/:id/preview", fileHandler.Preview)
		api.PUT("/files/:id/rename", fileHandler.Rename)
		api.DELETE("/files/:id", fileHandler.Delete)

		api.POST("/export", exportHandler.Trigger)
	}

	// liveness path without the /api prefix
	healthHandler := api_router.NewHealthHandler(appContainer)
	r.GET("/health", healthHandler.Check)

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
