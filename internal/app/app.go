package app

import (
	"context"
	"fmt"
	"time"

	"github.com/skyring/file-explorer-service/internal/dao"
	"github.com/skyring/file-explorer-service/internal/domain"
	"github.com/skyring/file-explorer-service/internal/preview"
	"github.com/skyring/file-explorer-service/internal/service"
	"github.com/skyring/file-explorer-service/pkg/storage"
	"github.com/skyring/file-explorer-service/pkg/workerpool"
	"github.com/skyring/file-explorer-service/pkg/writequeue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VersionInfo build identification reported by /health and the version
// command.
type VersionInfo struct {
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

// App is the application container. It owns the infrastructure
// components and wires repositories and services together, so handlers
// and tasks only ever depend on the container.
type App struct {
	// injected infrastructure
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// concurrency components
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// repository layer
	FolderRepo domain.FolderRepository
	FileRepo   domain.FileRepository

	// preview memoization, shared by folder and file services
	PreviewCache *preview.Cache

	// service layer
	FolderService service.FolderService
	FileService   service.FileService
	ExportService service.ExportService

	// StartTime process start, reported by /health
	StartTime time.Time
}

// NewApp creates the application container, initializing every
// dependency and performing the injection.
// cfg: application configuration (required)
// logger: zap logger (required)
// db: database connection (required)
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	a.Dao = dao.New(db, a.writeQueueMgr)

	a.FolderRepo = dao.NewFolderRepository(a.Dao)
	a.FileRepo = dao.NewFileRepository(a.Dao)

	a.PreviewCache = preview.NewCache()

	a.FolderService = service.NewFolderService(a.FolderRepo, a.FileRepo, a.PreviewCache, logger)
	a.FileService = service.NewFileService(a.FileRepo, a.FolderRepo, a.PreviewCache, a.workerPool, cfg.GetUploadConfig(), logger)

	if cfg.Export.Enabled {
		store, err := storage.NewClient(&cfg.Export.Storage)
		if err != nil {
			return nil, fmt.Errorf("export storage init failed: %w", err)
		}
		a.ExportService = service.NewExportService(a.FolderRepo, a.FileRepo, store, logger)
	}

	logger.Info("App container initialized",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity),
		zap.Bool("exportEnabled", cfg.Export.Enabled))

	return a, nil
}

// Close releases the resources held by the container. The worker pool
// is drained first so in-flight preview warmups finish before the
// database goes away.
func (a *App) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("worker pool shutdown incomplete", zap.Error(err))
		}
	}
	if a.writeQueueMgr != nil {
		if err := a.writeQueueMgr.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("write queue shutdown incomplete", zap.Error(err))
		}
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config returns the application configuration.
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger returns the process logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask submits a task to the worker pool and waits for it.
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync submits a task to the worker pool without waiting.
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version returns build identification.
func (a *App) Version() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
