package task

import (
	"github.com/skyring/file-explorer-service/internal/app"
	"github.com/skyring/file-explorer-service/pkg/safe_close"

	"go.uber.org/zap"
)

// Manager creates and owns all background tasks.
type Manager struct {
	scheduler *Scheduler
	app       *app.App
	logger    *zap.Logger
}

// NewManager creates the task manager.
func NewManager(a *app.App, logger *zap.Logger, sc *safe_close.SafeClose) *Manager {
	return &Manager{
		scheduler: NewScheduler(logger, sc),
		app:       a,
		logger:    logger,
	}
}

// RegisterTasks registers every enabled task.
func (m *Manager) RegisterTasks() error {
	cfg := m.app.Config()

	m.scheduler.AddTask(NewTempCleanupTask(cfg.App.TempPath, m.logger))

	if cfg.Export.Enabled {
		exportTask, err := NewSnapshotExportTask(m.app, cfg.Export.Schedule, m.logger)
		if err != nil {
			m.logger.Warn("failed to create snapshot export task", zap.Error(err))
			return err
		}
		m.scheduler.AddTask(exportTask)
	} else {
		m.logger.Info("snapshot export task is disabled")
	}

	return nil
}

// Start launches all registered tasks.
func (m *Manager) Start() {
	m.scheduler.Start()
}
