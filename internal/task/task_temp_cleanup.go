package task

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
)

// TempCleanupTask empties the scratch directory once at startup.
type TempCleanupTask struct {
	path   string
	logger *zap.Logger
}

// NewTempCleanupTask creates the scratch directory cleanup task.
func NewTempCleanupTask(path string, logger *zap.Logger) *TempCleanupTask {
	if path == "" {
		path = "storage/temp"
	}
	return &TempCleanupTask{path: path, logger: logger}
}

// Name task name
func (t *TempCleanupTask) Name() string {
	return "TempDirStartCleanupTask"
}

// LoopInterval 0, startup only
func (t *TempCleanupTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun runs once at startup
func (t *TempCleanupTask) IsStartupRun() bool {
	return true
}

// Run removes and recreates the scratch directory.
func (t *TempCleanupTask) Run(ctx context.Context) error {
	t.logger.Info("starting temp cleanup", zap.String("path", t.path))

	if _, err := os.Stat(t.path); os.IsNotExist(err) {
		return os.MkdirAll(t.path, 0755)
	}

	if err := os.RemoveAll(t.path); err != nil {
		t.logger.Error("failed to remove temp directory", zap.String("path", t.path), zap.Error(err))
		return err
	}

	if err := os.MkdirAll(t.path, 0755); err != nil {
		t.logger.Error("failed to recreate temp directory", zap.String("path", t.path), zap.Error(err))
		return err
	}

	t.logger.Info("temp cleanup finished", zap.String("path", t.path))
	return nil
}
