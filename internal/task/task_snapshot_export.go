package task

import (
	"context"
	"time"

	"github.com/skyring/file-explorer-service/internal/app"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SnapshotExportTask periodically walks the folder tree and uploads one
// snapshot to the configured storage backend.
type SnapshotExportTask struct {
	app      *app.App
	schedule cron.Schedule
	logger   *zap.Logger
}

// NewSnapshotExportTask creates the export task from a standard
// five-field cron expression.
func NewSnapshotExportTask(a *app.App, spec string, logger *zap.Logger) (*SnapshotExportTask, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &SnapshotExportTask{app: a, schedule: schedule, logger: logger}, nil
}

// Name task name
func (t *SnapshotExportTask) Name() string {
	return "SnapshotExportTask"
}

// LoopInterval unused, the cron schedule drives this task
func (t *SnapshotExportTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun cron only
func (t *SnapshotExportTask) IsStartupRun() bool {
	return false
}

// Schedule cron schedule
func (t *SnapshotExportTask) Schedule() cron.Schedule {
	return t.schedule
}

// Run exports one snapshot.
func (t *SnapshotExportTask) Run(ctx context.Context) error {
	if t.app.ExportService == nil {
		return nil
	}

	key, err := t.app.ExportService.ExportSnapshot(ctx)
	if err != nil {
		return err
	}

	t.logger.Info("snapshot exported", zap.String("key", key))
	return nil
}
