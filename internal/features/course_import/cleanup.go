package course_import

import (
	"context"
	"fmt"

	"go-coursecreator/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CleanupJob periodically deletes stale archives from the staging directory
type CleanupJob struct {
	config    *config.Config
	stager    Stager
	logger    *zap.Logger
	scheduler *cron.Cron
}

func NewCleanupJob(cfg *config.Config, stager Stager, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		config: cfg,
		stager: stager,
		logger: logger,
	}
}

func (j *CleanupJob) Start(ctx context.Context) error {
	j.scheduler = cron.New()
	if _, err := j.scheduler.AddFunc(j.config.StagingCleanupSchedule, j.Run); err != nil {
		return fmt.Errorf("invalid staging cleanup schedule %q: %w", j.config.StagingCleanupSchedule, err)
	}
	j.scheduler.Start()
	j.logger.Info("Staging cleanup scheduled",
		zap.String("schedule", j.config.StagingCleanupSchedule),
		zap.Duration("retention", j.config.StagingRetention))
	return nil
}

func (j *CleanupJob) Stop(ctx context.Context) error {
	if j.scheduler == nil {
		return nil
	}
	done := j.scheduler.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	return nil
}

func (j *CleanupJob) Run() {
	removed, err := j.stager.Cleanup(j.config.StagingRetention)
	if err != nil {
		j.logger.Error("Staging cleanup failed", zap.String("dir", j.config.StagingDir), zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("Removed stale staged archives", zap.Int("count", removed))
	}
}
