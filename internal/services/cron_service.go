package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/circleops/salesops-backend/internal/database"
)

// refreshTokenCleanupSpec runs the token cleanup at 03:30 every day
const refreshTokenCleanupSpec = "0 30 3 * * *"

// CronService manages scheduled background jobs
type CronService struct {
	cron          *cron.Cron
	events        *EventService
	refreshTokens *database.RefreshTokenRepository
	lifecycleSpec string
	logger        *logrus.Logger
}

// NewCronService creates a new CronService. lifecycleSpec uses the
// six-field format with seconds.
func NewCronService(events *EventService, refreshTokens *database.RefreshTokenRepository, lifecycleSpec string, logger *logrus.Logger) *CronService {
	return &CronService{
		cron:          cron.New(cron.WithSeconds()),
		events:        events,
		refreshTokens: refreshTokens,
		lifecycleSpec: lifecycleSpec,
		logger:        logger,
	}
}

// Start schedules all jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.lifecycleSpec, s.eventLifecycleJob); err != nil {
		return fmt.Errorf("failed to schedule event lifecycle job: %w", err)
	}
	s.logger.WithField("spec", s.lifecycleSpec).Info("Scheduled: complete ended events")

	if s.refreshTokens != nil {
		if _, err := s.cron.AddFunc(refreshTokenCleanupSpec, s.refreshTokenCleanupJob); err != nil {
			return fmt.Errorf("failed to schedule refresh token cleanup job: %w", err)
		}
		s.logger.WithField("spec", refreshTokenCleanupSpec).Info("Scheduled: refresh token cleanup")
	}

	s.cron.Start()
	s.logger.Info("Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

// eventLifecycleJob completes active or paused events whose end date passed
func (s *CronService) eventLifecycleJob() {
	if _, err := s.RunEventLifecycleNow(context.Background()); err != nil {
		s.logger.WithError(err).Error("[CRON] event lifecycle job failed")
	}
}

// RunEventLifecycleNow runs the event lifecycle job immediately and returns
// how many events were completed
func (s *CronService) RunEventLifecycleNow(ctx context.Context) (int, error) {
	start := time.Now()
	completed, err := s.events.CompleteEndedEvents(ctx, start)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(logrus.Fields{
		"completed": completed,
		"duration":  time.Since(start).String(),
	}).Info("[CRON] completed ended events")
	return completed, nil
}

func (s *CronService) refreshTokenCleanupJob() {
	removed, err := s.refreshTokens.CleanupExpired()
	if err != nil {
		s.logger.WithError(err).Error("[CRON] refresh token cleanup failed")
		return
	}
	s.logger.WithField("removed", removed).Info("[CRON] removed expired refresh tokens")
}

// GetJobStatus returns the status of scheduled jobs
func (s *CronService) GetJobStatus() map[string]interface{} {
	entries := s.cron.Entries()

	jobs := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		jobs = append(jobs, map[string]interface{}{
			"id":       entry.ID,
			"next_run": entry.Next,
			"prev_run": entry.Prev,
		})
	}

	return map[string]interface{}{
		"running":   len(entries) > 0,
		"job_count": len(entries),
		"jobs":      jobs,
	}
}
