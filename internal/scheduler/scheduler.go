package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/domain/models"
	"github.com/mamadbah2/cropbudget/pkg/clients/whatsapp"
)

const sweepSchedule = "@every 5m"

// ErrReportDisabled is returned when no recipient or owner is configured.
var ErrReportDisabled = errors.New("weekly report disabled")

// Reporter renders the weekly report.
type Reporter interface {
	WeeklyReport(ctx context.Context, owner string, year int) (string, error)
}

// Sweeper drops idle sessions.
type Sweeper interface {
	Sweep(maxAge time.Duration) int
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier whatsapp.Notifier
	sweepers []Sweeper
	cfg      config.Config
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. A nil notifier disables the
// weekly report; the sweepers still run.
func NewScheduler(cfg config.Config, reporter Reporter, notifier whatsapp.Notifier, logger *zap.Logger, sweepers ...Sweeper) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Reporting.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		notifier: notifier,
		sweepers: sweepers,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("report_schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.sendWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}
	if _, err := s.cron.AddFunc(sweepSchedule, s.sweep); err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// SendWeeklyReport builds the report and pushes it to the configured recipient.
func (s *Scheduler) SendWeeklyReport(ctx context.Context) error {
	if s.notifier == nil || s.cfg.Reporting.OwnerID == "" || s.cfg.WhatsApp.RecipientID == "" {
		return ErrReportDisabled
	}

	report, err := s.reporter.WeeklyReport(ctx, s.cfg.Reporting.OwnerID, s.cfg.Reporting.Year)
	if err != nil {
		return fmt.Errorf("generate weekly report: %w", err)
	}

	msg := models.Notification{
		To:      s.cfg.WhatsApp.RecipientID,
		Title:   "Weekly budget report",
		Message: report,
	}
	id, err := s.notifier.Notify(ctx, msg)
	if err != nil {
		return fmt.Errorf("send weekly report: %w", err)
	}
	s.logger.Info("weekly report sent successfully", zap.String("message_id", id))
	return nil
}

func (s *Scheduler) sendWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch err := s.SendWeeklyReport(ctx); {
	case errors.Is(err, ErrReportDisabled):
		s.logger.Debug("weekly report skipped, no recipient configured")
	case err != nil:
		s.logger.Error("failed to send weekly report", zap.Error(err))
	}
}

func (s *Scheduler) sweep() {
	var dropped int
	for _, sw := range s.sweepers {
		dropped += sw.Sweep(s.cfg.Season.ImportSessionTTL)
	}
	if dropped > 0 {
		s.logger.Info("idle sessions expired", zap.Int("count", dropped))
	}
}
