package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/sarpras/internal/config"
	"github.com/mamadbah2/sarpras/internal/repository/mongodb"
	"github.com/mamadbah2/sarpras/internal/service/report"
	"github.com/mamadbah2/sarpras/pkg/clients/webhook"
)

// Scheduler records a nightly snapshot of the inventory summary so the
// dashboard numbers have a history, and optionally announces each snapshot
// over the webhook.
type Scheduler struct {
	cron        *cron.Cron
	reportSvc   *report.Service
	summaryRepo mongodb.SummaryRepository
	notifier    *webhook.Client
	cfg         config.SnapshotConfig
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SnapshotConfig, reportSvc *report.Service, summaryRepo mongodb.SummaryRepository, notifier *webhook.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:        cron.New(),
		reportSvc:   reportSvc,
		summaryRepo: summaryRepo,
		notifier:    notifier,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the snapshot job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.recordSnapshot); err != nil {
		s.logger.Error("failed to schedule summary snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) recordSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	summary, err := s.reportSvc.Summary(ctx)
	if err != nil {
		s.logger.Error("failed to compute inventory summary", zap.Error(err))
		return
	}

	if err := s.summaryRepo.InsertSummary(ctx, summary); err != nil {
		s.logger.Error("failed to store summary snapshot", zap.Error(err))
		return
	}

	s.logger.Info("summary snapshot recorded",
		zap.Int("total_items", summary.TotalItems),
		zap.Float64("total_value", summary.TotalValue))

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, webhook.EventSummaryRecorded, summary); err != nil {
			s.logger.Error("failed to notify summary snapshot", zap.Error(err))
		}
	}
}
