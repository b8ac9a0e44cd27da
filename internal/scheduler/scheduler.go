package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/gildedrose/internal/config"
	"github.com/mamadbah2/gildedrose/internal/domain/models"
	"github.com/mamadbah2/gildedrose/internal/service/whatsapp"
)

// Advancer runs one nightly update.
type Advancer interface {
	AdvanceDay(ctx context.Context) (models.StockReport, error)
}

// Summarizer formats a nightly report for messaging.
type Summarizer interface {
	FormatDailySummary(report models.StockReport) string
}

// Scheduler manages the nightly stock update.
type Scheduler struct {
	cron         *cron.Cron
	inventory    Advancer
	reporting    Summarizer
	messagingSvc whatsapp.MessagingService
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
// messagingSvc may be nil, in which case summaries are only logged.
func NewScheduler(cfg config.Config, inventory Advancer, reporting Summarizer, messagingSvc whatsapp.MessagingService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cron.New(cron.WithLocation(cfg.Nightly.Location()))

	return &Scheduler{
		cron:         c,
		inventory:    inventory,
		reporting:    reporting,
		messagingSvc: messagingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the nightly job and starts the cron runner.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Nightly.CronSchedule),
		zap.String("timezone", s.cfg.Nightly.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.Nightly.CronSchedule, s.nightlyUpdate); err != nil {
		return fmt.Errorf("schedule nightly update: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) nightlyUpdate() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunNow(ctx); err != nil {
		s.logger.Error("nightly update failed", zap.Error(err))
	}
}

// RunNow advances the stock by one night and sends the summary to the manager.
func (s *Scheduler) RunNow(ctx context.Context) error {
	s.logger.Info("running nightly update")

	report, err := s.inventory.AdvanceDay(ctx)
	if err != nil {
		return fmt.Errorf("advance stock: %w", err)
	}

	summary := s.reporting.FormatDailySummary(report)

	if s.messagingSvc == nil || s.cfg.WhatsApp.ManagerID == "" {
		s.logger.Info("nightly summary", zap.Int("day", report.Day), zap.String("summary", summary))
		return nil
	}

	req := models.OutboundMessageRequest{
		To:      s.cfg.WhatsApp.ManagerID,
		Message: summary,
	}

	if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send nightly summary: %w", err)
	}

	s.logger.Info("nightly summary sent", zap.Int("day", report.Day))
	return nil
}
