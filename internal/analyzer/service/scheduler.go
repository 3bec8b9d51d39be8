package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/pkg/logger"

	"github.com/robfig/cron/v3"
)

// AnalysisScheduler delivers the recurring daily tick to the analysis
// service. Run exclusivity lives in the service itself, not in the scheduler.
type AnalysisScheduler struct {
	cron            *cron.Cron
	analysisService DailyAnalysisService
	logger          *logger.Logger
}

// NewAnalysisScheduler creates a scheduler firing on the configured cron
// expression in the configured timezone.
func NewAnalysisScheduler(cfg *config.Config, analysisService DailyAnalysisService, log *logger.Logger) (*AnalysisScheduler, error) {
	location, err := time.LoadLocation(cfg.Analyzer.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid analyzer timezone: %w", err)
	}

	scheduler := &AnalysisScheduler{
		cron:            cron.New(cron.WithLocation(location)),
		analysisService: analysisService,
		logger:          log,
	}

	if _, err := scheduler.cron.AddFunc(cfg.Analyzer.Schedule, scheduler.tick); err != nil {
		return nil, fmt.Errorf("invalid analyzer schedule: %w", err)
	}

	return scheduler, nil
}

// Start begins delivering scheduled ticks.
func (s *AnalysisScheduler) Start() {
	s.logger.Info("Analysis scheduler started")
	s.cron.Start()
}

// Stop halts the scheduler and waits for an in-flight tick handler to return.
func (s *AnalysisScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Analysis scheduler stopped")
}

func (s *AnalysisScheduler) tick() {
	summary, err := s.analysisService.Run(context.Background())
	if err != nil {
		if errors.Is(err, ErrAnalysisInProgress) {
			s.logger.Warn("Scheduled analysis tick rejected, previous run still active")
			return
		}
		s.logger.Error("Scheduled analysis run failed", logger.ErrorField(err))
		return
	}
	s.logger.Info("Scheduled analysis run finished",
		logger.IntField("recommendations", summary.Recommendations),
	)
}
