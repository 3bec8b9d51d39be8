package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/telegram"
	"golang-stock-analyzer/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ErrAnalysisInProgress is returned when a run trigger arrives while another
// run is still active. Triggers are rejected, never queued.
var ErrAnalysisInProgress = errors.New("daily analysis already in progress")

// DailyAnalysisService drives the end-to-end daily batch: news aggregation per
// symbol, recommendation generation, persistence and export.
type DailyAnalysisService interface {
	Run(ctx context.Context) (*dto.RunSummaryResponse, error)
	TriggerAsync(ctx context.Context) error
	LatestBatch(ctx context.Context) ([]entity.StockRecommendation, error)
	RecommendationsBySymbol(ctx context.Context, symbol string) ([]entity.StockRecommendation, error)
}

// NewDailyAnalysisService creates a new DailyAnalysisService. The AI
// repository, Telegram notifier and Redis client are optional; a nil value
// disables the corresponding best-effort export.
func NewDailyAnalysisService(
	cfg *config.Config,
	log *logger.Logger,
	aggregator NewsAggregator,
	engine RecommendationEngine,
	marketDataRepo repository.MarketDataRepository,
	recommendationRepo repository.RecommendationRepository,
	reportRepo repository.ReportRepository,
	aiRepo repository.AIRepository,
	notifier telegram.Notifier,
	redisClient *redis.Client,
) DailyAnalysisService {
	return &dailyAnalysisService{
		cfg:                cfg,
		logger:             log,
		aggregator:         aggregator,
		engine:             engine,
		marketDataRepo:     marketDataRepo,
		recommendationRepo: recommendationRepo,
		reportRepo:         reportRepo,
		aiRepo:             aiRepo,
		notifier:           notifier,
		redisClient:        redisClient,
	}
}

type dailyAnalysisService struct {
	cfg                *config.Config
	logger             *logger.Logger
	aggregator         NewsAggregator
	engine             RecommendationEngine
	marketDataRepo     repository.MarketDataRepository
	recommendationRepo repository.RecommendationRepository
	reportRepo         repository.ReportRepository
	aiRepo             repository.AIRepository
	notifier           telegram.Notifier
	redisClient        *redis.Client

	running atomic.Bool
}

// Run executes one full analysis pass. At most one run is in flight at a
// time; concurrent triggers get ErrAnalysisInProgress. Per-symbol failures
// shrink the batch instead of aborting it, so a run never fails once started.
func (s *dailyAnalysisService) Run(ctx context.Context) (*dto.RunSummaryResponse, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Analysis trigger rejected, a run is already active")
		return nil, ErrAnalysisInProgress
	}
	defer s.running.Store(false)

	return s.run(ctx), nil
}

// TriggerAsync claims the run slot and executes the run in the background.
// The rejection decision is made synchronously so callers can report it.
func (s *dailyAnalysisService) TriggerAsync(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Analysis trigger rejected, a run is already active")
		return ErrAnalysisInProgress
	}
	utils.GoSafe(func() {
		defer s.running.Store(false)
		s.run(context.WithoutCancel(ctx))
	})
	return nil
}

func (s *dailyAnalysisService) run(ctx context.Context) *dto.RunSummaryResponse {
	startedAt := time.Now()
	universe := s.symbolUniverse()

	s.logger.Info("Starting daily analysis run", logger.IntField("symbols", len(universe)))

	analyses := s.analyzeSymbols(ctx, universe)
	recommendations := s.generateRecommendations(ctx, analyses, startedAt)

	s.persistBatch(ctx, recommendations)
	s.exportBatch(ctx, recommendations)

	s.logger.Info("Daily analysis completed",
		logger.IntField("analyzed_symbols", len(analyses)),
		logger.IntField("recommendations", len(recommendations)),
	)
	s.logTopPicks(recommendations)

	return &dto.RunSummaryResponse{
		AnalyzedSymbols: len(analyses),
		Recommendations: len(recommendations),
		StartedAt:       startedAt,
		CompletedAt:     time.Now(),
	}
}

// symbolUniverse returns the configured universe capped per run to bound
// external load.
func (s *dailyAnalysisService) symbolUniverse() []common.StockUniverseEntry {
	universe := common.StockUniverse
	maxSymbols := s.cfg.Analyzer.MaxSymbolsPerRun
	if maxSymbols > 0 && len(universe) > maxSymbols {
		universe = universe[:maxSymbols]
	}
	return universe
}

// analyzeSymbols fans the news aggregation out across the universe with
// bounded concurrency and drops symbols whose analysis produced nothing.
func (s *dailyAnalysisService) analyzeSymbols(ctx context.Context, universe []common.StockUniverseEntry) []*dto.NewsAnalysis {
	concurrency := s.cfg.Analyzer.SymbolConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	results := make([]*dto.NewsAnalysis, len(universe))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)

	for i, entry := range universe {
		i, entry := i, entry
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			results[i] = s.aggregator.Aggregate(ctx, entry.Symbol, entry.CompanyName)
		})
	}
	wg.Wait()

	var analyses []*dto.NewsAnalysis
	for _, analysis := range results {
		if analysis != nil {
			analyses = append(analyses, analysis)
		}
	}
	return analyses
}

// generateRecommendations fetches a quote per analysis and builds the batch,
// skipping symbols without usable price data. Every record is stamped with the
// run's analysis date; the latest-batch query groups on that column, so all
// rows of one run must share it.
func (s *dailyAnalysisService) generateRecommendations(ctx context.Context, analyses []*dto.NewsAnalysis, analysisDate time.Time) []entity.StockRecommendation {
	var recommendations []entity.StockRecommendation
	for _, analysis := range analyses {
		quote, err := s.marketDataRepo.GetQuote(ctx, analysis.Symbol)
		if err != nil {
			s.logger.Warn("Market data unavailable, skipping symbol",
				logger.StringField("symbol", analysis.Symbol),
				logger.ErrorField(err),
			)
			continue
		}

		recommendation, err := s.engine.Recommend(analysis, quote)
		if err != nil {
			s.logger.Warn("No recommendation produced, skipping symbol",
				logger.StringField("symbol", analysis.Symbol),
				logger.ErrorField(err),
			)
			continue
		}
		recommendation.AnalysisDate = analysisDate
		recommendations = append(recommendations, *recommendation)
	}
	return recommendations
}

// persistBatch saves the batch and refreshes the latest-batch cache. Failures
// are logged; the in-memory batch stays valid either way.
func (s *dailyAnalysisService) persistBatch(ctx context.Context, recommendations []entity.StockRecommendation) {
	if err := s.recommendationRepo.SaveAll(ctx, recommendations); err != nil {
		s.logger.Error("Failed to save recommendation batch", logger.ErrorField(err))
		return
	}
	s.cacheLatestBatch(ctx, recommendations)
}

func (s *dailyAnalysisService) cacheLatestBatch(ctx context.Context, recommendations []entity.StockRecommendation) {
	if s.redisClient == nil {
		return
	}
	payload, err := json.Marshal(recommendations)
	if err != nil {
		s.logger.Error("Failed to marshal latest batch for cache", logger.ErrorField(err))
		return
	}
	if err := s.redisClient.Set(ctx, common.RedisKeyLatestBatch, payload, s.cfg.Analyzer.LatestBatchCacheTTL).Err(); err != nil {
		s.logger.Error("Failed to cache latest batch", logger.ErrorField(err))
	}
}

// exportBatch writes the text report and sends the Telegram summary, both
// best-effort.
func (s *dailyAnalysisService) exportBatch(ctx context.Context, recommendations []entity.StockRecommendation) {
	narrative := ""
	if s.aiRepo != nil && len(recommendations) > 0 {
		generated, err := s.aiRepo.GenerateBatchNarrative(ctx, recommendations)
		if err != nil {
			s.logger.Warn("Failed to generate batch narrative", logger.ErrorField(err))
		} else {
			narrative = generated
		}
	}

	if _, err := s.reportRepo.Write(ctx, recommendations, narrative); err != nil {
		s.logger.Error("Failed to write recommendation report", logger.ErrorField(err))
	}

	if s.notifier != nil && len(recommendations) > 0 {
		if err := s.notifier.SendMessage(telegram.FormatRecommendationsForTelegram(recommendations)); err != nil {
			s.logger.Error("Failed to send Telegram summary", logger.ErrorField(err))
		}
	}
}

func (s *dailyAnalysisService) logTopPicks(recommendations []entity.StockRecommendation) {
	logged := 0
	for _, rec := range recommendations {
		if rec.Recommendation != entity.RecommendationStrongBuy {
			continue
		}
		s.logger.Info("Strong buy pick",
			logger.StringField("symbol", rec.Symbol),
			logger.Field("current_price", rec.CurrentPrice),
		)
		logged++
		if logged == 3 {
			break
		}
	}
}

// LatestBatch returns the most recent recommendation batch, served from the
// Redis cache when possible.
func (s *dailyAnalysisService) LatestBatch(ctx context.Context) ([]entity.StockRecommendation, error) {
	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, common.RedisKeyLatestBatch).Bytes()
		if err == nil {
			var recommendations []entity.StockRecommendation
			if err := json.Unmarshal(cached, &recommendations); err == nil {
				return recommendations, nil
			}
			s.logger.Warn("Discarding unreadable latest-batch cache entry")
		} else if err != redis.Nil {
			s.logger.Warn("Failed to read latest-batch cache", logger.ErrorField(err))
		}
	}

	recommendations, err := s.recommendationRepo.FindLatestBatch(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheLatestBatch(ctx, recommendations)
	return recommendations, nil
}

// RecommendationsBySymbol returns the stored recommendation history for one
// symbol, newest first.
func (s *dailyAnalysisService) RecommendationsBySymbol(ctx context.Context, symbol string) ([]entity.StockRecommendation, error) {
	return s.recommendationRepo.FindBySymbol(ctx, symbol)
}
