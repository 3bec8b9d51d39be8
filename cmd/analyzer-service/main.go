package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	delivery "golang-stock-analyzer/internal/analyzer/delivery/http"
	_ "golang-stock-analyzer/internal/analyzer/docs"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/analyzer/service"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/postgres"
	"golang-stock-analyzer/pkg/redis"
	"golang-stock-analyzer/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analyzer Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	newsSiteRepo := repository.NewNewsSiteRepository(appLogger, cfg.Analyzer.FetchTimeout)
	recommendationRepo := repository.NewRecommendationRepository(db.DB)
	reportRepo := repository.NewFileReportRepository(cfg.Analyzer.ReportDir, appLogger)
	marketDataRepo, err := repository.NewMarketDataRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize market data repository", logger.ErrorField(err))
	}

	// Optional AI narrative provider
	var aiRepo repository.AIRepository
	if cfg.AI.Enabled {
		switch cfg.AI.Provider {
		case "gemini":
			genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
				APIKey: cfg.Gemini.APIKey,
			})
			if err != nil {
				appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
			}
			aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
			if err != nil {
				appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
			}
		default:
			appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
		}
	}

	// Optional Telegram notifier
	var telegramNotifier telegram.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	scorer := service.NewTextScorer(common.BullishKeywords, common.BearishKeywords, common.FinancialKeywords)
	aggregator := service.NewNewsAggregator(newsSiteRepo, scorer, appLogger, service.NewsAggregatorOptions{
		Sources:           common.NewsSources,
		SourceConcurrency: cfg.Analyzer.SourceConcurrency,
		FetchTimeout:      cfg.Analyzer.FetchTimeout,
		MaxNewsItems:      cfg.Analyzer.MaxNewsItems,
		MinRelevanceScore: cfg.Analyzer.MinRelevanceScore,
		ImportantTerms:    common.ImportantTerms,
	})
	engine := service.NewRecommendationEngine()
	analysisSvc := service.NewDailyAnalysisService(
		cfg,
		appLogger,
		aggregator,
		engine,
		marketDataRepo,
		recommendationRepo,
		reportRepo,
		aiRepo,
		telegramNotifier,
		redisClient.Client,
	)

	// Start the daily analysis scheduler
	analysisScheduler, err := service.NewAnalysisScheduler(cfg, analysisSvc, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize analysis scheduler", logger.ErrorField(err))
	}
	analysisScheduler.Start()
	defer analysisScheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	recommendationHandler := delivery.NewRecommendationHandler(analysisSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	recommendationHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Analyzer API
// @version 1.0
// @description Daily stock recommendation service based on multi-source news analysis.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
