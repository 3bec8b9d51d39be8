package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/pkg/logger"

	"golang.org/x/time/rate"
)

// MarketDataRepository retrieves price snapshots for symbols.
type MarketDataRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

// NewMarketDataRepository creates a new MarketDataRepository backed by the
// Yahoo Finance chart API.
func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) (MarketDataRepository, error) {
	if cfg.MarketData.BaseURL == "" {
		return nil, fmt.Errorf("market data base_url is not configured")
	}

	maxRequests := cfg.MarketData.MaxRequestPerMinute
	if maxRequests <= 0 {
		maxRequests = 60
	}
	secondsPerRequest := time.Minute / time.Duration(maxRequests)

	return &marketDataRepository{
		client:         &http.Client{Timeout: 15 * time.Second},
		baseURL:        cfg.MarketData.BaseURL,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}, nil
}

type marketDataRepository struct {
	client         *http.Client
	baseURL        string
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// GetQuote fetches the current price and previous close for a symbol.
func (r *marketDataRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=2d", r.baseURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create market data request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch market data, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read market data response: %w", err)
	}

	var chartResp dto.YahooChartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal market data response: %w", err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("market data error for %s: %s", symbol, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("market data response has no result for %s", symbol)
	}

	meta := chartResp.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("market data response has no price for %s", symbol)
	}

	return &dto.Quote{
		Symbol:        symbol,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
	}, nil
}
