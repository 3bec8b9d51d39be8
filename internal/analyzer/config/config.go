package config

import (
	"time"

	"golang-stock-analyzer/pkg/config"
)

// Analyzer holds the tuning knobs for the daily analysis pipeline.
type Analyzer struct {
	Schedule            string        `mapstructure:"schedule"`
	Timezone            string        `mapstructure:"timezone"`
	MaxSymbolsPerRun    int           `mapstructure:"max_symbols_per_run"`
	SymbolConcurrency   int           `mapstructure:"symbol_concurrency"`
	SourceConcurrency   int           `mapstructure:"source_concurrency"`
	FetchTimeout        time.Duration `mapstructure:"fetch_timeout"`
	MaxNewsItems        int           `mapstructure:"max_news_items"`
	MinRelevanceScore   float64       `mapstructure:"min_relevance_score"`
	ReportDir           string        `mapstructure:"report_dir"`
	LatestBatchCacheTTL time.Duration `mapstructure:"latest_batch_cache_ttl"`
}

// MarketData holds the configuration for the market data API.
type MarketData struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AI holds configuration for the optional report narrative provider.
type AI struct {
	Enabled  bool   `mapstructure:"enabled"`
	Provider string `mapstructure:"provider"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Analyzer   Analyzer        `mapstructure:"analyzer"`
	MarketData MarketData      `mapstructure:"market_data"`
	Gemini     Gemini          `mapstructure:"gemini"`
	AI         AI              `mapstructure:"ai"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the analyzer configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
