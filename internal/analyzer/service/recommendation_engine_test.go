package service

import (
	"testing"
	"time"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analysisWithSentiment(sentiment dto.SentimentScore, itemCount int) *dto.NewsAnalysis {
	items := make([]dto.NewsItem, itemCount)
	for i := range items {
		items[i] = dto.NewsItem{
			Title:          "AAPL update",
			Source:         "https://finance.yahoo.com/news/",
			RelevanceScore: 0.6,
			Sentiment:      sentiment.Overall,
		}
	}
	return &dto.NewsAnalysis{
		Symbol:      "AAPL",
		CompanyName: "Apple Inc.",
		NewsItems:   items,
		KeyKeywords: []string{"earnings", "growth"},
		Sentiment:   sentiment,
		AnalyzedAt:  time.Now(),
	}
}

func TestRecommendationEngine_TypeMapping(t *testing.T) {
	engine := NewRecommendationEngine()
	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 98}

	tests := []struct {
		name      string
		sentiment dto.SentimentScore
		expected  entity.RecommendationType
	}{
		{
			name:      "strongly positive",
			sentiment: dto.SentimentScore{Positive: 0.75, Negative: 0.1, Neutral: 0.15, Overall: entity.SentimentPositive},
			expected:  entity.RecommendationStrongBuy,
		},
		{
			name:      "positive but not dominant",
			sentiment: dto.SentimentScore{Positive: 0.5, Negative: 0.2, Neutral: 0.3, Overall: entity.SentimentPositive},
			expected:  entity.RecommendationBuy,
		},
		{
			name:      "strongly negative",
			sentiment: dto.SentimentScore{Positive: 0.1, Negative: 0.8, Neutral: 0.1, Overall: entity.SentimentNegative},
			expected:  entity.RecommendationStrongSell,
		},
		{
			name:      "negative but not dominant",
			sentiment: dto.SentimentScore{Positive: 0.2, Negative: 0.5, Neutral: 0.3, Overall: entity.SentimentNegative},
			expected:  entity.RecommendationSell,
		},
		{
			name:      "neutral holds",
			sentiment: dto.SentimentScore{Positive: 0.3, Negative: 0.3, Neutral: 0.4, Overall: entity.SentimentNeutral},
			expected:  entity.RecommendationHold,
		},
		{
			name:      "positive fraction exactly 0.7 is not strong",
			sentiment: dto.SentimentScore{Positive: 0.7, Negative: 0.1, Neutral: 0.2, Overall: entity.SentimentPositive},
			expected:  entity.RecommendationBuy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := engine.Recommend(analysisWithSentiment(tt.sentiment, 5), quote)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rec.Recommendation)
		})
	}
}

func TestRecommendationEngine_PriceTargets(t *testing.T) {
	engine := NewRecommendationEngine()

	tests := []struct {
		name             string
		sentiment        dto.SentimentScore
		expectedTarget   float64
		expectedStopLoss float64
	}{
		{
			name:             "strong buy",
			sentiment:        dto.SentimentScore{Positive: 0.8, Neutral: 0.2, Overall: entity.SentimentPositive},
			expectedTarget:   115.0,
			expectedStopLoss: 92.0,
		},
		{
			name:             "buy",
			sentiment:        dto.SentimentScore{Positive: 0.6, Neutral: 0.4, Overall: entity.SentimentPositive},
			expectedTarget:   108.0,
			expectedStopLoss: 92.0,
		},
		{
			name:             "hold",
			sentiment:        dto.SentimentScore{Neutral: 1, Overall: entity.SentimentNeutral},
			expectedTarget:   100.0,
			expectedStopLoss: 95.0,
		},
		{
			name:             "sell",
			sentiment:        dto.SentimentScore{Negative: 0.6, Neutral: 0.4, Overall: entity.SentimentNegative},
			expectedTarget:   92.0,
			expectedStopLoss: 108.0,
		},
		{
			name:             "strong sell",
			sentiment:        dto.SentimentScore{Negative: 0.8, Neutral: 0.2, Overall: entity.SentimentNegative},
			expectedTarget:   85.0,
			expectedStopLoss: 108.0,
		},
	}

	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 99}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := engine.Recommend(analysisWithSentiment(tt.sentiment, 3), quote)
			require.NoError(t, err)
			assert.InDelta(t, tt.expectedTarget, rec.TargetPrice, 1e-9)
			assert.InDelta(t, tt.expectedStopLoss, rec.StopLoss, 1e-9)
		})
	}
}

func TestRecommendationEngine_RiskLevel(t *testing.T) {
	engine := NewRecommendationEngine()
	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 99}

	tests := []struct {
		name      string
		sentiment dto.SentimentScore
		itemCount int
		expected  float64
	}{
		{
			name:      "positive sentiment lowers risk",
			sentiment: dto.SentimentScore{Positive: 0.6, Neutral: 0.4, Overall: entity.SentimentPositive},
			itemCount: 5,
			expected:  4.0,
		},
		{
			name:      "negative sentiment with heavy coverage",
			sentiment: dto.SentimentScore{Negative: 0.6, Neutral: 0.4, Overall: entity.SentimentNegative},
			itemCount: 16,
			expected:  7.0,
		},
		{
			name:      "neutral baseline",
			sentiment: dto.SentimentScore{Neutral: 1, Overall: entity.SentimentNeutral},
			itemCount: 2,
			expected:  5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := engine.Recommend(analysisWithSentiment(tt.sentiment, tt.itemCount), quote)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, rec.RiskLevel, 1e-9)
			assert.GreaterOrEqual(t, rec.RiskLevel, 1.0)
			assert.LessOrEqual(t, rec.RiskLevel, 10.0)
		})
	}
}

func TestRecommendationEngine_Reasoning(t *testing.T) {
	engine := NewRecommendationEngine()
	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 99}

	sentiment := dto.SentimentScore{Positive: 0.8, Neutral: 0.2, Overall: entity.SentimentPositive}
	rec, err := engine.Recommend(analysisWithSentiment(sentiment, 5), quote)
	require.NoError(t, err)

	expected := "Based on recent news analysis: Positive sentiment detected in recent news. " +
		"Key themes include: earnings, growth. " +
		"Analyzed 5 relevant news articles. " +
		"Strong positive catalysts identified with low risk factors."
	assert.Equal(t, expected, rec.Reasoning)
}

func TestRecommendationEngine_ReasoningWithoutKeywords(t *testing.T) {
	engine := NewRecommendationEngine()
	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 99}

	analysis := analysisWithSentiment(dto.SentimentScore{Neutral: 1, Overall: entity.SentimentNeutral}, 0)
	analysis.KeyKeywords = nil

	rec, err := engine.Recommend(analysis, quote)
	require.NoError(t, err)

	expected := "Based on recent news analysis: Mixed sentiment in recent news. " +
		"Analyzed 0 relevant news articles. " +
		"Mixed signals suggest maintaining current position."
	assert.Equal(t, expected, rec.Reasoning)
}

func TestRecommendationEngine_DistinctSourcesKeepOrder(t *testing.T) {
	engine := NewRecommendationEngine()
	quote := &dto.Quote{Symbol: "AAPL", CurrentPrice: 100, PreviousClose: 99}

	analysis := analysisWithSentiment(dto.SentimentScore{Neutral: 1, Overall: entity.SentimentNeutral}, 0)
	analysis.NewsItems = []dto.NewsItem{
		{Title: "a", Source: "source-b"},
		{Title: "b", Source: "source-a"},
		{Title: "c", Source: "source-b"},
		{Title: "d", Source: "source-c"},
	}

	rec, err := engine.Recommend(analysis, quote)
	require.NoError(t, err)
	assert.Equal(t, []string{"source-b", "source-a", "source-c"}, []string(rec.NewsSources))
}

func TestRecommendationEngine_NoUsablePrice(t *testing.T) {
	engine := NewRecommendationEngine()
	analysis := analysisWithSentiment(dto.SentimentScore{Neutral: 1, Overall: entity.SentimentNeutral}, 1)

	_, err := engine.Recommend(analysis, nil)
	assert.Error(t, err)

	_, err = engine.Recommend(analysis, &dto.Quote{Symbol: "AAPL", CurrentPrice: 0})
	assert.Error(t, err)

	_, err = engine.Recommend(nil, &dto.Quote{Symbol: "AAPL", CurrentPrice: 100})
	assert.Error(t, err)
}
