package telegram

import (
	"strings"
	"testing"

	"golang-stock-analyzer/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecommendationsForTelegram(t *testing.T) {
	recommendations := []entity.StockRecommendation{
		{
			Symbol:         "AAPL",
			CompanyName:    "Apple Inc.",
			Recommendation: entity.RecommendationStrongBuy,
			CurrentPrice:   100,
			TargetPrice:    115,
			StopLoss:       92,
			RiskLevel:      4,
		},
		{
			Symbol:         "MSFT",
			CompanyName:    "Microsoft Corporation",
			Recommendation: entity.RecommendationHold,
			CurrentPrice:   300,
			TargetPrice:    300,
			StopLoss:       285,
			RiskLevel:      5,
		},
	}

	message := FormatRecommendationsForTelegram(recommendations)

	assert.Contains(t, message, "*Daily Stock Recommendations*")
	assert.Contains(t, message, "*AAPL* (Apple Inc.)")
	assert.Contains(t, message, "🚀 STRONG_BUY")
	assert.Contains(t, message, "Price: $100.00 | Target: $115.00 | Stop: $92.00")
	assert.Contains(t, message, "⚪ HOLD")
	assert.Contains(t, message, "Risk: 5.0/10")
}

func TestFormatRecommendationsForTelegram_Empty(t *testing.T) {
	message := FormatRecommendationsForTelegram(nil)
	assert.Equal(t, "No stock recommendations were produced today.", message)
}

func TestFormatRecommendationsForTelegram_TruncatesLongBatches(t *testing.T) {
	var recommendations []entity.StockRecommendation
	for i := 0; i < 200; i++ {
		recommendations = append(recommendations, entity.StockRecommendation{
			Symbol:         "AAPL",
			CompanyName:    "Apple Inc.",
			Recommendation: entity.RecommendationBuy,
			CurrentPrice:   100,
			TargetPrice:    108,
			StopLoss:       92,
			RiskLevel:      4,
		})
	}

	message := FormatRecommendationsForTelegram(recommendations)
	assert.LessOrEqual(t, len(message), 4090)
	assert.Less(t, strings.Count(message, "*AAPL*"), 200)
}
