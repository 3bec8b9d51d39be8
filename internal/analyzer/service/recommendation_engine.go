package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/utils"

	"gorm.io/datatypes"
)

// RecommendationEngine turns a news analysis plus a price snapshot into a
// recommendation record. Given the same inputs it always produces the same
// recommendation.
type RecommendationEngine interface {
	Recommend(analysis *dto.NewsAnalysis, quote *dto.Quote) (*entity.StockRecommendation, error)
}

// NewRecommendationEngine creates a new RecommendationEngine.
func NewRecommendationEngine() RecommendationEngine {
	return &recommendationEngine{}
}

type recommendationEngine struct{}

// Recommend derives type, target, stop-loss, risk and reasoning for one
// symbol. Any derivation failure yields an error and no partial record.
func (e *recommendationEngine) Recommend(analysis *dto.NewsAnalysis, quote *dto.Quote) (*entity.StockRecommendation, error) {
	if analysis == nil {
		return nil, fmt.Errorf("no news analysis provided")
	}
	if quote == nil || quote.CurrentPrice <= 0 {
		return nil, fmt.Errorf("no usable price data for %s", analysis.Symbol)
	}

	recommendationType := calculateRecommendationType(analysis.Sentiment)

	snapshot, err := json.Marshal(analysis.Sentiment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sentiment snapshot: %w", err)
	}

	now := time.Now()
	return &entity.StockRecommendation{
		Symbol:            analysis.Symbol,
		CompanyName:       analysis.CompanyName,
		CurrentPrice:      quote.CurrentPrice,
		PreviousClose:     quote.PreviousClose,
		Recommendation:    recommendationType,
		Reasoning:         generateReasoning(analysis, recommendationType),
		TargetPrice:       quote.CurrentPrice * targetMultiplier(recommendationType),
		StopLoss:          quote.CurrentPrice * stopLossMultiplier(recommendationType),
		RiskLevel:         calculateRiskLevel(analysis),
		KeyKeywords:       analysis.KeyKeywords,
		NewsSources:       distinctSources(analysis.NewsItems),
		SentimentSnapshot: datatypes.JSON(snapshot),
		GeneratedAt:       now,
		AnalysisDate:      now,
	}, nil
}

// calculateRecommendationType maps a sentiment profile to a stance. The rules
// are ordered; the first match wins.
func calculateRecommendationType(sentiment dto.SentimentScore) entity.RecommendationType {
	switch sentiment.Overall {
	case entity.SentimentPositive:
		if sentiment.Positive > 0.7 {
			return entity.RecommendationStrongBuy
		}
		return entity.RecommendationBuy
	case entity.SentimentNegative:
		if sentiment.Negative > 0.7 {
			return entity.RecommendationStrongSell
		}
		return entity.RecommendationSell
	default:
		return entity.RecommendationHold
	}
}

func targetMultiplier(recommendationType entity.RecommendationType) float64 {
	switch recommendationType {
	case entity.RecommendationStrongBuy:
		return 1.15
	case entity.RecommendationBuy:
		return 1.08
	case entity.RecommendationSell:
		return 0.92
	case entity.RecommendationStrongSell:
		return 0.85
	default:
		return 1.00
	}
}

func stopLossMultiplier(recommendationType entity.RecommendationType) float64 {
	switch recommendationType {
	case entity.RecommendationStrongBuy, entity.RecommendationBuy:
		return 0.92
	case entity.RecommendationSell, entity.RecommendationStrongSell:
		return 1.08
	default:
		return 0.95
	}
}

// calculateRiskLevel starts from a base of 5 and adjusts for sentiment
// direction and news volume, clamped to [1, 10].
func calculateRiskLevel(analysis *dto.NewsAnalysis) float64 {
	riskLevel := 5.0

	switch analysis.Sentiment.Overall {
	case entity.SentimentPositive:
		riskLevel -= 1.0
	case entity.SentimentNegative:
		riskLevel += 1.0
	}

	// Heavy coverage is a volatility proxy.
	if len(analysis.NewsItems) > 15 {
		riskLevel += 1.0
	}

	if riskLevel < 1.0 {
		return 1.0
	}
	if riskLevel > 10.0 {
		return 10.0
	}
	return riskLevel
}

// generateReasoning concatenates the fixed reasoning clauses. Wording and
// clause order are stable so reports and tests can rely on the exact text.
func generateReasoning(analysis *dto.NewsAnalysis, recommendationType entity.RecommendationType) string {
	var reasoning strings.Builder

	reasoning.WriteString("Based on recent news analysis: ")

	switch analysis.Sentiment.Overall {
	case entity.SentimentPositive:
		reasoning.WriteString("Positive sentiment detected in recent news. ")
	case entity.SentimentNegative:
		reasoning.WriteString("Negative sentiment detected in recent news. ")
	default:
		reasoning.WriteString("Mixed sentiment in recent news. ")
	}

	if len(analysis.KeyKeywords) > 0 {
		reasoning.WriteString("Key themes include: ")
		reasoning.WriteString(strings.Join(analysis.KeyKeywords, ", "))
		reasoning.WriteString(". ")
	}

	reasoning.WriteString(fmt.Sprintf("Analyzed %d relevant news articles. ", len(analysis.NewsItems)))

	switch recommendationType {
	case entity.RecommendationStrongBuy:
		reasoning.WriteString("Strong positive catalysts identified with low risk factors.")
	case entity.RecommendationBuy:
		reasoning.WriteString("Positive outlook with moderate risk factors.")
	case entity.RecommendationSell:
		reasoning.WriteString("Negative factors outweigh positive catalysts.")
	case entity.RecommendationStrongSell:
		reasoning.WriteString("Significant negative catalysts with high risk factors.")
	default:
		reasoning.WriteString("Mixed signals suggest maintaining current position.")
	}

	return reasoning.String()
}

// distinctSources lists each source once, in order of first appearance.
func distinctSources(items []dto.NewsItem) []string {
	var sources []string
	for _, item := range items {
		if !utils.ContainsString(sources, item.Source) {
			sources = append(sources, item.Source)
		}
	}
	return sources
}
