package dto

import (
	"time"

	"golang-stock-analyzer/internal/entity"
)

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RecommendationResponse is the API representation of one recommendation.
type RecommendationResponse struct {
	ID             uint                      `json:"id"`
	Symbol         string                    `json:"symbol"`
	CompanyName    string                    `json:"company_name"`
	CurrentPrice   float64                   `json:"current_price"`
	PreviousClose  float64                   `json:"previous_close"`
	Recommendation entity.RecommendationType `json:"recommendation"`
	Reasoning      string                    `json:"reasoning"`
	TargetPrice    float64                   `json:"target_price"`
	StopLoss       float64                   `json:"stop_loss"`
	RiskLevel      float64                   `json:"risk_level"`
	KeyKeywords    []string                  `json:"key_keywords"`
	NewsSources    []string                  `json:"news_sources"`
	GeneratedAt    time.Time                 `json:"generated_at"`
	AnalysisDate   time.Time                 `json:"analysis_date"`
}

// NewRecommendationResponse maps a persisted recommendation to its API shape.
func NewRecommendationResponse(rec *entity.StockRecommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:             rec.ID,
		Symbol:         rec.Symbol,
		CompanyName:    rec.CompanyName,
		CurrentPrice:   rec.CurrentPrice,
		PreviousClose:  rec.PreviousClose,
		Recommendation: rec.Recommendation,
		Reasoning:      rec.Reasoning,
		TargetPrice:    rec.TargetPrice,
		StopLoss:       rec.StopLoss,
		RiskLevel:      rec.RiskLevel,
		KeyKeywords:    rec.KeyKeywords,
		NewsSources:    rec.NewsSources,
		GeneratedAt:    rec.GeneratedAt,
		AnalysisDate:   rec.AnalysisDate,
	}
}

// TriggerAnalysisResponse is returned by the manual analysis trigger endpoint.
type TriggerAnalysisResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RunSummaryResponse reports the outcome of a completed analysis run.
type RunSummaryResponse struct {
	AnalyzedSymbols int       `json:"analyzed_symbols"`
	Recommendations int       `json:"recommendations"`
	StartedAt       time.Time `json:"started_at"`
	CompletedAt     time.Time `json:"completed_at"`
}
