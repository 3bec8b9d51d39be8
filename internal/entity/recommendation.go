package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// RecommendationType is the discrete trading stance derived from a sentiment profile.
type RecommendationType string

const (
	RecommendationStrongBuy  RecommendationType = "STRONG_BUY"
	RecommendationBuy        RecommendationType = "BUY"
	RecommendationHold       RecommendationType = "HOLD"
	RecommendationSell       RecommendationType = "SELL"
	RecommendationStrongSell RecommendationType = "STRONG_SELL"
)

// StockRecommendation is one recommendation record produced by a daily analysis run.
type StockRecommendation struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	Symbol            string             `gorm:"not null;index" json:"symbol"`
	CompanyName       string             `gorm:"not null" json:"company_name"`
	CurrentPrice      float64            `json:"current_price"`
	PreviousClose     float64            `json:"previous_close"`
	Recommendation    RecommendationType `gorm:"not null" json:"recommendation"`
	Reasoning         string             `json:"reasoning"`
	TargetPrice       float64            `json:"target_price"`
	StopLoss          float64            `json:"stop_loss"`
	RiskLevel         float64            `json:"risk_level"`
	KeyKeywords       pq.StringArray     `gorm:"type:text[]" json:"key_keywords"`
	NewsSources       pq.StringArray     `gorm:"type:text[]" json:"news_sources"`
	SentimentSnapshot datatypes.JSON     `gorm:"type:jsonb" json:"sentiment_snapshot"`
	GeneratedAt       time.Time          `gorm:"not null" json:"generated_at"`
	AnalysisDate      time.Time          `gorm:"not null;index" json:"analysis_date"`
	CreatedAt         time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the StockRecommendation model.
func (StockRecommendation) TableName() string {
	return "stock_recommendations"
}
