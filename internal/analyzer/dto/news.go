package dto

import (
	"time"

	"golang-stock-analyzer/internal/entity"
)

// ArticleCandidate is an unscored article extracted from a source page.
type ArticleCandidate struct {
	Title string
	Body  string
	URL   string
}

// NewsItem is a scored article retained for a symbol's analysis.
type NewsItem struct {
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	Source         string           `json:"source"`
	URL            string           `json:"url"`
	PublishedAt    time.Time        `json:"published_at"`
	RelevanceScore float64          `json:"relevance_score"`
	Sentiment      entity.Sentiment `json:"sentiment"`
}

// SentimentScore is the distribution of sentiment labels across an analysis's
// kept items plus the derived overall label.
type SentimentScore struct {
	Positive float64          `json:"positive"`
	Negative float64          `json:"negative"`
	Neutral  float64          `json:"neutral"`
	Overall  entity.Sentiment `json:"overall"`
}

// NewsAnalysis is the aggregate news picture for one symbol in one run.
type NewsAnalysis struct {
	Symbol      string         `json:"symbol"`
	CompanyName string         `json:"company_name"`
	NewsItems   []NewsItem     `json:"news_items"`
	KeyKeywords []string       `json:"key_keywords"`
	Sentiment   SentimentScore `json:"sentiment"`
	AnalyzedAt  time.Time      `json:"analyzed_at"`
}
