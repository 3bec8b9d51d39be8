package service

import (
	"strings"
	"testing"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"

	"github.com/stretchr/testify/assert"
)

func newTestScorer() *TextScorer {
	return NewTextScorer(common.BullishKeywords, common.BearishKeywords, common.FinancialKeywords)
}

func TestTextScorer_Relevance(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name     string
		title    string
		body     string
		symbol   string
		expected float64
	}{
		{
			name:     "no match at all",
			title:    "Weather report",
			body:     "Sunny skies expected tomorrow",
			symbol:   "AAPL",
			expected: 0.0,
		},
		{
			name:     "symbol only",
			title:    "AAPL in focus",
			body:     "Traders watch the ticker",
			symbol:   "AAPL",
			expected: 0.5,
		},
		{
			name:     "symbol is case-insensitive",
			title:    "aapl in focus",
			body:     "",
			symbol:   "AAPL",
			expected: 0.5,
		},
		{
			name:     "symbol plus two financial keywords",
			title:    "AAPL earnings preview",
			body:     "Analysts expect higher revenue",
			symbol:   "AAPL",
			expected: 0.7,
		},
		{
			name:     "keywords without symbol",
			title:    "Tech earnings season",
			body:     "Revenue and profit in focus",
			symbol:   "AAPL",
			expected: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, scorer.Relevance(tt.title, tt.body, tt.symbol), 1e-9)
		})
	}
}

func TestTextScorer_RelevanceClampedToOne(t *testing.T) {
	scorer := newTestScorer()

	// Symbol plus every financial keyword would score 0.5 + 8*0.1 = 1.3.
	body := "earnings revenue profit loss growth stock shares dividend"
	assert.InDelta(t, 1.0, scorer.Relevance("AAPL", body, "AAPL"), 1e-9)
}

func TestTextScorer_RelevanceMonotonic(t *testing.T) {
	scorer := newTestScorer()

	body := "AAPL quarterly report"
	previous := scorer.Relevance("", body, "AAPL")
	for _, keyword := range common.FinancialKeywords {
		body += " " + keyword
		score := scorer.Relevance("", body, "AAPL")
		assert.GreaterOrEqual(t, score, previous, "adding %q must not lower the score", keyword)
		assert.LessOrEqual(t, score, 1.0)
		previous = score
	}
}

func TestTextScorer_Sentiment(t *testing.T) {
	scorer := newTestScorer()

	tests := []struct {
		name     string
		text     string
		expected entity.Sentiment
	}{
		{
			name:     "empty text is neutral",
			text:     "",
			expected: entity.SentimentNeutral,
		},
		{
			name:     "bullish dominated",
			text:     "Shares rally on strong earnings beat",
			expected: entity.SentimentPositive,
		},
		{
			name:     "bearish dominated",
			text:     "Lawsuit and bankruptcy concern after revenue miss and weak outlook",
			expected: entity.SentimentNegative,
		},
		{
			name:     "balanced counts are neutral",
			text:     "strong results but weak guidance",
			expected: entity.SentimentNeutral,
		},
		{
			name:     "case-insensitive counting",
			text:     "SURGE RALLY OUTPERFORM",
			expected: entity.SentimentPositive,
		},
		{
			name:     "keyword at the very end of the text counts",
			text:     "prices end the day with a gain",
			expected: entity.SentimentPositive,
		},
		{
			name:     "ratio not strictly exceeded stays neutral",
			text:     "rally surge concern risk",
			expected: entity.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.Sentiment(tt.text))
		})
	}
}

func TestTextScorer_SentimentCountsRepeatedOccurrences(t *testing.T) {
	scorer := newTestScorer()

	// Repeated bullish occurrences all count: 4 bullish > 2 bearish * 1.5.
	text := "rally " + strings.Repeat("surge ", 3) + "concern concern"
	assert.Equal(t, entity.SentimentPositive, scorer.Sentiment(text))
}

func TestTextScorer_Idempotent(t *testing.T) {
	scorer := newTestScorer()

	title, body, symbol := "AAPL earnings beat", "Apple posted strong revenue growth", "AAPL"
	assert.Equal(t, scorer.Relevance(title, body, symbol), scorer.Relevance(title, body, symbol))
	assert.Equal(t, scorer.Sentiment(title+" "+body), scorer.Sentiment(title+" "+body))
}
