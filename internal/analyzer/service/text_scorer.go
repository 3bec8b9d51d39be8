package service

import (
	"strings"

	"golang-stock-analyzer/internal/entity"
)

// TextScorer computes relevance scores and sentiment labels for units of news
// text. It holds only immutable lexicon configuration, so all methods are pure
// and safe for concurrent use.
type TextScorer struct {
	bullishKeywords   []string
	bearishKeywords   []string
	financialKeywords []string
}

// NewTextScorer creates a TextScorer with the given lexicons.
func NewTextScorer(bullishKeywords, bearishKeywords, financialKeywords []string) *TextScorer {
	return &TextScorer{
		bullishKeywords:   bullishKeywords,
		bearishKeywords:   bearishKeywords,
		financialKeywords: financialKeywords,
	}
}

// Relevance scores how topical an article is for a symbol, in [0, 1]. A symbol
// mention anywhere in title+body contributes 0.5; each distinct financial
// keyword found as a substring contributes 0.1.
func (s *TextScorer) Relevance(title, body, symbol string) float64 {
	text := strings.ToLower(title + " " + body)
	score := 0.0

	if strings.Contains(text, strings.ToLower(symbol)) {
		score += 0.5
	}

	for _, keyword := range s.financialKeywords {
		if strings.Contains(text, keyword) {
			score += 0.1
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

// Sentiment labels a text by comparing bullish and bearish keyword occurrence
// counts. A side wins when it exceeds 1.5 times the other; everything else,
// including empty text, is neutral. Counts are non-overlapping substring
// occurrences, matching the splitting rule the thresholds were tuned against.
func (s *TextScorer) Sentiment(text string) entity.Sentiment {
	lowerText := strings.ToLower(text)

	var bullishCount, bearishCount int
	for _, keyword := range s.bullishKeywords {
		bullishCount += strings.Count(lowerText, keyword)
	}
	for _, keyword := range s.bearishKeywords {
		bearishCount += strings.Count(lowerText, keyword)
	}

	switch {
	case float64(bullishCount) > float64(bearishCount)*1.5:
		return entity.SentimentPositive
	case float64(bearishCount) > float64(bullishCount)*1.5:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}
