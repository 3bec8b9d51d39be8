package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/internal/analyzer/repository"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/utils"
)

// NewsAggregator collects and scores news for one symbol across all configured
// sources. Aggregate never fails: sources that error out simply contribute
// zero candidates.
type NewsAggregator interface {
	Aggregate(ctx context.Context, symbol, companyName string) *dto.NewsAnalysis
}

// NewsAggregatorOptions tunes the aggregation pipeline.
type NewsAggregatorOptions struct {
	Sources           []common.NewsSource
	SourceConcurrency int
	FetchTimeout      time.Duration
	MaxNewsItems      int
	MinRelevanceScore float64
	ImportantTerms    []string
}

// NewNewsAggregator creates a new NewsAggregator.
func NewNewsAggregator(newsSiteRepo repository.NewsSiteRepository, scorer *TextScorer, log *logger.Logger, opts NewsAggregatorOptions) NewsAggregator {
	if opts.SourceConcurrency <= 0 {
		opts.SourceConcurrency = 10
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.MaxNewsItems <= 0 {
		opts.MaxNewsItems = 20
	}
	return &newsAggregator{
		newsSiteRepo: newsSiteRepo,
		scorer:       scorer,
		logger:       log,
		opts:         opts,
	}
}

type newsAggregator struct {
	newsSiteRepo repository.NewsSiteRepository
	scorer       *TextScorer
	logger       *logger.Logger
	opts         NewsAggregatorOptions
}

// Aggregate fans out one fetch per source, scores the surviving candidates and
// folds them into a NewsAnalysis.
func (a *newsAggregator) Aggregate(ctx context.Context, symbol, companyName string) *dto.NewsAnalysis {
	itemsBySource := make([][]dto.NewsItem, len(a.opts.Sources))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.opts.SourceConcurrency)

	for i, source := range a.opts.Sources {
		i, source := i, source
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fetchCtx, cancel := context.WithTimeout(ctx, a.opts.FetchTimeout)
			defer cancel()

			candidates, err := a.newsSiteRepo.FetchCandidates(fetchCtx, source, symbol)
			if err != nil {
				a.logger.Warn("Source fetch failed, contributing zero candidates",
					logger.StringField("source", source.URL),
					logger.StringField("symbol", symbol),
					logger.ErrorField(err),
				)
				return
			}

			itemsBySource[i] = a.scoreCandidates(candidates, source.URL, symbol, companyName)
		})
	}

	wg.Wait()

	// Flatten in source order so equal relevance scores keep a stable,
	// fetch-order tie break.
	var allItems []dto.NewsItem
	for _, items := range itemsBySource {
		allItems = append(allItems, items...)
	}

	relevantItems := a.filterRelevantNews(allItems)
	keywords := a.extractKeywords(relevantItems)
	sentiment := a.calculateSentiment(relevantItems)

	if relevantItems == nil {
		relevantItems = []dto.NewsItem{}
	}

	return &dto.NewsAnalysis{
		Symbol:      symbol,
		CompanyName: companyName,
		NewsItems:   relevantItems,
		KeyKeywords: keywords,
		Sentiment:   sentiment,
		AnalyzedAt:  time.Now(),
	}
}

// scoreCandidates drops candidates that never mention the symbol or company
// and scores the rest.
func (a *newsAggregator) scoreCandidates(candidates []dto.ArticleCandidate, sourceURL, symbol, companyName string) []dto.NewsItem {
	symbolToken := strings.ToLower(symbol)
	companyToken := companyNameToken(companyName)

	var items []dto.NewsItem
	for _, candidate := range candidates {
		if candidate.Title == "" {
			continue
		}
		text := strings.ToLower(candidate.Title + " " + candidate.Body)
		if !strings.Contains(text, symbolToken) && (companyToken == "" || !strings.Contains(text, companyToken)) {
			continue
		}

		items = append(items, dto.NewsItem{
			Title:          candidate.Title,
			Content:        candidate.Body,
			Source:         sourceURL,
			URL:            candidate.URL,
			PublishedAt:    time.Now(),
			RelevanceScore: a.scorer.Relevance(candidate.Title, candidate.Body, symbol),
			Sentiment:      a.scorer.Sentiment(candidate.Title + " " + candidate.Body),
		})
	}
	return items
}

// filterRelevantNews keeps items above the relevance floor, ranks them by
// relevance descending and truncates to the configured cap.
func (a *newsAggregator) filterRelevantNews(items []dto.NewsItem) []dto.NewsItem {
	var relevant []dto.NewsItem
	for _, item := range items {
		if item.RelevanceScore > a.opts.MinRelevanceScore {
			relevant = append(relevant, item)
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].RelevanceScore > relevant[j].RelevanceScore
	})

	if len(relevant) > a.opts.MaxNewsItems {
		relevant = relevant[:a.opts.MaxNewsItems]
	}
	return relevant
}

// extractKeywords counts how many kept documents mention each important term
// and returns the top 10, ties resolved by configured term order.
func (a *newsAggregator) extractKeywords(items []dto.NewsItem) []string {
	counts := make(map[string]int)
	for _, item := range items {
		text := strings.ToLower(item.Title + " " + item.Content)
		for _, term := range a.opts.ImportantTerms {
			if strings.Contains(text, term) {
				counts[term]++
			}
		}
	}

	var keywords []string
	for _, term := range a.opts.ImportantTerms {
		if counts[term] > 0 {
			keywords = append(keywords, term)
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return counts[keywords[i]] > counts[keywords[j]]
	})

	if len(keywords) > 10 {
		keywords = keywords[:10]
	}
	return keywords
}

// calculateSentiment derives the label distribution across kept items. An
// empty set is fully neutral.
func (a *newsAggregator) calculateSentiment(items []dto.NewsItem) dto.SentimentScore {
	if len(items) == 0 {
		return dto.SentimentScore{Positive: 0, Negative: 0, Neutral: 1, Overall: entity.SentimentNeutral}
	}

	var positiveCount, negativeCount, neutralCount int
	for _, item := range items {
		switch item.Sentiment {
		case entity.SentimentPositive, entity.SentimentVeryPositive:
			positiveCount++
		case entity.SentimentNegative, entity.SentimentVeryNegative:
			negativeCount++
		default:
			neutralCount++
		}
	}

	total := float64(len(items))
	score := dto.SentimentScore{
		Positive: float64(positiveCount) / total,
		Negative: float64(negativeCount) / total,
		Neutral:  float64(neutralCount) / total,
		Overall:  entity.SentimentNeutral,
	}

	if score.Positive > score.Negative && score.Positive > score.Neutral {
		score.Overall = entity.SentimentPositive
	} else if score.Negative > score.Positive && score.Negative > score.Neutral {
		score.Overall = entity.SentimentNegative
	}

	return score
}

// companyNameToken reduces a company name to its leading word, lowercased, so
// "Apple Inc." also matches articles that never spell out the ticker.
func companyNameToken(companyName string) string {
	fields := strings.Fields(strings.ToLower(companyName))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
