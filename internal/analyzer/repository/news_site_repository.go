package repository

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"golang-stock-analyzer/internal/analyzer/dto"
	"golang-stock-analyzer/pkg/common"
	"golang-stock-analyzer/pkg/logger"
	"golang-stock-analyzer/pkg/utils"

	"context"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
)

const maxCandidatesPerSource = 30

// NewsSiteRepository fetches a source page and extracts raw article candidates.
type NewsSiteRepository interface {
	FetchCandidates(ctx context.Context, source common.NewsSource, symbol string) ([]dto.ArticleCandidate, error)
}

// NewNewsSiteRepository creates a new instance of NewsSiteRepository.
func NewNewsSiteRepository(log *logger.Logger, fetchTimeout time.Duration) NewsSiteRepository {
	return &newsSiteRepository{
		client:        &http.Client{Timeout: fetchTimeout},
		logger:        log,
		feedParser:    gofeed.NewParser(),
		inmemoryCache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

type newsSiteRepository struct {
	client        *http.Client
	logger        *logger.Logger
	feedParser    *gofeed.Parser
	inmemoryCache *cache.Cache
}

// FetchCandidates downloads one source endpoint and extracts (title, body, url)
// triples. Network and parse failures are returned to the caller, which treats
// them as a source contributing zero candidates.
func (r *newsSiteRepository) FetchCandidates(ctx context.Context, source common.NewsSource, symbol string) ([]dto.ArticleCandidate, error) {
	if source.Kind == common.NewsSourceKindRSS {
		return r.fetchFromFeed(ctx, source.URL)
	}
	return r.fetchFromPage(ctx, source.URL)
}

func (r *newsSiteRepository) fetchFromFeed(ctx context.Context, sourceURL string) ([]dto.ArticleCandidate, error) {
	feed, err := r.feedParser.ParseURLWithContext(sourceURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	var candidates []dto.ArticleCandidate
	for _, item := range feed.Items {
		if len(candidates) >= maxCandidatesPerSource {
			break
		}
		body := item.Description
		if item.Content != "" {
			body = item.Content
		}
		candidates = append(candidates, dto.ArticleCandidate{
			Title: utils.CleanToValidUTF8(item.Title),
			Body:  utils.SafeText(utils.CleanToValidUTF8(body)),
			URL:   item.Link,
		})
	}
	return candidates, nil
}

func (r *newsSiteRepository) fetchFromPage(ctx context.Context, sourceURL string) ([]dto.ArticleCandidate, error) {
	body, err := r.fetchPage(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse source page: %w", err)
	}

	var candidates []dto.ArticleCandidate
	doc.Find("article, .article, .news-item, .story").EachWithBreak(func(_ int, article *goquery.Selection) bool {
		title := firstText(article.Find("h1, h2, h3, .title, .headline"))
		if title == "" {
			return true
		}
		candidates = append(candidates, dto.ArticleCandidate{
			Title: title,
			Body:  firstText(article.Find("p, .content, .summary")),
			URL:   firstHref(article.Find("a")),
		})
		return len(candidates) < maxCandidatesPerSource
	})

	if len(candidates) == 0 {
		// No recognizable article structure; fall back to the readable page
		// body as a single candidate.
		if candidate, ok := r.readableFallback(body, doc); ok {
			candidates = append(candidates, candidate)
		}
	}

	return candidates, nil
}

func (r *newsSiteRepository) fetchPage(ctx context.Context, sourceURL string) ([]byte, error) {
	if cached, found := r.inmemoryCache.Get(sourceURL); found {
		return cached.([]byte), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for source: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch source page, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r.inmemoryCache.Set(sourceURL, body, cache.DefaultExpiration)
	return body, nil
}

func (r *newsSiteRepository) readableFallback(body []byte, doc *goquery.Document) (dto.ArticleCandidate, bool) {
	readableDoc, err := readability.NewDocument(string(body))
	if err != nil {
		return dto.ArticleCandidate{}, false
	}

	contentDoc, err := goquery.NewDocumentFromReader(strings.NewReader(readableDoc.Content()))
	if err != nil {
		return dto.ArticleCandidate{}, false
	}

	content := utils.SafeText(contentDoc.Text())
	title := utils.SafeText(doc.Find("title").First().Text())
	if title == "" || content == "" {
		return dto.ArticleCandidate{}, false
	}

	return dto.ArticleCandidate{Title: title, Body: content}, true
}

func firstText(sel *goquery.Selection) string {
	var text string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = utils.SafeText(utils.CleanToValidUTF8(s.Text()))
		return text == ""
	})
	return text
}

func firstHref(sel *goquery.Selection) string {
	var href string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ = s.Attr("href")
		return href == ""
	})
	return href
}
