package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-analyzer/internal/analyzer/config"
	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/logger"

	"google.golang.org/genai"
)

// AIRepository generates prose narratives for recommendation batches. The
// narrative is decorative: callers must treat any failure as "no narrative".
type AIRepository interface {
	GenerateBatchNarrative(ctx context.Context, recommendations []entity.StockRecommendation) (string, error)
}

// NewGeminiAIRepository creates a new AIRepository backed by the Gemini API.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (AIRepository, error) {
	if cfg.Gemini.Model == "" {
		return nil, fmt.Errorf("gemini model is not configured")
	}
	return &geminiAIRepository{
		cfg:         cfg,
		logger:      log,
		genAiClient: genAiClient,
	}, nil
}

type geminiAIRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	genAiClient *genai.Client
}

// GenerateBatchNarrative asks Gemini for a short market overview of the batch.
func (r *geminiAIRepository) GenerateBatchNarrative(ctx context.Context, recommendations []entity.StockRecommendation) (string, error) {
	prompt := BuildBatchNarrativePrompt(recommendations)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate batch narrative: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty narrative from Gemini API")
	}
	return text, nil
}
