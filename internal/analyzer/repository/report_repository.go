package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang-stock-analyzer/internal/entity"
	"golang-stock-analyzer/pkg/logger"
)

// ReportRepository writes a human-readable summary of a recommendation batch
// to durable storage.
type ReportRepository interface {
	Write(ctx context.Context, recommendations []entity.StockRecommendation, narrative string) (string, error)
}

// NewFileReportRepository creates a ReportRepository that writes plain-text
// reports into the given directory.
func NewFileReportRepository(reportDir string, log *logger.Logger) ReportRepository {
	return &fileReportRepository{
		reportDir: reportDir,
		logger:    log,
	}
}

type fileReportRepository struct {
	reportDir string
	logger    *logger.Logger
}

// Write renders the batch into a timestamped text file and returns its path.
func (r *fileReportRepository) Write(ctx context.Context, recommendations []entity.StockRecommendation, narrative string) (string, error) {
	if err := os.MkdirAll(r.reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	now := time.Now()
	filename := filepath.Join(r.reportDir, fmt.Sprintf("stock_recommendations_%s.txt", now.Format("2006-01-02_15-04-05")))

	var b strings.Builder
	b.WriteString("=== DAILY STOCK RECOMMENDATIONS ===\n")
	b.WriteString(fmt.Sprintf("Generated at: %s\n\n", now.Format(time.RFC3339)))

	if narrative != "" {
		b.WriteString("Market Overview:\n")
		b.WriteString(narrative)
		b.WriteString("\n\n")
	}

	for _, rec := range recommendations {
		b.WriteString(fmt.Sprintf("Symbol: %s (%s)\n", rec.Symbol, rec.CompanyName))
		b.WriteString(fmt.Sprintf("Current Price: $%.2f\n", rec.CurrentPrice))
		b.WriteString(fmt.Sprintf("Previous Close: $%.2f\n", rec.PreviousClose))
		b.WriteString(fmt.Sprintf("Recommendation: %s\n", rec.Recommendation))
		b.WriteString(fmt.Sprintf("Target Price: $%.2f\n", rec.TargetPrice))
		b.WriteString(fmt.Sprintf("Stop Loss: $%.2f\n", rec.StopLoss))
		b.WriteString(fmt.Sprintf("Risk Level: %.1f/10\n", rec.RiskLevel))
		b.WriteString(fmt.Sprintf("Reasoning: %s\n", rec.Reasoning))
		b.WriteString(fmt.Sprintf("Key Keywords: %s\n", strings.Join(rec.KeyKeywords, ", ")))
		b.WriteString("---\n\n")
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	r.logger.Info("Recommendations written to report file", logger.StringField("filename", filename))
	return filename, nil
}
