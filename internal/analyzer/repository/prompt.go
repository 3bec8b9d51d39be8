package repository

import (
	"fmt"
	"strings"

	"golang-stock-analyzer/internal/entity"
)

// BuildBatchNarrativePrompt renders the prompt used to summarize a daily
// recommendation batch into a short prose overview.
func BuildBatchNarrativePrompt(recommendations []entity.StockRecommendation) string {
	var b strings.Builder
	b.WriteString("You are a financial writing assistant. Summarize the following daily stock recommendations ")
	b.WriteString("into a short market overview of at most 5 sentences. Plain text only, no markdown, no advice disclaimer.\n\n")

	for _, rec := range recommendations {
		b.WriteString(fmt.Sprintf("- %s (%s): %s, target $%.2f, stop $%.2f, risk %.1f/10. %s\n",
			rec.Symbol, rec.CompanyName, rec.Recommendation, rec.TargetPrice, rec.StopLoss, rec.RiskLevel, rec.Reasoning))
	}

	return b.String()
}
