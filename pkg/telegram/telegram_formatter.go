package telegram

import (
	"fmt"
	"strings"

	"golang-stock-analyzer/internal/entity"
)

// FormatRecommendationsForTelegram renders a recommendation batch into one
// Markdown message, truncated to Telegram's message size limit.
func FormatRecommendationsForTelegram(recommendations []entity.StockRecommendation) string {
	if len(recommendations) == 0 {
		return "No stock recommendations were produced today."
	}

	const maxLen = 4090

	var b strings.Builder
	b.WriteString("📈 *Daily Stock Recommendations* 📈\n\n")

	for _, rec := range recommendations {
		entry := fmt.Sprintf("*%s* (%s)\nRecommendation: %s %s\nPrice: $%.2f | Target: $%.2f | Stop: $%.2f\nRisk: %.1f/10\n\n",
			rec.Symbol,
			rec.CompanyName,
			recommendationEmoji(rec.Recommendation),
			string(rec.Recommendation),
			rec.CurrentPrice,
			rec.TargetPrice,
			rec.StopLoss,
			rec.RiskLevel,
		)
		if b.Len()+len(entry) > maxLen {
			break
		}
		b.WriteString(entry)
	}

	return strings.TrimRight(b.String(), "\n")
}

func recommendationEmoji(recommendationType entity.RecommendationType) string {
	switch recommendationType {
	case entity.RecommendationStrongBuy:
		return "🚀"
	case entity.RecommendationBuy:
		return "🟢"
	case entity.RecommendationSell:
		return "🔴"
	case entity.RecommendationStrongSell:
		return "⛔"
	default:
		return "⚪"
	}
}
