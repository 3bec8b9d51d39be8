package common

// StockUniverseEntry pairs a ticker symbol with its company name.
type StockUniverseEntry struct {
	Symbol      string
	CompanyName string
}

// StockUniverse is the fixed list of symbols analyzed by the daily run,
// in priority order.
var StockUniverse = []StockUniverseEntry{
	{Symbol: "AAPL", CompanyName: "Apple Inc."},
	{Symbol: "MSFT", CompanyName: "Microsoft Corporation"},
	{Symbol: "GOOGL", CompanyName: "Alphabet Inc."},
	{Symbol: "AMZN", CompanyName: "Amazon.com Inc."},
	{Symbol: "TSLA", CompanyName: "Tesla Inc."},
	{Symbol: "META", CompanyName: "Meta Platforms Inc."},
	{Symbol: "NVDA", CompanyName: "NVIDIA Corporation"},
	{Symbol: "NFLX", CompanyName: "Netflix Inc."},
	{Symbol: "AMD", CompanyName: "Advanced Micro Devices Inc."},
	{Symbol: "INTC", CompanyName: "Intel Corporation"},
	{Symbol: "CRM", CompanyName: "Salesforce Inc."},
	{Symbol: "ADBE", CompanyName: "Adobe Inc."},
	{Symbol: "PYPL", CompanyName: "PayPal Holdings Inc."},
	{Symbol: "UBER", CompanyName: "Uber Technologies Inc."},
	{Symbol: "LYFT", CompanyName: "Lyft Inc."},
	{Symbol: "SQ", CompanyName: "Block Inc."},
	{Symbol: "ROKU", CompanyName: "Roku Inc."},
	{Symbol: "ZM", CompanyName: "Zoom Video Communications Inc."},
	{Symbol: "DOCU", CompanyName: "DocuSign Inc."},
	{Symbol: "SNOW", CompanyName: "Snowflake Inc."},
}

// CompanyNameForSymbol returns the configured company name for a symbol, or a
// generic fallback for symbols outside the universe.
func CompanyNameForSymbol(symbol string) string {
	for _, entry := range StockUniverse {
		if entry.Symbol == symbol {
			return entry.CompanyName
		}
	}
	return symbol + " Corporation"
}

// NewsSourceKind distinguishes how a source page is parsed.
type NewsSourceKind string

const (
	NewsSourceKindHTML NewsSourceKind = "html"
	NewsSourceKindRSS  NewsSourceKind = "rss"
)

// NewsSource describes one configured news endpoint.
type NewsSource struct {
	URL  string
	Kind NewsSourceKind
}

// NewsSources is the fixed list of free news endpoints scraped per symbol.
var NewsSources = []NewsSource{
	{URL: "https://finance.yahoo.com/news/", Kind: NewsSourceKindHTML},
	{URL: "https://www.marketwatch.com/latest-news", Kind: NewsSourceKindHTML},
	{URL: "https://seekingalpha.com/news", Kind: NewsSourceKindHTML},
	{URL: "https://www.benzinga.com/news", Kind: NewsSourceKindHTML},
	{URL: "https://www.fool.com/investing/", Kind: NewsSourceKindHTML},
}

// BullishKeywords are terms counted toward a positive sentiment label.
var BullishKeywords = []string{
	"beat", "exceeded", "growth", "expansion", "acquisition", "merger", "partnership",
	"upgrade", "positive", "strong", "robust", "outperform", "bullish", "rally",
	"surge", "gain", "profit", "earnings", "revenue", "dividend", "buyback",
}

// BearishKeywords are terms counted toward a negative sentiment label.
var BearishKeywords = []string{
	"miss", "decline", "loss", "cut", "downgrade", "negative", "weak", "concern",
	"risk", "volatility", "sell-off", "crash", "bearish", "recession", "layoff",
	"bankruptcy", "default", "debt", "lawsuit", "investigation", "scandal",
}

// FinancialKeywords feed the relevance score, 0.1 per distinct match.
var FinancialKeywords = []string{
	"earnings", "revenue", "profit", "loss", "growth", "stock", "shares", "dividend",
}

// ImportantTerms are the candidates for the per-analysis keyword summary.
var ImportantTerms = []string{
	"earnings", "revenue", "profit", "growth", "acquisition", "merger",
	"partnership", "expansion", "dividend", "buyback", "upgrade", "downgrade",
}

// RedisKeyLatestBatch caches the most recent recommendation batch as JSON.
const RedisKeyLatestBatch = "analysis.latest_batch"
