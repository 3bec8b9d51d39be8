package entity

// Sentiment is a discrete tone class assigned to a unit of news text.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "VERY_POSITIVE"
	SentimentPositive     Sentiment = "POSITIVE"
	SentimentNeutral      Sentiment = "NEUTRAL"
	SentimentNegative     Sentiment = "NEGATIVE"
	SentimentVeryNegative Sentiment = "VERY_NEGATIVE"
)
