package common

const (
	RedisKeyStockAnalysis     = "analysis.stock"
	RedisKeySentimentAnalysis = "analysis.sentiment"

	HealthCacheKey = "backend.health"
)

// AnalysisPeriods are the preset lookback windows accepted for stock analysis.
var AnalysisPeriods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// SentimentDays are the preset news windows accepted for sentiment analysis.
var SentimentDays = []int{7, 14, 30, 60, 90}

// RiskAppetites are the accepted portfolio risk tolerance values.
var RiskAppetites = []string{"low", "medium", "high"}
