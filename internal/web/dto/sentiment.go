package dto

import "strings"

// SentimentAnalysisRequest is the payload for a news sentiment submission.
type SentimentAnalysisRequest struct {
	Symbol string `json:"symbol" form:"symbol" validate:"required,ticker"`
	Days   int    `json:"days" form:"days" validate:"required,oneof=7 14 30 60 90"`
}

// Normalize trims and uppercases the symbol before validation.
func (r *SentimentAnalysisRequest) Normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
}

// SentimentAnalysisResponse mirrors the backend's sentiment result.
type SentimentAnalysisResponse struct {
	Symbol            string   `json:"symbol"`
	CompanyName       string   `json:"company_name"`
	SentimentAnalysis string   `json:"sentiment_analysis"`
	NewsCount         int      `json:"news_count"`
	AnalyzedArticles  int      `json:"analyzed_articles"`
	PeriodDays        int      `json:"period_days"`
	Sources           []string `json:"sources"`
}
