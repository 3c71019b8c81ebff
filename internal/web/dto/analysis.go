package dto

import "strings"

// StockAnalysisRequest is the payload for a stock analysis submission.
type StockAnalysisRequest struct {
	Symbol string `json:"symbol" form:"symbol" validate:"required,ticker"`
	Period string `json:"period" form:"period" validate:"required,oneof=1mo 3mo 6mo 1y 2y 5y"`
}

// Normalize trims and uppercases the symbol before validation.
func (r *StockAnalysisRequest) Normalize() {
	r.Symbol = strings.ToUpper(strings.TrimSpace(r.Symbol))
	r.Period = strings.TrimSpace(r.Period)
}

// TechnicalIndicators carries the indicator block computed by the backend.
type TechnicalIndicators struct {
	Trend         string  `json:"trend"`
	RSI           float64 `json:"rsi"`
	MACD          float64 `json:"macd"`
	SMA20         float64 `json:"sma_20"`
	SMA50         float64 `json:"sma_50"`
	Volatility    float64 `json:"volatility"`
	AverageVolume float64 `json:"average_volume"`
}

// StockAnalysisResponse mirrors the backend's stock analysis result.
type StockAnalysisResponse struct {
	Symbol              string              `json:"symbol"`
	CompanyName         string              `json:"company_name"`
	Sector              string              `json:"sector"`
	Industry            string              `json:"industry"`
	CurrentPrice        float64             `json:"current_price"`
	PriceChange         float64             `json:"price_change"`
	MarketCap           float64             `json:"market_cap"`
	PERatio             float64             `json:"pe_ratio"`
	FiftyTwoWeekHigh    float64             `json:"fifty_two_week_high"`
	FiftyTwoWeekLow     float64             `json:"fifty_two_week_low"`
	TechnicalIndicators TechnicalIndicators `json:"technical_indicators"`
	Analysis            string              `json:"analysis"`
}
