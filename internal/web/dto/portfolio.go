package dto

import "strings"

// PortfolioRequest is the investor profile submitted for a recommendation.
type PortfolioRequest struct {
	Age              int     `json:"age" form:"age" validate:"required,gte=18,lte=120"`
	Income           float64 `json:"income" form:"income" validate:"required,gt=0"`
	RiskAppetite     string  `json:"risk_appetite" form:"risk_appetite" validate:"required,oneof=low medium high"`
	InvestmentPeriod int     `json:"investment_period" form:"investment_period" validate:"required,gte=1,lte=40"`
}

// Normalize lowercases the risk appetite before validation.
func (r *PortfolioRequest) Normalize() {
	r.RiskAppetite = strings.ToLower(strings.TrimSpace(r.RiskAppetite))
}

// PortfolioResponse mirrors the backend's recommendation, echoing the profile.
type PortfolioResponse struct {
	Profile        PortfolioRequest `json:"profile"`
	Recommendation string           `json:"recommendation"`
}
