package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arpansethi30/finagent/internal/web/config"
	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(baseURL string) AnalyzerRepository {
	cfg := &config.Config{}
	cfg.Analyzer.BaseURL = baseURL
	cfg.Analyzer.Timeout = 5 * time.Second
	return NewAnalyzerRepository(cfg, &logger.Logger{Logger: zap.NewNop()})
}

func TestAnalyzeStock_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze/stock", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"company_name": "Apple Inc.",
			"sector": "Technology",
			"industry": "Consumer Electronics",
			"current_price": 229.87,
			"price_change": 1.42,
			"market_cap": 3.5e12,
			"pe_ratio": 34.91,
			"fifty_two_week_high": 260.1,
			"fifty_two_week_low": 169.21,
			"technical_indicators": {
				"trend": "Bullish",
				"rsi": 61.2,
				"macd": 2.31,
				"sma_20": 225.4,
				"sma_50": 218.9,
				"volatility": 1.8,
				"average_volume": 54300000
			},
			"analysis": "Momentum remains constructive."
		}`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	result, err := repo.AnalyzeStock(context.Background(), &dto.StockAnalysisRequest{Symbol: "AAPL", Period: "1y"})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, "Apple Inc.", result.CompanyName)
	assert.Equal(t, "Technology", result.Sector)
	assert.InDelta(t, 229.87, result.CurrentPrice, 0.001)
	assert.Equal(t, "Bullish", result.TechnicalIndicators.Trend)
	assert.InDelta(t, 61.2, result.TechnicalIndicators.RSI, 0.001)
	assert.InDelta(t, 54300000, result.TechnicalIndicators.AverageVolume, 0.1)
	assert.Equal(t, "Momentum remains constructive.", result.Analysis)
}

func TestAnalyzeStock_NoDataDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "No data found for symbol ZZZZZ"}`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	_, err := repo.AnalyzeStock(context.Background(), &dto.StockAnalysisRequest{Symbol: "ZZZZZ", Period: "1y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Contains(t, err.Error(), "No data found for symbol ZZZZZ")
}

func TestAnalyzeStock_BackendErrorDetailPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail": "period must be one of the supported windows"}`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	_, err := repo.AnalyzeStock(context.Background(), &dto.StockAnalysisRequest{Symbol: "AAPL", Period: "1y"})
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusUnprocessableEntity, backendErr.StatusCode)
	assert.Equal(t, "period must be one of the supported windows", backendErr.Detail)
}

func TestAnalyzeStock_MalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	_, err := repo.AnalyzeStock(context.Background(), &dto.StockAnalysisRequest{Symbol: "AAPL", Period: "1y"})
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusInternalServerError, backendErr.StatusCode)
}

func TestAnalyzeStock_BackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	repo := newTestRepository(srv.URL)
	_, err := repo.AnalyzeStock(context.Background(), &dto.StockAnalysisRequest{Symbol: "AAPL", Period: "1y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendUnavailable))
}

func TestHealth(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if healthy {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	assert.NoError(t, repo.Health(context.Background()))

	healthy = false
	err := repo.Health(context.Background())
	require.Error(t, err)

	var backendErr *BackendError
	assert.True(t, errors.As(err, &backendErr))
}

func TestAnalyzeSentiment_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/sentiment", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"company_name": "Tesla, Inc.",
			"sentiment_analysis": "Coverage skews cautiously positive.",
			"news_count": 42,
			"analyzed_articles": 25,
			"period_days": 7,
			"sources": ["Reuters", "Bloomberg"]
		}`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	result, err := repo.AnalyzeSentiment(context.Background(), &dto.SentimentAnalysisRequest{Symbol: "TSLA", Days: 7})
	require.NoError(t, err)

	assert.Equal(t, "TSLA", result.Symbol)
	assert.Equal(t, 42, result.NewsCount)
	assert.Equal(t, 25, result.AnalyzedArticles)
	assert.Equal(t, []string{"Reuters", "Bloomberg"}, result.Sources)
}

func TestRecommendPortfolio_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/portfolio/recommend", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"profile": {"age": 30, "income": 90000, "risk_appetite": "medium", "investment_period": 10},
			"recommendation": "A 70/30 equity-bond split fits this horizon."
		}`))
	}))
	defer srv.Close()

	repo := newTestRepository(srv.URL)
	result, err := repo.RecommendPortfolio(context.Background(), &dto.PortfolioRequest{
		Age: 30, Income: 90000, RiskAppetite: "medium", InvestmentPeriod: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, result.Profile.Age)
	assert.Equal(t, "medium", result.Profile.RiskAppetite)
	assert.Contains(t, result.Recommendation, "70/30")
}
