package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/repository"
	"github.com/arpansethi30/finagent/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeHealthService struct {
	status dto.BackendHealth
}

func (f *fakeHealthService) Start(ctx context.Context) error { return nil }
func (f *fakeHealthService) Stop()                           {}
func (f *fakeHealthService) Status() dto.BackendHealth       { return f.status }

type fakeHistoryService struct {
	records []*dto.AnalysisRecordResponse
	err     error
}

func (f *fakeHistoryService) ListRecent(ctx context.Context, symbol string, limit int) ([]*dto.AnalysisRecordResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newPageTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := newTestEcho(t)
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	e.Renderer = renderer
	return e
}

func newTestPageHandler(analysis *fakeAnalysisService, health *fakeHealthService, history *fakeHistoryService) *PageHandler {
	if health == nil {
		health = &fakeHealthService{status: dto.BackendHealth{Healthy: true, CheckedAt: time.Now()}}
	}
	if history == nil {
		history = &fakeHistoryService{}
	}
	return NewPageHandler(analysis, health, history, &logger.Logger{Logger: zap.NewNop()})
}

func doForm(e *echo.Echo, h echo.HandlerFunc, values url.Values) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func doGet(e *echo.Echo, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func TestIndexPage_ShowsBackendStatus(t *testing.T) {
	h := newTestPageHandler(&fakeAnalysisService{}, &fakeHealthService{
		status: dto.BackendHealth{Healthy: false, Error: "connection refused"},
	}, nil)

	rec, err := doGet(newPageTestEcho(t), h.Index)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "backend offline")
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestStockSubmit_RendersResultPanels(t *testing.T) {
	svc := &fakeAnalysisService{stockResult: &dto.StockAnalysisResponse{
		Symbol:       "AAPL",
		CompanyName:  "Apple Inc.",
		Sector:       "Technology",
		Industry:     "Consumer Electronics",
		CurrentPrice: 229.87,
		PriceChange:  -1.42,
		MarketCap:    3.5e12,
		PERatio:      34.91,
		TechnicalIndicators: dto.TechnicalIndicators{
			Trend:         "Bullish",
			RSI:           61.234,
			AverageVolume: 54300000,
		},
		Analysis: "Momentum remains constructive.",
	}}
	h := newTestPageHandler(svc, nil, nil)

	rec, err := doForm(newPageTestEcho(t), h.StockSubmit, url.Values{"symbol": {"aapl"}, "period": {"1y"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Apple Inc. (AAPL)")
	assert.Contains(t, body, "3.50T")
	assert.Contains(t, body, "-1.42")
	assert.Contains(t, body, "61.23")
	assert.Contains(t, body, "54.30M")
	assert.Contains(t, body, "Momentum remains constructive.")
}

func TestStockSubmit_ValidationErrorInline(t *testing.T) {
	svc := &fakeAnalysisService{}
	h := newTestPageHandler(svc, nil, nil)

	rec, err := doForm(newPageTestEcho(t), h.StockSubmit, url.Values{"symbol": {"123"}, "period": {"1y"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "symbol must be 1-5 letters")
	assert.Equal(t, 0, svc.calls)
}

func TestStockSubmit_BackendErrorInline(t *testing.T) {
	svc := &fakeAnalysisService{err: fmt.Errorf("%w: connection refused", repository.ErrBackendUnavailable)}
	h := newTestPageHandler(svc, nil, nil)

	rec, err := doForm(newPageTestEcho(t), h.StockSubmit, url.Values{"symbol": {"AAPL"}, "period": {"1y"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unable to reach the analysis service")
}

func TestSentimentSubmit_RendersPanels(t *testing.T) {
	svc := &fakeAnalysisService{sentimentResult: &dto.SentimentAnalysisResponse{
		Symbol:            "TSLA",
		CompanyName:       "Tesla, Inc.",
		SentimentAnalysis: "Coverage skews cautiously positive.",
		NewsCount:         42,
		AnalyzedArticles:  25,
		PeriodDays:        7,
		Sources:           []string{"Reuters", "Bloomberg"},
	}}
	h := newTestPageHandler(svc, nil, nil)

	rec, err := doForm(newPageTestEcho(t), h.SentimentSubmit, url.Values{"symbol": {"TSLA"}, "days": {"7"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Tesla, Inc. (TSLA)")
	assert.Contains(t, body, "Coverage skews cautiously positive.")
	assert.Contains(t, body, "Reuters")
}

func TestPortfolioSubmit_RendersRecommendation(t *testing.T) {
	svc := &fakeAnalysisService{portfolioResult: &dto.PortfolioResponse{
		Profile:        dto.PortfolioRequest{Age: 30, Income: 90000, RiskAppetite: "medium", InvestmentPeriod: 10},
		Recommendation: "A 70/30 equity-bond split fits this horizon.",
	}}
	h := newTestPageHandler(svc, nil, nil)

	rec, err := doForm(newPageTestEcho(t), h.PortfolioSubmit, url.Values{
		"age": {"30"}, "income": {"90000"}, "risk_appetite": {"medium"}, "investment_period": {"10"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "70/30 equity-bond split")
}

func TestHistoryPage_RendersRecords(t *testing.T) {
	history := &fakeHistoryService{records: []*dto.AnalysisRecordResponse{
		{ID: 1, Kind: "stock", Symbol: "AAPL", Status: "ok", DurationMs: 120, CreatedAt: time.Now()},
	}}
	h := newTestPageHandler(&fakeAnalysisService{}, nil, history)

	rec, err := doGet(newPageTestEcho(t), h.HistoryPage)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AAPL")
	assert.Contains(t, rec.Body.String(), "120 ms")
}

func TestBackendHealthEndpoint(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthService{status: dto.BackendHealth{Healthy: false, Error: "connection refused"}})

	rec, err := doGet(newTestEcho(t), handler.BackendHealth)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestHealthzEndpoint(t *testing.T) {
	handler := NewHealthHandler(&fakeHealthService{status: dto.BackendHealth{Healthy: true}})

	rec, err := doGet(newTestEcho(t), handler.Healthz)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
