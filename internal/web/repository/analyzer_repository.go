package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arpansethi30/finagent/internal/web/config"
	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/pkg/logger"

	"golang.org/x/time/rate"
)

var (
	// ErrBackendUnavailable indicates the analytics backend could not be reached.
	ErrBackendUnavailable = errors.New("analytics backend unreachable")
	// ErrNoData indicates the backend found no market data for the symbol.
	ErrNoData = errors.New("no data found for symbol")
)

// BackendError carries a non-2xx backend response with its detail message.
type BackendError struct {
	StatusCode int
	Detail     string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}

// AnalyzerRepository is the client for the external analytics backend.
type AnalyzerRepository interface {
	Health(ctx context.Context) error
	AnalyzeStock(ctx context.Context, req *dto.StockAnalysisRequest) (*dto.StockAnalysisResponse, error)
	AnalyzeSentiment(ctx context.Context, req *dto.SentimentAnalysisRequest) (*dto.SentimentAnalysisResponse, error)
	RecommendPortfolio(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error)
}

type analyzerRepository struct {
	client         *http.Client
	baseURL        string
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewAnalyzerRepository creates the analytics backend client with an outbound
// request throttle derived from the configured per-minute budget.
func NewAnalyzerRepository(cfg *config.Config, log *logger.Logger) AnalyzerRepository {
	limit := rate.Inf
	if cfg.Analyzer.MaxRequestPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.Analyzer.MaxRequestPerMinute))
	}

	timeout := cfg.Analyzer.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &analyzerRepository{
		client:         &http.Client{Timeout: timeout},
		baseURL:        strings.TrimSuffix(cfg.Analyzer.BaseURL, "/"),
		logger:         log,
		requestLimiter: rate.NewLimiter(limit, 1),
	}
}

// Health probes the backend; any 2xx answer counts as healthy.
func (r *analyzerRepository) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{StatusCode: resp.StatusCode, Detail: "health probe failed"}
	}
	return nil
}

// AnalyzeStock requests a full technical analysis for one symbol.
func (r *analyzerRepository) AnalyzeStock(ctx context.Context, req *dto.StockAnalysisRequest) (*dto.StockAnalysisResponse, error) {
	var result dto.StockAnalysisResponse
	if err := r.post(ctx, "/analyze/stock", req, &result); err != nil {
		return nil, err
	}
	if result.Symbol == "" {
		result.Symbol = req.Symbol
	}
	return &result, nil
}

// AnalyzeSentiment requests a news sentiment summary for one symbol.
func (r *analyzerRepository) AnalyzeSentiment(ctx context.Context, req *dto.SentimentAnalysisRequest) (*dto.SentimentAnalysisResponse, error) {
	var result dto.SentimentAnalysisResponse
	if err := r.post(ctx, "/analyze/sentiment", req, &result); err != nil {
		return nil, err
	}
	if result.Symbol == "" {
		result.Symbol = req.Symbol
	}
	return &result, nil
}

// RecommendPortfolio requests an allocation recommendation for a profile.
func (r *analyzerRepository) RecommendPortfolio(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error) {
	var result dto.PortfolioResponse
	if err := r.post(ctx, "/portfolio/recommend", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// post issues one JSON request and decodes the response, mapping the backend's
// error envelope onto the repository error taxonomy.
func (r *analyzerRepository) post(ctx context.Context, path string, body, out interface{}) error {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("request limiter wait: %w", err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Backend request failed", logger.ErrorField(err), logger.Field("path", path))
		return fmt.Errorf("%w: %s", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return r.mapError(resp.StatusCode, bodyBytes, path)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// mapError turns a non-2xx body into a typed error. A detail mentioning
// missing symbol data maps to ErrNoData so callers can special-case it.
func (r *analyzerRepository) mapError(status int, body []byte, path string) error {
	var envelope dto.BackendErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Detail == "" {
		return &BackendError{StatusCode: status, Detail: fmt.Sprintf("backend request failed with status %d", status)}
	}

	if strings.Contains(strings.ToLower(envelope.Detail), "no data found") {
		r.logger.Warn("Backend has no data for symbol", logger.Field("path", path), logger.Field("detail", envelope.Detail))
		return fmt.Errorf("%w: %s", ErrNoData, envelope.Detail)
	}

	return &BackendError{StatusCode: status, Detail: envelope.Detail}
}
