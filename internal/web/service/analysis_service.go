package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arpansethi30/finagent/internal/entity"
	"github.com/arpansethi30/finagent/internal/web/config"
	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/repository"
	"github.com/arpansethi30/finagent/pkg/common"
	"github.com/arpansethi30/finagent/pkg/logger"

	"gorm.io/datatypes"
)

// AnalysisService orchestrates gateway calls: response cache in front,
// activity log behind, errors passed through untouched.
type AnalysisService interface {
	AnalyzeStock(ctx context.Context, req *dto.StockAnalysisRequest) (*dto.StockAnalysisResponse, error)
	AnalyzeSentiment(ctx context.Context, req *dto.SentimentAnalysisRequest) (*dto.SentimentAnalysisResponse, error)
	RecommendPortfolio(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error)
}

// NewAnalysisService creates a new analysis service. The cache may be nil,
// in which case every request goes straight to the backend.
func NewAnalysisService(
	analyzerRepo repository.AnalyzerRepository,
	cacheRepo repository.CacheRepository,
	recordRepo repository.AnalysisRecordRepository,
	cfg *config.Config,
	log *logger.Logger,
) AnalysisService {
	return &analysisService{
		analyzerRepo: analyzerRepo,
		cacheRepo:    cacheRepo,
		recordRepo:   recordRepo,
		cfg:          cfg,
		logger:       log,
	}
}

type analysisService struct {
	analyzerRepo repository.AnalyzerRepository
	cacheRepo    repository.CacheRepository
	recordRepo   repository.AnalysisRecordRepository
	cfg          *config.Config
	logger       *logger.Logger
}

// AnalyzeStock serves a stock analysis, from cache when possible.
func (s *analysisService) AnalyzeStock(ctx context.Context, req *dto.StockAnalysisRequest) (*dto.StockAnalysisResponse, error) {
	cacheKey := fmt.Sprintf("%s:%s:%s", common.RedisKeyStockAnalysis, req.Symbol, req.Period)

	var cached dto.StockAnalysisResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := s.analyzerRepo.AnalyzeStock(ctx, req)
	s.record(ctx, entity.AnalysisKindStock, req.Symbol, req, result, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// AnalyzeSentiment serves a sentiment analysis, from cache when possible.
func (s *analysisService) AnalyzeSentiment(ctx context.Context, req *dto.SentimentAnalysisRequest) (*dto.SentimentAnalysisResponse, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d", common.RedisKeySentimentAnalysis, req.Symbol, req.Days)

	var cached dto.SentimentAnalysisResponse
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := s.analyzerRepo.AnalyzeSentiment(ctx, req)
	s.record(ctx, entity.AnalysisKindSentiment, req.Symbol, req, result, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKey, result)
	return result, nil
}

// RecommendPortfolio serves a portfolio recommendation. Recommendations are
// profile-specific and never cached.
func (s *analysisService) RecommendPortfolio(ctx context.Context, req *dto.PortfolioRequest) (*dto.PortfolioResponse, error) {
	start := time.Now()
	result, err := s.analyzerRepo.RecommendPortfolio(ctx, req)
	s.record(ctx, entity.AnalysisKindPortfolio, "", req, result, err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cacheGet is best-effort: a cache failure degrades to a backend call.
func (s *analysisService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cacheRepo == nil {
		return false
	}
	hit, err := s.cacheRepo.Get(ctx, key, out)
	if err != nil {
		s.logger.Warn("Cache lookup failed", logger.ErrorField(err), logger.Field("key", key))
		return false
	}
	if hit {
		s.logger.Debug("Cache hit", logger.Field("key", key))
	}
	return hit
}

// cacheSet is best-effort: a store failure only logs.
func (s *analysisService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, value, s.cfg.Analyzer.CacheTTL); err != nil {
		s.logger.Warn("Cache store failed", logger.ErrorField(err), logger.Field("key", key))
	}
}

// record appends one outcome to the activity log; failures never propagate
// to the user's request.
func (s *analysisService) record(ctx context.Context, kind entity.AnalysisKind, symbol string, req, resp interface{}, callErr error, elapsed time.Duration) {
	if s.recordRepo == nil {
		return
	}

	rec := &entity.AnalysisRecord{
		Kind:       kind,
		Symbol:     symbol,
		Status:     statusFor(callErr),
		DurationMs: elapsed.Milliseconds(),
	}
	if callErr != nil {
		rec.Detail = callErr.Error()
	}
	if raw, err := json.Marshal(req); err == nil {
		rec.Request = datatypes.JSON(raw)
	}
	if callErr == nil && resp != nil {
		if raw, err := json.Marshal(resp); err == nil {
			rec.Response = datatypes.JSON(raw)
		}
	}

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		s.logger.Warn("Failed to record analysis outcome", logger.ErrorField(err), logger.Field("kind", kind))
	}
}

func statusFor(err error) entity.AnalysisStatus {
	switch {
	case err == nil:
		return entity.AnalysisStatusOK
	case errors.Is(err, repository.ErrNoData):
		return entity.AnalysisStatusNoData
	case errors.Is(err, repository.ErrBackendUnavailable):
		return entity.AnalysisStatusUnavailable
	default:
		return entity.AnalysisStatusBackendError
	}
}
