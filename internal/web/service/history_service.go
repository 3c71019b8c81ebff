package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arpansethi30/finagent/internal/entity"
	"github.com/arpansethi30/finagent/internal/web/dto"
	"github.com/arpansethi30/finagent/internal/web/repository"
	"github.com/arpansethi30/finagent/pkg/logger"
)

const defaultHistoryLimit = 20

// HistoryService exposes the analysis activity log.
type HistoryService interface {
	ListRecent(ctx context.Context, symbol string, limit int) ([]*dto.AnalysisRecordResponse, error)
}

// NewHistoryService creates a new history service.
func NewHistoryService(recordRepo repository.AnalysisRecordRepository, maxLimit int, log *logger.Logger) HistoryService {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &historyService{recordRepo: recordRepo, maxLimit: maxLimit, logger: log}
}

type historyService struct {
	recordRepo repository.AnalysisRecordRepository
	maxLimit   int
	logger     *logger.Logger
}

// ListRecent returns the newest records, optionally filtered by symbol.
func (s *historyService) ListRecent(ctx context.Context, symbol string, limit int) ([]*dto.AnalysisRecordResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	var (
		records []entity.AnalysisRecord
		err     error
	)
	if symbol = strings.ToUpper(strings.TrimSpace(symbol)); symbol != "" {
		records, err = s.recordRepo.FindBySymbol(ctx, symbol, limit)
	} else {
		records, err = s.recordRepo.FindRecent(ctx, limit)
	}
	if err != nil {
		s.logger.Error("Failed to list analysis records", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]*dto.AnalysisRecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapToRecordResponse(&rec))
	}
	return responses, nil
}

// mapToRecordResponse maps an entity.AnalysisRecord to its DTO.
func mapToRecordResponse(rec *entity.AnalysisRecord) *dto.AnalysisRecordResponse {
	return &dto.AnalysisRecordResponse{
		ID:         rec.ID,
		Kind:       string(rec.Kind),
		Symbol:     rec.Symbol,
		Status:     string(rec.Status),
		Detail:     rec.Detail,
		Response:   json.RawMessage(rec.Response),
		DurationMs: rec.DurationMs,
		CreatedAt:  rec.CreatedAt,
	}
}
