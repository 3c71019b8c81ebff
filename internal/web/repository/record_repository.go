package repository

import (
	"context"

	"github.com/arpansethi30/finagent/internal/entity"

	"gorm.io/gorm"
)

// AnalysisRecordRepository defines data operations for the activity log.
type AnalysisRecordRepository interface {
	Create(ctx context.Context, record *entity.AnalysisRecord) error
	FindRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error)
	FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.AnalysisRecord, error)
}

// NewAnalysisRecordRepository creates a new GORM-based record repository.
func NewAnalysisRecordRepository(db *gorm.DB) AnalysisRecordRepository {
	return &analysisRecordRepository{db: db}
}

type analysisRecordRepository struct {
	db *gorm.DB
}

// Create persists one gateway call outcome.
func (r *analysisRecordRepository) Create(ctx context.Context, record *entity.AnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindRecent retrieves the newest records, newest first.
func (r *analysisRecordRepository) FindRecent(ctx context.Context, limit int) ([]entity.AnalysisRecord, error) {
	var records []entity.AnalysisRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySymbol retrieves the newest records for one symbol.
func (r *analysisRecordRepository) FindBySymbol(ctx context.Context, symbol string, limit int) ([]entity.AnalysisRecord, error) {
	var records []entity.AnalysisRecord
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).
		Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
