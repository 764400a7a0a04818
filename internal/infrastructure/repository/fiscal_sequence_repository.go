package repository

import (
	"context"
	"errors"

	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type fiscalSequenceRepository struct {
	db *gorm.DB
}

// NewFiscalSequenceRepository creates a new numbering sequence repository
func NewFiscalSequenceRepository(db *gorm.DB) domainRepo.FiscalSequenceRepository {
	return &fiscalSequenceRepository{db: db}
}

// Next upserts the series row and increments it in a single statement, so
// concurrent callers never receive the same value.
func (r *fiscalSequenceRepository) Next(ctx context.Context, series string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO fiscal_sequences (series, last_value, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (series) DO UPDATE
		SET last_value = fiscal_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value`, series).Scan(&value).Error
	return value, err
}

func (r *fiscalSequenceRepository) Current(ctx context.Context, series string) (int64, error) {
	var seq entity.FiscalSequence
	err := r.db.WithContext(ctx).First(&seq, "series = ?", series).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return seq.LastValue, err
}
