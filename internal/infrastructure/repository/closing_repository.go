package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/domain/entity"
	domainRepo "github.com/sangkips/cashdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

// closingLockKey serialises closing writes through a transaction-scoped
// postgres advisory lock.
const closingLockKey int64 = 0x63617368636c6f73

const closingOrder = "date DESC, created_at DESC"

type closingRepository struct {
	db *gorm.DB
}

// NewClosingRepository creates a new cash closing repository
func NewClosingRepository(db *gorm.DB) domainRepo.ClosingRepository {
	return &closingRepository{db: db}
}

func (r *closingRepository) Create(ctx context.Context, closing *entity.CashClosing) error {
	return r.db.WithContext(ctx).Create(closing).Error
}

func (r *closingRepository) CreateIfLatest(ctx context.Context, closing *entity.CashClosing, expectedPriorID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", closingLockKey).Error; err != nil {
			return err
		}

		latest, err := latestClosing(tx)
		if err != nil {
			return err
		}
		if !samePrior(latest, expectedPriorID) {
			return domainRepo.ErrStaleClosing
		}

		return tx.Create(closing).Error
	})
}

func (r *closingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashClosing, error) {
	var closing entity.CashClosing
	err := r.db.WithContext(ctx).First(&closing, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &closing, err
}

func (r *closingRepository) GetLatest(ctx context.Context) (*entity.CashClosing, error) {
	return latestClosing(r.db.WithContext(ctx))
}

func (r *closingRepository) ListRecent(ctx context.Context, limit int) ([]entity.CashClosing, error) {
	var closings []entity.CashClosing
	query := r.db.WithContext(ctx).Order(closingOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&closings).Error
	return closings, err
}

func latestClosing(db *gorm.DB) (*entity.CashClosing, error) {
	var closing entity.CashClosing
	err := db.Order(closingOrder).First(&closing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

func samePrior(latest *entity.CashClosing, expected *uuid.UUID) bool {
	if latest == nil || expected == nil {
		return latest == nil && expected == nil
	}
	return latest.ID == *expected
}
