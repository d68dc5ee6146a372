package repository

import (
	"context"
	"time"

	"github.com/ameliazsabrina/journalshe-sub000/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	Create(ctx context.Context, entry *model.PointLedgerEntry) error
	// ListByClassSince returns all grants for the class with updated >= since,
	// oldest first. A zero since means no lower bound.
	ListByClassSince(ctx context.Context, classID uuid.UUID, since time.Time) ([]model.PointLedgerEntry, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *model.PointLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) ListByClassSince(ctx context.Context, classID uuid.UUID, since time.Time) ([]model.PointLedgerEntry, error) {
	var entries []model.PointLedgerEntry
	q := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("updated asc")
	if !since.IsZero() {
		q = q.Where("updated >= ?", since)
	}
	err := q.Find(&entries).Error
	return entries, err
}
