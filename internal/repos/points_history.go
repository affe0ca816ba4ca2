package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/types"
)

type PointsHistoryRepo interface {
	Append(ctx context.Context, tx *gorm.DB, entries []*types.PointsHistoryEntry) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PointsHistoryEntry, error)
	SumByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type pointsHistoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPointsHistoryRepo(db *gorm.DB, baseLog *logger.Logger) PointsHistoryRepo {
	return &pointsHistoryRepo{db: db, log: baseLog.With("repo", "PointsHistoryRepo")}
}

func (r *pointsHistoryRepo) Append(ctx context.Context, tx *gorm.DB, entries []*types.PointsHistoryEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(entries) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
		return err
	}
	return nil
}

func (r *pointsHistoryRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PointsHistoryEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PointsHistoryEntry
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SumByUserID recomputes the balance from the audit trail; the materialized
// balance must always equal this sum.
func (r *pointsHistoryRepo) SumByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var sum int64
	if err := transaction.WithContext(ctx).
		Model(&types.PointsHistoryEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}
