package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/types"
)

type PointsBalanceRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PointsBalance, error)
	// Credit adds delta to the user's balance, creating the row on first
	// award. The add happens in SQL (balance = balance + delta), so two
	// concurrent credits never lose an update. Returns the new balance.
	Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int64) (int64, error)
}

type pointsBalanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPointsBalanceRepo(db *gorm.DB, baseLog *logger.Logger) PointsBalanceRepo {
	return &pointsBalanceRepo{db: db, log: baseLog.With("repo", "PointsBalanceRepo")}
}

func (r *pointsBalanceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PointsBalance, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var bal types.PointsBalance
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (r *pointsBalanceRepo) Credit(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	row := &types.PointsBalance{UserID: userID, Balance: delta, UpdatedAt: now}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"balance":    gorm.Expr("balance + ?", delta),
				"updated_at": now,
			}),
		}).
		Create(row).Error; err != nil {
		return 0, err
	}

	var bal types.PointsBalance
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&bal).Error; err != nil {
		return 0, err
	}
	return bal.Balance, nil
}
