package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/types"
)

type ClassificationRecordRepo interface {
	// CreateIfAbsent inserts the record unless one with the same
	// fingerprint already exists. Returns whether this call inserted it.
	// The decision happens inside the database (insert-or-ignore against
	// the unique index), so concurrent callers cannot both win.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, rec *types.ClassificationRecord) (bool, error)
	GetByFingerprint(ctx context.Context, tx *gorm.DB, fp string) (*types.ClassificationRecord, error)
	ExistsByFingerprint(ctx context.Context, tx *gorm.DB, fp string) (bool, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationRecord, error)
}

type classificationRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassificationRecordRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRecordRepo {
	return &classificationRecordRepo{db: db, log: baseLog.With("repo", "ClassificationRecordRepo")}
}

func (r *classificationRecordRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, rec *types.ClassificationRecord) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *classificationRecordRepo) GetByFingerprint(ctx context.Context, tx *gorm.DB, fp string) (*types.ClassificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rec types.ClassificationRecord
	err := transaction.WithContext(ctx).
		Where("fingerprint = ?", fp).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *classificationRecordRepo) ExistsByFingerprint(ctx context.Context, tx *gorm.DB, fp string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ClassificationRecord{}).
		Where("fingerprint = ?", fp).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classificationRecordRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ClassificationRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ClassificationRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
