package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ecosort-backend/internal/classify"
	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/repos"
	"github.com/yungbote/ecosort-backend/internal/types"
)

const awardReasonClassification = "waste_classification"

type AwardResult struct {
	Awarded     bool  `json:"awarded"`
	PointsDelta int64 `json:"points_delta"`
	NewBalance  int64 `json:"new_balance"`

	// ExistingCategory is set on duplicate submissions so the caller can
	// still show what the item was first classified as.
	ExistingCategory classify.Category `json:"existing_category,omitempty"`
}

type BalanceCheck struct {
	Consistent bool  `json:"consistent"`
	Balance    int64 `json:"balance"`
	HistorySum int64 `json:"history_sum"`
}

type RewardService interface {
	// TryAward grants the fixed classification award at most once per
	// fingerprint, system-wide. Safe to retry and safe under concurrent
	// submissions of the same content: the record insert and the balance
	// credit commit in one transaction, gated by the fingerprint's unique
	// index. A duplicate returns Awarded=false and is not an error.
	TryAward(ctx context.Context, userID uuid.UUID, fp string, category classify.Category, preds []classify.Prediction) (*AwardResult, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.PointsHistoryEntry, error)
	VerifyBalance(ctx context.Context, userID uuid.UUID) (*BalanceCheck, error)
}

type rewardService struct {
	db          *gorm.DB
	log         *logger.Logger
	recordRepo  repos.ClassificationRecordRepo
	balanceRepo repos.PointsBalanceRepo
	historyRepo repos.PointsHistoryRepo
	awardPoints int64
}

func NewRewardService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recordRepo repos.ClassificationRecordRepo,
	balanceRepo repos.PointsBalanceRepo,
	historyRepo repos.PointsHistoryRepo,
	awardPoints int64,
) RewardService {
	return &rewardService{
		db:          db,
		log:         baseLog.With("service", "RewardService"),
		recordRepo:  recordRepo,
		balanceRepo: balanceRepo,
		historyRepo: historyRepo,
		awardPoints: awardPoints,
	}
}

func (s *rewardService) TryAward(ctx context.Context, userID uuid.UUID, fp string, category classify.Category, preds []classify.Prediction) (*AwardResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if fp == "" {
		return nil, fmt.Errorf("empty fingerprint")
	}

	now := time.Now().UTC()
	rec := &types.ClassificationRecord{
		ID:          uuid.New(),
		Fingerprint: fp,
		UserID:      userID,
		Category:    string(category),
		CreatedAt:   now,
	}
	if len(preds) > 0 {
		rec.TopLabel = preds[0].Label
		rec.TopConfidence = preds[0].Confidence
		if raw, err := json.Marshal(preds); err == nil {
			rec.Predictions = datatypes.JSON(raw)
		}
	}

	result := &AwardResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := s.recordRepo.CreateIfAbsent(ctx, tx, rec)
		if err != nil {
			return fmt.Errorf("insert classification record: %w", err)
		}

		if !inserted {
			existing, err := s.recordRepo.GetByFingerprint(ctx, tx, fp)
			if err != nil {
				return fmt.Errorf("load existing record: %w", err)
			}
			if existing != nil {
				result.ExistingCategory = classify.Category(existing.Category)
			}
			bal, err := s.balanceRepo.GetByUserID(ctx, tx, userID)
			if err != nil {
				return fmt.Errorf("load balance: %w", err)
			}
			if bal != nil {
				result.NewBalance = bal.Balance
			}
			return nil
		}

		newBalance, err := s.balanceRepo.Credit(ctx, tx, userID, s.awardPoints)
		if err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		if err := s.historyRepo.Append(ctx, tx, []*types.PointsHistoryEntry{{
			ID:          uuid.New(),
			UserID:      userID,
			Delta:       s.awardPoints,
			Reason:      awardReasonClassification,
			Fingerprint: fp,
			CreatedAt:   now,
		}}); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		result.Awarded = true
		result.PointsDelta = s.awardPoints
		result.NewBalance = newBalance
		return nil
	})
	if err != nil {
		s.log.Warn("award transaction failed", "fingerprint", fp, "error", err)
		return nil, err
	}
	return result, nil
}

func (s *rewardService) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	bal, err := s.balanceRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return 0, err
	}
	if bal == nil {
		return 0, nil
	}
	return bal.Balance, nil
}

func (s *rewardService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.PointsHistoryEntry, error) {
	return s.historyRepo.GetByUserID(ctx, nil, userID)
}

func (s *rewardService) VerifyBalance(ctx context.Context, userID uuid.UUID) (*BalanceCheck, error) {
	check := &BalanceCheck{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bal, err := s.balanceRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if bal != nil {
			check.Balance = bal.Balance
		}
		sum, err := s.historyRepo.SumByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}
		check.HistorySum = sum
		check.Consistent = check.Balance == sum
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !check.Consistent {
		s.log.Warn("balance diverged from history", "user_id", userID, "balance", check.Balance, "history_sum", check.HistorySum)
	}
	return check, nil
}
