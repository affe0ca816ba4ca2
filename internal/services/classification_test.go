package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/ecosort-backend/internal/classify"
	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/requestdata"
	"github.com/yungbote/ecosort-backend/internal/sse"
	"github.com/yungbote/ecosort-backend/internal/types"
)

type fakeVision struct {
	preds []classify.Prediction
	err   error
}

func (f *fakeVision) DetectLabels(ctx context.Context, img []byte, topK int) ([]classify.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	if topK > 0 && len(f.preds) > topK {
		return f.preds[:topK], nil
	}
	return f.preds, nil
}

func (f *fakeVision) Close() error { return nil }

type failingRewards struct{}

func (failingRewards) TryAward(ctx context.Context, userID uuid.UUID, fp string, category classify.Category, preds []classify.Prediction) (*AwardResult, error) {
	return nil, fmt.Errorf("ledger unavailable")
}
func (failingRewards) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, fmt.Errorf("ledger unavailable")
}
func (failingRewards) GetHistory(ctx context.Context, userID uuid.UUID) ([]*types.PointsHistoryEntry, error) {
	return nil, fmt.Errorf("ledger unavailable")
}
func (failingRewards) VerifyBalance(ctx context.Context, userID uuid.UUID) (*BalanceCheck, error) {
	return nil, fmt.Errorf("ledger unavailable")
}

func newTestClassificationService(t *testing.T, vision *fakeVision, rewards RewardService) ClassificationService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewClassificationService(log, classify.DefaultConfig(), vision, rewards, sse.NewSSEHub(log), nil)
}

func authedCtx(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func TestClassifyImageFullPipeline(t *testing.T) {
	db := newTestDB(t)
	rewards := newTestRewardService(t, db, 10)
	vision := &fakeVision{preds: []classify.Prediction{
		{Label: "plastic bottle", Confidence: 0.95},
		{Label: "bottle", Confidence: 0.91},
		{Label: "drinkware", Confidence: 0.74},
	}}
	svc := newTestClassificationService(t, vision, rewards)
	ctx := authedCtx(uuid.New())

	res, err := svc.ClassifyImage(ctx, []byte("bottle photo bytes"))
	if err != nil {
		t.Fatalf("ClassifyImage: %v", err)
	}
	if res.Category != classify.CategoryPlastic {
		t.Fatalf("category: want=%s got=%s", classify.CategoryPlastic, res.Category)
	}
	if res.DisposalGuidance.Instructions == "" {
		t.Fatalf("guidance instructions empty")
	}
	if !res.Awarded {
		t.Fatalf("awarded: want=true got=false")
	}
	if res.PointsDelta != 10 || res.NewBalance != 10 {
		t.Fatalf("reward: want=10/10 got=%d/%d", res.PointsDelta, res.NewBalance)
	}
	if res.LowConfidence {
		t.Fatalf("low confidence: want=false got=true")
	}
	if res.RewardError {
		t.Fatalf("reward error: want=false got=true")
	}
}

func TestClassifyImageVisionFailure(t *testing.T) {
	db := newTestDB(t)
	rewards := newTestRewardService(t, db, 10)
	vision := &fakeVision{err: fmt.Errorf("deadline exceeded")}
	svc := newTestClassificationService(t, vision, rewards)
	ctx := authedCtx(uuid.New())

	res, err := svc.ClassifyImage(ctx, []byte("unlabelable photo"))
	if err != nil {
		t.Fatalf("ClassifyImage: %v", err)
	}
	// Label detection going down degrades to the catch-all, it does not
	// fail the submission, and the award is still content-keyed.
	if res.Category != classify.CategoryOthers {
		t.Fatalf("category: want=%s got=%s", classify.CategoryOthers, res.Category)
	}
	if !res.LowConfidence {
		t.Fatalf("low confidence: want=true got=false")
	}
	if !res.Awarded {
		t.Fatalf("awarded: want=true got=false")
	}
}

func TestClassifyImageDuplicateReturnsStoredCategory(t *testing.T) {
	db := newTestDB(t)
	rewards := newTestRewardService(t, db, 10)
	vision := &fakeVision{preds: []classify.Prediction{
		{Label: "glass bottle", Confidence: 0.9},
	}}
	svc := newTestClassificationService(t, vision, rewards)
	ctx := authedCtx(uuid.New())
	img := []byte("same bytes both times")

	first, err := svc.ClassifyImage(ctx, img)
	if err != nil {
		t.Fatalf("first ClassifyImage: %v", err)
	}
	if first.Category != classify.CategoryGlass {
		t.Fatalf("first category: want=%s got=%s", classify.CategoryGlass, first.Category)
	}

	// Resubmission of identical bytes: even if the label source drifts, the
	// response reflects the first classification on record.
	vision.preds = []classify.Prediction{{Label: "aluminum can", Confidence: 0.9}}
	second, err := svc.ClassifyImage(ctx, img)
	if err != nil {
		t.Fatalf("second ClassifyImage: %v", err)
	}
	if second.Awarded {
		t.Fatalf("second awarded: want=false got=true")
	}
	if second.Category != classify.CategoryGlass {
		t.Fatalf("second category: want=%s got=%s", classify.CategoryGlass, second.Category)
	}
	if second.NewBalance != 10 {
		t.Fatalf("balance: want=10 got=%d", second.NewBalance)
	}
}

func TestClassifyImageRewardFailureStillClassifies(t *testing.T) {
	vision := &fakeVision{preds: []classify.Prediction{
		{Label: "cardboard", Confidence: 0.88},
	}}
	svc := newTestClassificationService(t, vision, failingRewards{})
	ctx := authedCtx(uuid.New())

	res, err := svc.ClassifyImage(ctx, []byte("boxed item"))
	if err != nil {
		t.Fatalf("ClassifyImage: %v", err)
	}
	if res.Category != classify.CategoryPaper {
		t.Fatalf("category: want=%s got=%s", classify.CategoryPaper, res.Category)
	}
	if !res.RewardError {
		t.Fatalf("reward error: want=true got=false")
	}
	if res.Awarded {
		t.Fatalf("awarded: want=false got=true")
	}
}

func TestClassifyImageRequiresAuth(t *testing.T) {
	svc := newTestClassificationService(t, &fakeVision{}, failingRewards{})
	if _, err := svc.ClassifyImage(context.Background(), []byte("photo")); err == nil {
		t.Fatalf("unauthenticated: want error, got nil")
	}
}

func TestClassifyImageRejectsEmptyImage(t *testing.T) {
	svc := newTestClassificationService(t, &fakeVision{}, failingRewards{})
	if _, err := svc.ClassifyImage(authedCtx(uuid.New()), nil); err == nil {
		t.Fatalf("empty image: want error, got nil")
	}
}
