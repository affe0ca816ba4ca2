package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/ecosort-backend/internal/classify"
	"github.com/yungbote/ecosort-backend/internal/clients/gcp"
	"github.com/yungbote/ecosort-backend/internal/clients/redis"
	"github.com/yungbote/ecosort-backend/internal/fingerprint"
	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/requestdata"
	"github.com/yungbote/ecosort-backend/internal/sse"
)

// ClassifyResult is the single payload the UI needs to render a submission
// outcome. Classification and reward outcomes are independent: RewardError
// means "classified as Category, points not recorded, retry is safe".
type ClassifyResult struct {
	Category         classify.Category `json:"category"`
	DisposalGuidance classify.Guidance `json:"disposal_guidance"`
	Awarded          bool              `json:"awarded"`
	PointsDelta      int64             `json:"points_delta"`
	NewBalance       int64             `json:"new_balance"`
	LowConfidence    bool              `json:"low_confidence"`
	RewardError      bool              `json:"reward_error,omitempty"`
}

type ClassificationService interface {
	ClassifyImage(ctx context.Context, imageBytes []byte) (*ClassifyResult, error)
}

type classificationService struct {
	log     *logger.Logger
	cfg     classify.Config
	vision  gcp.Vision
	rewards RewardService
	hub     *sse.SSEHub
	bus     redis.SSEBus
}

func NewClassificationService(
	baseLog *logger.Logger,
	cfg classify.Config,
	vision gcp.Vision,
	rewards RewardService,
	hub *sse.SSEHub,
	bus redis.SSEBus,
) ClassificationService {
	return &classificationService{
		log:     baseLog.With("service", "ClassificationService"),
		cfg:     cfg,
		vision:  vision,
		rewards: rewards,
		hub:     hub,
		bus:     bus,
	}
}

func (s *classificationService) ClassifyImage(ctx context.Context, imageBytes []byte) (*ClassifyResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("empty image")
	}

	// Fingerprint and label detection are independent; run them in
	// parallel. A label-source failure is recovered locally (fallback to
	// the catch-all category), so neither goroutine fails the group.
	var (
		fp           string
		preds        []classify.Prediction
		visionFailed bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fp = fingerprint.Compute(imageBytes)
		return nil
	})
	g.Go(func() error {
		var err error
		preds, err = s.vision.DetectLabels(gctx, imageBytes, s.cfg.TopK)
		if err != nil {
			s.log.Warn("label detection unavailable, degrading to catch-all", "error", err)
			visionFailed = true
			preds = nil
		}
		return nil
	})
	_ = g.Wait()

	topLabel := ""
	if len(preds) > 0 {
		topLabel = preds[0].Label
	}

	sv, strong := classify.ScorePredictions(preds, s.cfg)
	resolved := classify.ResolveConflicts(sv, strong, topLabel, s.cfg)
	s.logResidualAmbiguity(resolved, topLabel)
	category := classify.Decide(resolved, topLabel, s.cfg)

	res := &ClassifyResult{
		Category:         category,
		DisposalGuidance: classify.GuidanceFor(category),
		LowConfidence:    visionFailed || len(preds) == 0,
	}

	award, err := s.rewards.TryAward(ctx, rd.UserID, fp, category, preds)
	if err != nil {
		// Classification succeeded; only the reward write failed. The
		// two outcomes stay distinct and the retry is idempotent.
		s.log.Warn("classified but not rewarded", "fingerprint", fp, "category", category, "error", err)
		res.RewardError = true
		return res, nil
	}

	res.Awarded = award.Awarded
	res.PointsDelta = award.PointsDelta
	res.NewBalance = award.NewBalance
	if !award.Awarded && award.ExistingCategory != "" {
		// Duplicate content: show what the item was first classified as.
		res.Category = award.ExistingCategory
		res.DisposalGuidance = classify.GuidanceFor(award.ExistingCategory)
	}

	channel := sse.UserChannel(rd.UserID)
	s.emit(ctx, sse.SSEMessage{
		Channel: channel,
		Event:   sse.SSEEventItemClassified,
		Data:    map[string]any{"category": res.Category, "low_confidence": res.LowConfidence},
	})
	if award.Awarded {
		s.emit(ctx, sse.SSEMessage{
			Channel: channel,
			Event:   sse.SSEEventPointsAwarded,
			Data:    map[string]any{"points_delta": award.PointsDelta, "new_balance": award.NewBalance},
		})
	}

	return res, nil
}

// logResidualAmbiguity records conflict pairs the resolver could not settle;
// the decision argmax still picks deterministically, this is tuning signal.
func (s *classificationService) logResidualAmbiguity(sv classify.ScoreVector, topLabel string) {
	for _, pair := range s.cfg.ConflictPairs {
		a, b := pair[0], pair[1]
		if sv[a] > 0 && sv[b] > 0 && math.Abs(sv[a]-sv[b]) < s.cfg.NearTieEpsilon {
			s.log.Info("unresolved category conflict, argmax order decides",
				"a", a, "score_a", sv[a], "b", b, "score_b", sv[b], "top_label", topLabel)
		}
	}
}

func (s *classificationService) emit(ctx context.Context, msg sse.SSEMessage) {
	if s.bus != nil {
		if err := s.bus.Publish(ctx, msg); err != nil {
			s.log.Warn("SSE bus publish failed", "error", err)
		}
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(msg)
	}
}
