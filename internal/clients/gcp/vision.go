package gcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/yungbote/ecosort-backend/internal/classify"
	"github.com/yungbote/ecosort-backend/internal/logger"
	"github.com/yungbote/ecosort-backend/internal/utils"
)

// Vision is the label source boundary. The classifier behind it is a black
// box: callers get an ordered (label, confidence) list and must tolerate
// zero, one or many entries.
type Vision interface {
	DetectLabels(ctx context.Context, img []byte, topK int) ([]classify.Prediction, error)
	Close() error
}

type visionService struct {
	log          *logger.Logger
	visionClient *vision.ImageAnnotatorClient
	timeout      time.Duration
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Vision")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()

	vClient, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	timeoutSec := utils.GetEnvAsInt("VISION_TIMEOUT_SECONDS", 15, log)

	return &visionService{
		log:          slog,
		visionClient: vClient,
		timeout:      time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (s *visionService) Close() error {
	if s == nil {
		return nil
	}
	if s.visionClient != nil {
		_ = s.visionClient.Close()
	}
	return nil
}

func (s *visionService) DetectLabels(ctx context.Context, img []byte, topK int) ([]classify.Prediction, error) {
	if len(img) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = 15
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: img},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: int32(topK)},
		},
	}

	br := &visionpb.BatchAnnotateImagesRequest{Requests: []*visionpb.AnnotateImageRequest{req}}
	resp, err := s.visionClient.BatchAnnotateImages(ctx, br)
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}

	preds := make([]classify.Prediction, 0, len(r0.LabelAnnotations))
	for _, a := range r0.LabelAnnotations {
		if a == nil || strings.TrimSpace(a.Description) == "" {
			continue
		}
		conf := float64(a.Score)
		if conf < 0 {
			conf = 0
		}
		if conf > 1 {
			conf = 1
		}
		preds = append(preds, classify.Prediction{
			Label:      a.Description,
			Confidence: conf,
		})
	}

	// The API returns labels ranked already; re-sorting makes the ordering
	// contract explicit rather than assumed.
	sort.SliceStable(preds, func(i, j int) bool { return preds[i].Confidence > preds[j].Confidence })
	if len(preds) > topK {
		preds = preds[:topK]
	}

	s.log.Debug("label detection complete", "labels", len(preds))
	return preds, nil
}
