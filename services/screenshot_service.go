package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"formfiller/config"
)

// ScreenshotUploader is the part of S3Service screenshots need.
type ScreenshotUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ScreenshotService captures the post-submit page and uploads it. Without an uploader
// it does nothing.
type ScreenshotService struct {
	uploader ScreenshotUploader
	logger   *zap.Logger
	now      func() time.Time
}

// NewScreenshotService returns a service backed by S3 when cfg is complete, and a
// disabled one otherwise.
func NewScreenshotService(cfg config.ScreenshotConfig, logger *zap.Logger) *ScreenshotService {
	logger = logger.Named("screenshots")
	if !cfg.Enabled() {
		return NewScreenshotServiceWithUploader(nil, logger)
	}

	store, err := NewS3Service(cfg)
	if err != nil {
		logger.Warn("S3 not initialized, screenshots will not be uploaded", zap.Error(err))
		return NewScreenshotServiceWithUploader(nil, logger)
	}
	return NewScreenshotServiceWithUploader(store, logger)
}

func NewScreenshotServiceWithUploader(uploader ScreenshotUploader, logger *zap.Logger) *ScreenshotService {
	return &ScreenshotService{uploader: uploader, logger: logger, now: time.Now}
}

func (s *ScreenshotService) Enabled() bool {
	return s != nil && s.uploader != nil
}

// CaptureAndUpload stores a full-page screenshot for one iteration of a run.
func (s *ScreenshotService) CaptureAndUpload(ctx context.Context, page Page, runID string, iteration int) (string, error) {
	if !s.Enabled() {
		return "", nil
	}

	shot, err := page.Screenshot()
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	key := fmt.Sprintf("screenshots/%s/%03d_%d.png", runID, iteration, s.now().Unix())
	url, err := s.uploader.Upload(ctx, key, shot, "image/png")
	if err != nil {
		return "", err
	}

	s.logger.Info("Screenshot uploaded", zap.String("run_id", runID), zap.Int("iteration", iteration), zap.String("url", url))
	return url, nil
}
