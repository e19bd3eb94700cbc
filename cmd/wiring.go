package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/services"
	"formfiller/utils"
)

// newDriver assembles the submission pipeline from config.
func newDriver(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*services.SubmissionDriver, error) {
	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	templates, err := services.NewTemplateEngine(rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer templates: %w", err)
	}

	gemini := services.NewGeminiClient(ctx, cfg.Gemini, logger)
	if !gemini.Configured() {
		utils.LogWarn("No Gemini credentials; paragraph answers will come from templates", zap.String("model", cfg.Gemini.Model))
	}
	responder := services.NewAIResponseGenerator(gemini, templates, cfg.Gemini, logger)

	dispatcher := services.NewFillDispatcher(
		services.NewFieldClassifier(),
		services.NewSyntheticData(uint64(seed)),
		responder,
		rng,
	)

	return services.NewSubmissionDriver(
		services.NewPlaywrightFactory(cfg.Browser, logger),
		services.NewIdentityGenerator(rng),
		services.NewFormFillerService(dispatcher, cfg.Browser, logger),
		services.NewSubmitService(logger),
		services.NewScreenshotService(cfg.Screenshots, logger),
		cfg.Browser,
		logger,
	), nil
}
