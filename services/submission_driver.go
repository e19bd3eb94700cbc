package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/models"
)

// IdentitySource yields the persona used for one iteration.
type IdentitySource interface {
	Generate() models.Identity
}

// SubmissionDriver runs the iteration loop: open the form, fill it, submit, wait.
type SubmissionDriver struct {
	browsers    BrowserFactory
	identities  IdentitySource
	filler      *FormFillerService
	submitter   *SubmitService
	screenshots *ScreenshotService
	cfg         config.BrowserConfig
	logger      *zap.Logger

	sleep    func(ctx context.Context, d time.Duration) error
	newRunID func() string

	// Runs are strictly sequential; the dispatcher's rng is not shared across goroutines.
	mu sync.Mutex
}

func NewSubmissionDriver(
	browsers BrowserFactory,
	identities IdentitySource,
	filler *FormFillerService,
	submitter *SubmitService,
	screenshots *ScreenshotService,
	cfg config.BrowserConfig,
	logger *zap.Logger,
) *SubmissionDriver {
	return &SubmissionDriver{
		browsers:    browsers,
		identities:  identities,
		filler:      filler,
		submitter:   submitter,
		screenshots: screenshots,
		cfg:         cfg,
		logger:      logger.Named("driver"),
		sleep:       sleepContext,
		newRunID:    uuid.NewString,
	}
}

// Run validates req and submits the form the requested number of times. Invalid input
// is rejected before a browser is started.
func (d *SubmissionDriver) Run(ctx context.Context, req models.GenerateRequest) (models.RunResult, error) {
	plan, err := req.Plan()
	if err != nil {
		return models.RunResult{State: models.RunFailed}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	result := models.RunResult{
		RunID:     d.newRunID(),
		State:     models.RunIdle,
		Requested: plan.NumResponses,
		Interval:  plan.IntervalLabel(),
	}
	logger := d.logger.With(zap.String("run_id", result.RunID))
	logger.Info("Starting run",
		zap.String("form_url", plan.FormURL),
		zap.Int("responses", plan.NumResponses),
		zap.Duration("interval", plan.Delay),
		zap.String("tone", string(plan.Tone)))

	browser, err := d.browsers(ctx)
	if err != nil {
		result.State = models.RunFailed
		return result, fmt.Errorf("could not start browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logger.Warn("Error closing browser", zap.Error(err))
		}
	}()

	result.State = models.RunIterating
	for i := 1; i <= plan.NumResponses; i++ {
		if i > 1 {
			logger.Info("Waiting before next response", zap.Duration("delay", plan.Delay))
			if err := d.sleep(ctx, plan.Delay); err != nil {
				result.State = models.RunFailed
				return result, err
			}
		}

		shot, err := d.iterate(ctx, logger, browser, plan, result.RunID, i)
		if err != nil {
			result.State = models.RunFailed
			logger.Error("Run aborted", zap.Int("iteration", i), zap.Error(err))
			return result, fmt.Errorf("response %d of %d: %w", i, plan.NumResponses, err)
		}

		result.Completed++
		if shot != "" {
			result.Screenshot = append(result.Screenshot, shot)
		}
		logger.Info("Response submitted", zap.Int("iteration", i), zap.Int("of", plan.NumResponses))
	}

	result.State = models.RunDone
	return result, nil
}

func (d *SubmissionDriver) iterate(ctx context.Context, logger *zap.Logger, browser Browser, plan models.RunPlan, runID string, i int) (string, error) {
	page, err := browser.OpenPage(ctx, plan.FormURL, d.cfg.NavigationTimeout)
	if err != nil {
		return "", fmt.Errorf("could not open form: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Warn("Error closing page", zap.Error(err))
		}
	}()
	page.Wait(d.cfg.SettleDelay)

	identity := d.identities.Generate()
	logger.Debug("Generated identity", zap.Int("iteration", i), zap.String("name", identity.FullName), zap.String("email", identity.Email))

	report, err := d.filler.FillForm(ctx, page, FillRequest{
		Identity:    identity,
		FormContext: plan.FormContext,
		Tone:        plan.Tone,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubmissionFailure, err)
	}
	logger.Info("Form filled", zap.Int("iteration", i), zap.Int("fields", len(report.Decisions)), zap.Int("skipped", report.Skipped))

	if err := d.submitter.Submit(page); err != nil {
		return "", err
	}
	page.Wait(d.cfg.SettleDelay)

	if !d.submitter.Confirmed(page) {
		logger.Warn("No confirmation detected after submit", zap.Int("iteration", i))
	}

	url, err := d.screenshots.CaptureAndUpload(ctx, page, runID, i)
	if err != nil {
		logger.Warn("Screenshot upload failed", zap.Error(err))
	}
	return url, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
