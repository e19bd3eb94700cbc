package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"formfiller/models"
)

type countingIdentities struct {
	gen   *IdentityGenerator
	calls int
}

func (c *countingIdentities) Generate() models.Identity {
	c.calls++
	return c.gen.Generate()
}

type driverHarness struct {
	driver     *SubmissionDriver
	browser    *fakeBrowser
	surveys    []*surveyPage
	identities *countingIdentities
	sleeps     []time.Duration
	starts     int
}

func newDriverHarness() *driverHarness {
	h := &driverHarness{
		identities: &countingIdentities{gen: NewIdentityGenerator(rand.New(rand.NewSource(5)))},
	}
	h.browser = &fakeBrowser{newPage: func() *fakePage {
		s := newSurveyPage()
		h.surveys = append(h.surveys, s)
		return s.page
	}}

	filler, _ := newTestFormFiller(5)
	h.driver = NewSubmissionDriver(
		h.browser.factory(&h.starts),
		h.identities,
		filler,
		NewSubmitService(zap.NewNop()),
		NewScreenshotServiceWithUploader(nil, zap.NewNop()),
		testBrowserConfig(),
		zap.NewNop(),
	)
	h.driver.sleep = func(_ context.Context, d time.Duration) error {
		h.sleeps = append(h.sleeps, d)
		return nil
	}
	h.driver.newRunID = func() string { return "run-1" }
	return h
}

func intPtr(v int) *int { return &v }

func TestRunSingleIteration(t *testing.T) {
	h := newDriverHarness()

	result, err := h.driver.Run(context.Background(), models.GenerateRequest{
		FormURL:         "https://docs.google.com/forms/d/e/abc/viewform",
		NumResponses:    intPtr(1),
		IntervalMinutes: intPtr(0),
		IntervalSeconds: intPtr(5),
	})
	require.NoError(t, err)

	assert.Equal(t, models.RunDone, result.State)
	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, "Successfully generated 1 responses with 5s intervals!", result.SuccessMessage())

	assert.Empty(t, h.sleeps, "no delay before the first response")
	assert.Equal(t, 1, h.identities.calls)
	require.Len(t, h.surveys, 1)
	assert.Equal(t, 1, h.surveys[0].submit.clicks)
	assert.True(t, h.surveys[0].page.closed)
	assert.True(t, h.browser.closed)
	assert.Equal(t, 1, h.starts)
}

func TestRunSharesIdentityWithinIteration(t *testing.T) {
	h := newDriverHarness()

	_, err := h.driver.Run(context.Background(), models.GenerateRequest{
		FormURL:      "https://forms.example/f",
		NumResponses: intPtr(1),
	})
	require.NoError(t, err)

	s := h.surveys[0]
	assert.Equal(t, s.fullName.value, s.rollNumber.value)
	assert.Equal(t, s.fullName.value, s.gridInputs[0].value)
	assert.Equal(t, s.emailInput.value, s.hostel.value)
	assert.Equal(t, s.emailInput.value, s.gridInputs[1].value)
}

func TestRunDelaysBetweenIterations(t *testing.T) {
	h := newDriverHarness()

	result, err := h.driver.Run(context.Background(), models.GenerateRequest{
		FormURL:         "https://forms.example/f",
		NumResponses:    intPtr(3),
		IntervalMinutes: intPtr(1),
		IntervalSeconds: intPtr(30),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Completed)
	assert.Equal(t, []time.Duration{90 * time.Second, 90 * time.Second}, h.sleeps)
	assert.Equal(t, 3, h.identities.calls)
	assert.Len(t, h.browser.pages, 3)
	for _, s := range h.surveys {
		assert.True(t, s.page.closed)
	}
	assert.Equal(t, "Successfully generated 3 responses with 1m 30s intervals!", result.SuccessMessage())
}

func TestRunRejectsInvalidInputWithoutBrowser(t *testing.T) {
	tests := []struct {
		name    string
		req     models.GenerateRequest
		message string
	}{
		{
			name:    "zero responses",
			req:     models.GenerateRequest{FormURL: "https://forms.example/f", NumResponses: intPtr(0)},
			message: "Invalid input.",
		},
		{
			name:    "interval above five minutes",
			req:     models.GenerateRequest{FormURL: "https://forms.example/f", NumResponses: intPtr(1), IntervalMinutes: intPtr(10)},
			message: "Time interval cannot exceed 5 minutes.",
		},
		{
			name:    "missing url",
			req:     models.GenerateRequest{NumResponses: intPtr(1)},
			message: "Invalid input.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newDriverHarness()

			result, err := h.driver.Run(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.EqualError(t, err, tt.message)
			assert.Equal(t, models.RunFailed, result.State)
			assert.Zero(t, h.starts)
		})
	}
}

func TestRunAbortsOnSubmissionFailure(t *testing.T) {
	h := newDriverHarness()
	h.browser.newPage = func() *fakePage {
		page := newFakePage()
		page.keyErr = errFakeDriver
		return page
	}

	result, err := h.driver.Run(context.Background(), models.GenerateRequest{
		FormURL:      "https://forms.example/f",
		NumResponses: intPtr(2),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionFailure)
	assert.Equal(t, models.RunFailed, result.State)
	assert.Zero(t, result.Completed)
	assert.Len(t, h.browser.pages, 1)
	assert.True(t, h.browser.pages[0].closed)
	assert.True(t, h.browser.closed)
}

func TestRunOpenPageFailure(t *testing.T) {
	h := newDriverHarness()
	h.browser.openErr = errors.New("net::ERR_NAME_NOT_RESOLVED")

	result, err := h.driver.Run(context.Background(), models.GenerateRequest{
		FormURL:      "https://forms.example/f",
		NumResponses: intPtr(1),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not open form")
	assert.Equal(t, models.RunFailed, result.State)
	assert.True(t, h.browser.closed)
}

func TestRunStopsWhenCancelledDuringDelay(t *testing.T) {
	h := newDriverHarness()
	ctx, cancel := context.WithCancel(context.Background())
	h.driver.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return sleepContext(ctx, d)
	}

	result, err := h.driver.Run(ctx, models.GenerateRequest{
		FormURL:      "https://forms.example/f",
		NumResponses: intPtr(3),
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, models.RunFailed, result.State)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
