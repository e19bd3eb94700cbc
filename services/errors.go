package services

import (
	"errors"

	"formfiller/models"
)

var (
	// ErrInvalidInput rejects a run before any browser work.
	ErrInvalidInput = models.ErrInvalidInput
	// ErrSubmissionFailure aborts the current run.
	ErrSubmissionFailure = errors.New("submission failed")
	// ErrDriverFailure means a browser action failed; callers try their fallback strategy.
	ErrDriverFailure = errors.New("browser driver action failed")
	// ErrGenerationUnavailable means the text generator produced nothing usable.
	ErrGenerationUnavailable = errors.New("text generation unavailable")
)
