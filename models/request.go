package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinResponses     = 1
	MaxResponses     = 50
	MinIntervalDelay = 1 * time.Second
	MaxIntervalDelay = 300 * time.Second
)

// Tone selects the sentiment of generated free-text answers.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneMixed    Tone = "mixed"
)

// ParseTone normalizes user input; anything unknown is neutral.
func ParseTone(s string) Tone {
	switch t := Tone(strings.ToLower(strings.TrimSpace(s))); t {
	case TonePositive, ToneNegative, ToneNeutral, ToneMixed:
		return t
	}
	return ToneNeutral
}

// GenerateRequest is the body of POST /generate.
type GenerateRequest struct {
	FormURL         string `json:"formUrl"`
	NumResponses    *int   `json:"numResponses"`
	IntervalMinutes *int   `json:"intervalMinutes"`
	IntervalSeconds *int   `json:"intervalSeconds"`
	FormContext     string `json:"formContext"`
	ResponseTone    string `json:"responseTone"`
}

// RunPlan is a validated GenerateRequest.
type RunPlan struct {
	FormURL         string
	NumResponses    int
	IntervalMinutes int
	IntervalSeconds int
	Delay           time.Duration
	FormContext     string
	Tone            Tone
}

// ErrInvalidInput marks requests rejected before any browser work.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries the user-facing reason for an ErrInvalidInput.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// Plan applies defaults and validates the request.
func (r GenerateRequest) Plan() (RunPlan, error) {
	plan := RunPlan{
		FormURL:         strings.TrimSpace(r.FormURL),
		NumResponses:    intOr(r.NumResponses, 1),
		IntervalMinutes: intOr(r.IntervalMinutes, 0),
		IntervalSeconds: intOr(r.IntervalSeconds, 5),
		FormContext:     r.FormContext,
		Tone:            ParseTone(r.ResponseTone),
	}

	if plan.FormURL == "" || plan.NumResponses < MinResponses || plan.NumResponses > MaxResponses {
		return RunPlan{}, &ValidationError{Message: "Invalid input."}
	}
	if plan.IntervalMinutes < 0 || plan.IntervalSeconds < 0 {
		return RunPlan{}, &ValidationError{Message: "Time interval cannot be negative."}
	}

	delay := time.Duration(plan.IntervalMinutes)*time.Minute + time.Duration(plan.IntervalSeconds)*time.Second
	if delay < MinIntervalDelay {
		delay = MinIntervalDelay
	}
	if delay > MaxIntervalDelay {
		return RunPlan{}, &ValidationError{Message: "Time interval cannot exceed 5 minutes."}
	}
	plan.Delay = delay
	return plan, nil
}

// IntervalLabel formats the requested interval the way the success message shows it.
func (p RunPlan) IntervalLabel() string {
	switch {
	case p.IntervalMinutes > 0 && p.IntervalSeconds > 0:
		return fmt.Sprintf("%dm %ds", p.IntervalMinutes, p.IntervalSeconds)
	case p.IntervalMinutes > 0:
		return fmt.Sprintf("%dm", p.IntervalMinutes)
	default:
		return fmt.Sprintf("%ds", p.IntervalSeconds)
	}
}

// RunState tracks a run through Idle -> Iterating -> Done | Failed.
type RunState string

const (
	RunIdle      RunState = "idle"
	RunIterating RunState = "iterating"
	RunDone      RunState = "done"
	RunFailed    RunState = "failed"
)

// RunResult summarizes a finished run.
type RunResult struct {
	RunID      string   `json:"run_id"`
	State      RunState `json:"state"`
	Completed  int      `json:"completed"`
	Requested  int      `json:"requested"`
	Interval   string   `json:"interval"`
	Screenshot []string `json:"screenshots,omitempty"`
}

// SuccessMessage is the human summary returned by the API.
func (r RunResult) SuccessMessage() string {
	return fmt.Sprintf("Successfully generated %d responses with %s intervals!", r.Completed, r.Interval)
}
