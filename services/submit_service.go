package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// submitSelectors are tried in order; the first visible match is clicked.
var submitSelectors = []string{
	`span:text("Submit")`,
	`div:text("Submit")`,
	`span:text("Send")`,
	`div:text("Send")`,
	`button:text("Submit")`,
	`button:text("Send")`,
	`[aria-label*="Submit"]`,
	`[type="submit"]`,
	`div[role="button"]:has-text("Submit")`,
	`div[role="button"]:has-text("Send")`,
}

var confirmationSelectors = []string{
	`div.freebirdFormviewerViewResponseConfirmationMessage`,
	`text=Your response has been recorded`,
	`text=Thank you`,
	`[class*='confirmation']`,
}

var confirmationURLKeywords = []string{"formresponse", "thank", "confirmation", "success"}

// SubmitService finds the form's submit control and checks for the confirmation page.
type SubmitService struct {
	logger *zap.Logger
}

func NewSubmitService(logger *zap.Logger) *SubmitService {
	return &SubmitService{logger: logger.Named("submit")}
}

// Submit clicks the first visible submit control, or presses Enter when none is found.
func (s *SubmitService) Submit(page Page) error {
	for _, selector := range submitSelectors {
		el, err := page.QuerySelector(selector)
		if err != nil || el == nil {
			continue
		}
		if visible, _ := el.IsVisible(); !visible {
			continue
		}
		if err := el.Click(); err != nil {
			s.logger.Warn("Submit control did not accept click", zap.String("selector", selector), zap.Error(err))
			continue
		}
		s.logger.Info("Clicked submit control", zap.String("selector", selector))
		return nil
	}

	s.logger.Info("No submit control found, pressing Enter")
	if err := page.PressKey("Enter"); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailure, err)
	}
	return nil
}

// Confirmed reports whether the page looks like a post-submission confirmation.
func (s *SubmitService) Confirmed(page Page) bool {
	url := strings.ToLower(page.URL())
	for _, keyword := range confirmationURLKeywords {
		if strings.Contains(url, keyword) {
			return true
		}
	}

	for _, selector := range confirmationSelectors {
		el, err := page.QuerySelector(selector)
		if err != nil || el == nil {
			continue
		}
		if visible, _ := el.IsVisible(); visible {
			return true
		}
	}
	return false
}
