package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/models"
)

const (
	textInputSelector     = `input[type="text"]`
	emailInputSelector    = `input[type="email"]`
	textareaSelector      = `textarea`
	radioGroupSelector    = `div[role="radiogroup"]`
	radioSelector         = `div[role="radio"]`
	checkboxGroupSelector = `div[role="list"]`
	checkboxSelector      = `div[role="checkbox"]`
	scaleGroupSelector    = `div[role="radiogroup"].freebirdMaterialScalecontentContainer`
	scaleContainerClass   = "freebirdMaterialScalecontentContainer"
	gridSelector          = `div[role="group"]`
	gridRowSelector       = `div[role="listitem"]`
	dropdownSelector      = `div[role="listbox"]`
	dropdownOptionSelect  = `div[role="option"]`
)

// Scripts evaluated against a single element; the element is the first parameter.
const (
	insideGridScript = `(el) => !!el.closest('div[role="group"]')`

	inputQuestionScript = `(input) => {
		let root = input.closest('.freebirdFormviewerComponentsQuestionBaseRoot');
		if (root) {
			let title = root.querySelector('.freebirdFormviewerComponentsQuestionBaseTitle');
			if (title) return title.innerText.trim();
		}
		let label = input.previousElementSibling;
		while (label) {
			if (label.innerText && label.innerText.trim()) return label.innerText.trim();
			label = label.previousElementSibling;
		}
		let parent = input.parentElement;
		if (parent && parent.innerText) return parent.innerText.trim();
		return '';
	}`

	textareaQuestionScript = `(textarea) => {
		const root = textarea.closest('.freebirdFormviewerComponentsQuestionBaseRoot');
		if (root) {
			const title = root.querySelector('.freebirdFormviewerComponentsQuestionBaseTitle');
			return title ? title.innerText : '';
		}
		return '';
	}`

	gridHeadersScript = `(grid) => {
		let headers = Array.from(grid.querySelectorAll('[role="columnheader"]')).map(h => h.innerText.trim().toLowerCase());
		if (headers.length > 0) return headers;
		headers = Array.from(grid.querySelectorAll('th')).map(h => h.innerText.trim().toLowerCase());
		if (headers.length > 0) return headers;
		headers = Array.from(grid.querySelectorAll('div[class*="header"], div[class*="Header"]')).map(h => h.innerText.trim().toLowerCase());
		return headers;
	}`

	scriptedFillScript = `(el, v) => {
		el.value = v;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
	}`

	scriptedClickScript = `(el) => {
		el.scrollIntoView({behavior: 'instant', block: 'center', inline: 'center'});
		el.click();
	}`
)

// FillRequest is the per-iteration input of FillForm.
type FillRequest struct {
	Identity    models.Identity
	FormContext string
	Tone        models.Tone
}

// FillReport records what was decided and what could not be applied.
type FillReport struct {
	Decisions []models.FillDecision
	Skipped   int
}

func (r *FillReport) add(d models.FillDecision) {
	r.Decisions = append(r.Decisions, d)
}

// FormFillerService scans a page into field descriptors, asks the dispatcher for
// decisions and applies them.
type FormFillerService struct {
	dispatcher *FillDispatcher
	cfg        config.BrowserConfig
	logger     *zap.Logger
}

func NewFormFillerService(dispatcher *FillDispatcher, cfg config.BrowserConfig, logger *zap.Logger) *FormFillerService {
	return &FormFillerService{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.Named("form_filler"),
	}
}

// FillForm fills every supported field kind in a fixed order. Individual field failures
// are logged and counted; only page-level failures are returned.
func (s *FormFillerService) FillForm(ctx context.Context, page Page, req FillRequest) (*FillReport, error) {
	report := &FillReport{}

	steps := []struct {
		name string
		run  func(context.Context, Page, FillRequest, *FillReport) error
	}{
		{"short text", s.fillShortText},
		{"email inputs", s.fillEmailInputs},
		{"paragraphs", s.fillParagraphs},
		{"radio groups", s.fillRadioGroups},
		{"checkbox groups", s.fillCheckboxGroups},
		{"linear scales", s.fillLinearScales},
		{"grids", s.fillGrids},
		{"dropdowns", s.fillDropdowns},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := step.run(ctx, page, req, report); err != nil {
			return report, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return report, nil
}

func (s *FormFillerService) fillShortText(_ context.Context, page Page, req FillRequest, report *FillReport) error {
	inputs, err := page.QuerySelectorAll(textInputSelector)
	if err != nil {
		return err
	}

	var seq FallbackSequence
	for _, input := range inputs {
		// Grid cells are resolved from their column headers later.
		if inGrid, _ := evaluateBool(input, insideGridScript); inGrid {
			continue
		}

		field := s.describeInput(input, models.KindShortText)
		field.QuestionText = evaluateString(input, inputQuestionScript)

		decision := s.dispatcher.DecideText(field, req.Identity, &seq)
		s.logger.Debug("Short text field",
			zap.String("question", field.Question()),
			zap.Stringer("role", decision.Role),
			zap.String("source", string(decision.Source)))
		s.applyValue(input, decision, report)
	}
	return nil
}

func (s *FormFillerService) fillEmailInputs(_ context.Context, page Page, req FillRequest, report *FillReport) error {
	inputs, err := page.QuerySelectorAll(emailInputSelector)
	if err != nil {
		return err
	}
	for _, input := range inputs {
		field := s.describeInput(input, models.KindShortText)
		field.InputType = "email"
		s.applyValue(input, s.dispatcher.DecideText(field, req.Identity, nil), report)
	}
	return nil
}

func (s *FormFillerService) fillParagraphs(ctx context.Context, page Page, req FillRequest, report *FillReport) error {
	textareas, err := page.QuerySelectorAll(textareaSelector)
	if err != nil {
		return err
	}
	for _, textarea := range textareas {
		field := models.FieldDescriptor{
			Kind:        models.KindParagraph,
			AriaLabel:   attr(textarea, "aria-label"),
			Placeholder: attr(textarea, "placeholder"),
		}
		field.QuestionText = field.AriaLabel
		if field.QuestionText == "" {
			field.QuestionText = strings.TrimSpace(evaluateString(textarea, textareaQuestionScript))
		}

		decision := s.dispatcher.DecideParagraph(ctx, field, req.Identity, req.FormContext, req.Tone)
		s.logger.Debug("Paragraph field",
			zap.String("question", field.Question()),
			zap.String("source", string(decision.Source)))
		s.applyValue(textarea, decision, report)
	}
	return nil
}

func (s *FormFillerService) fillRadioGroups(_ context.Context, page Page, _ FillRequest, report *FillReport) error {
	groups, err := page.QuerySelectorAll(radioGroupSelector)
	if err != nil {
		return err
	}
	for _, group := range groups {
		if strings.Contains(attr(group, "class"), scaleContainerClass) {
			continue
		}
		radios, err := group.QuerySelectorAll(radioSelector)
		if err != nil || len(radios) == 0 {
			continue
		}
		field := models.FieldDescriptor{Kind: models.KindRadioGroup, AriaLabel: attr(group, "aria-label")}
		s.applyChoice(page, radios, s.dispatcher.DecideSingleChoice(field, len(radios)), report)
	}
	return nil
}

func (s *FormFillerService) fillCheckboxGroups(_ context.Context, page Page, _ FillRequest, report *FillReport) error {
	groups, err := page.QuerySelectorAll(checkboxGroupSelector)
	if err != nil {
		return err
	}
	for _, group := range groups {
		boxes, err := group.QuerySelectorAll(checkboxSelector)
		if err != nil || len(boxes) == 0 {
			continue
		}
		field := models.FieldDescriptor{Kind: models.KindCheckboxGroup, AriaLabel: attr(group, "aria-label")}
		s.applyChoice(page, boxes, s.dispatcher.DecideCheckboxes(field, len(boxes)), report)
	}
	return nil
}

func (s *FormFillerService) fillLinearScales(_ context.Context, page Page, _ FillRequest, report *FillReport) error {
	groups, err := page.QuerySelectorAll(scaleGroupSelector)
	if err != nil {
		return err
	}
	for _, group := range groups {
		options, err := group.QuerySelectorAll(radioSelector)
		if err != nil || len(options) == 0 {
			continue
		}
		field := models.FieldDescriptor{Kind: models.KindLinearScale, AriaLabel: attr(group, "aria-label")}
		s.applyChoice(page, options, s.dispatcher.DecideLinearScale(field, len(options)), report)
	}
	return nil
}

func (s *FormFillerService) fillGrids(_ context.Context, page Page, req FillRequest, report *FillReport) error {
	grids, err := page.QuerySelectorAll(gridSelector)
	if err != nil {
		return err
	}
	for _, grid := range grids {
		inputs, err := grid.QuerySelectorAll(textInputSelector)
		if err == nil && len(inputs) > 0 {
			s.fillGridText(grid, inputs, req, report)
			continue
		}

		rows, err := grid.QuerySelectorAll(gridRowSelector)
		if err != nil {
			continue
		}
		for _, row := range rows {
			field := models.FieldDescriptor{Kind: models.KindGridChoice, AriaLabel: attr(row, "aria-label")}
			if radios, _ := row.QuerySelectorAll(radioSelector); len(radios) > 0 {
				s.applyChoice(page, radios, s.dispatcher.DecideGridRow(field, len(radios), false), report)
				continue
			}
			if boxes, _ := row.QuerySelectorAll(checkboxSelector); len(boxes) > 0 {
				s.applyChoice(page, boxes, s.dispatcher.DecideGridRow(field, len(boxes), true), report)
			}
		}
	}
	return nil
}

func (s *FormFillerService) fillGridText(grid Element, inputs []Element, req FillRequest, report *FillReport) {
	headers := evaluateStrings(grid, gridHeadersScript)
	s.logger.Debug("Grid with text inputs", zap.Int("inputs", len(inputs)), zap.Strings("headers", headers))

	var seq FallbackSequence
	for idx, input := range inputs {
		field := s.describeInput(input, models.KindGridText)
		if len(headers) > 0 {
			field.ColumnIndex = idx % len(headers)
			field.ColumnHeader = headers[field.ColumnIndex]
		} else {
			field.ColumnIndex = idx % 2
		}
		s.applyValue(input, s.dispatcher.DecideGridText(field, req.Identity, len(headers) > 0, &seq), report)
	}
}

func (s *FormFillerService) fillDropdowns(_ context.Context, page Page, _ FillRequest, report *FillReport) error {
	dropdowns, err := page.QuerySelectorAll(dropdownSelector)
	if err != nil {
		return err
	}
	for _, dropdown := range dropdowns {
		if err := scrollAndClick(dropdown); err != nil {
			s.logger.Warn("Could not open dropdown", zap.Error(err))
			report.Skipped++
			continue
		}
		page.Wait(s.cfg.DropdownSettle)

		options, err := page.QuerySelectorAll(dropdownOptionSelect)
		if err != nil || len(options) == 0 {
			continue
		}
		field := models.FieldDescriptor{Kind: models.KindDropdown, AriaLabel: attr(dropdown, "aria-label")}
		s.applyChoice(page, options, s.dispatcher.DecideDropdown(field, len(options)), report)
	}
	return nil
}

func (s *FormFillerService) describeInput(el Element, kind models.FieldKind) models.FieldDescriptor {
	return models.FieldDescriptor{
		Kind:          kind,
		AriaLabel:     attr(el, "aria-label"),
		Placeholder:   attr(el, "placeholder"),
		DataParams:    attr(el, "data-params"),
		NameAttribute: attr(el, "name"),
	}
}

func (s *FormFillerService) applyValue(el Element, decision models.FillDecision, report *FillReport) {
	report.add(decision)
	if decision.Value == "" {
		return
	}
	if err := scrollAndFill(el, decision.Value); err != nil {
		s.logger.Warn("Could not fill field",
			zap.String("kind", string(decision.Field.Kind)),
			zap.Stringer("role", decision.Role),
			zap.Error(err))
		report.Skipped++
	}
}

func (s *FormFillerService) applyChoice(page Page, options []Element, decision models.FillDecision, report *FillReport) {
	report.add(decision)
	for _, idx := range decision.Indices {
		if err := scrollAndClick(options[idx]); err != nil {
			s.logger.Warn("Could not click option",
				zap.String("kind", string(decision.Field.Kind)),
				zap.Int("index", idx),
				zap.Error(err))
			report.Skipped++
			continue
		}
		page.Wait(s.cfg.ClickSettle)
	}
}

// scrollAndFill types into the element, falling back to setting the value from script
// and dispatching input/change events.
func scrollAndFill(el Element, text string) error {
	err := el.ScrollIntoView()
	if err == nil {
		err = el.Click()
	}
	if err == nil {
		err = el.Fill(text)
	}
	if err == nil {
		return nil
	}
	if _, jsErr := el.Evaluate(scriptedFillScript, text); jsErr != nil {
		return fmt.Errorf("%w: fill: %v; scripted fill: %v", ErrDriverFailure, err, jsErr)
	}
	return nil
}

// scrollAndClick clicks the element, falling back to a scripted click.
func scrollAndClick(el Element) error {
	err := el.ScrollIntoView()
	if err == nil {
		err = el.Click()
	}
	if err == nil {
		return nil
	}
	if _, jsErr := el.Evaluate(scriptedClickScript, nil); jsErr != nil {
		return fmt.Errorf("%w: click: %v; scripted click: %v", ErrDriverFailure, err, jsErr)
	}
	return nil
}

func attr(el Element, name string) string {
	v, err := el.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

func evaluateString(el Element, script string) string {
	v, err := el.Evaluate(script, nil)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func evaluateBool(el Element, script string) (bool, error) {
	v, err := el.Evaluate(script, nil)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

func evaluateStrings(el Element, script string) []string {
	v, err := el.Evaluate(script, nil)
	if err != nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
