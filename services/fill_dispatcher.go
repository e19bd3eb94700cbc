package services

import (
	"context"
	"math/rand"

	"formfiller/models"
)

const (
	maxCheckboxSelections = 3
	maxGridCheckboxPerRow = 2
)

// ParagraphResponder answers a free-text question.
type ParagraphResponder interface {
	Respond(ctx context.Context, question, formContext string, tone models.Tone) Answer
}

// FillDispatcher decides what goes into each field. It never touches the browser.
type FillDispatcher struct {
	classifier *FieldClassifier
	data       SyntheticData
	responder  ParagraphResponder
	rng        *rand.Rand
}

func NewFillDispatcher(classifier *FieldClassifier, data SyntheticData, responder ParagraphResponder, rng *rand.Rand) *FillDispatcher {
	return &FillDispatcher{
		classifier: classifier,
		data:       data,
		responder:  responder,
		rng:        rng,
	}
}

// DecideText handles short text and grid text fields. The role comes from the field's
// evidence, or from seq when the evidence is inconclusive.
func (d *FillDispatcher) DecideText(field models.FieldDescriptor, identity models.Identity, seq *FallbackSequence) models.FillDecision {
	if field.InputType == "email" {
		return d.resolve(field, identity, models.RoleEmail, models.SourceIdentity)
	}

	role := d.classifier.ClassifyField(field)
	if role == models.RoleUnclassified {
		return d.resolve(field, identity, seq.Next(), models.SourceFallback)
	}
	return d.resolve(field, identity, role, "")
}

// DecideGridText resolves a text cell from its column header. Without headers the fixed
// column convention applies; an unrecognized header draws from the grid's sequence.
func (d *FillDispatcher) DecideGridText(field models.FieldDescriptor, identity models.Identity, hasHeaders bool, seq *FallbackSequence) models.FillDecision {
	if !hasHeaders {
		return d.resolve(field, identity, ColumnRole(field.ColumnIndex), models.SourceFallback)
	}
	role := d.classifier.Classify(field.ColumnHeader)
	if role == models.RoleUnclassified {
		return d.resolve(field, identity, seq.Next(), models.SourceFallback)
	}
	return d.resolve(field, identity, role, "")
}

func (d *FillDispatcher) resolve(field models.FieldDescriptor, identity models.Identity, role models.SemanticRole, source models.FillSource) models.FillDecision {
	decision := models.FillDecision{Field: field, Role: role, Source: source}

	if v, ok := identity.ValueFor(role); ok {
		decision.Value = v
		if source == "" {
			decision.Source = models.SourceIdentity
		}
		return decision
	}
	if v, ok := syntheticValue(d.data, role); ok {
		decision.Value = v
		decision.Source = models.SourceSynthetic
	}
	return decision
}

// DecideParagraph prefers identity values when the question asks for a name or email,
// and otherwise asks the responder.
func (d *FillDispatcher) DecideParagraph(ctx context.Context, field models.FieldDescriptor, identity models.Identity, formContext string, tone models.Tone) models.FillDecision {
	role := d.classifier.ClassifyField(field)
	if v, ok := identity.ValueFor(role); ok {
		return models.FillDecision{Field: field, Role: role, Value: v, Source: models.SourceIdentity}
	}

	ans := d.responder.Respond(ctx, field.Question(), formContext, tone)
	return models.FillDecision{Field: field, Role: models.RoleUnclassified, Value: ans.Text, Source: ans.Source}
}

// DecideSingleChoice picks one option uniformly; n <= 0 yields no selection.
func (d *FillDispatcher) DecideSingleChoice(field models.FieldDescriptor, n int) models.FillDecision {
	decision := models.FillDecision{Field: field, Source: models.SourceRandom}
	if n > 0 {
		decision.Indices = []int{d.rng.Intn(n)}
	}
	return decision
}

// ScaleRange is the inclusive index range linear-scale picks are drawn from: the upper
// 40% of the scale, starting at round(0.6n).
func ScaleRange(n int) (low, high int) {
	if n <= 0 {
		return 0, -1
	}
	high = n - 1
	low = (6*n + 5) / 10
	if low > high {
		low = high
	}
	return low, high
}

func (d *FillDispatcher) DecideLinearScale(field models.FieldDescriptor, n int) models.FillDecision {
	decision := models.FillDecision{Field: field, Source: models.SourceRandom}
	low, high := ScaleRange(n)
	if high >= low {
		decision.Indices = []int{low + d.rng.Intn(high-low+1)}
	}
	return decision
}

// DecideMultiChoice picks between 1 and min(limit, n) distinct options.
func (d *FillDispatcher) DecideMultiChoice(field models.FieldDescriptor, n, limit int) models.FillDecision {
	decision := models.FillDecision{Field: field, Source: models.SourceRandom}
	if n <= 0 || limit <= 0 {
		return decision
	}
	if limit > n {
		limit = n
	}
	k := 1 + d.rng.Intn(limit)
	decision.Indices = d.rng.Perm(n)[:k]
	return decision
}

func (d *FillDispatcher) DecideCheckboxes(field models.FieldDescriptor, n int) models.FillDecision {
	return d.DecideMultiChoice(field, n, maxCheckboxSelections)
}

// DecideGridRow applies the radio rule to radio rows and picks one or two boxes on
// checkbox rows.
func (d *FillDispatcher) DecideGridRow(field models.FieldDescriptor, n int, checkboxRow bool) models.FillDecision {
	if checkboxRow {
		return d.DecideMultiChoice(field, n, maxGridCheckboxPerRow)
	}
	return d.DecideSingleChoice(field, n)
}

func (d *FillDispatcher) DecideDropdown(field models.FieldDescriptor, n int) models.FillDecision {
	return d.DecideSingleChoice(field, n)
}
