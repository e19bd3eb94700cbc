package models

import "strings"

// FieldKind is the interaction shape of a discovered form field.
type FieldKind string

const (
	KindShortText     FieldKind = "short_text"
	KindParagraph     FieldKind = "paragraph"
	KindRadioGroup    FieldKind = "radio_group"
	KindCheckboxGroup FieldKind = "checkbox_group"
	KindLinearScale   FieldKind = "linear_scale"
	KindGridText      FieldKind = "grid_text"
	KindGridChoice    FieldKind = "grid_choice"
	KindDropdown      FieldKind = "dropdown"
)

// FieldDescriptor is the evidence gathered about one form field while scanning a page.
type FieldDescriptor struct {
	Kind          FieldKind `json:"kind"`
	AriaLabel     string    `json:"aria_label,omitempty"`
	Placeholder   string    `json:"placeholder,omitempty"`
	QuestionText  string    `json:"question_text,omitempty"`
	DataParams    string    `json:"data_params,omitempty"`
	NameAttribute string    `json:"name,omitempty"`
	InputType     string    `json:"input_type,omitempty"`

	// Grid text inputs only.
	ColumnIndex  int    `json:"column_index,omitempty"`
	ColumnHeader string `json:"column_header,omitempty"`
}

// Evidence joins every label source into the lowercased haystack the classifier reads.
func (f FieldDescriptor) Evidence() string {
	parts := []string{f.AriaLabel, f.Placeholder, f.QuestionText, f.DataParams, f.NameAttribute}
	return strings.TrimSpace(strings.ToLower(strings.Join(parts, " ")))
}

// Question returns the best human-readable prompt for the field.
func (f FieldDescriptor) Question() string {
	for _, s := range []string{f.QuestionText, f.AriaLabel, f.Placeholder} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// FillSource records where a FillDecision value came from.
type FillSource string

const (
	SourceIdentity  FillSource = "identity"
	SourceSynthetic FillSource = "synthetic"
	SourceGenerated FillSource = "generated"
	SourceTemplate  FillSource = "template"
	SourceFallback  FillSource = "alternating_fallback"
	SourceRandom    FillSource = "random"
)

// FillDecision is the dispatcher output for one field: either a text value or a set of
// option indices to click.
type FillDecision struct {
	Field   FieldDescriptor `json:"field"`
	Role    SemanticRole    `json:"role"`
	Value   string          `json:"value,omitempty"`
	Indices []int           `json:"indices,omitempty"`
	Source  FillSource      `json:"source"`
}
