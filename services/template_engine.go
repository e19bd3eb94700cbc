package services

import (
	_ "embed"
	"fmt"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"

	"formfiller/models"
)

//go:embed templates/answers.yaml
var defaultAnswerBank []byte

// GenericCategory is used when no category keyword matches the question.
const GenericCategory = "generic"

type toneWords struct {
	Adjectives []string `yaml:"adjectives"`
	Leads      []string `yaml:"leads"`
}

type answerCategory struct {
	Name     string              `yaml:"name"`
	Keywords []string            `yaml:"keywords"`
	Answers  map[string][]string `yaml:"answers"`
}

type answerBank struct {
	Tones      map[string]toneWords `yaml:"tones"`
	Categories []answerCategory     `yaml:"categories"`
}

// TemplateEngine renders deterministic-shape answers for paragraph questions when no
// generated text is available.
type TemplateEngine struct {
	bank answerBank
	rng  *rand.Rand
}

// NewTemplateEngine loads the embedded answer bank.
func NewTemplateEngine(rng *rand.Rand) (*TemplateEngine, error) {
	return NewTemplateEngineFromYAML(defaultAnswerBank, rng)
}

func NewTemplateEngineFromYAML(raw []byte, rng *rand.Rand) (*TemplateEngine, error) {
	var bank answerBank
	if err := yaml.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("could not parse answer bank: %w", err)
	}
	if err := bank.validate(); err != nil {
		return nil, err
	}
	return &TemplateEngine{bank: bank, rng: rng}, nil
}

func (b answerBank) validate() error {
	for _, bucket := range toneBuckets() {
		words, ok := b.Tones[bucket]
		if !ok || len(words.Adjectives) == 0 || len(words.Leads) == 0 {
			return fmt.Errorf("answer bank: tone %q needs adjectives and leads", bucket)
		}
	}
	hasGeneric := false
	for _, cat := range b.Categories {
		for _, bucket := range toneBuckets() {
			if len(cat.Answers[bucket]) == 0 {
				return fmt.Errorf("answer bank: category %q has no %s answers", cat.Name, bucket)
			}
		}
		if cat.Name == GenericCategory {
			hasGeneric = true
		}
	}
	if !hasGeneric {
		return fmt.Errorf("answer bank: %q category is required", GenericCategory)
	}
	return nil
}

func toneBuckets() []string {
	return []string{string(models.TonePositive), string(models.ToneNegative), string(models.ToneNeutral)}
}

// toneBucket folds mixed (and anything unknown) into neutral.
func toneBucket(tone models.Tone) string {
	switch tone {
	case models.TonePositive, models.ToneNegative:
		return string(tone)
	}
	return string(models.ToneNeutral)
}

// Category picks the first category whose keywords occur in the question.
func (e *TemplateEngine) Category(question string) string {
	q := strings.ToLower(question)
	for _, cat := range e.bank.Categories {
		if containsAny(q, cat.Keywords) {
			return cat.Name
		}
	}
	return GenericCategory
}

func (e *TemplateEngine) answers(category, bucket string) []string {
	for _, cat := range e.bank.Categories {
		if cat.Name == category {
			return cat.Answers[bucket]
		}
	}
	return nil
}

// Render returns one filled template from the tone x category cell.
func (e *TemplateEngine) Render(question string, tone models.Tone) string {
	bucket := toneBucket(tone)
	words := e.bank.Tones[bucket]
	adjective := words.Adjectives[e.rng.Intn(len(words.Adjectives))]
	lead := words.Leads[e.rng.Intn(len(words.Leads))]

	cell := e.answers(e.Category(question), bucket)
	tmpl := cell[e.rng.Intn(len(cell))]
	return fill(tmpl, lead, adjective)
}

// Candidates lists every string Render can return for the cell.
func (e *TemplateEngine) Candidates(category string, tone models.Tone) []string {
	bucket := toneBucket(tone)
	words := e.bank.Tones[bucket]
	var out []string
	for _, tmpl := range e.answers(category, bucket) {
		for _, lead := range words.Leads {
			for _, adj := range words.Adjectives {
				out = append(out, fill(tmpl, lead, adj))
			}
		}
	}
	return out
}

func fill(tmpl, lead, adjective string) string {
	return strings.NewReplacer("{lead}", lead, "{adjective}", adjective).Replace(tmpl)
}
