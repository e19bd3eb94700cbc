package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"formfiller/config"
	"formfiller/models"
)

var toneInstructions = map[models.Tone]string{
	models.TonePositive: "Answer positively and enthusiastically. Show satisfaction and approval.",
	models.ToneNegative: "Answer with criticism and dissatisfaction. Point out issues.",
	models.ToneNeutral:  "Answer objectively and balanced.",
	models.ToneMixed:    "Answer with both positive and negative aspects.",
}

var (
	answerPolicyOnce sync.Once
	answerPolicy     *bluemonday.Policy
)

func answerSanitizer() *bluemonday.Policy {
	answerPolicyOnce.Do(func() {
		answerPolicy = bluemonday.StrictPolicy()
	})
	return answerPolicy
}

// Answer is a paragraph response and where it came from.
type Answer struct {
	Text   string
	Source models.FillSource
}

// AIResponseGenerator answers free-text questions with generated prose, falling back to
// the template engine.
type AIResponseGenerator struct {
	generator TextGenerator
	templates *TemplateEngine
	params    config.GeminiConfig
	logger    *zap.Logger
}

func NewAIResponseGenerator(generator TextGenerator, templates *TemplateEngine, params config.GeminiConfig, logger *zap.Logger) *AIResponseGenerator {
	return &AIResponseGenerator{
		generator: generator,
		templates: templates,
		params:    params,
		logger:    logger.Named("answers"),
	}
}

// BuildAnswerPrompt renders the prompt sent to the text generator.
func BuildAnswerPrompt(question, formContext string, tone models.Tone) string {
	instruction, ok := toneInstructions[tone]
	if !ok {
		instruction = toneInstructions[models.ToneNeutral]
	}
	if strings.TrimSpace(formContext) == "" {
		formContext = "General survey"
	}
	return fmt.Sprintf(`You are filling a Google Form. Context: %s
Instructions:
- %s
- Keep responses natural and human-like
- Write 2-4 concise sentences (max ~80 words)
- Be specific, avoid generic fluff
- Stay relevant to the question

Question: %s

Answer:`, formContext, instruction, question)
}

// Respond never returns an empty answer.
func (g *AIResponseGenerator) Respond(ctx context.Context, question, formContext string, tone models.Tone) Answer {
	if strings.TrimSpace(question) == "" {
		question = "general question"
	}

	if g.generator != nil {
		text, err := g.generator.Generate(ctx, GenerationRequest{
			Prompt:      BuildAnswerPrompt(question, formContext, tone),
			Temperature: g.params.Temperature,
			TopP:        g.params.TopP,
			TopK:        g.params.TopK,
			MaxTokens:   g.params.MaxTokens,
			Model:       g.params.Model,
		})
		if err == nil {
			if cleaned := cleanupAnswer(text); cleaned != "" {
				return Answer{Text: cleaned, Source: models.SourceGenerated}
			}
		} else if !errors.Is(err, ErrGenerationUnavailable) {
			g.logger.Warn("Unexpected generator error", zap.Error(err))
		}
	}

	return Answer{Text: g.templates.Render(question, tone), Source: models.SourceTemplate}
}

// cleanupAnswer strips markup and markdown emphasis from generated text.
func cleanupAnswer(text string) string {
	cleaned := html.UnescapeString(answerSanitizer().Sanitize(text))
	cleaned = strings.NewReplacer("**", "", "__", "", "`", "").Replace(cleaned)
	cleaned = strings.TrimPrefix(strings.TrimSpace(cleaned), "Answer:")
	return strings.Join(strings.Fields(cleaned), " ")
}
