package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"formfiller/config"
)

const geminiScope = "https://www.googleapis.com/auth/generative-language"

// GenerationRequest carries one prompt and its sampling parameters.
type GenerationRequest struct {
	Prompt      string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	Model       string
}

// TextGenerator produces short natural-language text. Every failure is reported as
// ErrGenerationUnavailable.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

type GeminiRequest struct {
	Contents         []Content              `json:"contents"`
	GenerationConfig GeminiGenerationConfig `json:"generationConfig"`
}

type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type Part struct {
	Text string `json:"text"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GeminiClient calls generateContent over plain HTTP.
type GeminiClient struct {
	apiKey      string
	endpoint    string
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	logger      *zap.Logger
}

// NewGeminiClient builds a client from config. Without an API key it falls back to
// application default credentials when UseADC is set; otherwise every call reports
// unavailability.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	c := &GeminiClient{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("gemini"),
	}
	if c.endpoint == "" {
		c.endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}

	if c.apiKey == "" && cfg.UseADC {
		creds, err := google.FindDefaultCredentials(ctx, geminiScope)
		if err != nil {
			c.logger.Warn("Application default credentials unavailable", zap.Error(err))
		} else {
			c.tokenSource = creds.TokenSource
		}
	}
	return c
}

// Configured reports whether the client has any way to authenticate.
func (c *GeminiClient) Configured() bool {
	return c.apiKey != "" || c.tokenSource != nil
}

func (c *GeminiClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%w: no gemini credentials", ErrGenerationUnavailable)
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		c.logger.Debug("Gemini generation failed", zap.String("model", req.Model), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	return text, nil
}

func (c *GeminiClient) generate(ctx context.Context, req GenerationRequest) (string, error) {
	body, err := json.Marshal(GeminiRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: req.Prompt}}}},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     req.Temperature,
			TopP:            req.TopP,
			TopK:            req.TopK,
			MaxOutputTokens: req.MaxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(c.endpoint, "/"), req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("x-goog-api-key", c.apiKey)
	} else {
		token, err := c.tokenSource.Token()
		if err != nil {
			return "", fmt.Errorf("could not get access token: %w", err)
		}
		token.SetAuthHeader(httpReq)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini API error %d: %s", resp.StatusCode, b)
	}

	var gemResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gemResp); err != nil {
		return "", fmt.Errorf("could not decode gemini response: %w", err)
	}

	for _, cand := range gemResp.Candidates {
		for _, p := range cand.Content.Parts {
			if t := strings.TrimSpace(p.Text); t != "" {
				return t, nil
			}
		}
	}
	return "", fmt.Errorf("no text returned")
}
