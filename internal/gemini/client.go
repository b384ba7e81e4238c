// Package gemini drafts product copy through the Gemini generateContent API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"spice-catalog-backend/internal/apperr"
	"spice-catalog-backend/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	requestTimeout = 30 * time.Second
	apiVersion     = "v1beta"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("gemini api key not configured")

// Details are the generated product fields.
type Details struct {
	Description          string `json:"description"`
	Origin               string `json:"origin"`
	BiologicalBackground string `json:"biologicalBackground"`
	Usage                string `json:"usage"`
	KeyCharacteristics   string `json:"keyCharacteristics"`
}

type Client struct {
	api   *genai.Client
	model string
	log   *zap.Logger
}

// NewClient builds the SDK client. Without an API key the client stays disabled.
func NewClient(cfg config.Config, log *zap.Logger) (*Client, error) {
	c := &Client{model: cfg.Gemini.Model, log: log.Named("gemini")}
	if cfg.Gemini.APIKey == "" {
		return c, nil
	}

	api, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.Gemini.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Gemini.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c.api = api
	return c, nil
}

func (c *Client) Enabled() bool {
	return c.api != nil
}

// GenerateProductDetails asks the model for the descriptive fields of a product.
func (c *Client) GenerateProductDetails(ctx context.Context, productName, category string) (*Details, error) {
	if !c.Enabled() {
		return nil, ErrNotConfigured
	}

	text, err := c.generate(ctx, buildPrompt(productName, category))
	if err != nil {
		return nil, err
	}
	details, err := parseDetails(text)
	if err != nil {
		c.log.Warn("unparsable model output", zap.String("product", productName), zap.Error(err))
		return nil, err
	}
	return details, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.4),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		c.log.Warn("gemini call failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("error calling gemini: %w", err)
	}
	c.log.Debug("gemini call finished", zap.Duration("duration", time.Since(start)))

	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range cand.Content.Parts {
			if p != nil {
				sb.WriteString(p.Text)
			}
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, nil
		}
	}
	return "", errors.New("gemini returned no candidates")
}

// asAppError classifies client failures for the HTTP layer.
func asAppError(err error) error {
	if errors.Is(err, ErrNotConfigured) {
		return apperr.Unavailable("AI generation is not configured")
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.Upstream("Failed to generate product details", err)
}
