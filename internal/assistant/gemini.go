package assistant

import (
	"context"
	"fmt"

	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/version"
	"google.golang.org/genai"
)

// GeminiCompleter answers prompts with the Gemini API.
type GeminiCompleter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiCompleter creates a Gemini backed Completer.
func NewGeminiCompleter(ctx context.Context, cfg *config.AssistantConfig) (*GeminiCompleter, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Headers: map[string][]string{
				"User-Agent": {fmt.Sprintf("Moneta/%s", version.Version)},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiCompleter{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature: genai.Ptr(cfg.Temperature),
			TopP:        genai.Ptr(cfg.TopP),
			TopK:        genai.Ptr(cfg.TopK),
		},
	}, nil
}

// Complete sends the prompt as a fresh single-turn conversation.
func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
