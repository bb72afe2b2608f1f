// Package assistant forwards finance questions to a generative AI model.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/database"
)

var (
	// ErrNotConfigured is returned when no API key is configured.
	ErrNotConfigured = errors.New("assistant is not configured")
	// ErrEmptyResponse is returned when the model returned no text.
	ErrEmptyResponse = errors.New("assistant returned an empty response")
)

// Completer sends a single prompt to a model and returns its text answer.
// Every call is an independent exchange without history.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Bridge builds finance restricted prompts and forwards them to a Completer.
type Bridge struct {
	completer Completer
	currency  string
	timeout   time.Duration
}

// New creates a new bridge. A nil completer yields ErrNotConfigured on every Ask.
func New(cfg *config.AssistantConfig, completer Completer) *Bridge {
	return &Bridge{
		completer: completer,
		currency:  cfg.Currency,
		timeout:   cfg.Timeout,
	}
}

// Enabled reports whether the bridge can answer questions.
func (b *Bridge) Enabled() bool {
	return b != nil && b.completer != nil
}

// Ask sends the user's prompt, optionally with their assets, and returns the HTML answer.
func (b *Bridge) Ask(ctx context.Context, userPrompt string, includeAssets bool, assets []database.FinancialAsset) (string, error) {
	if !b.Enabled() {
		return "", ErrNotConfigured
	}

	prompt := BuildPrompt(b.currency, userPrompt, includeAssets, assets)

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := b.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	log.Debug("assistant answered", "duration", time.Since(start), "includeAssets", includeAssets)

	text = cleanResponse(text)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
