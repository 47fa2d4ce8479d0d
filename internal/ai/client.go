// Package ai implements the external category classifier against an
// OpenAI-compatible chat completion endpoint.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/amanzav/scribe/internal/classify"
	"github.com/amanzav/scribe/internal/common"
	"github.com/amanzav/scribe/internal/config"
	"github.com/amanzav/scribe/internal/model"
)

// Client implements classify.ExternalClassifier over the OpenAI chat API.
// Custom base URLs cover OpenAI-compatible providers (OpenRouter, Ollama,
// local gateways).
type Client struct {
	api     *openai.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	model   string
	timeout time.Duration
	retry   common.RetryOptions
}

// NewClient builds a classifier client from the AI config block. The caller
// is expected to have checked cfg.Enabled() first.
func NewClient(cfg config.AI, logger *slog.Logger) (*Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "openrouter", "ollama", "compatible":
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Provider)
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey())
	if cfg.Endpoint != "" {
		apiCfg.BaseURL = cfg.Endpoint
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(2), 1),
		retry: common.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
		},
	}, nil
}

const systemPrompt = "You are a file categorizer for a student's course folders. " +
	"Respond with exactly one category name from the allowed list and nothing else."

// ClassifyCategory submits filename, origin URL and course code and returns
// the raw label. The caller normalizes it against the allowed set. The call
// is bounded by the configured timeout so a stalled endpoint degrades to the
// deterministic fallback instead of stalling the batch.
func (c *Client) ClassifyCategory(ctx context.Context, req classify.Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildPrompt(req)

	var label string
	err := common.WithRetry(ctx, func() error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0,
			MaxTokens:   8,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			c.logger.Warn("classifier request failed",
				"file", req.Filename,
				"error", err)
			return &common.RetryableError{Err: err, Retryable: true}
		}
		if len(resp.Choices) == 0 {
			return &common.RetryableError{
				Err:       fmt.Errorf("no choices in response"),
				Retryable: true,
			}
		}
		label = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	}, c.retry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrClassifierUnavailable, err)
	}

	c.logger.Debug("external classifier responded",
		"file", req.Filename,
		"label", label)

	return label, nil
}

// buildPrompt lists the allowed labels and the facts known about the file.
func buildPrompt(req classify.Request) string {
	var b strings.Builder
	b.WriteString("Allowed categories:\n")
	for _, cat := range model.AllowedCategories {
		fmt.Fprintf(&b, "- %s\n", cat)
	}
	fmt.Fprintf(&b, "\nFilename: %s\n", req.Filename)
	if req.OriginURL != "" {
		fmt.Fprintf(&b, "Downloaded from: %s\n", req.OriginURL)
	}
	if req.CourseCode != "" {
		fmt.Fprintf(&b, "Course: %s\n", req.CourseCode)
	}
	b.WriteString("\nPick the single best category. Use Misc when no specific category applies.")
	return b.String()
}
