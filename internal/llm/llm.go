// Package llm talks to an OpenAI-compatible chat completion endpoint
// (DeepSeek by default) to produce the pet's replies.
package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-chat"
)

// ErrMissingAPIKey is returned by New without an API key.
var ErrMissingAPIKey = errors.New("missing API key")

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// MaxRetries is handed to the SDK, which retries 408/409/429/5xx.
	MaxRetries int
	// Timeout bounds a single Generate call. Zero means no timeout.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client generates replies through chat completions.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New returns a Client for cfg.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(cfg.MaxRetries),
	)
	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Generate sends the system prompt and user message and returns the cleaned reply.
func (c *Client) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	c.logger.Debug("chat completion",
		zap.String("model", c.model),
		zap.Int("system_len", len(systemPrompt)),
		zap.Int("user_len", len(userMessage)))

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}

	reply := cleanReply(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("chat completion: empty reply")
	}
	c.logger.Debug("chat completion done",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens))
	return reply, nil
}

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// cleanReply drops reasoning blocks and surrounding whitespace.
func cleanReply(reply string) string {
	reply = thinkRe.ReplaceAllString(reply, "")
	return strings.TrimSpace(reply)
}
