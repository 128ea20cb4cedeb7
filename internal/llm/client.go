// Package llm constructs an Anthropic API client from a resolved
// credential. It is the thin consumer end of credential resolution: the
// only place where "no credential" becomes an actual error, because a
// client without a key cannot do anything.
package llm

import (
	"fmt"

	"github.com/teilomillet/gollm"

	"github.com/agencykit/claudekey/internal/credentials"
	ckerrors "github.com/agencykit/claudekey/internal/errors"
)

// DefaultModel is used when the caller does not pick one
const DefaultModel = "claude-sonnet-4-5-20250514"

// Option configures client construction
type Option func(*clientConfig)

type clientConfig struct {
	model       string
	maxTokens   int
	temperature float64
	extraOpts   []gollm.ConfigOption
}

// WithModel sets the model for the client
func WithModel(model string) Option {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithMaxTokens sets the default max tokens
func WithMaxTokens(n int) Option {
	return func(c *clientConfig) {
		c.maxTokens = n
	}
}

// WithTemperature sets the default temperature
func WithTemperature(t float64) Option {
	return func(c *clientConfig) {
		c.temperature = t
	}
}

// WithGollmOptions adds extra gollm configuration options
func WithGollmOptions(opts ...gollm.ConfigOption) Option {
	return func(c *clientConfig) {
		c.extraOpts = append(c.extraOpts, opts...)
	}
}

// NewClient resolves a credential and builds an Anthropic gollm client
// with it. When resolution comes back empty it fails with an error
// naming every source that was consulted.
func NewClient(resolver *credentials.Resolver, opts ...Option) (gollm.LLM, error) {
	key, ok := resolver.APIKey()
	if !ok {
		return nil, ckerrors.NoCredentialError(credentials.SourcesTried())
	}
	return newClientWithKey(key, opts...)
}

func newClientWithKey(key string, opts ...Option) (gollm.LLM, error) {
	cfg := &clientConfig{
		model:       DefaultModel,
		maxTokens:   4096,
		temperature: 0.7,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	gollmOpts := []gollm.ConfigOption{
		gollm.SetProvider("anthropic"),
		gollm.SetModel(cfg.model),
		gollm.SetMaxTokens(cfg.maxTokens),
		gollm.SetTemperature(cfg.temperature),
		gollm.SetAPIKey(key),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	gollmOpts = append(gollmOpts, cfg.extraOpts...)

	llm, err := gollm.NewLLM(gollmOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Anthropic client: %w", err)
	}
	return llm, nil
}
