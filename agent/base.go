package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
)

// DefaultRetryInterval is the initial wait before the first retry.
const DefaultRetryInterval = time.Second

// ErrNoModel is returned by Call when the agent was built without a model.
var ErrNoModel = errors.New("agent has no model configured")

// BaseAgent bundles identity, immutable configuration and the backend call
// helper. Embed it in concrete agents and supply an Execute method.
type BaseAgent struct {
	name        string
	description string
	cfg         Config
}

// NewBaseAgent constructs a BaseAgent. Negative MaxRetries are treated as zero.
func NewBaseAgent(name string, cfg Config) BaseAgent {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NoOpLogger{}
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	return BaseAgent{
		name:        name,
		description: fmt.Sprintf("Agent %s", name),
		cfg:         cfg,
	}
}

// Name returns the human-readable name for this agent.
func (b *BaseAgent) Name() string { return b.name }

// Description returns a detailed description of this agent's purpose.
func (b *BaseAgent) Description() string { return b.description }

// MaxRetries returns the number of extra attempts allowed on transient failure.
func (b *BaseAgent) MaxRetries() int { return b.cfg.MaxRetries }

// Verbose reports whether prompts and replies are logged.
func (b *BaseAgent) Verbose() bool { return b.cfg.Verbose }

// Model returns the backend this agent calls.
func (b *BaseAgent) Model() model.Model { return b.cfg.Model }

// Call sends messages to the model and returns the completion text unmodified.
//
// Retryable failures (rate limits, server errors, transport errors, empty
// completions) are attempted again with exponential backoff, at most
// MaxRetries times. Any other error is returned immediately.
func (b *BaseAgent) Call(ctx context.Context, messages []model.Message, maxTokens int) (string, error) {
	if b.cfg.Model == nil {
		return "", ErrNoModel
	}

	req := model.Request{Messages: messages, MaxTokens: maxTokens}
	if b.cfg.Verbose {
		b.cfg.Logger.Info("Calling model", "agent", b.name, "max_tokens", maxTokens, "prompt", formatPrompt(messages))
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = b.cfg.RetryInterval

	attempt := 0
	operation := func() (string, error) {
		attempt++
		resp, err := model.Complete(ctx, b.cfg.Model, req)
		if err != nil {
			if !model.IsRetryable(err) {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		return resp.Content, nil
	}

	out, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(b.cfg.MaxRetries)+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			b.cfg.Logger.Warn("Model call failed, retrying", "agent", b.name, "attempt", attempt, "wait", wait, "error", err.Error())
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%s: model call failed after %d attempt(s): %w", b.name, attempt, err)
	}

	if b.cfg.Verbose {
		b.cfg.Logger.Info("Model replied", "agent", b.name, "attempts", attempt, "reply", out)
	}
	return out, nil
}

// formatPrompt renders messages one per line as "role: content".
func formatPrompt(messages []model.Message) string {
	var sb strings.Builder
	for i, msg := range messages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
	}
	return sb.String()
}
