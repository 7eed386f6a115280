// Package openai provides an implementation of model.Model on top of the
// OpenAI Chat Completions API. Groq exposes the same API, so the default
// configuration points the client at Groq's OpenAI-compatible endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/agentdesk/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible API root.
	GroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is the chat model used when none is configured.
	DefaultGroqModel = "mixtral-8x7b-32768"
)

// Options configure the OpenAI model adapter.
// MaxCompletionTokens is the ceiling applied to every request; a smaller
// per-request budget wins.
type Options struct {
	Provider            string
	Model               string
	BaseURL             string
	APIKey              string
	Temperature         float64
	MaxCompletionTokens int64
	RequestTimeout      time.Duration
}

// Model wraps the Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

func defaultOptions() Options {
	return Options{
		Provider:            "groq",
		Model:               DefaultGroqModel,
		BaseURL:             GroqBaseURL,
		Temperature:         0.7,
		MaxCompletionTokens: 2048,
		RequestTimeout:      60 * time.Second,
	}
}

// NewModel creates a new model with its own client. SDK level retries are
// disabled; retrying is left to the agent layer.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.RequestTimeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(opts.RequestTimeout))
	}

	client := openai.NewClient(clientOpts...)
	return &Model{client: &client, opts: opts}
}

// NewModelFromClient creates a new model from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model with a single non-streaming completion.
func (m *Model) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	out := make(chan model.Response, 1)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)

		resp, err := m.client.Chat.Completions.New(ctx, m.buildParams(req))
		if err != nil {
			errCh <- m.classify(err)
			return
		}
		r, err := toResponse(resp)
		if err != nil {
			errCh <- err
			return
		}
		out <- r
	}()
	return out, errCh
}

// buildMessages converts the normalized prompt into chat message params.
// Unknown roles are sent as user messages.
func buildMessages(msgs []model.Message) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, msg := range msgs {
		switch msg.Role {
		case model.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	return messages
}

func (m *Model) buildParams(req model.Request) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.tokenBudget(req.MaxTokens)),
	}
}

func (m *Model) tokenBudget(requested int) int64 {
	budget := m.opts.MaxCompletionTokens
	if requested > 0 && (budget <= 0 || int64(requested) < budget) {
		budget = int64(requested)
	}
	return budget
}

func (m *Model) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return model.NewAPIError(m.opts.Provider, apiErr.StatusCode, err)
	}
	return model.NewAPIError(m.opts.Provider, 0, err)
}

func toResponse(resp *openai.ChatCompletion) (model.Response, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return model.Response{}, model.ErrNoChoices
	}
	ch0 := resp.Choices[0]
	if ch0.Message.Content == "" {
		return model.Response{}, fmt.Errorf("finish reason %q: %w", ch0.FinishReason, model.ErrEmptyCompletion)
	}
	return model.Response{
		ID:           resp.ID,
		Content:      ch0.Message.Content,
		FinishReason: ch0.FinishReason,
		Usage: &model.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Info returns metadata describing this model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: m.opts.Provider,
	}
}
