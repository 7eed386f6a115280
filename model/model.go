package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrNoChoices is returned when a provider answers without any completion choice.
	ErrNoChoices = errors.New("no choices returned")
	// ErrEmptyCompletion is returned when a generation finished without producing text.
	ErrEmptyCompletion = errors.New("empty completion")
)

// Message is a single role/content pair of a prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage is a convenience constructor for a system role message.
func SystemMessage(content string) Message { return Message{Role: RoleSystem, Content: content} }

// UserMessage is a convenience constructor for a user role message.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }

// Request captures the ordered prompt and the completion token budget.
// A MaxTokens of zero leaves the budget to the provider configuration.
type Request struct {
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion emitted by a model.
type Response struct {
	ID           string      `json:"id"`
	Content      string      `json:"content"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "groq", "openai", "anthropic", "mock"
}

// Model is the minimal interface required by agents to drive generation.
// Generate closes both channels once the call has finished.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Complete drives a single Generate call to completion and returns the last
// response. The completion text is returned verbatim.
func Complete(ctx context.Context, m Model, req Request) (Response, error) {
	respCh, errCh := m.Generate(ctx, req)

	var (
		last Response
		got  bool
	)
	for respCh != nil || errCh != nil {
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case r, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}
			last, got = r, true
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return Response{}, err
			}
		}
	}
	if !got || last.Content == "" {
		return Response{}, ErrEmptyCompletion
	}
	return last, nil
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed by the content of the last user message; queued errors
// are returned (in order) before any response is produced.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses map[string]string
	errs      []error
	requests  []Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a user prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// QueueError makes the next Generate calls fail with the given errors, one per call.
func (m *MockModel) QueueError(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, errs...)
}

// Requests returns a copy of every request received so far.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Calls returns the number of Generate invocations.
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 1)
	errCh := make(chan error, 1)

	m.mu.Lock()
	m.requests = append(m.requests, req)
	var queued error
	if len(m.errs) > 0 {
		queued, m.errs = m.errs[0], m.errs[1:]
	}
	responses := m.responses
	m.mu.Unlock()

	go func() {
		defer close(respCh)
		defer close(errCh)
		if queued != nil {
			errCh <- queued
			return
		}
		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		input := lastUserContent(req.Messages)

		m.mu.Lock()
		full := responses[input]
		m.mu.Unlock()
		if full == "" {
			full = fmt.Sprintf("Mock response to: %s", input)
		}

		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{
			Content:      full,
			FinishReason: "stop",
			Usage: &TokenUsage{
				PromptTokens:     len(strings.Fields(input)),
				CompletionTokens: len(strings.Fields(full)),
				TotalTokens:      len(strings.Fields(input)) + len(strings.Fields(full)),
			},
		}:
		}
	}()
	return respCh, errCh
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }

func lastUserContent(msgs []Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return msgs[i].Content
		}
	}
	return msgs[len(msgs)-1].Content
}
