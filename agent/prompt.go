package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
)

// PromptSpec describes a two-message prompt agent.
type PromptSpec struct {
	Description string
	System      Instruction
	User        Instruction
	MaxTokens   int
}

// PromptAgent renders a fixed system instruction and a templated user
// instruction, then delegates to the backend with a fixed token budget.
type PromptAgent struct {
	BaseAgent
	system    Instruction
	user      Instruction
	maxTokens int
}

// NewPromptAgent builds a PromptAgent from a PromptSpec.
func NewPromptAgent(name string, cfg Config, spec PromptSpec) *PromptAgent {
	base := NewBaseAgent(name, cfg)
	if spec.Description != "" {
		base.description = spec.Description
	}
	return &PromptAgent{
		BaseAgent: base,
		system:    spec.System,
		user:      spec.User,
		maxTokens: spec.MaxTokens,
	}
}

// MaxTokens returns the completion budget sent with every call.
func (a *PromptAgent) MaxTokens() int { return a.maxTokens }

// Messages renders the system and user messages for in.
func (a *PromptAgent) Messages(in Input) ([]model.Message, error) {
	system, err := a.system.Resolve(in)
	if err != nil {
		return nil, fmt.Errorf("%s: render system prompt: %w", a.name, err)
	}
	user, err := a.user.Resolve(in)
	if err != nil {
		return nil, fmt.Errorf("%s: render user prompt: %w", a.name, err)
	}
	return []model.Message{model.SystemMessage(system), model.UserMessage(user)}, nil
}

// Execute implements Agent.
func (a *PromptAgent) Execute(ctx context.Context, in Input) (string, error) {
	start := time.Now()
	out, err := a.execute(ctx, in)
	if al, ok := a.cfg.Logger.(logging.AgentCallLogger); ok {
		al.LogAgentCall(a.name, time.Since(start), err == nil, err)
	}
	return out, err
}

func (a *PromptAgent) execute(ctx context.Context, in Input) (string, error) {
	messages, err := a.Messages(in)
	if err != nil {
		return "", err
	}
	return a.Call(ctx, messages, a.maxTokens)
}
