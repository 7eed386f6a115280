// Package agentdesk provides the agent registry that lazily builds and caches
// the prompt-driven agents of the agent package. Most applications interact
// with this package by:
//  1. Creating a Manager via NewManager (model, retries, verbosity, logger)
//  2. Looking agents up by registry key with Get
//  3. Calling Execute on the returned agent
//
// Every agent a Manager builds shares the Manager's configuration. Each key
// is constructed at most once per Manager; later lookups return the cached
// instance.
package agentdesk

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
)

// ErrUnknownAgent is matched by errors.Is for every UnknownAgentError.
var ErrUnknownAgent = errors.New("agent not found")

// UnknownAgentError reports a lookup of a key outside the registry.
type UnknownAgentError struct {
	Name string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("agent '%s' not found", e.Name)
}

// Is makes errors.Is(err, ErrUnknownAgent) succeed.
func (e *UnknownAgentError) Is(target error) bool { return target == ErrUnknownAgent }

// DefaultFactories returns the built-in registry keyed by agent name.
func DefaultFactories() map[string]agent.Factory {
	return map[string]agent.Factory{
		agent.KeySummarize:             func(c agent.Config) agent.Agent { return agent.NewSummarizeTool(c) },
		agent.KeyWriteArticle:          func(c agent.Config) agent.Agent { return agent.NewWriteArticleTool(c) },
		agent.KeySanitizeData:          func(c agent.Config) agent.Agent { return agent.NewSanitizeDataTool(c) },
		agent.KeySummarizeValidator:    func(c agent.Config) agent.Agent { return agent.NewSummarizeValidatorAgent(c) },
		agent.KeyWriteArticleValidator: func(c agent.Config) agent.Agent { return agent.NewWriteArticleValidatorAgent(c) },
		agent.KeySanitizeDataValidator: func(c agent.Config) agent.Agent { return agent.NewSanitizeDataValidatorAgent(c) },
		agent.KeyRefiner:               func(c agent.Config) agent.Agent { return agent.NewRefinerAgent(c) },
		agent.KeyValidator:             func(c agent.Config) agent.Agent { return agent.NewValidatorAgent(c) },
	}
}

// Options configures the Manager.
type Options struct {
	// MaxRetries is handed to every agent (extra attempts on transient failure).
	MaxRetries int
	// Verbose is handed to every agent.
	Verbose bool
	// RetryInterval is the initial backoff between attempts.
	RetryInterval time.Duration
	// Model is the backend every agent calls.
	Model model.Model
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Factories is the static registry (defaults to DefaultFactories).
	Factories map[string]agent.Factory
}

// Manager owns the name to factory registry and the cache of built agents.
// It is safe for concurrent use; each agent is constructed exactly once.
type Manager struct {
	opts      Options
	factories map[string]agent.Factory

	mu     sync.Mutex
	agents map[string]agent.Agent
}

// NewManager creates a Manager with MaxRetries 2 and Verbose true unless
// overridden.
func NewManager(optFns ...func(o *Options)) *Manager {
	opts := Options{
		MaxRetries:    2,
		Verbose:       true,
		RetryInterval: agent.DefaultRetryInterval,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	factories := opts.Factories
	if factories == nil {
		factories = DefaultFactories()
	}
	// the registry is fixed at construction
	registry := make(map[string]agent.Factory, len(factories))
	for name, f := range factories {
		registry[name] = f
	}

	return &Manager{
		opts:      opts,
		factories: registry,
		agents:    make(map[string]agent.Agent),
	}
}

// Get returns the agent registered under name, building it on first use.
func (m *Manager) Get(name string) (agent.Agent, error) {
	factory, ok := m.factories[name]
	if !ok {
		m.opts.Logger.Error("Agent not found", "agent", name)
		return nil, &UnknownAgentError{Name: name}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.agents[name]; ok {
		return a, nil
	}

	a := factory(agent.Config{
		MaxRetries:    m.opts.MaxRetries,
		Verbose:       m.opts.Verbose,
		Model:         m.opts.Model,
		Logger:        m.opts.Logger,
		RetryInterval: m.opts.RetryInterval,
	})
	m.agents[name] = a
	m.opts.Logger.Info("Initialized agent", "agent", name)

	return a, nil
}

// Names returns all registry keys in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.factories))
	for name := range m.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is a registry key.
func (m *Manager) Has(name string) bool {
	_, ok := m.factories[name]
	return ok
}

// Loaded reports whether the agent for name has already been constructed.
func (m *Manager) Loaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.agents[name]
	return ok
}

// Model returns the backend shared by all agents.
func (m *Manager) Model() model.Model { return m.opts.Model }
