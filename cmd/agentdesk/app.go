package main

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/agentdesk"
	"github.com/hupe1980/agentdesk/config"
	"github.com/hupe1980/agentdesk/internal/metrics"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
	"github.com/hupe1980/agentdesk/model/anthropic"
	"github.com/hupe1980/agentdesk/model/openai"
	"github.com/hupe1980/agentdesk/pipeline"
)

// DefaultOpenAIModel is used for the openai provider when no model is named.
const DefaultOpenAIModel = "gpt-4o-mini"

// newModel builds the configured backend. Tests replace it.
var newModel = buildModel

// app holds the process wide components built from a Config.
type app struct {
	cfg      *config.Config
	logger   *logging.DeskLogger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	llm      model.Model
	manager  *agentdesk.Manager
	runner   *pipeline.Runner
}

func newApp(cfg *config.Config) (*app, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.NewSlogLogger(level, cfg.Logging.Format, false).WithComponent("agentdesk")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := newModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	llm := model.Instrument(base, m, logger)

	mgr := agentdesk.NewManager(func(o *agentdesk.Options) {
		o.Model = llm
		o.Logger = logger
		o.MaxRetries = cfg.MaxRetries()
		o.Verbose = cfg.Verbose()
		o.RetryInterval = cfg.Agents.RetryInterval
	})

	runner := pipeline.NewRunner(mgr, func(o *pipeline.Options) {
		o.Logger = logger
		o.Recorder = m
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: reg,
		metrics:  m,
		llm:      llm,
		manager:  mgr,
		runner:   runner,
	}, nil
}

func buildModel(mc config.ModelConfig) (model.Model, error) {
	switch mc.Provider {
	case config.ProviderGroq, config.ProviderOpenAI:
		return openai.NewModel(func(o *openai.Options) {
			o.Provider = mc.Provider
			o.APIKey = mc.APIKey
			o.Temperature = mc.Temperature
			o.MaxCompletionTokens = int64(mc.MaxTokens)
			o.RequestTimeout = mc.RequestTimeout
			if mc.Provider == config.ProviderOpenAI {
				o.BaseURL = ""
				o.Model = DefaultOpenAIModel
			}
			if mc.BaseURL != "" {
				o.BaseURL = mc.BaseURL
			}
			if mc.Name != "" {
				o.Model = mc.Name
			}
		}), nil
	case config.ProviderAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = mc.APIKey
			o.BaseURL = mc.BaseURL
			o.Temperature = mc.Temperature
			o.MaxTokens = int64(mc.MaxTokens)
			o.RequestTimeout = mc.RequestTimeout
			if mc.Name != "" {
				o.Model = anthropicsdk.Model(mc.Name)
			}
		}), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", mc.Provider)
	}
}
