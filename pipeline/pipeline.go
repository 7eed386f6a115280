package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/logging"
)

// Registry hands out agents by key. *agentdesk.Manager satisfies it.
type Registry interface {
	Get(name string) (agent.Agent, error)
}

// Recorder observes finished pipeline runs.
type Recorder interface {
	ObservePipelineRun(task string, dur time.Duration, err error)
}

// Result carries the output of every step.
type Result struct {
	ID               string `json:"id"`
	Task             Task   `json:"task"`
	MainResult       string `json:"mainResult"`
	RefinementResult string `json:"refinementResult"`
	ValidationResult string `json:"validationResult"`
}

// Options configures a Runner.
type Options struct {
	Logger   logging.Logger
	Recorder Recorder
}

// Runner executes task pipelines against a registry.
type Runner struct {
	registry Registry
	opts     Options
}

// NewRunner creates a Runner.
func NewRunner(registry Registry, optFns ...func(o *Options)) *Runner {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Runner{registry: registry, opts: opts}
}

// Run executes main, refine and validate in order. The first failing step
// aborts the run; its error names the step.
func (r *Runner) Run(ctx context.Context, task Task, text string) (Result, error) {
	if _, ok := labels[task]; !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownTask, string(task))
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyInput
	}

	res := Result{ID: uuid.NewString(), Task: task}
	start := time.Now()
	logger := r.opts.Logger

	err := r.run(ctx, task, text, &res)

	dur := time.Since(start)
	if r.opts.Recorder != nil {
		r.opts.Recorder.ObservePipelineRun(string(task), dur, err)
	}
	if err != nil {
		logger.Error("Pipeline failed", "run_id", res.ID, "task", string(task), "duration", dur, "error", err.Error())
		return Result{}, err
	}
	logger.Info("Pipeline completed", "run_id", res.ID, "task", string(task), "duration", dur)
	return res, nil
}

func (r *Runner) run(ctx context.Context, task Task, text string, res *Result) error {
	var err error
	if res.MainResult, err = r.step(ctx, "main", task.MainAgent(), agent.Input{Text: text}); err != nil {
		return err
	}
	if res.RefinementResult, err = r.step(ctx, "refine", task.RefinerAgent(), agent.Input{Text: text, Draft: res.MainResult}); err != nil {
		return err
	}
	res.ValidationResult, err = r.step(ctx, "validate", task.ValidatorAgent(), agent.Input{
		Text:    text,
		Draft:   res.MainResult,
		Refined: res.RefinementResult,
	})
	return err
}

func (r *Runner) step(ctx context.Context, step, key string, in agent.Input) (string, error) {
	a, err := r.registry.Get(key)
	if err != nil {
		return "", fmt.Errorf("%s step: %w", step, err)
	}
	out, err := a.Execute(ctx, in)
	if err != nil {
		return "", fmt.Errorf("%s step: %w", step, err)
	}
	r.opts.Logger.Debug("Pipeline step completed", "step", step, "agent", key, "chars", len(out))
	return out, nil
}
