package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/agentdesk/agent"
)

var (
	// ErrUnknownTask is returned for task names that do not map to a pipeline.
	ErrUnknownTask = errors.New("invalid task type")
	// ErrEmptyInput is returned when the input text is blank.
	ErrEmptyInput = errors.New("task and text are required")
)

// Task identifies one of the supported pipelines by its main agent key.
type Task string

// Supported tasks.
const (
	TaskSummarize    Task = agent.KeySummarize
	TaskWriteArticle Task = agent.KeyWriteArticle
	TaskSanitizeData Task = agent.KeySanitizeData
)

var labels = map[Task]string{
	TaskSummarize:    "Summarize Medical Text",
	TaskWriteArticle: "Write and Refine Research Article",
	TaskSanitizeData: "Sanitize Medical Data (PHI)",
}

// Tasks returns all supported tasks in a stable order.
func Tasks() []Task {
	return []Task{TaskSummarize, TaskWriteArticle, TaskSanitizeData}
}

// ParseTask accepts either a registry key ("summarize") or the display label
// ("Summarize Medical Text"). Matching is case-insensitive.
func ParseTask(s string) (Task, error) {
	s = strings.TrimSpace(s)
	for _, t := range Tasks() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, labels[t]) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTask, s)
}

// Label returns the human readable task name.
func (t Task) Label() string { return labels[t] }

// String implements fmt.Stringer.
func (t Task) String() string { return string(t) }

// MainAgent is the registry key producing the first draft.
func (t Task) MainAgent() string { return string(t) }

// RefinerAgent is the registry key that refines the draft.
func (t Task) RefinerAgent() string { return agent.KeyRefiner }

// ValidatorAgent is the registry key reviewing the task output.
func (t Task) ValidatorAgent() string { return string(t) + "_validator" }
