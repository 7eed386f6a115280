package agent

import (
	"context"
	"time"

	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
)

// Registry keys of the built-in agents.
const (
	KeySummarize             = "summarize"
	KeyWriteArticle          = "write_article"
	KeySanitizeData          = "sanitize_data"
	KeySummarizeValidator    = "summarize_validator"
	KeyWriteArticleValidator = "write_article_validator"
	KeySanitizeDataValidator = "sanitize_data_validator"
	KeyRefiner               = "refiner"
	KeyValidator             = "validator"
)

// Input is the payload handed to an agent. Text is the original user input;
// Draft and Refined carry the output of earlier pipeline steps when present.
type Input struct {
	Text    string `json:"text"`
	Draft   string `json:"draft,omitempty"`
	Refined string `json:"refined,omitempty"`
}

// Text builds an Input that only carries the original text.
func Text(s string) Input { return Input{Text: s} }

// Latest returns the most processed version available: Refined, then Draft,
// then Text.
func (in Input) Latest() string {
	switch {
	case in.Refined != "":
		return in.Refined
	case in.Draft != "":
		return in.Draft
	default:
		return in.Text
	}
}

// Agent formats a prompt for its input and returns the model's answer verbatim.
type Agent interface {
	Name() string
	Execute(ctx context.Context, in Input) (string, error)
}

// Config is applied at construction time and never mutated afterwards.
type Config struct {
	// MaxRetries is the number of extra attempts after a transient backend failure.
	MaxRetries int
	// Verbose logs every prompt and reply at info level.
	Verbose bool
	// Model is the backend every call is sent to.
	Model model.Model
	// Logger defaults to logging.NoOpLogger.
	Logger logging.Logger
	// RetryInterval is the initial backoff between attempts.
	RetryInterval time.Duration
}

// Factory constructs an agent from configuration.
type Factory func(cfg Config) Agent
