package model

import (
	"context"
	"time"

	"github.com/hupe1980/agentdesk/logging"
)

// Recorder receives one observation per finished model call.
type Recorder interface {
	ObserveLLMCall(provider, model string, dur time.Duration, tokens int, err error)
}

// InstrumentedModel wraps a Model and reports latency, token usage and outcome
// of every call to a Recorder and a Logger.
type InstrumentedModel struct {
	next     Model
	recorder Recorder
	logger   logging.Logger
}

// Instrument wraps m. A nil recorder or logger disables that sink.
func Instrument(m Model, recorder Recorder, logger logging.Logger) *InstrumentedModel {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &InstrumentedModel{next: m, recorder: recorder, logger: logger}
}

// Generate implements Model by proxying the wrapped model's channels.
func (im *InstrumentedModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	out := make(chan Response, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		start := time.Now()
		info := im.next.Info()
		respCh, innerErrCh := im.next.Generate(ctx, req)

		var (
			tokens  int
			callErr error
		)
		for respCh != nil || innerErrCh != nil {
			select {
			case r, ok := <-respCh:
				if !ok {
					respCh = nil
					continue
				}
				if r.Usage != nil {
					tokens = r.Usage.TotalTokens
				}
				out <- r
			case err, ok := <-innerErrCh:
				if !ok {
					innerErrCh = nil
					continue
				}
				if err != nil {
					callErr = err
					errCh <- err
				}
			}
		}

		dur := time.Since(start)
		if im.recorder != nil {
			im.recorder.ObserveLLMCall(info.Provider, info.Name, dur, tokens, callErr)
		}
		if cl, ok := im.logger.(logging.LLMCallLogger); ok {
			cl.LogLLMCall(info.Provider, info.Name, tokens, dur, callErr == nil, callErr)
			return
		}
		args := []any{"provider", info.Provider, "model", info.Name, "token_count", tokens, "duration", dur}
		if callErr != nil {
			im.logger.Error("LLM call failed", append(args, "error", callErr.Error())...)
			return
		}
		im.logger.Debug("LLM call completed", args...)
	}()

	return out, errCh
}

// Info implements Model.
func (im *InstrumentedModel) Info() Info { return im.next.Info() }
