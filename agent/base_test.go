package agent

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hupe1980/agentdesk/internal/testutil"
	"github.com/hupe1980/agentdesk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(m model.Model, retries int) Config {
	return Config{MaxRetries: retries, Model: m, RetryInterval: time.Millisecond}
}

func TestNewBaseAgent_Defaults(t *testing.T) {
	b := NewBaseAgent("a", Config{MaxRetries: -3, Verbose: true})
	assert.Equal(t, "a", b.Name())
	assert.Equal(t, "Agent a", b.Description())
	assert.Equal(t, 0, b.MaxRetries())
	assert.True(t, b.Verbose())
	assert.Equal(t, DefaultRetryInterval, b.cfg.RetryInterval)
	assert.NotNil(t, b.cfg.Logger)
}

func TestCall_NoModel(t *testing.T) {
	b := NewBaseAgent("a", Config{})
	_, err := b.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestCall_RetriesTransientFailures(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("x", "ok")
	m.QueueError(
		model.NewAPIError("mock", http.StatusServiceUnavailable, errors.New("down")),
		model.NewAPIError("mock", http.StatusTooManyRequests, errors.New("slow")),
	)
	logger := testutil.NewRecordingLogger()
	cfg := testConfig(m, 2)
	cfg.Logger = logger
	b := NewBaseAgent("a", cfg)

	out, err := b.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 3, m.Calls())
	assert.Len(t, logger.Level("WARN"), 2)
}

func TestCall_GivesUpAfterMaxRetries(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	down := model.NewAPIError("mock", http.StatusBadGateway, errors.New("down"))
	m.QueueError(down, down, down)
	b := NewBaseAgent("a", testConfig(m, 1))

	_, err := b.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "2 attempt(s)")
	assert.Equal(t, 2, m.Calls())
}

func TestCall_PermanentErrorIsNotRetried(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	bad := model.NewAPIError("mock", http.StatusUnauthorized, errors.New("bad key"))
	m.QueueError(bad)
	b := NewBaseAgent("a", testConfig(m, 5))

	_, err := b.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, bad)
	assert.Equal(t, 1, m.Calls())
}

func TestCall_ZeroRetriesMeansOneAttempt(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.QueueError(model.NewAPIError("mock", 500, errors.New("x")))
	b := NewBaseAgent("a", testConfig(m, 0))

	_, err := b.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	require.Error(t, err)
	assert.Equal(t, 1, m.Calls())
}

func TestCall_VerboseLogs(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	m.AddResponse("PROMPT-TEXT", "REPLY-TEXT")
	logger := testutil.NewRecordingLogger()
	cfg := testConfig(m, 0)
	cfg.Logger = logger

	quiet := NewBaseAgent("quiet", cfg)
	_, err := quiet.Call(context.Background(), []model.Message{model.UserMessage("x")}, 10)
	require.NoError(t, err)
	assert.Empty(t, logger.Entries())

	cfg.Verbose = true
	loud := NewBaseAgent("loud", cfg)
	_, err = loud.Call(context.Background(), []model.Message{
		model.SystemMessage("SYSTEM-TEXT"),
		model.UserMessage("PROMPT-TEXT"),
	}, 10)
	require.NoError(t, err)
	assert.True(t, logger.Contains("Calling model agent=loud"))
	assert.True(t, logger.Contains("prompt=system: SYSTEM-TEXT\nuser: PROMPT-TEXT"))
	assert.True(t, logger.Contains("Model replied agent=loud"))
	assert.True(t, logger.Contains("reply=REPLY-TEXT"))
}

func TestInput_Latest(t *testing.T) {
	assert.Equal(t, "t", Text("t").Latest())
	assert.Equal(t, "d", Input{Text: "t", Draft: "d"}.Latest())
	assert.Equal(t, "r", Input{Text: "t", Draft: "d", Refined: "r"}.Latest())
}
