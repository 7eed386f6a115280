package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentdesk/config"
	"github.com/hupe1980/agentdesk/model"
)

func withMockModel(t *testing.T) *model.MockModel {
	t.Helper()
	mock := model.NewMockModel("mock", "mock")
	orig := newModel
	newModel = func(config.ModelConfig) (model.Model, error) { return mock, nil }
	t.Cleanup(func() { newModel = orig })

	t.Setenv("AGENTDESK_PROVIDER", config.ProviderGroq)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "error")
	return mock
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildModel(t *testing.T) {
	tests := []struct {
		name     string
		mc       config.ModelConfig
		wantName string
		wantProv string
	}{
		{"groq default", config.ModelConfig{Provider: config.ProviderGroq, APIKey: "k"}, "mixtral-8x7b-32768", "groq"},
		{"openai default", config.ModelConfig{Provider: config.ProviderOpenAI, APIKey: "k"}, DefaultOpenAIModel, "openai"},
		{"openai named", config.ModelConfig{Provider: config.ProviderOpenAI, APIKey: "k", Name: "gpt-4.1"}, "gpt-4.1", "openai"},
		{"anthropic named", config.ModelConfig{Provider: config.ProviderAnthropic, APIKey: "k", Name: "claude-3-5-haiku-latest"}, "claude-3-5-haiku-latest", "anthropic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := buildModel(tt.mc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, m.Info().Name)
			assert.Equal(t, tt.wantProv, m.Info().Provider)
		})
	}

	_, err := buildModel(config.ModelConfig{Provider: "cohere"})
	assert.Error(t, err)
}

func TestAgentsCmd(t *testing.T) {
	out, err := execute(t, "", "agents")
	require.NoError(t, err)

	lines := strings.Fields(out)
	assert.Len(t, lines, 8)
	assert.Contains(t, lines, "sanitize_data")
	assert.Contains(t, lines, "refiner")
}

func TestRunCmd(t *testing.T) {
	mock := withMockModel(t)

	out, err := execute(t, "", "run", "--task", "summarize", "Patient presents with fever.")
	require.NoError(t, err)
	assert.Contains(t, out, "== Summarize Medical Text ==")
	assert.Contains(t, out, "== Validation ==")
	assert.Equal(t, 3, mock.Calls())
}

func TestRunCmd_JSONFromStdin(t *testing.T) {
	withMockModel(t)

	out, err := execute(t, "John Doe, born 1970-01-01", "run", "-t", "sanitize_data", "--json", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"task": "sanitize_data"`)
	assert.Contains(t, out, `"mainResult": "Mock response to: `)
}

func TestRunCmd_UnknownTask(t *testing.T) {
	withMockModel(t)

	_, err := execute(t, "", "run", "--task", "translate", "hello")
	assert.ErrorContains(t, err, "invalid task type")
}

func TestAgentCmd(t *testing.T) {
	mock := withMockModel(t)

	out, err := execute(t, "", "agent", "summarize", "Short note.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Mock response to: "))
	assert.Equal(t, 1, mock.Calls())

	_, err = execute(t, "", "agent", "translator", "hi")
	assert.ErrorContains(t, err, "agent 'translator' not found")
}

func TestMissingAPIKey(t *testing.T) {
	withMockModel(t)
	t.Setenv("GROQ_API_KEY", "")

	_, err := execute(t, "", "agent", "summarize", "hi")
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}

func TestReadText(t *testing.T) {
	got, err := readText(strings.NewReader("from stdin"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readText(strings.NewReader("ignored"), "literal")
	require.NoError(t, err)
	assert.Equal(t, "literal", got)
}
