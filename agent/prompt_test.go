package agent

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDataTool_BuildsTwoMessages(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	tool := NewSanitizeDataTool(testConfig(m, 0))
	payload := "Patient John Doe, DOB 1990-01-01"

	out, err := tool.Execute(context.Background(), Text(payload))
	require.NoError(t, err)

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	msgs := reqs[0].Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)
	assert.Equal(t, "You are an AI assistant that sanitizes medical data by removing Protected Health Information (PHI).", msgs[0].Content)
	assert.Equal(t, model.RoleUser, msgs[1].Role)
	assert.Equal(t, "Remove all PHI from the following data:\n\n"+payload+"\n\nSanitized Data:", msgs[1].Content)
	assert.Equal(t, 500, reqs[0].MaxTokens)

	// the backend text is returned unmodified
	assert.Equal(t, "Mock response to: "+msgs[1].Content, out)
}

func TestSanitizeDataTool_SystemMessageIsConstant(t *testing.T) {
	tool := NewSanitizeDataTool(Config{})
	a, err := tool.Messages(Text("one"))
	require.NoError(t, err)
	b, err := tool.Messages(Text("two"))
	require.NoError(t, err)
	assert.Equal(t, a[0], b[0])
	assert.NotEqual(t, a[1], b[1])
}

func TestPromptAgent_PayloadIsNotEscaped(t *testing.T) {
	tool := NewSanitizeDataTool(Config{})
	msgs, err := tool.Messages(Text(`<Mr. O'Brien> & "MRN 12"`))
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, `<Mr. O'Brien> & "MRN 12"`)
}

func TestPromptAgent_ProviderError(t *testing.T) {
	boom := errors.New("boom")
	a := NewPromptAgent("custom", Config{}, PromptSpec{
		System: NewInstructionFromText("sys"),
		User:   NewInstructionFromFunc(func(Input) (string, error) { return "", boom }),
	})
	_, err := a.Execute(context.Background(), Text("x"))
	assert.ErrorIs(t, err, boom)
}

func TestInstruction_Static(t *testing.T) {
	inst := NewInstructionFromText("Refine: {{.Latest}}")
	assert.True(t, inst.IsStatic())
	got, err := inst.Resolve(Input{Text: "t", Draft: "d"})
	require.NoError(t, err)
	assert.Equal(t, "Refine: d", got)
}

func TestInstruction_Provider(t *testing.T) {
	inst := NewInstructionFromFunc(func(in Input) (string, error) { return "dynamic " + in.Text, nil })
	assert.False(t, inst.IsStatic())
	got, err := inst.Resolve(Text("x"))
	require.NoError(t, err)
	assert.Equal(t, "dynamic x", got)
}

func TestPromptAgent_ReportsAgentCall(t *testing.T) {
	var buf bytes.Buffer
	cfg := testConfig(model.NewMockModel("mock", "mock"), 0)
	cfg.Logger = logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelInfo, Format: "text", Output: &buf})

	_, err := NewSummarizeTool(cfg).Execute(context.Background(), Text("note"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Agent execution completed")
	assert.Contains(t, buf.String(), "agent=SummarizeTool")

	buf.Reset()
	cfg.Model = nil
	_, err = NewSummarizeTool(cfg).Execute(context.Background(), Text("note"))
	require.ErrorIs(t, err, ErrNoModel)
	assert.Contains(t, buf.String(), "Agent execution failed")
}
