package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLLMCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLLMCall("groq", "mixtral", time.Second, 30, nil)
	m.ObserveLLMCall("groq", "mixtral", time.Second, 0, errors.New("x"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("groq", "mixtral", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("groq", "mixtral", "error")))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.llmTokens.WithLabelValues("groq", "mixtral")))
}

func TestObservePipelineAndHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePipelineRun("summarize", time.Second, nil)
	m.ObserveHTTPRequest(http.MethodPost, "/api/task", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues("summarize", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/task", "200")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObservePipelineRun("summarize", time.Second, nil)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `agentdesk_pipeline_runs_total{status="success",task="summarize"} 1`)
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
