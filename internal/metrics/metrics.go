// Package metrics holds the Prometheus collectors for model calls, pipeline
// runs and HTTP requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agentdesk"

// Metrics groups every collector. It implements model.Recorder and
// pipeline.Recorder.
type Metrics struct {
	llmCalls        *prometheus.CounterVec
	llmCallDuration *prometheus.HistogramVec
	llmTokens       *prometheus.CounterVec
	pipelineRuns    *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_calls_total",
				Help:      "Total number of model calls",
			},
			[]string{"provider", "model", "status"},
		),
		llmCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_call_duration_seconds",
				Help:      "Model call duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"provider", "model"},
		),
		llmTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "Total number of tokens reported by the model backend",
			},
			[]string{"provider", "model"},
		),
		pipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of task pipeline runs",
			},
			[]string{"task", "status"},
		),
		pipelineLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pipeline_run_duration_seconds",
				Help:      "Task pipeline duration in seconds",
				Buckets:   []float64{1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"task"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.llmCalls,
		m.llmCallDuration,
		m.llmTokens,
		m.pipelineRuns,
		m.pipelineLatency,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveLLMCall records a finished model call.
func (m *Metrics) ObserveLLMCall(provider, model string, dur time.Duration, tokens int, err error) {
	m.llmCalls.WithLabelValues(provider, model, status(err)).Inc()
	m.llmCallDuration.WithLabelValues(provider, model).Observe(dur.Seconds())
	if tokens > 0 {
		m.llmTokens.WithLabelValues(provider, model).Add(float64(tokens))
	}
}

// ObservePipelineRun records a finished pipeline run.
func (m *Metrics) ObservePipelineRun(task string, dur time.Duration, err error) {
	m.pipelineRuns.WithLabelValues(task, status(err)).Inc()
	m.pipelineLatency.WithLabelValues(task).Observe(dur.Seconds())
}

// ObserveHTTPRequest records a served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, code int, dur time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
