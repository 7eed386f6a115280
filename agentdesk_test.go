package agentdesk

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/agentdesk/agent"
	"github.com/hupe1980/agentdesk/internal/testutil"
	"github.com/hupe1980/agentdesk/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager()
	assert.Equal(t, 2, m.opts.MaxRetries)
	assert.True(t, m.opts.Verbose)
	assert.Equal(t, []string{
		"refiner",
		"sanitize_data",
		"sanitize_data_validator",
		"summarize",
		"summarize_validator",
		"validator",
		"write_article",
		"write_article_validator",
	}, m.Names())
}

func TestManager_EndToEnd(t *testing.T) {
	mgr := NewManager(func(o *Options) {
		o.MaxRetries = 1
		o.Verbose = false
	})

	a, err := mgr.Get("sanitize_data")
	require.NoError(t, err)
	tool, ok := a.(*agent.SanitizeDataTool)
	require.True(t, ok)
	assert.Equal(t, 1, tool.MaxRetries())
	assert.False(t, tool.Verbose())

	again, err := mgr.Get("sanitize_data")
	require.NoError(t, err)
	assert.Same(t, tool, again)

	_, err = mgr.Get("not_a_tool")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAgent)
	assert.Contains(t, err.Error(), "not_a_tool")

	var unknown *UnknownAgentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "not_a_tool", unknown.Name)
}

func TestManager_UnknownNameDoesNotTouchCache(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	mgr := NewManager(func(o *Options) { o.Logger = logger })

	for _, name := range []string{"", "Summarize", "summarize ", "unknown"} {
		_, err := mgr.Get(name)
		assert.ErrorIs(t, err, ErrUnknownAgent, name)
		assert.False(t, mgr.Loaded(name))
	}
	assert.Empty(t, mgr.agents)
	assert.Len(t, logger.Level("ERROR"), 4)
	assert.Empty(t, logger.Level("INFO"))
}

func TestManager_LazyConstructionOncePerKey(t *testing.T) {
	logger := testutil.NewRecordingLogger()
	mgr := NewManager(func(o *Options) { o.Logger = logger })

	for _, name := range mgr.Names() {
		assert.False(t, mgr.Loaded(name))
		first, err := mgr.Get(name)
		require.NoError(t, err)
		assert.True(t, mgr.Loaded(name))

		for i := 0; i < 3; i++ {
			next, err := mgr.Get(name)
			require.NoError(t, err)
			assert.Same(t, first, next)
		}
	}

	// one informational entry per distinct agent
	assert.Len(t, logger.Level("INFO"), len(mgr.Names()))
	assert.True(t, logger.Contains("Initialized agent agent=summarize"))
}

func TestManager_SeparateManagersKeepOwnConfig(t *testing.T) {
	m1 := NewManager(func(o *Options) { o.MaxRetries = 1; o.Verbose = false })
	m2 := NewManager(func(o *Options) { o.MaxRetries = 5; o.Verbose = true })

	a1, err := m1.Get("summarize")
	require.NoError(t, err)
	a2, err := m2.Get("summarize")
	require.NoError(t, err)

	assert.NotSame(t, a1, a2)
	s1, s2 := a1.(*agent.SummarizeTool), a2.(*agent.SummarizeTool)
	assert.Equal(t, 1, s1.MaxRetries())
	assert.False(t, s1.Verbose())
	assert.Equal(t, 5, s2.MaxRetries())
	assert.True(t, s2.Verbose())
}

func TestManager_ConcurrentFirstUseBuildsOnce(t *testing.T) {
	var built atomic.Int32
	mgr := NewManager(func(o *Options) {
		o.Factories = map[string]agent.Factory{
			"counted": func(c agent.Config) agent.Agent {
				built.Add(1)
				return agent.NewRefinerAgent(c)
			},
		}
	})

	const workers = 32
	results := make([]agent.Agent, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := mgr.Get("counted")
			assert.NoError(t, err)
			results[i] = a
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), built.Load())
	for _, a := range results {
		assert.Same(t, results[0], a)
	}
}

func TestManager_RegistryIsFixedAtConstruction(t *testing.T) {
	factories := map[string]agent.Factory{
		"refiner": func(c agent.Config) agent.Agent { return agent.NewRefinerAgent(c) },
	}
	mgr := NewManager(func(o *Options) { o.Factories = factories })
	factories["late"] = factories["refiner"]

	assert.False(t, mgr.Has("late"))
	_, err := mgr.Get("late")
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestManager_AgentsUseSharedModel(t *testing.T) {
	m := model.NewMockModel("mock", "mock")
	mgr := NewManager(func(o *Options) { o.Model = m })

	a, err := mgr.Get("sanitize_data")
	require.NoError(t, err)
	_, err = a.Execute(context.Background(), agent.Text("Patient John Doe, DOB 1990-01-01"))
	require.NoError(t, err)

	require.Equal(t, 1, m.Calls())
	assert.Contains(t, m.Requests()[0].Messages[1].Content, "Patient John Doe, DOB 1990-01-01")
	assert.Equal(t, m, mgr.Model())
}
