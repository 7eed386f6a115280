// Package logging provides a minimal logging interface and adapters for agentdesk.
//
// The Logger interface defines the leveled logging methods (Debug, Info, Warn, Error)
// that the manager, agents, pipeline and HTTP server use. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping an existing *slog.Logger
//   - DeskLogger with component scoping and LLM / agent call helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
//	mgr := agentdesk.NewManager(func(o *agentdesk.Options) { o.Logger = logger })
//
// Nothing in this package touches slog.Default; every component receives its
// logger explicitly.
package logging
