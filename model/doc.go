// Package model defines the provider-agnostic boundary between agents and
// chat-completion backends.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Classify backend failures (APIError) so callers can decide on retries
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (Groq via the OpenAI-compatible API, Anthropic) implement the
// Model interface so agents remain decoupled from vendor SDKs.
package model
