// Package agent contains the agent contract and the concrete prompt-driven
// agents served by the agentdesk registry. The package focuses on three
// concerns:
//
//  1. Shared configuration and backend invocation (BaseAgent)
//  2. Prompt construction from templates (Instruction, PromptAgent)
//  3. The concrete task, refiner and validator agents
//
// Execution Model:
//   - Execute receives an Input (original text plus optional earlier drafts)
//   - A PromptAgent renders exactly two messages, system then user
//   - BaseAgent.Call sends them to the configured model.Model and retries
//     transient failures up to MaxRetries extra times
//
// Agents hold immutable configuration after construction and are safe for
// concurrent use as long as the underlying model is.
package agent
