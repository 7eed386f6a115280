package agent

import "github.com/hupe1980/agentdesk/internal/util"

// Provider supplies dynamic instruction text at runtime.
type Provider interface {
	Instruction(in Input) (string, error)
}

// Func is a functional adapter to allow ordinary functions to be used as Providers.
type Func func(in Input) (string, error)

// Instruction implements Provider.
func (f Func) Instruction(in Input) (string, error) { return f(in) }

// Instruction represents either a template string rendered against the Input
// or a dynamic provider.
type Instruction struct {
	text     string
	provider Provider
}

// NewInstructionFromText creates an Instruction from a text/template string.
// Fields of Input ({{.Text}}, {{.Draft}}, {{.Refined}}, {{.Latest}}) are available.
func NewInstructionFromText(text string) Instruction { return Instruction{text: text} }

// NewInstructionFromFunc creates an Instruction from a function.
func NewInstructionFromFunc(f func(in Input) (string, error)) Instruction {
	return Instruction{provider: Func(f)}
}

// IsStatic returns true if the instruction is backed by a template string.
func (i Instruction) IsStatic() bool { return i.provider == nil }

// Resolve returns the instruction text, invoking the provider if needed.
func (i Instruction) Resolve(in Input) (string, error) {
	if i.provider != nil {
		return i.provider.Instruction(in)
	}
	return util.RenderTemplate(i.text, in)
}

// resolveWith renders a static instruction against arbitrary data.
func (i Instruction) resolveWith(data any) (string, error) {
	return util.RenderTemplate(i.text, data)
}
