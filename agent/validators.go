package agent

// candidateBlock lists the outputs under review; the refined version is optional.
const candidateBlock = `**Original Text:**
{{.Text}}

**{{.DraftLabel}}:**
{{.Draft}}
{{- if .Refined}}

**{{.RefinedLabel}}:**
{{.Refined}}
{{- end}}`

type reviewInput struct {
	Input
	DraftLabel   string
	RefinedLabel string
}

func reviewPrompt(header, draftLabel, refinedLabel, footer string) Instruction {
	body := NewInstructionFromText(header + "\n\n" + candidateBlock + "\n\n" + footer)
	return NewInstructionFromFunc(func(in Input) (string, error) {
		return body.resolveWith(reviewInput{Input: in, DraftLabel: draftLabel, RefinedLabel: refinedLabel})
	})
}

// SummarizeValidatorAgent grades a summary against its source text.
type SummarizeValidatorAgent struct{ *PromptAgent }

// NewSummarizeValidatorAgent creates the summary validator.
func NewSummarizeValidatorAgent(cfg Config) *SummarizeValidatorAgent {
	return &SummarizeValidatorAgent{NewPromptAgent("SummarizeValidatorAgent", cfg, PromptSpec{
		Description: "Validates summaries of medical texts.",
		System:      NewInstructionFromText("You are an AI assistant that validates summaries of medical texts for accuracy, completeness, and conciseness."),
		User: reviewPrompt(`Assess the given summary against the original text based on the following criteria:
- **Accuracy** (Does the summary correctly represent key points?)
- **Conciseness** (Is the summary brief but informative?)
- **Relevance** (Does it exclude unnecessary details while covering the main ideas?)

Provide structured feedback on each aspect and an **overall rating (1-5)**, where **5** indicates an excellent summary.`,
			"Initial Summary", "Refined Summary", "**Summary Validation Report:**"),
		MaxTokens: 512,
	})}
}

// WriteArticleValidatorAgent peer-reviews a research article.
type WriteArticleValidatorAgent struct{ *PromptAgent }

// NewWriteArticleValidatorAgent creates the research article reviewer.
func NewWriteArticleValidatorAgent(cfg Config) *WriteArticleValidatorAgent {
	return &WriteArticleValidatorAgent{NewPromptAgent("WriteArticleValidatorAgent", cfg, PromptSpec{
		Description: "Peer-reviews research articles.",
		System:      NewInstructionFromText("You are an academic peer reviewer. Validate research articles for academic quality, methodology, and clarity."),
		User: reviewPrompt("Review this research article for academic quality, methodology, and clarity. "+
			"Provide structured feedback and an **overall rating (1-5)**. The original text below is the topic and outline.",
			"Initial Draft", "Refined Article", "**Peer Review Report:**"),
		MaxTokens: 512,
	})}
}

// SanitizeDataValidatorAgent checks that sanitized data no longer contains PHI.
type SanitizeDataValidatorAgent struct{ *PromptAgent }

// NewSanitizeDataValidatorAgent creates the PHI compliance checker.
func NewSanitizeDataValidatorAgent(cfg Config) *SanitizeDataValidatorAgent {
	return &SanitizeDataValidatorAgent{NewPromptAgent("SanitizeDataValidatorAgent", cfg, PromptSpec{
		Description: "Verifies that all PHI was removed.",
		System:      NewInstructionFromText("You are a HIPAA compliance officer. Verify that all PHI has been properly removed from medical data."),
		User: reviewPrompt("Verify that all PHI has been properly removed from the sanitized text. "+
			"List any remaining identifiable information and give an **overall rating (1-5)**, where **5** means no PHI remains.",
			"Initial Sanitized Text", "Refined Sanitized Text", "**HIPAA Compliance Report:**"),
		MaxTokens: 512,
	})}
}

// ValidatorAgent is the task agnostic reviewer.
type ValidatorAgent struct{ *PromptAgent }

// NewValidatorAgent creates the generic validator.
func NewValidatorAgent(cfg Config) *ValidatorAgent {
	return &ValidatorAgent{NewPromptAgent("ValidatorAgent", cfg, PromptSpec{
		Description: "Validates any task output against its input.",
		System:      NewInstructionFromText("You are an AI assistant that validates generated content for accuracy, completeness, and quality."),
		User: reviewPrompt("Assess the generated output against the original text for accuracy, completeness, and clarity. "+
			"Provide structured feedback and an **overall rating (1-5)**.",
			"Generated Output", "Refined Output", "**Validation Report:**"),
		MaxTokens: 512,
	})}
}
