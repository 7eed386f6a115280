package agent

// SanitizeDataTool removes Protected Health Information from medical data.
type SanitizeDataTool struct{ *PromptAgent }

// NewSanitizeDataTool creates the PHI sanitization agent.
func NewSanitizeDataTool(cfg Config) *SanitizeDataTool {
	return &SanitizeDataTool{NewPromptAgent("SanitizeDataTool", cfg, PromptSpec{
		Description: "Removes Protected Health Information (PHI) from medical data.",
		System:      NewInstructionFromText("You are an AI assistant that sanitizes medical data by removing Protected Health Information (PHI)."),
		User:        NewInstructionFromText("Remove all PHI from the following data:\n\n{{.Text}}\n\nSanitized Data:"),
		MaxTokens:   500,
	})}
}

// SummarizeTool summarizes medical texts.
type SummarizeTool struct{ *PromptAgent }

// NewSummarizeTool creates the medical summarization agent.
func NewSummarizeTool(cfg Config) *SummarizeTool {
	return &SummarizeTool{NewPromptAgent("SummarizeTool", cfg, PromptSpec{
		Description: "Summarizes medical texts.",
		System: NewInstructionFromText("You are a medical professional tasked with summarizing complex medical texts. " +
			"Provide clear, accurate, and concise summaries while maintaining all important medical information."),
		User:      NewInstructionFromText("Please summarize the following medical text:\n\n{{.Text}}\n\nSummary:"),
		MaxTokens: 300,
	})}
}

// WriteArticleTool drafts research articles from a topic or outline.
type WriteArticleTool struct{ *PromptAgent }

// NewWriteArticleTool creates the research article writer.
func NewWriteArticleTool(cfg Config) *WriteArticleTool {
	return &WriteArticleTool{NewPromptAgent("WriteArticleTool", cfg, PromptSpec{
		Description: "Writes research articles from a topic and outline.",
		System:      NewInstructionFromText("You are a scientific writer specializing in research articles. Write clear, well-structured academic content."),
		User:        NewInstructionFromText("Write a research article based on the following topic and outline:\n\n{{.Text}}\n\nArticle:"),
		MaxTokens:   1000,
	})}
}

// RefinerAgent improves the latest draft of any task output.
type RefinerAgent struct{ *PromptAgent }

// NewRefinerAgent creates the generic refinement agent. It refines Input.Latest.
func NewRefinerAgent(cfg Config) *RefinerAgent {
	return &RefinerAgent{NewPromptAgent("RefinerAgent", cfg, PromptSpec{
		Description: "Refines drafts for clarity, coherence and quality.",
		System:      NewInstructionFromText("You are an expert editor who refines and enhances content for clarity, coherence, and quality."),
		User: NewInstructionFromText("Please refine the following draft to improve its language, coherence, and overall quality. " +
			"Preserve every fact and do not reintroduce removed information:\n\n{{.Latest}}\n\nRefined Draft:"),
		MaxTokens: 1000,
	})}
}
