package llm

// LLMRequest is a provider-neutral completion request. Each client maps it
// onto its own wire format.
type LLMRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
