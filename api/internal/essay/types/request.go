package types

// FeedbackRequest is the body of POST /v1/essay/feedback.
type FeedbackRequest struct {
	Content         string `json:"content"`
	TextType        string `json:"textType"`
	AssistanceLevel string `json:"assistanceLevel"`
	Prompt          string `json:"prompt,omitempty"`  // task given to the student
	LLMName         string `json:"llmName,omitempty"` // "gpt" | "gemini" | "" (default)
}

// CritiqueRequest is the input of a critique engine.
type CritiqueRequest struct {
	Text            string
	TextType        string
	AssistanceLevel string
	TaskPrompt      string
	WordCount       int
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
