package llm

import "context"

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	Model     string    `json:"model"`      // Model identifier (e.g., "meta-llama/Llama-Vision-Free")
	MaxTokens int       `json:"max_tokens"` // Max tokens to generate
	Messages  []Message `json:"messages"`   // Ordered conversation
}

// Client submits one chat completion request and blocks until the provider
// answers or fails.
type Client interface {
	CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
