// Package together implements llm.Client against Together's OpenAI-compatible
// chat completions API.
package together

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/papercomputeco/glimpse/pkg/llm"
)

// DefaultBaseURL is Together's OpenAI-compatible API root.
const DefaultBaseURL = "https://api.together.xyz/v1"

// ErrMissingAPIKey is returned by NewClient when no credential is supplied.
var ErrMissingAPIKey = errors.New("together: API key is required (set TOGETHER_API_KEY)")

// Config configures a Client. APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string

	// HTTPClient overrides the transport. Nil uses the library default.
	HTTPClient *http.Client
}

// Client implements llm.Client using github.com/sashabaranov/go-openai.
type Client struct {
	client *openai.Client
}

var _ llm.Client = (*Client)(nil)

// NewClient creates a client for the Together API.
func NewClient(config Config) (*Client, error) {
	apiKey := strings.TrimSpace(config.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = DefaultBaseURL
	if baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if config.HTTPClient != nil {
		cfg.HTTPClient = config.HTTPClient
	}

	return &Client{client: openai.NewClientWithConfig(cfg)}, nil
}

// CreateChatCompletion sends one non-streaming chat completion request.
func (c *Client) CreateChatCompletion(ctx context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, toOpenAIRequest(req))
	if err != nil {
		return nil, fmt.Errorf("together chat completion: %w", err)
	}

	return fromOpenAIResponse(resp), nil
}

func toOpenAIRequest(req *llm.ChatRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		out := openai.ChatCompletionMessage{Role: msg.Role}

		// The library refuses to marshal Content and MultiContent together.
		if len(msg.Parts) == 0 {
			out.Content = msg.Content
		} else {
			out.MultiContent = toOpenAIParts(msg.Parts)
		}

		messages = append(messages, out)
	}

	return openai.ChatCompletionRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  messages,
	}
}

func toOpenAIParts(parts []llm.ContentPart) []openai.ChatMessagePart {
	out := make([]openai.ChatMessagePart, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case llm.PartTypeImageURL:
			part := openai.ChatMessagePart{Type: openai.ChatMessagePartTypeImageURL}
			if p.ImageURL != nil {
				part.ImageURL = &openai.ChatMessageImageURL{URL: p.ImageURL.URL}
			}
			out = append(out, part)
		default:
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
		}
	}
	return out
}

func fromOpenAIResponse(resp openai.ChatCompletionResponse) *llm.ChatResponse {
	choices := make([]llm.Choice, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		choices = append(choices, llm.Choice{
			Index: choice.Index,
			Message: llm.Message{
				Role:    choice.Message.Role,
				Content: choice.Message.Content,
			},
			FinishReason: string(choice.FinishReason),
		})
	}

	return &llm.ChatResponse{
		ID:      resp.ID,
		Model:   resp.Model,
		Choices: choices,
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
}
