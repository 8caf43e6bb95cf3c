// Package extract runs the single-shot image-to-text pipeline: encode one
// image, send it with an instruction to a chat completion client, and return
// the first choice's text.
package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/glimpse/pkg/datauri"
	"github.com/papercomputeco/glimpse/pkg/llm"
)

const (
	DefaultModel     = "meta-llama/Llama-Vision-Free"
	DefaultMaxTokens = 512
	DefaultPrompt    = "Extract all items and prices from this receipt."
)

// Options holds the fixed request parameters. Zero values take the defaults.
type Options struct {
	Model     string
	MaxTokens int
	Prompt    string
}

// Extractor sends one image per call to an llm.Client.
type Extractor struct {
	client llm.Client
	opts   Options
	logger *zap.Logger
}

// New creates an Extractor. A nil logger discards logs.
func New(client llm.Client, opts Options, logger *zap.Logger) *Extractor {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if strings.TrimSpace(opts.Prompt) == "" {
		opts.Prompt = DefaultPrompt
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// Options returns the effective request parameters.
func (e *Extractor) Options() Options {
	return e.opts
}

// Run encodes the image at imagePath and returns the model's text for it.
// A file error aborts before any request is made.
func (e *Extractor) Run(ctx context.Context, imagePath string) (string, error) {
	uri, err := datauri.Encode(imagePath)
	if err != nil {
		return "", err
	}

	e.logger.Debug("encoded image",
		zap.String("path", imagePath),
		zap.String("mime", datauri.MIMEType(imagePath)),
		zap.Int("uri_len", len(uri)),
	)

	return e.RunURI(ctx, uri)
}

// RunURI is Run for an image that is already a data URI.
func (e *Extractor) RunURI(ctx context.Context, dataURI string) (string, error) {
	return e.RunURIWithPrompt(ctx, dataURI, e.opts.Prompt)
}

// RunURIWithPrompt overrides the instruction text for a single request.
func (e *Extractor) RunURIWithPrompt(ctx context.Context, dataURI, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = e.opts.Prompt
	}

	req := &llm.ChatRequest{
		Model:     e.opts.Model,
		MaxTokens: e.opts.MaxTokens,
		Messages: []llm.Message{
			llm.NewUserMessage(llm.TextPart(prompt), llm.ImagePart(dataURI)),
		},
	}

	e.logger.Debug("sending chat completion",
		zap.String("model", req.Model),
		zap.Int("max_tokens", req.MaxTokens),
		zap.String("prompt", truncate(prompt, 80)),
	)

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	content, err := resp.FirstContent()
	if err != nil {
		return "", fmt.Errorf("model %s: %w", req.Model, err)
	}

	e.logger.Debug("received completion",
		zap.String("id", resp.ID),
		zap.Int("choices", len(resp.Choices)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.String("content_preview", truncate(content, 100)),
	)

	return content, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
