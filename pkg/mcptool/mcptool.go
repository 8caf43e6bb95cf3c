// Package mcptool exposes image text extraction as a Model Context Protocol tool.
package mcptool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/papercomputeco/glimpse/pkg/datauri"
	"github.com/papercomputeco/glimpse/pkg/extract"
)

const ToolName = "extract_image_text"

const toolDescription = "Send one local image and an instruction to a vision model and return its text answer. " +
	"Defaults to extracting all items and prices from a receipt."

// ExtractInput is the tool's argument object.
type ExtractInput struct {
	Path   string `json:"path" jsonschema:"path to a local image file"`
	Prompt string `json:"prompt,omitempty" jsonschema:"instruction sent with the image, replaces the default receipt prompt"`
}

// ExtractOutput is the tool's structured result.
type ExtractOutput struct {
	Content string `json:"content"`
}

type toolHandler struct {
	extractor *extract.Extractor
	logger    *zap.Logger
}

// NewServer returns an MCP server with the extraction tool registered.
func NewServer(extractor *extract.Extractor, logger *zap.Logger, version string) *mcp.Server {
	h := &toolHandler{extractor: extractor, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{Name: "glimpse", Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
	}, h.extract)

	return server
}

func (h *toolHandler) extract(ctx context.Context, _ *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	uri, err := datauri.Encode(in.Path)
	if err != nil {
		h.logger.Warn("could not encode image", zap.String("path", in.Path), zap.Error(err))
		return errorResult(err), ExtractOutput{}, nil
	}

	content, err := h.extractor.RunURIWithPrompt(ctx, uri, in.Prompt)
	if err != nil {
		h.logger.Error("extraction failed", zap.String("path", in.Path), zap.Error(err))
		return errorResult(err), ExtractOutput{}, nil
	}

	h.logger.Debug("tool call complete", zap.String("path", in.Path))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: content}},
	}, ExtractOutput{Content: content}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
