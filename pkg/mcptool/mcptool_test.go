package mcptool_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/llm"
	"github.com/papercomputeco/glimpse/pkg/mcptool"
)

type fakeClient struct {
	requests []*llm.ChatRequest
}

func (f *fakeClient) CreateChatCompletion(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	f.requests = append(f.requests, req)
	return &llm.ChatResponse{
		Choices: []llm.Choice{{Message: llm.Message{Role: llm.RoleAssistant, Content: "Coffee - $4.50"}}},
	}, nil
}

var _ = Describe("Extract tool", func() {
	var (
		ctx     context.Context
		tmpDir  string
		client  *fakeClient
		session *mcp.ClientSession
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		tmpDir, err = os.MkdirTemp("", "glimpse-mcp-test-*")
		Expect(err).NotTo(HaveOccurred())

		client = &fakeClient{}
		logger := zap.NewNop()
		server := mcptool.NewServer(extract.New(client, extract.Options{}, logger), logger, "test")

		clientTransport, serverTransport := mcp.NewInMemoryTransports()
		_, err = server.Connect(ctx, serverTransport, nil)
		Expect(err).NotTo(HaveOccurred())

		mcpClient := mcp.NewClient(&mcp.Implementation{Name: "glimpse-test", Version: "test"}, nil)
		session, err = mcpClient.Connect(ctx, clientTransport, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if session != nil {
			session.Close()
		}
		os.RemoveAll(tmpDir)
	})

	textOf := func(res *mcp.CallToolResult) string {
		Expect(res.Content).NotTo(BeEmpty())
		text, ok := res.Content[0].(*mcp.TextContent)
		Expect(ok).To(BeTrue())
		return text.Text
	}

	It("lists the tool", func() {
		res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Tools).To(HaveLen(1))
		Expect(res.Tools[0].Name).To(Equal(mcptool.ToolName))
	})

	It("extracts text from a local image", func() {
		path := filepath.Join(tmpDir, "receipt.jpeg")
		Expect(os.WriteFile(path, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0o644)).To(Succeed())

		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      mcptool.ToolName,
			Arguments: map[string]any{"path": path},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeFalse())
		Expect(textOf(res)).To(Equal("Coffee - $4.50"))

		Expect(client.requests).To(HaveLen(1))
		parts := client.requests[0].Messages[0].Parts
		Expect(parts[0].Text).To(Equal(extract.DefaultPrompt))
		Expect(parts[1].ImageURL.URL).To(Equal("data:image/jpeg;base64,AQIDBAUGBwgJCg=="))
	})

	It("passes a custom prompt through", func() {
		path := filepath.Join(tmpDir, "menu.png")
		Expect(os.WriteFile(path, []byte("png"), 0o644)).To(Succeed())

		_, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      mcptool.ToolName,
			Arguments: map[string]any{"path": path, "prompt": "Name the cafe."},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(client.requests[0].Messages[0].Parts[0].Text).To(Equal("Name the cafe."))
	})

	It("reports a missing file as a tool error without calling the model", func() {
		res, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      mcptool.ToolName,
			Arguments: map[string]any{"path": filepath.Join(tmpDir, "missing.jpeg")},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IsError).To(BeTrue())
		Expect(textOf(res)).To(ContainSubstring("missing.jpeg"))
		Expect(client.requests).To(BeEmpty())
	})
})
