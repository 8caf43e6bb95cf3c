package mcpcmder

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/glimpse/cmd/glimpse/flagconfig"
	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/logger"
	"github.com/papercomputeco/glimpse/pkg/mcptool"
)

const mcpLongDesc string = `Run an MCP server over stdio exposing one tool,
extract_image_text, which sends a local image and an optional
instruction to the vision model and returns its text.

Logs are written to stderr; stdout carries the protocol.

Examples:
  glimpse mcp
  glimpse mcp --model meta-llama/Llama-3.2-11B-Vision-Instruct-Turbo`

const mcpShortDesc string = "Serve extraction as an MCP tool over stdio"

type mcpCommander struct {
	flags flagconfig.Flags
}

func NewMCPCmd() *cobra.Command {
	cmder := &mcpCommander{}

	cmd := &cobra.Command{
		Use:          "mcp",
		Short:        mcpShortDesc,
		Long:         mcpLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmder.flags.Register(cmd)

	return cmd
}

func (c *mcpCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := c.flags.Resolve(cmd)
	if err != nil {
		return err
	}

	log := logger.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)
	defer log.Sync()

	client, err := flagconfig.NewTogetherClient(cfg.ClientConfig())
	if err != nil {
		return err
	}

	version := cmd.Root().Version
	if version == "" {
		version = "dev"
	}

	server := mcptool.NewServer(extract.New(client, cfg.ExtractOptions(), log), log, version)
	return server.Run(ctx, &mcp.StdioTransport{})
}
