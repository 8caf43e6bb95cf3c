package extractcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/glimpse/cmd/glimpse/flagconfig"
	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/logger"
)

const extractLongDesc string = `Send one image and an instruction to a hosted vision model
and print the text of its first answer.

The image is inlined as a base64 data URI. The API key is read
from TOGETHER_API_KEY (a .env file in the working directory is
honored). With no argument the image defaults to IMG_0674.jpeg.

Examples:
  glimpse
  glimpse receipt.png
  glimpse --model meta-llama/Llama-3.2-11B-Vision-Instruct-Turbo receipt.jpg
  glimpse --prompt "What is the total?" --max-tokens 64 receipt.jpg`

const extractShortDesc string = "Extract text from an image with a vision model"

// newClient is swapped out by tests.
var newClient flagconfig.ClientFactory = flagconfig.NewTogetherClient

type extractCommander struct {
	flags     flagconfig.Flags
	newClient flagconfig.ClientFactory
}

func NewExtractCmd() *cobra.Command {
	cmder := &extractCommander{
		newClient: newClient,
	}

	cmd := &cobra.Command{
		Use:          "glimpse [image]",
		Short:        extractShortDesc,
		Long:         extractLongDesc,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, args)
		},
	}

	cmder.flags.Register(cmd)

	return cmd
}

func (c *extractCommander) run(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, err := c.flags.Resolve(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.ImagePath = args[0]
	}

	log := logger.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)
	defer log.Sync()

	client, err := c.newClient(cfg.ClientConfig())
	if err != nil {
		return err
	}

	log.Debug("extracting",
		zap.String("image", cfg.ImagePath),
		zap.String("model", cfg.Model),
		zap.String("base_url", cfg.BaseURL),
	)

	content, err := extract.New(client, cfg.ExtractOptions(), log).Run(ctx, cfg.ImagePath)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), content)
	return nil
}
