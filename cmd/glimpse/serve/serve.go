package servecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/glimpse/cmd/glimpse/flagconfig"
	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/logger"
	"github.com/papercomputeco/glimpse/server"
)

const serveLongDesc string = `Serve image text extraction over HTTP.

POST a multipart form with the image in the "file" field to
/api/extract. An optional "prompt" field replaces the instruction
for that request. The response is {"content": "...", "model": "..."}.
Each request sends exactly one image to the model.

Examples:
  glimpse serve
  glimpse serve --listen 127.0.0.1:9090
  curl -F file=@receipt.jpg http://localhost:8080/api/extract`

const serveShortDesc string = "Serve extraction over HTTP"

type serveCommander struct {
	flags      flagconfig.Flags
	listenAddr string
	maxUpload  int
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        serveShortDesc,
		Long:         serveLongDesc,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd)
		},
	}

	cmder.flags.Register(cmd)
	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (default :8080)")
	cmd.Flags().IntVar(&cmder.maxUpload, "max-upload-bytes", server.DefaultMaxUploadBytes, "Largest accepted request body")

	return cmd
}

func (c *serveCommander) run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := c.flags.Resolve(cmd)
	if err != nil {
		return err
	}
	if c.listenAddr != "" {
		cfg.ListenAddr = c.listenAddr
	}

	log := logger.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)
	defer log.Sync()

	client, err := flagconfig.NewTogetherClient(cfg.ClientConfig())
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		ListenAddr:     cfg.ListenAddr,
		MaxUploadBytes: c.maxUpload,
	}, extract.New(client, cfg.ExtractOptions(), log), log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}
