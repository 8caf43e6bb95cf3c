package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	extractcmder "github.com/papercomputeco/glimpse/cmd/glimpse/extract"
	mcpcmder "github.com/papercomputeco/glimpse/cmd/glimpse/mcp"
	servecmder "github.com/papercomputeco/glimpse/cmd/glimpse/serve"
)

var version = "dev"

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	root := extractcmder.NewExtractCmd()
	root.Version = version
	root.AddCommand(
		servecmder.NewServeCmd(),
		mcpcmder.NewMCPCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
