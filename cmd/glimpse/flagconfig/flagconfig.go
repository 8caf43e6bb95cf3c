// Package flagconfig layers command line flags over pkg/config and builds the
// objects every glimpse subcommand needs.
package flagconfig

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/glimpse/pkg/config"
	"github.com/papercomputeco/glimpse/pkg/llm"
	"github.com/papercomputeco/glimpse/pkg/llm/together"
)

// ClientFactory builds the completion client from its configuration.
type ClientFactory func(together.Config) (llm.Client, error)

// NewTogetherClient is the production ClientFactory.
func NewTogetherClient(cfg together.Config) (llm.Client, error) {
	client, err := together.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Flags holds the flags shared by all subcommands.
type Flags struct {
	configPath string
	baseURL    string
	model      string
	maxTokens  int
	prompt     string
	debug      bool
}

// Register adds the shared flags to cmd.
func (f *Flags) Register(cmd *cobra.Command) {
	defaults := config.Default()

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().StringVar(&f.baseURL, "base-url", defaults.BaseURL, "Chat completion API base URL")
	cmd.Flags().StringVarP(&f.model, "model", "m", defaults.Model, "Model identifier")
	cmd.Flags().IntVar(&f.maxTokens, "max-tokens", defaults.MaxTokens, "Maximum output tokens")
	cmd.Flags().StringVarP(&f.prompt, "prompt", "p", defaults.Prompt, "Instruction sent with the image")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging on stderr")
}

// Resolve loads defaults, config file and environment, then applies any flag
// the user set explicitly.
func (f *Flags) Resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens = f.maxTokens
	}
	if flags.Changed("prompt") {
		cfg.Prompt = f.prompt
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
