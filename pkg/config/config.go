// Package config resolves glimpse settings from defaults, an optional TOML
// file and the environment, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/papercomputeco/glimpse/pkg/extract"
	"github.com/papercomputeco/glimpse/pkg/llm/together"
)

const (
	DefaultImagePath  = "IMG_0674.jpeg"
	DefaultListenAddr = ":8080"
)

const (
	EnvAPIKey     = "TOGETHER_API_KEY"
	EnvBaseURL    = "TOGETHER_BASE_URL"
	EnvModel      = "GLIMPSE_MODEL"
	EnvMaxTokens  = "GLIMPSE_MAX_TOKENS"
	EnvImagePath  = "GLIMPSE_IMAGE"
	EnvPrompt     = "GLIMPSE_PROMPT"
	EnvListenAddr = "GLIMPSE_LISTEN"
	EnvDebug      = "GLIMPSE_DEBUG"
)

type Config struct {
	// APIKey is the provider credential. It is only read from the
	// environment, never from the config file.
	APIKey string `toml:"-"`

	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	MaxTokens  int    `toml:"max_tokens"`
	ImagePath  string `toml:"image"`
	Prompt     string `toml:"prompt"`
	ListenAddr string `toml:"listen"`
	Debug      bool   `toml:"debug"`
}

// Default returns the built-in values.
func Default() Config {
	return Config{
		BaseURL:    together.DefaultBaseURL,
		Model:      extract.DefaultModel,
		MaxTokens:  extract.DefaultMaxTokens,
		ImagePath:  DefaultImagePath,
		Prompt:     extract.DefaultPrompt,
		ListenAddr: DefaultListenAddr,
	}
}

// Load layers the TOML file at path (skipped when empty) and then the
// environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown keys in config %s: %v", path, undecoded)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	cfg.BaseURL = getEnv(EnvBaseURL, cfg.BaseURL)
	cfg.Model = getEnv(EnvModel, cfg.Model)
	cfg.ImagePath = getEnv(EnvImagePath, cfg.ImagePath)
	cfg.Prompt = getEnv(EnvPrompt, cfg.Prompt)
	cfg.ListenAddr = getEnv(EnvListenAddr, cfg.ListenAddr)

	var err error
	if cfg.MaxTokens, err = getEnvInt(EnvMaxTokens, cfg.MaxTokens); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = getEnvBool(EnvDebug, cfg.Debug); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the request parameters. The credential is checked by the
// client constructor.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Model) == "":
		return errors.New("model is required")
	case c.MaxTokens <= 0:
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	case strings.TrimSpace(c.ImagePath) == "":
		return errors.New("image path is required")
	}
	return nil
}

// ExtractOptions returns the request parameters for an extract.Extractor.
func (c Config) ExtractOptions() extract.Options {
	return extract.Options{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Prompt:    c.Prompt,
	}
}

// ClientConfig returns the provider client configuration.
func (c Config) ClientConfig() together.Config {
	return together.Config{
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
