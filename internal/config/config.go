package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keagan/clipsight/internal/audio"
	"github.com/keagan/clipsight/internal/ranker"
	"github.com/keagan/clipsight/internal/scenes"
	"github.com/keagan/clipsight/internal/signal"
	"github.com/keagan/clipsight/internal/transcript"
	"github.com/keagan/clipsight/internal/visual"
)

type contextKey string

const configKey contextKey = "config"

// Config is the full scoring configuration passed explicitly through the
// pipeline. Every numeric tunable the extractors and ranker use lives here,
// so tests can vary them without touching extractor internals.
type Config struct {
	Audio      audio.Config        `yaml:"audio"`
	Transcript transcript.Config   `yaml:"transcript"`
	Visual     visual.Config       `yaml:"visual"`
	Scenes     scenes.ScorerConfig `yaml:"scenes"`
	Ranker     ranker.Config       `yaml:"ranker"`

	// MergeShortScenes enables the optional short-scene merge pass after
	// segmentation: scenes shorter than the scorer's MinSceneDuration fold
	// into their predecessor.
	MergeShortScenes bool `yaml:"merge_short_scenes"`
}

// Load reads configuration from file or returns defaults. An empty path
// triggers discovery of the usual locations; a missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", signal.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on any tuning that would break score invariants.
func (c *Config) Validate() error {
	return c.Ranker.Validate()
}

// Default returns the production configuration.
func Default() *Config {
	return &Config{
		Audio:      audio.DefaultConfig(),
		Transcript: transcript.DefaultConfig(),
		Visual:     visual.DefaultConfig(),
		Scenes:     scenes.DefaultScorerConfig(),
		Ranker:     ranker.DefaultConfig(),
	}
}

func findConfigFile() string {
	candidates := []string{
		"./clipsight.yaml",
		"./clipsight.yml",
		filepath.Join(os.Getenv("HOME"), ".clipsight", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// WithConfig stores config in context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context, falling back to defaults.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
