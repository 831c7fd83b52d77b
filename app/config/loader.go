package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in source and selector tables, overridden by the
// given YAML file when path is non-empty. The returned config is validated
// and must not be mutated by callers.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse sources file: %w", err)
		}

		slog.Info("Source configuration loaded", "file", path, "sources", len(cfg.NewsSources))
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid source configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in the documented fallback cascades for sources that
// configure none of their own.
func applyDefaults(cfg *Config) {
	for i := range cfg.NewsSources {
		if len(cfg.NewsSources[i].HeadlineSelectors) == 0 {
			cfg.NewsSources[i].HeadlineSelectors = FallbackHeadlineSelectors
		}
		if len(cfg.NewsSources[i].ImageSelectors) == 0 {
			cfg.NewsSources[i].ImageSelectors = FallbackImageSelectors
		}
	}

	if cfg.Trending.PerPage == 0 {
		cfg.Trending.PerPage = 50
	}
}

func validate(cfg *Config) error {
	if len(cfg.NewsSources) == 0 {
		return fmt.Errorf("at least one news source is required")
	}

	for i, source := range cfg.NewsSources {
		if source.Name == "" {
			return fmt.Errorf("news source at index %d: name is required", i)
		}
		if source.URL == "" {
			return fmt.Errorf("news source '%s': URL is required", source.Name)
		}
	}

	if cfg.Catalog.URL == "" {
		return fmt.Errorf("catalog URL is required")
	}
	if len(cfg.Catalog.ContainerSelectors) == 0 {
		return fmt.Errorf("catalog requires at least one container selector")
	}

	if cfg.Trending.GraphQLURL == "" {
		return fmt.Errorf("trending GraphQL URL is required")
	}
	if cfg.Trending.PageURL == "" {
		return fmt.Errorf("trending page URL is required")
	}

	return nil
}
