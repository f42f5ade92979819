package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SWIMREC_CONFIG is set
//  3. env (prefix SWIMREC_)
func Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SWIMREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SWIMREC_TEAM_NAMES, SWIMREC_TOP_N, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("SWIMREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "swimrec_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects structurally unusable configuration before any batch
// work starts.
func (c *Config) validate() error {
	if len(c.TeamNames) == 0 {
		return fmt.Errorf("%w: team_names must not be empty", ErrInvalidConfig)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("%w: top_n must be positive", ErrInvalidConfig)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("%w: parallelism must be positive", ErrInvalidConfig)
	}
	for _, course := range c.Courses {
		switch strings.ToLower(course) {
		case "scy", "lcm", "scm":
		default:
			return fmt.Errorf("%w: unknown course %q", ErrInvalidConfig, course)
		}
	}
	return nil
}
