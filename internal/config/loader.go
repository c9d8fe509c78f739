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
	"github.com/okian/cohortviz/internal/adapters/render"
	"github.com/okian/cohortviz/internal/domain/types"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COHORTVIZ_"

// EnvConfigPath names the variable holding the YAML file path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{"palette": true, "excluded_roles": true}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML): path argument, else COHORTVIZ_CONFIG
//  3. env (prefix COHORTVIZ_)
func Load(ctx context.Context, path string) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// COHORTVIZ_COHORT_MIN -> cohort_min. Underscores are kept to match the koanf tags.
	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, any) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		if listKeys[key] {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return key, parts
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	// Unmarshal merges slices element-wise into the defaults; lists replace them instead.
	if k.Exists("palette") {
		cfg.Palette = k.Strings("palette")
	}
	if k.Exists("excluded_roles") {
		cfg.ExcludedRoles = k.Strings("excluded_roles")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, err := types.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.CohortMin > c.CohortMax {
		return fmt.Errorf("%w: cohort_min %d > cohort_max %d", ErrInvalidConfig, c.CohortMin, c.CohortMax)
	}
	if len(c.Palette) != 2 {
		return fmt.Errorf("%w: palette needs 2 colors, got %d", ErrInvalidConfig, len(c.Palette))
	}
	for _, col := range append([]string{c.GridColor, c.TextColor}, c.Palette...) {
		if !render.ValidColor(col) {
			return fmt.Errorf("%w: color %q", ErrInvalidConfig, col)
		}
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.InputDir == "" {
		return fmt.Errorf("%w: input_dir must not be empty", ErrInvalidConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}
