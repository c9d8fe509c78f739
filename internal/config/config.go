// Package config defines the run configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and COHORTVIZ_ env vars over the defaults.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"context"
)

// Config contains the run configuration. Defaults reproduce the reference figure.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log records to JSON.
	LogJSON bool `koanf:"log_json"`

	// InputDir holds awards.csv, individual_awards.csv and individual_demographics.csv.
	InputDir string `koanf:"input_dir"`

	// OutputDir receives fig_24_<level>.<format>. It must exist.
	OutputDir string `koanf:"output_dir"`

	// Level is the dedupe granularity: person or role.
	Level string `koanf:"level"`

	// CohortMin and CohortMax bound the plotted cohorts, inclusive.
	CohortMin int `koanf:"cohort_min"`
	CohortMax int `koanf:"cohort_max"`

	// Palette holds the men and women colors, in that order.
	Palette []string `koanf:"palette"`

	GridColor string `koanf:"grid_color"`
	TextColor string `koanf:"text_color"`

	// AwardType is the only award type kept by the filter.
	AwardType string `koanf:"award_type"`

	// ExcludedRoles are dropped by exact match.
	ExcludedRoles []string `koanf:"excluded_roles"`

	// ExcludedRoleSubstring drops any role containing it. Empty disables the check.
	ExcludedRoleSubstring string `koanf:"excluded_role_substring"`

	// DropUnmatchedAwards drops rows whose award has no cohort instead of failing the run.
	DropUnmatchedAwards bool `koanf:"drop_unmatched_awards"`

	// Format is the image encoding: png or svg.
	Format string `koanf:"format"`

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults. Context is accepted first to satisfy the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:              "info",
		InputDir:              "../../data_master/",
		OutputDir:             "../figures/",
		Level:                 "person",
		CohortMin:             1,
		CohortMax:             9,
		Palette:               []string{"#1A85FF", "#D41159"},
		GridColor:             "#d9d9d8",
		TextColor:             "#404040",
		AwardType:             "it",
		ExcludedRoles:         []string{"pi", "co-pi", "former pi", "former co-pi"},
		ExcludedRoleSubstring: "internal",
		Format:                "png",
	}
}
