// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults; Load(ctx) layers
//     file and environment on top.
//   - No other package reads environment variables; everything the
//     pipeline needs arrives through this struct.
//   - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration for one batch run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TeamNames are the affiliation substrings identifying the team of
	// interest, matched case-insensitively against raw team text.
	TeamNames []string `koanf:"team_names"`

	// TeamName is the display name used in report titles.
	TeamName string `koanf:"team_name"`

	// Source selects the registered data source implementation.
	Source string `koanf:"source"`

	// SwimmersDir holds per-swimmer result files from the collector.
	SwimmersDir string `koanf:"swimmers_dir"`

	// OutputDir receives classified partitions and generated reports.
	OutputDir string `koanf:"output_dir"`

	// DecisionFile persists the include/exclude decisions for the
	// ambiguous classification categories.
	DecisionFile string `koanf:"decision_file"`

	// TopN sets the ranking depth for top-N reports.
	TopN int `koanf:"top_n"`

	// Courses limits which course record books are generated.
	Courses []string `koanf:"courses"`

	// Parallelism bounds concurrent per-swimmer classification.
	Parallelism int `koanf:"parallelism"`

	// MetricsAddr, when set, serves Prometheus metrics during the run,
	// e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// Progress enables the console progress bar.
	Progress bool `koanf:"progress"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Source:       "csvdir",
		SwimmersDir:  "data/raw/swimmers",
		OutputDir:    "data/processed",
		DecisionFile: ".swimrecords-classify.json",
		TopN:         10,
		Courses:      []string{"scy", "lcm", "scm"},
		Parallelism:  runtime.NumCPU(),
		Progress:     true,
	}
}
