// This file contains environment variable utilities for configuration override.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Short and long forms share one pflag entry, so listing the long name is
// enough.
func isFlagSetAny(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the TXT2PPTX_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
// Malformed numeric, duration and boolean values are ignored.
var envOverrides = []envOverride{
	// Service
	{"URL", []string{"url"}, func(c *AppConfig, v string) { c.BaseURL = v }},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},
	{"API_KEY", []string{"api-key"}, func(c *AppConfig, v string) { c.APIKey = v }},

	// Request
	{"SLIDES", []string{"slides"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Slides = parsed
		}
	}},
	{"STYLE", []string{"style"}, func(c *AppConfig, v string) { c.Style = v }},
	{"LANG", []string{"lang"}, func(c *AppConfig, v string) { c.Language = v }},

	// Progress
	{"PROGRESS_INTERVAL", []string{"progress-interval"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.ProgressInterval = parsed
		}
	}},
	{"COMPLETION_HOLD", []string{"completion-hold"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.CompletionHold = parsed
		}
	}},

	// Artifacts
	{"DOWNLOAD", []string{"download"}, func(c *AppConfig, v string) {
		c.Download = parseBoolEnv(v, c.Download)
	}},
	{"OUTPUT_DIR", []string{"output-dir"}, func(c *AppConfig, v string) { c.OutputDir = v }},
	{"S3_BUCKET", []string{"s3-bucket"}, func(c *AppConfig, v string) { c.S3Bucket = v }},
	{"S3_PREFIX", []string{"s3-prefix"}, func(c *AppConfig, v string) { c.S3Prefix = v }},

	// Batch
	{"CONCURRENCY", []string{"concurrency"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Concurrency = parsed
		}
	}},
	{"RATE", []string{"rate"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSec = parsed
		}
	}},

	// Output
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"QUIET", []string{"quiet"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},
	{"LOG_FORMAT", []string{"log-format"}, func(c *AppConfig, v string) { c.LogFormat = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > file > Defaults.
//
// NO_COLOR is honoured without the prefix, following https://no-color.org.
func applyEnvOverrides(config *AppConfig, fs *pflag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
	if !isFlagSetAny(fs, "no-color") {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			config.NoColor = true
		}
	}
}
