// Package config defines the application configuration, its defaults and the
// precedence chain that resolves it: command-line flags, then TXT2PPTX_*
// environment variables, then an optional YAML file, then defaults.
package config

import (
	"net/url"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/logging"
	"github.com/agbru/txt2pptx/internal/progress"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "TXT2PPTX_"

// Default values.
const (
	DefaultBaseURL        = "http://127.0.0.1:8000"
	DefaultCompletionHold = 500 * time.Millisecond
	DefaultConcurrency    = 2
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
)

// AppConfig aggregates every setting of the application.
type AppConfig struct {
	// Service.
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	APIKey  string        `yaml:"api_key"`

	// Request.
	Text      string `yaml:"-"`
	InputFile string `yaml:"-"`
	Slides    int    `yaml:"slides"`
	Style     string `yaml:"style"`
	Language  string `yaml:"language"`

	// Progress estimator.
	ProgressInterval time.Duration `yaml:"progress_interval"`
	ProgressStep     int           `yaml:"progress_step"`
	CompletionHold   time.Duration `yaml:"completion_hold"`

	// Artifacts.
	Download   bool   `yaml:"download"`
	OutputDir  string `yaml:"output_dir"`
	S3Bucket   string `yaml:"s3_bucket"`
	S3Prefix   string `yaml:"s3_prefix"`
	ReportFile string `yaml:"report"`

	// Batch.
	Concurrency int     `yaml:"concurrency"`
	RatePerSec  float64 `yaml:"rate"`

	// Output.
	TUI         bool   `yaml:"tui"`
	Interactive bool   `yaml:"interactive"`
	Quiet       bool   `yaml:"quiet"`
	NoColor     bool   `yaml:"no_color"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsFile string `yaml:"metrics_file"`

	ConfigFile string `yaml:"-"`
}

// Default returns the configuration used when nothing else is specified.
func Default() AppConfig {
	return AppConfig{
		BaseURL:          DefaultBaseURL,
		Slides:           generation.DefaultSlides,
		Style:            string(generation.StyleProfessional),
		Language:         string(generation.LanguageTraditionalChinese),
		ProgressInterval: progress.DefaultInterval,
		ProgressStep:     progress.DefaultStep,
		CompletionHold:   DefaultCompletionHold,
		OutputDir:        ".",
		Concurrency:      DefaultConcurrency,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// BindFlags registers the configuration flags on fs, bound to cfg. The
// current values of cfg become the flag defaults.
func BindFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML configuration file")
	fs.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the txt2pptx service")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "bound on a single generation request (0 waits indefinitely)")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "model API key forwarded with the request")

	fs.StringVarP(&cfg.Text, "text", "t", cfg.Text, "source text to convert")
	fs.StringVarP(&cfg.InputFile, "file", "f", cfg.InputFile, "read source text from a file ('-' for stdin)")
	fs.IntVarP(&cfg.Slides, "slides", "n", cfg.Slides, "number of slides (3-20)")
	fs.StringVarP(&cfg.Style, "style", "s", cfg.Style, "visual style: professional, creative, minimal, academic, default")
	fs.StringVarP(&cfg.Language, "lang", "l", cfg.Language, "output language: zh-TW, zh-CN, en, ja")

	fs.DurationVar(&cfg.ProgressInterval, "progress-interval", cfg.ProgressInterval, "progress estimator tick interval")
	fs.IntVar(&cfg.ProgressStep, "progress-step", cfg.ProgressStep, "progress estimator step in percent")
	fs.DurationVar(&cfg.CompletionHold, "completion-hold", cfg.CompletionHold, "pause after reaching 100% before showing the result")

	fs.BoolVarP(&cfg.Download, "download", "d", cfg.Download, "download the generated deck")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "directory for downloaded decks")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "upload downloaded decks to this S3 bucket")
	fs.StringVar(&cfg.S3Prefix, "s3-prefix", cfg.S3Prefix, "key prefix for S3 uploads")
	fs.StringVar(&cfg.ReportFile, "report", cfg.ReportFile, "write an HTML outline report to this file")

	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "batch: generations in flight")
	fs.Float64Var(&cfg.RatePerSec, "rate", cfg.RatePerSec, "batch: maximum submissions per second (0 = unlimited)")

	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "run the interactive dashboard")
	fs.BoolVarP(&cfg.Interactive, "interactive", "i", cfg.Interactive, "prompt for the request fields")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print only the result")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error, disabled")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this file on exit")
}

// Resolve completes cfg after fs has been parsed: it loads the YAML file,
// applies environment overrides for flags that were not set, restores the
// explicitly set flags and validates the result.
func Resolve(cfg *AppConfig, fs *pflag.FlagSet) error {
	explicit := map[string]string{}
	fs.Visit(func(f *pflag.Flag) { explicit[f.Name] = f.Value.String() })

	path := cfg.ConfigFile
	if path == "" {
		path = getEnvString("CONFIG", "")
	}
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return err
		}
	}

	applyEnvOverrides(cfg, fs)

	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return apperrors.NewConfigError("flag --%s: %v", name, err)
		}
	}
	return cfg.Validate()
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.NewConfigError("invalid service URL %q: must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Slides < generation.MinSlides || c.Slides > generation.MaxSlides {
		return apperrors.NewConfigError("slides must be between %d and %d, got %d", generation.MinSlides, generation.MaxSlides, c.Slides)
	}
	if !generation.Style(c.Style).Valid() {
		return apperrors.NewConfigError("unknown style %q", c.Style)
	}
	if !generation.Language(c.Language).Valid() {
		return apperrors.NewConfigError("unknown language %q", c.Language)
	}
	if c.CompletionHold < 0 {
		return apperrors.NewConfigError("completion hold must not be negative, got %s", c.CompletionHold)
	}
	if err := c.Schedule().Validate(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return apperrors.NewConfigError("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.RatePerSec < 0 {
		return apperrors.NewConfigError("rate must not be negative, got %g", c.RatePerSec)
	}
	if c.S3Prefix != "" && c.S3Bucket == "" {
		return apperrors.NewConfigError("--s3-prefix requires --s3-bucket")
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet are mutually exclusive")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return apperrors.NewConfigError("unknown log format %q: use console or json", c.LogFormat)
	}
	return nil
}

// Request builds the generation request for text from the configured fields.
func (c AppConfig) Request(text string) generation.Request {
	return generation.NewRequest(text, c.Slides, generation.Style(c.Style), generation.Language(c.Language), c.APIKey)
}

// Schedule returns the progress schedule with the configured cadence.
func (c AppConfig) Schedule() progress.Schedule {
	s := progress.DefaultSchedule()
	s.Interval = c.ProgressInterval
	s.Step = c.ProgressStep
	return s
}

// Labels returns the label dictionary for the configured language.
func (c AppConfig) Labels() *generation.Dictionary {
	return generation.LabelsFor(generation.Language(c.Language))
}
