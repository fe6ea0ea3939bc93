package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/txt2pptx/internal/cli"
	"github.com/agbru/txt2pptx/internal/config"
	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/logging"
	"github.com/agbru/txt2pptx/internal/metrics"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/storage"
	"github.com/agbru/txt2pptx/internal/transport"
	"github.com/agbru/txt2pptx/internal/ui"
)

// Application represents the txt2pptx application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader
	Logger    logging.Logger
	Metrics   *metrics.Collector

	client     *transport.Client
	sink       storage.Sink
	prompter   cli.RequestPrompter
	httpClient *http.Client
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithHTTPClient sets the HTTP client used to reach the service.
func WithHTTPClient(hc *http.Client) AppOption {
	return func(a *Application) { a.httpClient = hc }
}

// WithSink replaces the artifact sink chosen from the configuration.
func WithSink(s storage.Sink) AppOption {
	return func(a *Application) { a.sink = s }
}

// WithInput sets the reader used for --file -.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithPrompter replaces the survey prompter of interactive mode.
func WithPrompter(p cli.RequestPrompter) AppOption {
	return func(a *Application) { a.prompter = p }
}

// New creates an Application from a resolved configuration.
func New(ctx context.Context, cfg config.AppConfig, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	app := &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		In:        os.Stdin,
		Metrics:   metrics.NewCollector(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.Logger = app.newLogger("app")
	ui.InitTheme(cfg.NoColor)

	clientOpts := []transport.Option{
		transport.WithLabels(cfg.Labels()),
		transport.WithUserAgent("txt2pptx/" + Version),
		transport.WithLogger(app.newLogger("transport")),
	}
	if app.httpClient != nil {
		clientOpts = append(clientOpts, transport.WithHTTPClient(app.httpClient))
	}
	app.client = transport.NewClient(cfg.BaseURL, clientOpts...)

	if app.sink == nil {
		sink, err := newSink(ctx, cfg, app.newLogger("storage"))
		if err != nil {
			return nil, err
		}
		app.sink = sink
	}
	if app.prompter == nil {
		app.prompter = cli.NewPrompter()
	}
	return app, nil
}

// newSink picks S3 when a bucket is configured and the output directory
// otherwise.
func newSink(ctx context.Context, cfg config.AppConfig, logger logging.Logger) (storage.Sink, error) {
	if cfg.S3Bucket == "" {
		return storage.NewLocalSink(cfg.OutputDir), nil
	}
	sink, err := storage.NewS3Sink(ctx, cfg.S3Bucket, cfg.S3Prefix, logger)
	if err != nil {
		return nil, apperrors.NewConfigError("s3 sink: %v", err)
	}
	return sink, nil
}

// Run executes a single generation, or the interactive session, based on
// the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ctx, stop := a.lifecycle(ctx)
	defer stop()
	defer a.flushMetrics()

	var err error
	switch {
	case a.Config.Interactive:
		err = a.runInteractive(ctx, out)
	case a.Config.TUI:
		err = a.runTUI(ctx, out)
	default:
		err = a.runGenerate(ctx, out)
	}
	return a.exit(err)
}

// newLogger returns the logger of one component, honouring --log-level and
// --log-format.
func (a *Application) newLogger(component string) logging.Logger {
	if a.Config.LogFormat == "json" {
		return logging.NewJSONLogger(a.ErrWriter, a.Config.LogLevel, component)
	}
	return logging.NewConsoleLogger(a.ErrWriter, a.Config.LogLevel, component)
}

// lifecycle cancels ctx on SIGINT or SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// newOrchestrator wires the orchestrator used by every mode.
func (a *Application) newOrchestrator(p orchestration.Presenter, hold bool) *orchestration.Orchestrator {
	opts := []orchestration.Option{
		orchestration.WithSchedule(a.Config.Schedule()),
		orchestration.WithLabels(a.Config.Labels()),
		orchestration.WithTimeout(a.Config.Timeout),
		orchestration.WithLogger(a.newLogger("orchestrator")),
		orchestration.WithObserver(a.Metrics),
	}
	if hold {
		opts = append(opts, orchestration.WithCompletionHold(a.Config.CompletionHold))
	}
	return orchestration.New(a.Metrics.InstrumentTransport(a.client), p, opts...)
}

// flushMetrics writes the metrics textfile when one is configured.
func (a *Application) flushMetrics() {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("metrics export failed", err, logging.String("path", a.Config.MetricsFile))
	}
}

// exit maps err to an exit code. Interruptions are reported on ErrWriter;
// every other failure has already been shown by a presenter.
func (a *Application) exit(err error) int {
	code := apperrors.ExitCode(err)
	switch code {
	case apperrors.ExitErrorCanceled:
		fmt.Fprintf(a.ErrWriter, "%sInterrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
	case apperrors.ExitErrorTimeout:
		fmt.Fprintf(a.ErrWriter, "%sTimed out after %s.%s\n", ui.ColorRed(), a.Config.Timeout, ui.ColorReset())
	case apperrors.ExitErrorConfig:
		fmt.Fprintf(a.ErrWriter, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return code
}

// labels is shorthand for the configured dictionary.
func (a *Application) labels() *generation.Dictionary { return a.Config.Labels() }
