package orchestration

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/logging"
	"github.com/agbru/txt2pptx/internal/progress"
)

const tracerName = "github.com/agbru/txt2pptx/internal/orchestration"

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSchedule replaces the estimator schedule.
func WithSchedule(s progress.Schedule) Option {
	return func(o *Orchestrator) { o.schedule = s }
}

// WithLabels sets the dictionary used for phase labels and failure messages.
func WithLabels(d *generation.Dictionary) Option {
	return func(o *Orchestrator) { o.labels = d }
}

// WithCompletionHold delays the success notification after the 100% tick.
func WithCompletionHold(d time.Duration) Option {
	return func(o *Orchestrator) { o.hold = d }
}

// WithTimeout bounds each Transport call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithObserver sets the instrumentation observer.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithTracer sets the tracer used for cycle spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

// cycle is one submission that reached Running. Its result fields are
// written before done is closed.
type cycle struct {
	id      uint64
	done    chan struct{}
	handle  *progress.Handle
	state   State
	outcome generation.Outcome
	err     error
	message string
}

// Orchestrator runs at most one generation at a time.
//
// mu guards the state fields. Presenter calls go through notifier and are
// never made while mu is held.
type Orchestrator struct {
	transport Transport
	presenter Presenter
	estimator *progress.Estimator

	schedule progress.Schedule
	labels   *generation.Dictionary
	hold     time.Duration
	timeout  time.Duration
	logger   logging.Logger
	observer Observer
	tracer   trace.Tracer

	notifier notifier

	mu          sync.Mutex
	state       State
	cycles      uint64
	lastPercent int
	current     *cycle
}

// New creates an idle orchestrator. A nil presenter discards notifications.
func New(transport Transport, presenter Presenter, opts ...Option) *Orchestrator {
	if presenter == nil {
		presenter = NullPresenter{}
	}
	o := &Orchestrator{
		transport: transport,
		presenter: presenter,
		schedule:  progress.DefaultSchedule(),
		labels:    generation.LabelsFor(generation.LanguageEnglish),
		logger:    logging.Nop(),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	o.estimator = progress.NewEstimator(o.schedule, o.labels)
	return o
}

// Submit validates req and starts a generation without waiting for it.
//
// An invalid request is reported through OnSubmitRejected and returned as an
// apperrors.ValidationError; the Transport is not contacted. While a cycle is
// running, Submit returns apperrors.ErrInFlight and has no other effect. A
// terminal cycle that was not acknowledged is acknowledged implicitly.
//
// ctx bounds the Transport call; cancelling it fails the cycle.
func (o *Orchestrator) Submit(ctx context.Context, req generation.Request) error {
	_, err := o.submit(ctx, req)
	return err
}

func (o *Orchestrator) submit(ctx context.Context, req generation.Request) (*cycle, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		var validationErr apperrors.ValidationError
		errors.As(err, &validationErr)
		o.observer.Rejected(validationErr.Field)
		o.logger.Debug("submission rejected", logging.String("field", validationErr.Field))
		o.notifier.notify(func() { o.presenter.OnSubmitRejected(validationErr.Message) })
		return nil, err
	}

	o.mu.Lock()
	if o.state == StateRunning {
		o.mu.Unlock()
		o.observer.Busy()
		o.logger.Debug("submission ignored, generation in flight")
		return nil, apperrors.ErrInFlight
	}
	if o.state.IsTerminal() {
		o.resetLocked()
	}
	if err := transition(&o.state, StateRunning); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	o.cycles++
	c := &cycle{id: o.cycles, done: make(chan struct{})}
	o.current = c
	o.lastPercent = 0
	c.handle = o.estimator.Start(func(t progress.Tick) { o.deliverTick(c.id, t) })
	o.mu.Unlock()

	o.observer.Started()
	o.logger.Info("generation started",
		logging.Uint64("cycle", c.id),
		logging.Int("slides", req.SlideCount),
		logging.String("style", string(req.Style)),
		logging.String("language", string(req.Language)),
	)

	go o.execute(ctx, c, req)
	return c, nil
}

// deliverTick forwards an estimator tick if it belongs to the running cycle,
// clamping it so the presenter never sees percent decrease.
func (o *Orchestrator) deliverTick(id uint64, t progress.Tick) {
	o.mu.Lock()
	if o.state != StateRunning || o.current == nil || o.current.id != id {
		o.mu.Unlock()
		return
	}
	if t.Percent < o.lastPercent {
		t.Percent = o.lastPercent
	}
	o.lastPercent = t.Percent
	o.mu.Unlock()

	o.notifier.notify(func() { o.presenter.OnTick(t) })
}

func (o *Orchestrator) execute(ctx context.Context, c *cycle, req generation.Request) {
	start := time.Now()
	ctx, span := o.tracer.Start(ctx, "orchestrator.cycle", trace.WithAttributes(
		attribute.Int64("cycle", int64(c.id)),
		attribute.Int("slides", req.SlideCount),
		attribute.String("style", string(req.Style)),
		attribute.String("language", string(req.Language)),
	))
	defer span.End()

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	outcome, err := o.transport.Send(ctx, req)

	// No tick may follow the terminal notification.
	c.handle.Cancel()

	if err != nil {
		o.fail(c, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, c.message)
	} else {
		o.succeed(c, outcome)
		span.SetAttributes(attribute.Int("outline.slides", len(outcome.Slides)))
	}

	elapsed := time.Since(start)
	o.observer.Finished(c.state, elapsed)
	o.logger.Info("generation finished",
		logging.Uint64("cycle", c.id),
		logging.String("state", c.state.String()),
		logging.Duration("elapsed", elapsed),
	)
	close(c.done)
}

func (o *Orchestrator) succeed(c *cycle, outcome generation.Outcome) {
	label := o.labels.Phase(generation.PhaseComplete)
	o.mu.Lock()
	o.lastPercent = 100
	o.mu.Unlock()
	complete := progress.Tick{
		Percent: 100,
		Phase:   generation.PhaseComplete,
		Title:   label.Title,
		Detail:  label.Detail,
	}
	o.notifier.notify(func() { o.presenter.OnTick(complete) })

	if o.hold > 0 {
		time.Sleep(o.hold)
	}

	o.mu.Lock()
	c.state = StateSucceeded
	c.outcome = outcome
	if err := transition(&o.state, StateSucceeded); err != nil {
		o.logger.Error("state machine", err)
	}
	o.mu.Unlock()

	o.notifier.notify(func() { o.presenter.OnSuccess(outcome) })
}

func (o *Orchestrator) fail(c *cycle, err error) {
	msg := apperrors.UserMessage(err, o.labels.ErrorMessages())
	o.logger.Error("generation failed", err, logging.Uint64("cycle", c.id))

	o.mu.Lock()
	c.state = StateFailed
	c.err = err
	c.message = msg
	if terr := transition(&o.state, StateFailed); terr != nil {
		o.logger.Error("state machine", terr)
	}
	o.mu.Unlock()

	o.notifier.notify(func() { o.presenter.OnFailure(msg) })
}

// Acknowledge resets a terminal orchestrator to Idle. It is a no-op when
// Idle and returns apperrors.ErrNotTerminal while Running.
func (o *Orchestrator) Acknowledge() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch {
	case o.state == StateRunning:
		return apperrors.ErrNotTerminal
	case o.state.IsTerminal():
		o.resetLocked()
	}
	return nil
}

func (o *Orchestrator) resetLocked() {
	if o.current != nil {
		o.current.handle.Cancel()
	}
	if err := transition(&o.state, StateIdle); err != nil {
		o.logger.Error("state machine", err)
	}
	o.current = nil
	o.lastPercent = 0
}

// Wait blocks until the current cycle settles and returns its terminal
// state. A failed cycle returns its Transport error. Wait returns
// apperrors.ErrNothingSubmitted when there is no cycle to wait for.
func (o *Orchestrator) Wait(ctx context.Context) (State, error) {
	o.mu.Lock()
	c := o.current
	o.mu.Unlock()
	if c == nil {
		return StateIdle, apperrors.ErrNothingSubmitted
	}
	if err := c.wait(ctx); err != nil {
		return StateRunning, err
	}
	return c.state, c.err
}

func (c *cycle) wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run submits req and waits for the outcome.
func (o *Orchestrator) Run(ctx context.Context, req generation.Request) (generation.Outcome, error) {
	c, err := o.submit(ctx, req)
	if err != nil {
		return generation.Outcome{}, err
	}
	if err := c.wait(ctx); err != nil {
		return generation.Outcome{}, err
	}
	return c.outcome, c.err
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Snapshot returns the current state with its progress bookkeeping.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Snapshot{State: o.state, Cycle: o.cycles, Percent: o.lastPercent}
	if o.state == StateFailed && o.current != nil {
		s.Message = o.current.message
	}
	return s
}
