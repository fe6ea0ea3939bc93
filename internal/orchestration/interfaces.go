//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"time"

	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/progress"
)

// Transport performs the remote generation call. Implementations return
// apperrors.NetworkError, ProtocolError or DecodeError on failure so the
// orchestrator can derive a user-facing message.
type Transport interface {
	Send(ctx context.Context, req generation.Request) (generation.Outcome, error)
}

// TransportFunc is a function adapter that implements Transport.
type TransportFunc func(ctx context.Context, req generation.Request) (generation.Outcome, error)

// Send calls the underlying function.
func (f TransportFunc) Send(ctx context.Context, req generation.Request) (generation.Outcome, error) {
	return f(ctx, req)
}

// Presenter receives lifecycle notifications. Calls are fire-and-forget and
// never overlap for a given orchestrator. A presenter may call back into the
// orchestrator; notifications caused by such a call are delivered after the
// current method returns.
type Presenter interface {
	// OnSubmitRejected reports a submission refused by local validation.
	OnSubmitRejected(reason string)
	// OnTick reports progress. Percent never decreases within a cycle.
	OnTick(tick progress.Tick)
	// OnSuccess reports the terminal outcome of a successful cycle.
	OnSuccess(outcome generation.Outcome)
	// OnFailure reports the terminal message of a failed cycle.
	OnFailure(message string)
}

// Observer receives instrumentation events from an orchestrator.
type Observer interface {
	Rejected(field string)
	Busy()
	Started()
	Finished(state State, elapsed time.Duration)
}

// NullPresenter discards every notification.
type NullPresenter struct{}

func (NullPresenter) OnSubmitRejected(string)      {}
func (NullPresenter) OnTick(progress.Tick)         {}
func (NullPresenter) OnSuccess(generation.Outcome) {}
func (NullPresenter) OnFailure(string)             {}

// PresenterFuncs adapts optional callbacks to a Presenter. Nil fields are
// ignored.
type PresenterFuncs struct {
	Rejected func(reason string)
	Tick     func(tick progress.Tick)
	Success  func(outcome generation.Outcome)
	Failure  func(message string)
}

// OnSubmitRejected calls Rejected if set.
func (p PresenterFuncs) OnSubmitRejected(reason string) {
	if p.Rejected != nil {
		p.Rejected(reason)
	}
}

// OnTick calls Tick if set.
func (p PresenterFuncs) OnTick(tick progress.Tick) {
	if p.Tick != nil {
		p.Tick(tick)
	}
}

// OnSuccess calls Success if set.
func (p PresenterFuncs) OnSuccess(outcome generation.Outcome) {
	if p.Success != nil {
		p.Success(outcome)
	}
}

// OnFailure calls Failure if set.
func (p PresenterFuncs) OnFailure(message string) {
	if p.Failure != nil {
		p.Failure(message)
	}
}

// MultiPresenter fans each notification out to every presenter in order.
type MultiPresenter []Presenter

func (m MultiPresenter) OnSubmitRejected(reason string) {
	for _, p := range m {
		p.OnSubmitRejected(reason)
	}
}

func (m MultiPresenter) OnTick(tick progress.Tick) {
	for _, p := range m {
		p.OnTick(tick)
	}
}

func (m MultiPresenter) OnSuccess(outcome generation.Outcome) {
	for _, p := range m {
		p.OnSuccess(outcome)
	}
}

func (m MultiPresenter) OnFailure(message string) {
	for _, p := range m {
		p.OnFailure(message)
	}
}

type nopObserver struct{}

func (nopObserver) Rejected(string)               {}
func (nopObserver) Busy()                         {}
func (nopObserver) Started()                      {}
func (nopObserver) Finished(State, time.Duration) {}
