package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// bubbletea copies the model on every Update, so the presenter holds a
// pointer that survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram and
// returns immediately once the program has exited.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Messages posted by the presenter.
type (
	// RejectedMsg carries a validation reason.
	RejectedMsg struct{ Reason string }
	// TickMsg carries a progress tick.
	TickMsg struct{ Tick progress.Tick }
	// SuccessMsg carries the outcome of a successful generation.
	SuccessMsg struct{ Outcome generation.Outcome }
	// FailureMsg carries the user-facing failure message.
	FailureMsg struct{ Message string }
)

// Presenter turns orchestrator notifications into bubbletea messages.
type Presenter struct {
	send func(tea.Msg)
}

var _ orchestration.Presenter = (*Presenter)(nil)

func newPresenter(ref *programRef) *Presenter {
	return &Presenter{send: ref.Send}
}

func (p *Presenter) OnSubmitRejected(reason string) { p.send(RejectedMsg{Reason: reason}) }
func (p *Presenter) OnTick(t progress.Tick)         { p.send(TickMsg{Tick: t}) }
func (p *Presenter) OnSuccess(o generation.Outcome) { p.send(SuccessMsg{Outcome: o}) }
func (p *Presenter) OnFailure(message string)       { p.send(FailureMsg{Message: message}) }
