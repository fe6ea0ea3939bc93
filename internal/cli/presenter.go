package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/orchestration"
	"github.com/agbru/txt2pptx/internal/progress"
	"github.com/agbru/txt2pptx/internal/ui"
)

// Presenter renders a generation in the terminal: a spinner with a progress
// bar while running, then the outline or the failure message.
type Presenter struct {
	out         io.Writer
	labels      *generation.Dictionary
	downloadURL func(filename string) string

	mu      sync.Mutex
	spinner Spinner
}

var _ orchestration.Presenter = (*Presenter)(nil)

// NewPresenter creates a terminal presenter. downloadURL may be nil, in
// which case no link is printed.
func NewPresenter(out io.Writer, labels *generation.Dictionary, downloadURL func(string) string) *Presenter {
	if labels == nil {
		labels = generation.LabelsFor(generation.LanguageEnglish)
	}
	return &Presenter{out: out, labels: labels, downloadURL: downloadURL}
}

// OnSubmitRejected prints the validation reason.
func (p *Presenter) OnSubmitRejected(reason string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	fmt.Fprintf(p.out, "%s! %s%s\n", ui.ColorYellow(), reason, ui.ColorReset())
}

// OnTick starts the spinner on the first tick and updates its suffix.
func (p *Presenter) OnTick(t progress.Tick) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner == nil {
		p.spinner = newSpinner(spinner.WithWriter(p.out))
		p.spinner.Start()
	}
	p.spinner.UpdateSuffix(FormatTick(t))
}

// OnSuccess stops the spinner and prints the outline.
func (p *Presenter) OnSuccess(o generation.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	url := ""
	if p.downloadURL != nil && o.Filename != "" {
		url = p.downloadURL(o.Filename)
	}
	DisplayOutcome(p.out, o, p.labels, url)
}

// OnFailure stops the spinner and prints the message in the error color.
func (p *Presenter) OnFailure(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	fmt.Fprintf(p.out, "%s✗ %s%s\n", ui.ColorRed(), message, ui.ColorReset())
}

func (p *Presenter) stopLocked() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}
