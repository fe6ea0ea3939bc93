package orchestration_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agbru/txt2pptx/internal/generation"
	"github.com/agbru/txt2pptx/internal/progress"
)

// event is one presenter notification as seen by recordingPresenter.
type event struct {
	kind    string // "rejected", "tick", "success", "failure"
	percent int
	text    string
}

// recordingPresenter records every notification in order.
type recordingPresenter struct {
	mu      sync.Mutex
	events  []event
	outcome generation.Outcome
	notify  chan struct{}
}

func newRecorder() *recordingPresenter {
	return &recordingPresenter{notify: make(chan struct{}, 1024)}
}

func (r *recordingPresenter) add(e event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	select {
	case r.notify <- struct{}{}:
	default:
	}
}

func (r *recordingPresenter) OnSubmitRejected(reason string) {
	r.add(event{kind: "rejected", text: reason})
}

func (r *recordingPresenter) OnTick(t progress.Tick) {
	r.add(event{kind: "tick", percent: t.Percent, text: t.Title})
}

func (r *recordingPresenter) OnSuccess(o generation.Outcome) {
	r.mu.Lock()
	r.outcome = o
	r.mu.Unlock()
	r.add(event{kind: "success", text: o.Filename})
}

func (r *recordingPresenter) OnFailure(msg string) {
	r.add(event{kind: "failure", text: msg})
}

func (r *recordingPresenter) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func (r *recordingPresenter) count(kind string) int {
	n := 0
	for _, e := range r.snapshot() {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// waitFor blocks until cond holds or the deadline passes.
func (r *recordingPresenter) waitFor(t *testing.T, what string, cond func([]event) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond(r.snapshot()) {
			return
		}
		select {
		case <-r.notify:
		case <-deadline:
			t.Fatalf("timed out waiting for %s; events: %v", what, r.snapshot())
		}
	}
}

// checkLifecycle verifies the invariants every cycle must satisfy: percent
// never decreases, the estimator never reports 100, exactly one terminal
// notification is delivered and nothing follows it.
func checkLifecycle(events []event) error {
	last := -1
	terminal := -1
	for i, e := range events {
		switch e.kind {
		case "tick":
			if terminal >= 0 {
				return fmt.Errorf("tick at %d after terminal at %d", i, terminal)
			}
			if e.percent < last {
				return fmt.Errorf("percent decreased from %d to %d", last, e.percent)
			}
			last = e.percent
		case "success", "failure":
			if terminal >= 0 {
				return fmt.Errorf("second terminal notification at %d", i)
			}
			terminal = i
		}
	}
	if terminal < 0 {
		return fmt.Errorf("no terminal notification")
	}
	if events[terminal].kind == "success" && last != 100 {
		return fmt.Errorf("success without a 100%% tick, last=%d", last)
	}
	if events[terminal].kind == "failure" && last >= 100 {
		return fmt.Errorf("failure after a 100%% tick")
	}
	return nil
}

// fastSchedule ticks every millisecond.
func fastSchedule() progress.Schedule {
	s := progress.DefaultSchedule()
	s.Interval = time.Millisecond
	return s
}

func validRequest() generation.Request {
	return generation.Request{Text: "hello", SlideCount: 5, Style: generation.StyleDefault, Language: generation.LanguageEnglish}
}

func sampleOutcome() generation.Outcome {
	return generation.Outcome{
		Filename: "deck.pptx",
		Title:    "Hello",
		Slides: []generation.SlideSummary{
			{Title: "Hello", Layout: generation.LayoutTitle},
			{Title: "Points", Layout: generation.LayoutBullets},
		},
	}
}
