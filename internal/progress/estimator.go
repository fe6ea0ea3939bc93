package progress

import (
	"sync"
	"time"

	"github.com/agbru/txt2pptx/internal/generation"
)

// Tick is a single progress notification.
type Tick struct {
	Percent int
	Phase   generation.PhaseKind
	Title   string
	Detail  string
}

// TickFunc receives ticks. It is called from the estimator goroutine, one
// tick at a time.
type TickFunc func(Tick)

// tickerFunc creates the cadence source. It is replaced in tests.
type tickerFunc func(time.Duration) (<-chan time.Time, func())

func realTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Estimator emits ticks along a schedule. At most one run is active per
// estimator; starting a new run cancels the previous one.
type Estimator struct {
	schedule  Schedule
	labels    *generation.Dictionary
	newTicker tickerFunc

	mu     sync.Mutex
	active *Handle
}

// NewEstimator creates an estimator. The schedule must be valid.
func NewEstimator(schedule Schedule, labels *generation.Dictionary) *Estimator {
	if labels == nil {
		labels = generation.LabelsFor(generation.LanguageEnglish)
	}
	return &Estimator{schedule: schedule, labels: labels, newTicker: realTicker}
}

// Schedule returns the estimator's schedule.
func (e *Estimator) Schedule() Schedule { return e.schedule }

// Start begins a run and returns its handle. The first tick is delivered
// immediately at the first phase's ceiling. A run still active from an
// earlier Start is cancelled first.
func (e *Estimator) Start(onTick TickFunc) *Handle {
	e.mu.Lock()
	prev := e.active
	e.mu.Unlock()
	prev.Cancel()

	h := &Handle{stop: make(chan struct{}), done: make(chan struct{})}
	c, stopTicker := e.newTicker(e.schedule.Interval)

	e.mu.Lock()
	e.active = h
	e.mu.Unlock()

	go e.run(h, c, stopTicker, onTick)
	return h
}

func (e *Estimator) run(h *Handle, c <-chan time.Time, stopTicker func(), onTick TickFunc) {
	defer close(h.done)
	defer stopTicker()

	cur := e.schedule.Begin()
	if h.stopped() {
		return
	}
	onTick(e.tickAt(cur))

	for {
		select {
		case <-h.stop:
			return
		case <-c:
			// A tick and a cancel can be ready together; cancel wins.
			if h.stopped() {
				return
			}
			next, ok := e.schedule.Next(cur)
			if !ok {
				stopTicker()
				<-h.stop
				return
			}
			cur = next
			onTick(e.tickAt(cur))
		}
	}
}

func (e *Estimator) tickAt(c Cursor) Tick {
	kind := e.schedule.Phases[c.Phase].Kind
	label := e.labels.Phase(kind)
	return Tick{Percent: c.Percent, Phase: kind, Title: label.Title, Detail: label.Detail}
}

// Handle controls one estimator run.
type Handle struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Cancel stops the run and waits for its goroutine to exit, so no tick is
// delivered after Cancel returns. It is idempotent and safe on a nil handle.
// Cancel must not be called from inside the run's own TickFunc.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

// Done is closed once the run's goroutine has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) stopped() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}
