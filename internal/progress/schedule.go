package progress

import (
	"time"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
)

// Default cadence of the estimator.
const (
	DefaultStep     = 2
	DefaultInterval = 400 * time.Millisecond

	// MaxCeiling is the highest percent the estimator may ever report. The
	// points above it belong to the completion tick.
	MaxCeiling = 90
)

// Phase is one step of the simulated pipeline. The estimator climbs towards
// Ceiling while the phase is active.
type Phase struct {
	Kind    generation.PhaseKind
	Ceiling int
}

// Schedule describes the estimator's walk. The first phase is entered
// directly at its ceiling; it is the initial tick.
type Schedule struct {
	Phases   []Phase
	Step     int
	Interval time.Duration
}

// DefaultSchedule returns the analyze→finalize schedule used by the service
// front-end: 10, 25, 45, 65, 80, 90 in steps of 2 every 400ms.
func DefaultSchedule() Schedule {
	return Schedule{
		Phases: []Phase{
			{Kind: generation.PhaseAnalyze, Ceiling: 10},
			{Kind: generation.PhaseExpand, Ceiling: 25},
			{Kind: generation.PhasePlan, Ceiling: 45},
			{Kind: generation.PhaseLayout, Ceiling: 65},
			{Kind: generation.PhaseRender, Ceiling: 80},
			{Kind: generation.PhaseFinalize, Ceiling: 90},
		},
		Step:     DefaultStep,
		Interval: DefaultInterval,
	}
}

// Validate checks that the schedule is well formed.
func (s Schedule) Validate() error {
	if len(s.Phases) == 0 {
		return apperrors.NewConfigError("progress schedule has no phases")
	}
	if s.Step < 1 {
		return apperrors.NewConfigError("progress step must be at least 1, got %d", s.Step)
	}
	if s.Interval <= 0 {
		return apperrors.NewConfigError("progress interval must be positive, got %s", s.Interval)
	}
	if s.Phases[0].Ceiling < 0 {
		return apperrors.NewConfigError("progress start must not be negative, got %d", s.Phases[0].Ceiling)
	}
	for i := 1; i < len(s.Phases); i++ {
		if s.Phases[i].Ceiling <= s.Phases[i-1].Ceiling {
			return apperrors.NewConfigError("phase %q ceiling %d must exceed %d",
				s.Phases[i].Kind, s.Phases[i].Ceiling, s.Phases[i-1].Ceiling)
		}
	}
	if last := s.Phases[len(s.Phases)-1].Ceiling; last > MaxCeiling {
		return apperrors.NewConfigError("last phase ceiling %d exceeds %d", last, MaxCeiling)
	}
	return nil
}

// Cursor is the estimator's position within a schedule.
type Cursor struct {
	Phase   int
	Percent int
}

// Begin returns the cursor of the initial tick.
func (s Schedule) Begin() Cursor {
	return Cursor{Phase: 0, Percent: s.Phases[0].Ceiling}
}

// Next advances c by one step. Phases whose ceiling has been reached are
// skipped and the percent is clamped to the active ceiling. It returns false
// once the last ceiling is reached; the cursor then stays where it is.
func (s Schedule) Next(c Cursor) (Cursor, bool) {
	idx := c.Phase
	for idx < len(s.Phases) && s.Phases[idx].Ceiling <= c.Percent {
		idx++
	}
	if idx >= len(s.Phases) {
		return c, false
	}
	return Cursor{Phase: idx, Percent: min(c.Percent+s.Step, s.Phases[idx].Ceiling)}, true
}

// Ceiling returns the highest percent the schedule can reach.
func (s Schedule) Ceiling() int {
	if len(s.Phases) == 0 {
		return 0
	}
	return s.Phases[len(s.Phases)-1].Ceiling
}
