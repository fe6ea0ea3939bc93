package progress

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
	"github.com/agbru/txt2pptx/internal/generation"
)

func TestDefaultSchedule_Valid(t *testing.T) {
	t.Parallel()
	s := DefaultSchedule()
	if err := s.Validate(); err != nil {
		t.Fatalf("DefaultSchedule().Validate() = %v", err)
	}
	if got := s.Begin(); got.Percent != 10 {
		t.Errorf("initial percent = %d, want 10", got.Percent)
	}
	if got := s.Ceiling(); got != 90 {
		t.Errorf("Ceiling() = %d, want 90", got)
	}
}

func TestSchedule_Validate(t *testing.T) {
	t.Parallel()
	ok := []Phase{{Kind: generation.PhaseAnalyze, Ceiling: 10}, {Kind: generation.PhaseExpand, Ceiling: 20}}

	tests := []struct {
		name    string
		s       Schedule
		wantErr bool
	}{
		{"valid", Schedule{Phases: ok, Step: 1, Interval: time.Millisecond}, false},
		{"no phases", Schedule{Step: 1, Interval: time.Millisecond}, true},
		{"zero step", Schedule{Phases: ok, Step: 0, Interval: time.Millisecond}, true},
		{"zero interval", Schedule{Phases: ok, Step: 1}, true},
		{"negative start", Schedule{Phases: []Phase{{Ceiling: -1}}, Step: 1, Interval: time.Millisecond}, true},
		{"non-increasing", Schedule{Phases: []Phase{{Ceiling: 10}, {Ceiling: 10}}, Step: 1, Interval: time.Millisecond}, true},
		{"reaches 100", Schedule{Phases: []Phase{{Ceiling: 10}, {Ceiling: 100}}, Step: 1, Interval: time.Millisecond}, true},
		{"ceiling 90", Schedule{Phases: []Phase{{Ceiling: 10}, {Ceiling: 90}}, Step: 1, Interval: time.Millisecond}, false},
		{"into completion band", Schedule{Phases: []Phase{{Ceiling: 10}, {Ceiling: 91}}, Step: 1, Interval: time.Millisecond}, true},
		{"ceiling 99", Schedule{Phases: []Phase{{Ceiling: 10}, {Ceiling: 99}}, Step: 1, Interval: time.Millisecond}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			var configErr apperrors.ConfigError
			if err != nil && !errors.As(err, &configErr) {
				t.Errorf("Validate() should return ConfigError, got %T", err)
			}
		})
	}
}

func TestSchedule_NextWalk(t *testing.T) {
	t.Parallel()
	s := Schedule{
		Phases: []Phase{
			{Kind: generation.PhaseAnalyze, Ceiling: 10},
			{Kind: generation.PhaseExpand, Ceiling: 15},
			{Kind: generation.PhasePlan, Ceiling: 19},
		},
		Step:     2,
		Interval: time.Millisecond,
	}

	var got []Cursor
	cur := s.Begin()
	for {
		next, ok := s.Next(cur)
		if !ok {
			break
		}
		got = append(got, next)
		cur = next
	}

	want := []Cursor{
		{Phase: 1, Percent: 12},
		{Phase: 1, Percent: 14},
		{Phase: 1, Percent: 15},
		{Phase: 2, Percent: 17},
		{Phase: 2, Percent: 19},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}

	if again, ok := s.Next(cur); ok || again != cur {
		t.Errorf("exhausted schedule should hold at %+v, got %+v ok=%v", cur, again, ok)
	}
}

// TestSchedule_WalkProperties checks, for arbitrary valid schedules, that the
// walk is monotonic, visits every ceiling, never passes the last one and
// terminates.
func TestSchedule_WalkProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("walk is monotonic, clamped and terminating", prop.ForAll(
		func(start int, gaps []int, step int) bool {
			phases := []Phase{{Kind: generation.PhaseAnalyze, Ceiling: start}}
			ceiling := start
			for _, g := range gaps {
				if ceiling+g > MaxCeiling {
					break
				}
				ceiling += g
				phases = append(phases, Phase{Kind: generation.PhaseExpand, Ceiling: ceiling})
			}
			s := Schedule{Phases: phases, Step: step, Interval: time.Millisecond}
			if err := s.Validate(); err != nil {
				t.Logf("generated invalid schedule: %v", err)
				return false
			}

			visited := map[int]bool{}
			cur := s.Begin()
			visited[cur.Percent] = true
			for i := 0; i <= 100; i++ {
				next, ok := s.Next(cur)
				if !ok {
					break
				}
				if next.Percent <= cur.Percent || next.Percent > MaxCeiling || next.Phase < cur.Phase {
					return false
				}
				visited[next.Percent] = true
				cur = next
			}
			if cur.Percent != s.Ceiling() {
				return false
			}
			for _, p := range phases {
				if !visited[p.Ceiling] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.SliceOfN(6, gen.IntRange(1, 15)),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
