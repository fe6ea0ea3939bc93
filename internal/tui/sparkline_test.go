package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPercentHistory(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		limit     int
		add       []int
		want      []int
		sparkline string
	}{
		{"empty", 3, nil, nil, ""},
		{"schedule walk", 8, []int{10, 25, 45, 65, 80, 90, 100}, []int{10, 25, 45, 65, 80, 90, 100}, "▁▂▄▅▆▇█"},
		{"full drops oldest", 3, []int{10, 25, 45, 65, 80}, []int{45, 65, 80}, "▄▅▆"},
		{"zero limit holds one", 0, []int{10, 100}, []int{100}, "█"},
		{"out of range clamped", 4, []int{-5, 150}, []int{-5, 150}, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newPercentHistory(tt.limit)
			for _, p := range tt.add {
				h.add(p)
			}
			var got []int
			if h.size() > 0 {
				got = h.samples
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
			if s := h.sparkline(); s != tt.sparkline {
				t.Errorf("sparkline() = %q, want %q", s, tt.sparkline)
			}
		})
	}
}

func TestPercentHistory_Clear(t *testing.T) {
	t.Parallel()
	h := newPercentHistory(4)
	h.add(10)
	h.add(20)
	h.clear()
	if h.size() != 0 || h.sparkline() != "" {
		t.Errorf("after clear: size=%d sparkline=%q", h.size(), h.sparkline())
	}
	h.add(100)
	if h.sparkline() != "█" {
		t.Errorf("sparkline() after reuse = %q", h.sparkline())
	}
}
