package tui

import "strings"

// sparkBlocks are the sparkline levels, lowest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// percentHistory holds the percentages shown during one generation. Once
// limit samples are held, each new one drops the oldest.
type percentHistory struct {
	samples []int
	limit   int
}

func newPercentHistory(limit int) *percentHistory {
	limit = max(limit, 1)
	return &percentHistory{samples: make([]int, 0, limit), limit: limit}
}

func (h *percentHistory) add(percent int) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, percent)
}

func (h *percentHistory) size() int { return len(h.samples) }

func (h *percentHistory) clear() { h.samples = h.samples[:0] }

// sparkline draws one block per sample, oldest on the left.
func (h *percentHistory) sparkline() string {
	var b strings.Builder
	top := len(sparkBlocks) - 1
	for _, p := range h.samples {
		p = min(max(p, 0), 100)
		b.WriteRune(sparkBlocks[p*top/100])
	}
	return b.String()
}
