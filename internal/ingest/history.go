package ingest

import (
	"sync"
	"time"
)

// Sample is one accepted sensor reading. Immutable once created.
type Sample struct {
	// Time is when the value was accepted, not when the line was read.
	Time time.Time
	// Value is the parsed reading.
	Value float64
	// Raw is the source line the value came from, for diagnostics.
	Raw string
}

// History is the append-only, time-ordered record of every accepted sample
// in this session. Timestamps and values live in parallel slices that are
// always the same length; a sample becomes visible to both atomically.
// History grows for the process lifetime; the view window bounds what gets
// rendered, not what gets kept.
type History struct {
	mu     sync.RWMutex
	times  []time.Time
	values []float64
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append records one sample. O(1) amortized, never rejects.
func (h *History) Append(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.times = append(h.times, s.Time)
	h.values = append(h.values, s.Value)
}

// Len returns the number of samples recorded so far.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.values)
}

// Window is a copied suffix of the history, safe to hold across appends.
type Window struct {
	Times  []time.Time
	Values []float64
}

// Len returns the number of samples in the window.
func (w Window) Len() int {
	return len(w.Values)
}

// Last returns the most recent value in the window.
func (w Window) Last() (float64, bool) {
	if len(w.Values) == 0 {
		return 0, false
	}
	return w.Values[len(w.Values)-1], true
}

// View returns the last min(width, len) samples in time order. An empty
// history yields an empty window, which callers treat as "nothing to render
// yet". The width may change between calls; the stored history is never
// resized, only the returned slice.
func (h *History) View(width int) Window {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if width < 0 {
		width = 0
	}
	n := len(h.values)
	if width > n {
		width = n
	}
	start := n - width

	w := Window{
		Times:  make([]time.Time, width),
		Values: make([]float64, width),
	}
	copy(w.Times, h.times[start:])
	copy(w.Values, h.values[start:])
	return w
}
