package emotion

import "sync"

// History is the append-only ordered log of all samples collected during a
// session. It only ever grows; there is no truncation or compaction. Samples
// are value types, so reads naturally copy out.
type History struct {
	mu      sync.RWMutex
	samples []Sample
}

func NewHistory() *History {
	return &History{}
}

// Append adds a sample to the tail and returns the new length.
func (h *History) Append(s Sample) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, s)
	return len(h.samples)
}

// AppendAndNotify appends under the lock and runs fn before releasing it,
// so a broadcaster can queue the sample before any reader observes the new
// length.
func (h *History) AppendAndNotify(s Sample, fn func(n int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, s)
	if fn != nil {
		fn(len(h.samples))
	}
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.samples)
}

// At returns the sample at tick index i.
func (h *History) At(i int) (Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= len(h.samples) {
		return Sample{}, false
	}
	return h.samples[i], true
}

// Snapshot returns a copy of the full log in arrival order.
func (h *History) Snapshot() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Tail returns a copy of the most recent n samples (fewer if the log is
// shorter).
func (h *History) Tail(n int) []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n > len(h.samples) {
		n = len(h.samples)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Sample, n)
	copy(out, h.samples[len(h.samples)-n:])
	return out
}
