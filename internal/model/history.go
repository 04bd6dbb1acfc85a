package model

const defaultHistoryCap = 60

// SpeedHistory is a fixed-size ring buffer of bandwidth speed samples
// (bytes/sec, floored to integers). When the buffer is full, new pushes
// overwrite the oldest entry, so the series is FIFO-bounded.
type SpeedHistory struct {
	buf  []uint64
	head int // index of the next write position
	size int // number of valid entries
}

// NewSpeedHistory creates a SpeedHistory with the given capacity.
// If capacity <= 0, the default of 60 samples is used.
func NewSpeedHistory(capacity int) *SpeedHistory {
	if capacity <= 0 {
		capacity = defaultHistoryCap
	}
	return &SpeedHistory{buf: make([]uint64, capacity)}
}

// Push appends a sample, overwriting the oldest if the buffer is full.
func (h *SpeedHistory) Push(v uint64) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of valid samples.
func (h *SpeedHistory) Len() int {
	return h.size
}

// Cap returns the fixed capacity of the buffer.
func (h *SpeedHistory) Cap() int {
	return len(h.buf)
}

// Values returns the samples in chronological order (oldest first).
func (h *SpeedHistory) Values() []uint64 {
	out := make([]uint64, h.size)
	// oldest entry sits at (head - size + cap) % cap
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}

// Points returns the samples as (index, value) chart points in
// chronological order.
func (h *SpeedHistory) Points() []ChartPoint {
	vals := h.Values()
	out := make([]ChartPoint, len(vals))
	for i, v := range vals {
		out[i] = ChartPoint{Index: float64(i), Value: float64(v)}
	}
	return out
}
