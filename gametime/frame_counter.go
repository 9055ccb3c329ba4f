package gametime

import "time"

// FrameCounter averages the frame rate over a sliding window of frames.
type FrameCounter struct {
	samples []time.Duration
	next    int
	filled  int
	sum     time.Duration
}

// NewFrameCounter creates a counter averaging over window frames.
func NewFrameCounter(window int) *FrameCounter {
	if window < 1 {
		window = 1
	}
	return &FrameCounter{samples: make([]time.Duration, window)}
}

// Tick records the wall time of one frame.
func (f *FrameCounter) Tick(t GameTime) {
	f.sum -= f.samples[f.next]
	f.samples[f.next] = t.ElapsedWall
	f.sum += t.ElapsedWall
	f.next = (f.next + 1) % len(f.samples)
	if f.filled < len(f.samples) {
		f.filled++
	}
}

// AverageFrameTime returns the mean frame duration over the window.
func (f *FrameCounter) AverageFrameTime() time.Duration {
	if f.filled == 0 {
		return 0
	}
	return f.sum / time.Duration(f.filled)
}

// AverageFrameRate returns frames per second over the window, or 0 before any frame.
func (f *FrameCounter) AverageFrameRate() float64 {
	avg := f.AverageFrameTime()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// History returns the recorded frame times in milliseconds, oldest first.
func (f *FrameCounter) History() []float32 {
	out := make([]float32, 0, f.filled)
	start := (f.next - f.filled + len(f.samples)) % len(f.samples)
	for i := 0; i < f.filled; i++ {
		d := f.samples[(start+i)%len(f.samples)]
		out = append(out, float32(d.Seconds()*1000))
	}
	return out
}
