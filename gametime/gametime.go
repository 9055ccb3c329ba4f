// Package gametime tracks frame timing for the simulation loop.
package gametime

import "time"

// GameTime is the timing snapshot for one frame.
type GameTime struct {
	// Elapsed is the simulated time since the previous frame.
	Elapsed time.Duration
	// Total is the simulated time since the clock started.
	Total time.Duration
	// ElapsedWall and TotalWall are the wall clock equivalents of Elapsed and Total.
	ElapsedWall time.Duration
	TotalWall   time.Duration
	// FrameStart is the monotonic offset of this frame's start from the clock's start.
	FrameStart time.Duration
	// Frame counts ticks, starting at 1 for the first frame.
	Frame uint64
}

// ElapsedSeconds returns Elapsed in seconds.
func (t GameTime) ElapsedSeconds() float64 {
	return t.Elapsed.Seconds()
}

// FrameStartTime returns the timestamp used for hold duration arithmetic.
func (t GameTime) FrameStartTime() time.Duration {
	return t.FrameStart
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// SystemSource reads the real system time with its monotonic clock reading
type SystemSource struct{}

// Now returns time.Now()
func (SystemSource) Now() time.Time {
	return time.Now()
}

// Clock produces successive GameTime values.
type Clock struct {
	source   TimeSource
	step     time.Duration
	maxDelta time.Duration
	start    time.Time
	last     time.Time
	current  GameTime
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithTimeSource replaces the system time source.
func WithTimeSource(source TimeSource) ClockOption {
	return func(c *Clock) {
		c.source = source
	}
}

// WithFixedStep advances simulated time by step every tick, whatever the wall time.
func WithFixedStep(step time.Duration) ClockOption {
	return func(c *Clock) {
		c.step = step
	}
}

// WithMaxDelta caps simulated elapsed time per tick, so a stall does not
// turn into one huge simulation step.
func WithMaxDelta(d time.Duration) ClockOption {
	return func(c *Clock) {
		c.maxDelta = d
	}
}

// NewClock creates a clock starting now.
func NewClock(opts ...ClockOption) *Clock {
	c := &Clock{source: SystemSource{}}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset restarts the clock at the source's current time.
func (c *Clock) Reset() {
	c.start = c.source.Now()
	c.last = c.start
	c.current = GameTime{}
}

// Tick starts a new frame and returns its timing.
func (c *Clock) Tick() GameTime {
	now := c.source.Now()
	wall := now.Sub(c.last)
	if wall < 0 {
		wall = 0
	}
	c.last = now

	elapsed := wall
	if c.step > 0 {
		elapsed = c.step
	}
	if c.maxDelta > 0 && elapsed > c.maxDelta {
		elapsed = c.maxDelta
	}

	c.current = GameTime{
		Elapsed:     elapsed,
		Total:       c.current.Total + elapsed,
		ElapsedWall: wall,
		TotalWall:   now.Sub(c.start),
		FrameStart:  now.Sub(c.start),
		Frame:       c.current.Frame + 1,
	}
	return c.current
}

// Current returns the timing of the most recent tick.
func (c *Clock) Current() GameTime {
	return c.current
}
