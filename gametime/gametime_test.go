package gametime_test

import (
	"testing"
	"time"

	"github.com/plus3/hearth/gametime"
	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("tracks wall time", func(t *testing.T) {
		source := gametime.NewManualSource(start)
		clock := gametime.NewClock(gametime.WithTimeSource(source))

		source.Advance(16 * time.Millisecond)
		first := clock.Tick()
		assert.Equal(t, uint64(1), first.Frame)
		assert.Equal(t, 16*time.Millisecond, first.Elapsed)
		assert.Equal(t, 16*time.Millisecond, first.FrameStartTime())
		assert.InDelta(t, 0.016, first.ElapsedSeconds(), 1e-9)

		source.Advance(20 * time.Millisecond)
		second := clock.Tick()
		assert.Equal(t, uint64(2), second.Frame)
		assert.Equal(t, 20*time.Millisecond, second.Elapsed)
		assert.Equal(t, 36*time.Millisecond, second.Total)
		assert.Equal(t, 36*time.Millisecond, second.FrameStart)
		assert.Equal(t, second, clock.Current())
	})

	t.Run("fixed step", func(t *testing.T) {
		source := gametime.NewManualSource(start)
		clock := gametime.NewClock(gametime.WithTimeSource(source), gametime.WithFixedStep(10*time.Millisecond))

		source.Advance(50 * time.Millisecond)
		tick := clock.Tick()
		assert.Equal(t, 10*time.Millisecond, tick.Elapsed)
		assert.Equal(t, 50*time.Millisecond, tick.ElapsedWall)
		assert.Equal(t, 50*time.Millisecond, tick.FrameStart)
	})

	t.Run("max delta", func(t *testing.T) {
		source := gametime.NewManualSource(start)
		clock := gametime.NewClock(gametime.WithTimeSource(source), gametime.WithMaxDelta(100*time.Millisecond))

		source.Advance(3 * time.Second)
		tick := clock.Tick()
		assert.Equal(t, 100*time.Millisecond, tick.Elapsed)
		assert.Equal(t, 3*time.Second, tick.TotalWall)
	})

	t.Run("time going backwards is a zero frame", func(t *testing.T) {
		source := gametime.NewManualSource(start)
		clock := gametime.NewClock(gametime.WithTimeSource(source))

		source.Set(start.Add(-time.Second))
		assert.Equal(t, time.Duration(0), clock.Tick().Elapsed)
	})
}

func TestFrameCounter(t *testing.T) {
	counter := gametime.NewFrameCounter(3)
	assert.Equal(t, 0.0, counter.AverageFrameRate())

	for _, ms := range []int{10, 20, 30, 40} {
		counter.Tick(gametime.GameTime{ElapsedWall: time.Duration(ms) * time.Millisecond})
	}

	assert.Equal(t, 30*time.Millisecond, counter.AverageFrameTime())
	assert.InDelta(t, 33.333, counter.AverageFrameRate(), 0.01)
	assert.Equal(t, []float32{20, 30, 40}, counter.History())
}
