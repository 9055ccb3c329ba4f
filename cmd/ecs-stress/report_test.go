package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/hearth/ecs"
	"github.com/plus3/hearth/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for i := 100; i >= 1; i-- {
		s.Samples = append(s.Samples, time.Duration(i)*time.Millisecond)
	}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 50*time.Millisecond, s.P50)
	assert.Equal(t, 99*time.Millisecond, s.P99)
	assert.Equal(t, 100*time.Millisecond, s.Samples[0], "samples keep their order")
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:     time.Second,
		Entities:     10,
		TotalUpdates: 3,
		Systems:      []ecs.SystemStats{{Name: "movement", Stage: 1, ExecutionCount: 3}},
		Storage: ecs.StorageStats{
			TotalEntityCount:   10,
			ArchetypeCount:     1,
			ArchetypeBreakdown: []ecs.ArchetypeStats{{ID: 0xbeef, ComponentTypes: []string{"component.Position"}, EntityCount: 10}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Total Updates:** 3")
	assert.Contains(t, out, "- movement (stage 1): 3 runs")
	assert.Contains(t, out, "0x0000beef [component.Position]: 10")
	assert.NotContains(t, out, "GC Pause Durations")
}

func TestInputScript(t *testing.T) {
	s := newInputScript()
	assert.Nil(t, s.next(1))

	events := s.next(30)
	require.Len(t, events, 2)
	assert.Equal(t, input.KeyboardInput{State: input.Released, Key: input.KeyRight}, events[0])
	assert.Equal(t, input.KeyboardInput{State: input.Pressed, Key: input.KeyDown}, events[1])
}
