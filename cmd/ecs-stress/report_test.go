package main

import (
	"strings"
	"testing"
	"time"

	"github.com/plus3/lifeforms/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:      time.Second,
		Lifeforms:     2,
		Scheme:        "single",
		EntitiesStart: 2,
		EntitiesEnd:   2,
		Scheduler: &ecs.SchedulerStats{
			SystemCount: 1,
			Systems:     []ecs.SystemStats{{Name: "ForceSystem", ExecutionCount: 7}},
		},
	}

	var out strings.Builder
	require.NoError(t, r.Generate(&out))
	report := out.String()
	assert.Contains(t, report, "**Lifeforms:** 2")
	assert.Contains(t, report, "**Lifetime:** unlimited")
	assert.Contains(t, report, "| ForceSystem | 7 |")
	assert.NotContains(t, report, "GC Pause Durations")
}
