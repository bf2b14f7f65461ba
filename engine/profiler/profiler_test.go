package profiler

import (
	"bytes"
	"testing"
	"time"

	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats struct {
	stats mbg.Stats
}

func (f *fixedStats) Stats() mbg.Stats {
	return f.stats
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestTickReportsOnInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(1000, 0)}
	src := &fixedStats{stats: mbg.Stats{Layouts: 2, BindGroups: 5, Hits: 3, Misses: 1}}

	p := NewProfiler(src, WithInterval(time.Second), WithClock(clock.now), WithLogger(log.New(&buf)))

	clock.t = clock.t.Add(500 * time.Millisecond)
	assert.Nil(t, p.Tick())
	assert.Empty(t, buf.String())

	clock.t = clock.t.Add(500 * time.Millisecond)
	r := p.Tick()
	require.NotNil(t, r)
	assert.InDelta(t, 2.0, r.TicksPerSecond, 0.001)
	assert.Equal(t, src.stats, r.Cache)
	assert.InDelta(t, 0.75, r.HitRate, 0.001)
	assert.Contains(t, buf.String(), "bind_groups=5")
}

func TestHitRateIsPerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	src := &fixedStats{stats: mbg.Stats{Hits: 10, Misses: 10}}
	var buf bytes.Buffer
	p := NewProfiler(src, WithClock(clock.now), WithLogger(log.New(&buf)))

	clock.t = clock.t.Add(time.Second)
	require.NotNil(t, p.Tick())

	clock.t = clock.t.Add(time.Second)
	r := p.Tick()
	require.NotNil(t, r)
	assert.Zero(t, r.HitRate)

	src.stats.Hits = 14
	clock.t = clock.t.Add(time.Second)
	r = p.Tick()
	require.NotNil(t, r)
	assert.InDelta(t, 1.0, r.HitRate, 0.001)
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(&fixedStats{}, WithInterval(0), WithInterval(-time.Second))
	assert.Equal(t, time.Second, p.updateInterval)
}
