package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-bindings/engine/logger"
	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/charmbracelet/log"
)

// StatsSource is anything that reports material bind group cache counters.
type StatsSource interface {
	Stats() mbg.Stats
}

// Profiler tracks tick rate, memory and material bind group cache statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	source         StatsSource
	logger         *log.Logger
	now            func() time.Time
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	lastStats      mbg.Stats
}

// Report is one logged snapshot.
type Report struct {
	// TicksPerSecond is the Tick rate over the elapsed interval.
	TicksPerSecond float64
	// HeapMB and SysMB are the live heap and total OS memory in megabytes.
	HeapMB, SysMB float64
	// AllocRateMB is the allocation rate in megabytes per second.
	AllocRateMB float64
	// Cache is the cache snapshot at report time.
	Cache mbg.Stats
	// HitRate is the bind group hit ratio over the elapsed interval, or 0 when there were no lookups.
	HitRate float64
}

// NewProfiler creates a new Profiler reporting on source.
// Update interval defaults to 1 second.
//
// Parameters:
//   - source: the cache to report on
//   - options: variadic list of ProfilerBuilderOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(source StatsSource, options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		source:         source,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Default()
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame or per batch of cache lookups.
// Logs statistics when the update interval has elapsed.
//
// Returns:
//   - *Report: the logged report, or nil if the interval has not elapsed
func (p *Profiler) Tick() *Report {
	p.tickCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return nil
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats := p.source.Stats()

	r := &Report{
		TicksPerSecond: float64(p.tickCount) / elapsed.Seconds(),
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:          float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB:    float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		Cache:          stats,
	}
	hits := stats.Hits - p.lastStats.Hits
	lookups := hits + stats.Misses - p.lastStats.Misses
	if lookups > 0 {
		r.HitRate = float64(hits) / float64(lookups)
	}

	p.logger.Info("profiler",
		"tps", r.TicksPerSecond,
		"heap_mb", r.HeapMB,
		"alloc_mb_s", r.AllocRateMB,
		"sys_mb", r.SysMB,
		"layouts", stats.Layouts,
		"bind_groups", stats.BindGroups,
		"hit_rate", r.HitRate,
		"layout_misses", stats.LayoutMisses,
	)

	p.tickCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.lastStats = stats
	return r
}
