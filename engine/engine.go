package engine

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-bindings/engine/config"
	"github.com/Carmen-Shannon/oxy-bindings/engine/logger"
	"github.com/Carmen-Shannon/oxy-bindings/engine/profiler"
	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material"
	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/Carmen-Shannon/oxy-bindings/engine/texture_watcher"
	"github.com/charmbracelet/log"
)

// engine implements the Engine interface.
// Owns the material bind group cache and the optional watcher and profiler built around it.
type engine struct {
	mu *sync.Mutex

	device  mbg.GPUDevice
	cfg     config.Config
	logger  *log.Logger
	cache   mbg.MaterialBindGroups
	watcher texture_watcher.TextureWatcher
	prof    *profiler.Profiler

	materials map[string]material.Material
	closeOnce sync.Once
}

// Engine is the entry point tying the material bind group cache to its configuration.
// It builds the cache with the configured default sampler, starts the texture watcher when enabled and drives the
// profiler from Tick.
type Engine interface {
	// Cache returns the material bind group cache.
	//
	// Returns:
	//   - mbg.MaterialBindGroups: the cache
	Cache() mbg.MaterialBindGroups

	// Watcher returns the texture watcher, or nil when watching is disabled.
	//
	// Returns:
	//   - texture_watcher.TextureWatcher: the watcher or nil
	Watcher() texture_watcher.TextureWatcher

	// Profiler returns the profiler, or nil when profiling is disabled.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler or nil
	Profiler() *profiler.Profiler

	// Logger returns the engine logger.
	//
	// Returns:
	//   - *log.Logger: the logger
	Logger() *log.Logger

	// AddMaterial registers a material under its name, replacing any material with the same name.
	//
	// Parameters:
	//   - m: the material to register
	AddMaterial(m material.Material)

	// Material retrieves a registered material.
	// Returns nil if no material is registered under name.
	//
	// Parameters:
	//   - name: the material name
	//
	// Returns:
	//   - material.Material: the material, or nil if not found
	Material(name string) material.Material

	// Materials returns a copy of all registered materials keyed by name.
	//
	// Returns:
	//   - map[string]material.Material: a copy of the materials map
	Materials() map[string]material.Material

	// Tick advances the profiler, if any.
	Tick()

	// Close stops the watcher and releases every GPU object owned by the cache.
	// Safe to call multiple times; subsequent calls are no-ops.
	//
	// Returns:
	//   - error: an error from stopping the watcher, if any
	Close() error
}

// NewEngine creates a new Engine for the given device with the provided options.
//
// Parameters:
//   - device: the graphics device the cache creates objects on
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if the configuration is invalid or the cache or watcher cannot be created
func NewEngine(device mbg.GPUDevice, options ...EngineBuilderOption) (Engine, error) {
	if device == nil {
		return nil, mbg.ErrNilDevice
	}
	e := &engine{
		mu:        &sync.Mutex{},
		device:    device,
		cfg:       config.Default(),
		materials: make(map[string]material.Material),
	}
	for _, opt := range options {
		opt(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.logger == nil {
		e.logger = logger.New(e.cfg.Logging.Level)
	}

	samplerData, err := e.cfg.SamplerStagingData()
	if err != nil {
		return nil, err
	}
	e.cache, err = mbg.NewMaterialBindGroups(device,
		mbg.WithSamplerStagingData(samplerData),
		mbg.WithLogger(e.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create material bind groups: %w", err)
	}

	if wc := e.cfg.TextureWatcher; wc.Enabled {
		e.watcher, err = texture_watcher.New(e.cache,
			texture_watcher.WithDirectories(wc.Directories...),
			texture_watcher.WithExtensions(wc.Extensions...),
			texture_watcher.WithDebounce(wc.Debounce.Std()),
			texture_watcher.WithLogger(e.logger),
		)
		if err == nil {
			err = e.watcher.Start()
		}
		if err != nil {
			e.cache.Release()
			return nil, fmt.Errorf("failed to start texture watcher: %w", err)
		}
	}

	if pc := e.cfg.Profiler; pc.Enabled {
		e.prof = profiler.NewProfiler(e.cache,
			profiler.WithInterval(pc.Interval.Std()),
			profiler.WithLogger(e.logger),
		)
	}

	e.logger.Info("engine ready",
		"watcher", e.watcher != nil,
		"profiler", e.prof != nil,
	)
	return e, nil
}

func (e *engine) Cache() mbg.MaterialBindGroups {
	return e.cache
}

func (e *engine) Watcher() texture_watcher.TextureWatcher {
	return e.watcher
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.prof
}

func (e *engine) Logger() *log.Logger {
	return e.logger
}

func (e *engine) AddMaterial(m material.Material) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.materials[m.Name()] = m
}

func (e *engine) Material(name string) material.Material {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.materials[name]
}

func (e *engine) Materials() map[string]material.Material {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]material.Material, len(e.materials))
	for k, v := range e.materials {
		out[k] = v
	}
	return out
}

func (e *engine) Tick() {
	if e.prof != nil {
		e.prof.Tick()
	}
}

func (e *engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if e.watcher != nil {
			if cerr := e.watcher.Close(); cerr != nil {
				err = fmt.Errorf("failed to close texture watcher: %w", cerr)
			}
		}
		e.cache.Release()
	})
	return err
}
