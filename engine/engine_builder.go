package engine

import (
	"github.com/Carmen-Shannon/oxy-bindings/engine/config"
	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material"
	"github.com/charmbracelet/log"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithConfig sets the configuration the engine is assembled from.
//
// Parameters:
//   - cfg: the configuration, typically from config.Load
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.cfg = cfg
	}
}

// WithLogger sets the logger, overriding the configured logging level.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(l *log.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = l
	}
}

// WithMaterial registers a material during engine construction.
//
// Parameters:
//   - m: the material to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaterial(m material.Material) EngineBuilderOption {
	return func(e *engine) {
		e.materials[m.Name()] = m
	}
}
