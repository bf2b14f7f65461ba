package material

import (
	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipelineKey is an option builder that sets the render pipeline key for the material.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithTexture is an option builder that appends a texture binding to the next slot.
//
// Parameters:
//   - tex: the texture binding
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex mbg.TextureBinding) MaterialBuilderOption {
	return func(m *material) {
		m.textures = append(m.textures, tex)
	}
}

// WithTextures is an option builder that replaces all texture bindings.
//
// Parameters:
//   - textures: the texture bindings in slot order
//
// Returns:
//   - MaterialBuilderOption: a function that applies the textures option to a material
func WithTextures(textures ...mbg.TextureBinding) MaterialBuilderOption {
	return func(m *material) {
		m.textures = textures
	}
}
