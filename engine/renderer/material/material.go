package material

import (
	"fmt"

	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/cogentcore/webgpu/wgpu"
)

// material is the implementation of the Material interface.
type material struct {
	name        string
	pipelineKey string
	textures    []mbg.TextureBinding
}

// Material defines the interface for a render material: a named, ordered set of texture bindings drawn with a
// given pipeline. The bind group used for draw calls is resolved through a shared MaterialBindGroups, so materials
// with the same textures share one bind group and materials with same-shaped textures share one layout.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Textures retrieves the texture bindings in slot order.
	//
	// Returns:
	//   - []mbg.TextureBinding: the texture bindings
	Textures() []mbg.TextureBinding

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetTextures replaces the texture bindings. The previous bind group stays cached until the cache is cleared.
	//
	// Parameters:
	//   - textures: the texture bindings in slot order
	SetTextures(textures ...mbg.TextureBinding)

	// Layout resolves the bind group layout matching this material's textures.
	//
	// Parameters:
	//   - cache: the shared material bind group cache
	//   - hasShadow: whether the shadow slots are appended
	//
	// Returns:
	//   - *mbg.Layout: the layout
	//   - error: an error if the layout cannot be built
	Layout(cache mbg.MaterialBindGroups, hasShadow bool) (*mbg.Layout, error)

	// BindGroup resolves the bind group wiring this material's textures and the optional shadow pair.
	//
	// Parameters:
	//   - cache: the shared material bind group cache
	//   - shadow: the shadow comparison sampler and depth-array view, or nil
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group
	//   - error: an error if the bind group cannot be built
	BindGroup(cache mbg.MaterialBindGroups, shadow *mbg.ShadowPair) (*wgpu.BindGroup, error)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) Textures() []mbg.TextureBinding {
	return m.textures
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetTextures(textures ...mbg.TextureBinding) {
	m.textures = textures
}

func (m *material) Layout(cache mbg.MaterialBindGroups, hasShadow bool) (*mbg.Layout, error) {
	l, err := cache.Layout(m.textures, hasShadow)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", m.name, err)
	}
	return l, nil
}

func (m *material) BindGroup(cache mbg.MaterialBindGroups, shadow *mbg.ShadowPair) (*wgpu.BindGroup, error) {
	bg, err := cache.GetOrCreate(m.textures, shadow)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", m.name, err)
	}
	return bg, nil
}
