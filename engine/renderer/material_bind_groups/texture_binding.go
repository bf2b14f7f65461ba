package material_bind_groups

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// TextureBinding is a texture view handle paired with the metadata of the texture it views.
// The view is referenced, not owned. ID is assigned once at creation and is the identity used
// for bind group caching, so the same TextureBinding value must be reused for the same view.
type TextureBinding struct {
	// ID uniquely identifies this handle for the lifetime of the process.
	ID uuid.UUID
	// View is the GPU texture view bound to the slot.
	View *wgpu.TextureView
	// Format is the pixel format of the underlying texture.
	Format wgpu.TextureFormat
	// SampleCount is the number of samples per texel; greater than 1 means multisampled.
	SampleCount uint32
	// DepthOrArrayLayers is the layer count of the underlying texture; greater than 1 binds as a 2D array.
	DepthOrArrayLayers uint32
	// Label is an optional debug label.
	Label string
}

// ShadowPair is the optional trailing comparison sampler and depth-array view bound after the material textures.
type ShadowPair struct {
	// Sampler is the comparison sampler used for shadow lookups.
	Sampler *wgpu.Sampler
	// View is the depth-array texture holding the shadow maps.
	View TextureBinding
}

// NewTextureBinding creates a TextureBinding with a fresh ID.
// Sample counts and layer counts of 0 are treated as 1.
//
// Parameters:
//   - view: the texture view to bind
//   - format: the pixel format of the texture
//   - sampleCount: the texture sample count
//   - layers: the texture depth or array layer count
//   - label: an optional debug label
//
// Returns:
//   - TextureBinding: the new handle
func NewTextureBinding(view *wgpu.TextureView, format wgpu.TextureFormat, sampleCount, layers uint32, label string) TextureBinding {
	return TextureBinding{
		ID:                 uuid.New(),
		View:               view,
		Format:             format,
		SampleCount:        max(sampleCount, 1),
		DepthOrArrayLayers: max(layers, 1),
		Label:              label,
	}
}

// TextureBindingFromTexture creates a TextureBinding by reading the format, sample count and
// layer count from the texture the view was created from.
//
// Parameters:
//   - tex: the texture the view belongs to
//   - view: the texture view to bind
//   - label: an optional debug label
//
// Returns:
//   - TextureBinding: the new handle
func TextureBindingFromTexture(tex *wgpu.Texture, view *wgpu.TextureView, label string) TextureBinding {
	return NewTextureBinding(view, tex.GetFormat(), tex.GetSampleCount(), tex.GetDepthOrArrayLayers(), label)
}

// Multisampled reports whether the underlying texture has more than one sample per texel.
//
// Returns:
//   - bool: true if multisampled
func (b TextureBinding) Multisampled() bool {
	return b.SampleCount > 1
}

// Layered reports whether the underlying texture has more than one layer and binds as a 2D array.
//
// Returns:
//   - bool: true if layered
func (b TextureBinding) Layered() bool {
	return b.DepthOrArrayLayers > 1
}
