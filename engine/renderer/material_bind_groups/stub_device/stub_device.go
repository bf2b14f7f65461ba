// package stub_device provides a GPU-free material_bind_groups.GPUDevice that records and counts every call.
// It hands out distinct zero-valued wgpu handles which must never reach the real WebGPU API.
package stub_device

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a creation-counting stand-in for a graphics device.
type Device struct {
	mu sync.Mutex

	// FeatureSet is returned from Features.
	FeatureSet []wgpu.FeatureName

	// SamplerErr, LayoutErr and BindGroupErr, when set, are returned by the matching Create call.
	SamplerErr, LayoutErr, BindGroupErr error

	samplers   []wgpu.SamplerDescriptor
	layouts    []wgpu.BindGroupLayoutDescriptor
	bindGroups []wgpu.BindGroupDescriptor
	released   []material_bind_groups.Releasable
}

var _ material_bind_groups.GPUDevice = &Device{}

// New creates a Device advertising the given features.
//
// Parameters:
//   - features: the features reported by Features
//
// Returns:
//   - *Device: the stub device
func New(features ...wgpu.FeatureName) *Device {
	return &Device{FeatureSet: features}
}

func (d *Device) Features() []wgpu.FeatureName {
	return d.FeatureSet
}

func (d *Device) CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.SamplerErr != nil {
		return nil, d.SamplerErr
	}
	d.samplers = append(d.samplers, *descriptor)
	return &wgpu.Sampler{}, nil
}

func (d *Device) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.LayoutErr != nil {
		return nil, d.LayoutErr
	}
	d.layouts = append(d.layouts, *descriptor)
	return &wgpu.BindGroupLayout{}, nil
}

func (d *Device) CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.BindGroupErr != nil {
		return nil, d.BindGroupErr
	}
	d.bindGroups = append(d.bindGroups, *descriptor)
	return &wgpu.BindGroup{}, nil
}

func (d *Device) Release(resource material_bind_groups.Releasable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = append(d.released, resource)
}

// SamplerCount returns how many samplers were created.
func (d *Device) SamplerCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.samplers)
}

// LayoutCount returns how many bind group layouts were created.
func (d *Device) LayoutCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.layouts)
}

// BindGroupCount returns how many bind groups were created.
func (d *Device) BindGroupCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.bindGroups)
}

// ReleasedCount returns how many objects were released.
func (d *Device) ReleasedCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.released)
}

// Samplers returns the descriptors of every created sampler, in creation order.
func (d *Device) Samplers() []wgpu.SamplerDescriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]wgpu.SamplerDescriptor(nil), d.samplers...)
}

// Layouts returns the descriptors of every created layout, in creation order.
func (d *Device) Layouts() []wgpu.BindGroupLayoutDescriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]wgpu.BindGroupLayoutDescriptor(nil), d.layouts...)
}

// BindGroups returns the descriptors of every created bind group, in creation order.
func (d *Device) BindGroups() []wgpu.BindGroupDescriptor {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]wgpu.BindGroupDescriptor(nil), d.bindGroups...)
}

// Texture returns a binding over a fresh placeholder view with the given metadata.
//
// Parameters:
//   - format: the texture format
//   - sampleCount: the sample count
//   - layers: the layer count
//
// Returns:
//   - material_bind_groups.TextureBinding: the binding
func Texture(format wgpu.TextureFormat, sampleCount, layers uint32) material_bind_groups.TextureBinding {
	return material_bind_groups.NewTextureBinding(&wgpu.TextureView{}, format, sampleCount, layers, "")
}
