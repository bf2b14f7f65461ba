package material_bind_groups

import "github.com/cogentcore/webgpu/wgpu"

// Releasable is a GPU object that can be released, such as *wgpu.Sampler, *wgpu.BindGroupLayout or *wgpu.BindGroup.
type Releasable interface {
	Release()
}

// GPUDevice is the subset of the graphics device used by MaterialBindGroups.
// Every call is forwarded as-is; failures are returned to the caller unchanged apart from wrapping.
type GPUDevice interface {
	// Features returns the feature set enabled on the device.
	//
	// Returns:
	//   - []wgpu.FeatureName: the enabled features
	Features() []wgpu.FeatureName

	// CreateSampler creates a GPU sampler.
	//
	// Parameters:
	//   - descriptor: the sampler configuration
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error)

	// CreateBindGroupLayout creates a GPU bind group layout from ordered slot descriptors.
	//
	// Parameters:
	//   - descriptor: the layout descriptor
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the created layout
	//   - error: an error if creation fails
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)

	// CreateBindGroup creates a GPU bind group wiring resources to the slots of a layout.
	//
	// Parameters:
	//   - descriptor: the bind group descriptor
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if creation fails
	CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)

	// Release releases a GPU object previously created by this device.
	//
	// Parameters:
	//   - resource: the object to release
	Release(resource Releasable)
}

// wgpuDevice adapts a *wgpu.Device to GPUDevice.
type wgpuDevice struct {
	device *wgpu.Device
}

var _ GPUDevice = &wgpuDevice{}

// NewWGPUDevice wraps a WebGPU device so it can back a MaterialBindGroups.
//
// Parameters:
//   - device: the WebGPU device
//
// Returns:
//   - GPUDevice: the adapted device
func NewWGPUDevice(device *wgpu.Device) GPUDevice {
	return &wgpuDevice{device: device}
}

func (d *wgpuDevice) Features() []wgpu.FeatureName {
	return d.device.EnumerateFeatures()
}

func (d *wgpuDevice) CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	return d.device.CreateSampler(descriptor)
}

func (d *wgpuDevice) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return d.device.CreateBindGroupLayout(descriptor)
}

func (d *wgpuDevice) CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	return d.device.CreateBindGroup(descriptor)
}

func (d *wgpuDevice) Release(resource Releasable) {
	resource.Release()
}
