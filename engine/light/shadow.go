package light

import (
	"errors"
	"fmt"

	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShadowMapResolution is the default width and height in texels of each shadow map layer.
const ShadowMapResolution = 2048

// ShadowMapLayers is the default number of layers in the shadow depth array, one per shadow-casting light.
const ShadowMapLayers = 4

// ErrNotDepthTexture is returned when the shadow map view is not backed by a depth format.
var ErrNotDepthTexture = errors.New("shadow map must use a depth format")

// ComparisonSamplerDescriptor describes the comparison sampler used for PCF shadow lookups.
//
// Returns:
//   - *wgpu.SamplerDescriptor: the sampler descriptor
func ComparisonSamplerDescriptor() *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	}
}

// NewShadowBinding creates a comparison sampler and pairs it with the shadow depth-array view, ready to be
// passed to MaterialBindGroups.GetOrCreate. The same pair should be reused across frames so bind groups stay cached.
//
// Parameters:
//   - device: the device used to create the comparison sampler
//   - depthArray: the shadow map view; its format must have a depth aspect
//
// Returns:
//   - *mbg.ShadowPair: the comparison sampler and depth-array view
//   - error: ErrNotDepthTexture, ErrNilTextureView, or the device error if sampler creation fails
func NewShadowBinding(device mbg.GPUDevice, depthArray mbg.TextureBinding) (*mbg.ShadowPair, error) {
	if depthArray.View == nil {
		return nil, fmt.Errorf("shadow map: %w", mbg.ErrNilTextureView)
	}
	if st, ok := mbg.SampleType(depthArray.Format, wgpu.TextureAspectDepthOnly, nil); !ok || st != wgpu.TextureSampleTypeDepth {
		return nil, fmt.Errorf("%w: got %v", ErrNotDepthTexture, depthArray.Format)
	}

	samp, err := device.CreateSampler(ComparisonSamplerDescriptor())
	if err != nil {
		return nil, fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	return &mbg.ShadowPair{
		Sampler: samp,
		View:    depthArray,
	}, nil
}
