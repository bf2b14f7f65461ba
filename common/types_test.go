package common

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestSamplerStagingDataDefaults(t *testing.T) {
	desc := SamplerStagingData{}.Descriptor("material sampler")

	assert.Equal(t, "material sampler", desc.Label)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeV)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeW)
	assert.Equal(t, wgpu.FilterModeLinear, desc.MagFilter)
	assert.Equal(t, wgpu.FilterModeLinear, desc.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, desc.MipmapFilter)
	assert.Equal(t, float32(32), desc.LodMaxClamp)
	assert.Equal(t, uint16(1), desc.MaxAnisotropy)
	assert.Equal(t, wgpu.CompareFunctionUndefined, desc.Compare)
}

func TestSamplerStagingDataOverrides(t *testing.T) {
	desc := SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeMirrorRepeat,
		LodMaxClamp:   8,
		MaxAnisotropy: 16,
		Compare:       wgpu.CompareFunctionLess,
	}.Descriptor("")

	assert.Equal(t, wgpu.AddressModeClampToEdge, desc.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, desc.AddressModeV)
	assert.Equal(t, wgpu.AddressModeMirrorRepeat, desc.AddressModeW)
	assert.Equal(t, float32(8), desc.LodMaxClamp)
	assert.Equal(t, uint16(16), desc.MaxAnisotropy)
	assert.Equal(t, wgpu.CompareFunctionLess, desc.Compare)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, "a", Coalesce("a", "b"))
}
