package light

import (
	"errors"
	"io"
	"testing"

	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups/stub_device"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShadowBinding(t *testing.T) {
	dev := stub_device.New()
	depth := stub_device.Texture(wgpu.TextureFormatDepth32Float, 1, ShadowMapLayers)

	pair, err := NewShadowBinding(dev, depth)
	require.NoError(t, err)
	require.NotNil(t, pair.Sampler)
	assert.Equal(t, depth.ID, pair.View.ID)

	require.Equal(t, 1, dev.SamplerCount())
	desc := dev.Samplers()[0]
	assert.Equal(t, wgpu.CompareFunctionLess, desc.Compare)
	assert.Equal(t, wgpu.AddressModeClampToEdge, desc.AddressModeU)
}

func TestNewShadowBindingRejectsBadViews(t *testing.T) {
	dev := stub_device.New()

	_, err := NewShadowBinding(dev, stub_device.Texture(wgpu.TextureFormatRGBA8Unorm, 1, 4))
	assert.ErrorIs(t, err, ErrNotDepthTexture)

	_, err = NewShadowBinding(dev, mbg.NewTextureBinding(nil, wgpu.TextureFormatDepth32Float, 1, 4, ""))
	assert.ErrorIs(t, err, mbg.ErrNilTextureView)

	boom := errors.New("device lost")
	dev.SamplerErr = boom
	_, err = NewShadowBinding(dev, stub_device.Texture(wgpu.TextureFormatDepth24PlusStencil8, 1, 4))
	assert.ErrorIs(t, err, boom)

	assert.Zero(t, dev.SamplerCount())
}

func TestShadowBindingFeedsMaterialBindGroups(t *testing.T) {
	dev := stub_device.New()
	cache, err := mbg.NewMaterialBindGroups(dev, mbg.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)

	pair, err := NewShadowBinding(dev, stub_device.Texture(wgpu.TextureFormatDepth32Float, 1, ShadowMapLayers))
	require.NoError(t, err)

	views := []mbg.TextureBinding{stub_device.Texture(wgpu.TextureFormatRGBA8UnormSrgb, 1, 1)}
	first, err := cache.GetOrCreate(views, pair)
	require.NoError(t, err)
	second, err := cache.GetOrCreate(views, pair)
	require.NoError(t, err)
	assert.Same(t, first, second)

	entries := dev.BindGroups()[0].Entries
	require.Len(t, entries, 4)
	assert.Same(t, pair.Sampler, entries[2].Sampler)
	assert.Same(t, pair.View.View, entries[3].TextureView)
}
