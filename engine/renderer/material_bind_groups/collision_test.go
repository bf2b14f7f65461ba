package material_bind_groups

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDevice struct {
	bindGroups int
	layouts    int
}

func (d *countingDevice) Features() []wgpu.FeatureName { return nil }

func (d *countingDevice) CreateSampler(*wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	return &wgpu.Sampler{}, nil
}

func (d *countingDevice) CreateBindGroupLayout(*wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	d.layouts++
	return &wgpu.BindGroupLayout{}, nil
}

func (d *countingDevice) CreateBindGroup(*wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	d.bindGroups++
	return &wgpu.BindGroup{}, nil
}

func (d *countingDevice) Release(Releasable) {}

func TestGetOrCreateVerifiesBucketEntries(t *testing.T) {
	dev := &countingDevice{}
	cache, err := NewMaterialBindGroups(dev, WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	m := cache.(*materialBindGroups)

	views := []TextureBinding{NewTextureBinding(&wgpu.TextureView{}, wgpu.TextureFormatRGBA8Unorm, 1, 1, "")}
	key, _ := identityKeyFor(views, false)

	// plant an entry that shares the hash bucket but belongs to another texture set
	impostor := &wgpu.BindGroup{}
	m.bindGroups[key] = []*bindGroupEntry{{ids: []uuid.UUID{uuid.New()}, bindGroup: impostor}}
	m.bindGroupCount++

	bg, err := cache.GetOrCreate(views, nil)
	require.NoError(t, err)
	assert.NotSame(t, impostor, bg)
	assert.Len(t, m.bindGroups[key], 2)
	assert.Equal(t, 1, dev.bindGroups)

	again, err := cache.GetOrCreate(views, nil)
	require.NoError(t, err)
	assert.Same(t, bg, again)
	assert.Equal(t, 1, dev.bindGroups)
}

func TestLayoutVerifiesBucketEntries(t *testing.T) {
	dev := &countingDevice{}
	cache, err := NewMaterialBindGroups(dev, WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	m := cache.(*materialBindGroups)

	views := []TextureBinding{NewTextureBinding(&wgpu.TextureView{}, wgpu.TextureFormatRGBA8Unorm, 1, 1, "")}
	shapes, err := inferSlotShapes(views, nil)
	require.NoError(t, err)
	key := shapeKeyFor(shapes, false)

	impostor := &Layout{Shapes: []SlotShape{{SampleType: wgpu.TextureSampleTypeDepth}}, Key: key}
	m.layouts[key] = []*Layout{impostor}

	l, err := cache.Layout(views, false)
	require.NoError(t, err)
	assert.NotSame(t, impostor, l)
	assert.Equal(t, 1, dev.layouts)
}

func TestLayoutValidate(t *testing.T) {
	l := &Layout{Entries: layoutEntries([]SlotShape{{SampleType: wgpu.TextureSampleTypeFloat, ViewDimension: wgpu.TextureViewDimension2D}}, false)}
	sampler := &wgpu.Sampler{}
	view := &wgpu.TextureView{}

	assert.NoError(t, l.validate([]wgpu.BindGroupEntry{
		{Binding: 0, Sampler: sampler},
		{Binding: 1, TextureView: view},
	}))
	assert.ErrorIs(t, l.validate([]wgpu.BindGroupEntry{{Binding: 0, Sampler: sampler}}), ErrLayoutMismatch)
	assert.ErrorIs(t, l.validate([]wgpu.BindGroupEntry{
		{Binding: 0, TextureView: view},
		{Binding: 1, TextureView: view},
	}), ErrLayoutMismatch)
	assert.ErrorIs(t, l.validate([]wgpu.BindGroupEntry{
		{Binding: 0, Sampler: sampler},
		{Binding: 2, TextureView: view},
	}), ErrLayoutMismatch)
}
