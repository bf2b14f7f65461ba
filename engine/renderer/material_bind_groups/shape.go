package material_bind_groups

import (
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// SlotShape is the part of a texture binding that decides its layout slot.
// Two bindings with equal SlotShapes can share a layout slot regardless of which views they reference.
type SlotShape struct {
	SampleType    wgpu.TextureSampleType
	Multisampled  bool
	ViewDimension wgpu.TextureViewDimension
}

// filterableFloatFormats are the color formats that sample as filterable floats on every device.
var filterableFloatFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatR8Unorm,
	wgpu.TextureFormatR8Snorm,
	wgpu.TextureFormatR16Float,
	wgpu.TextureFormatRG8Unorm,
	wgpu.TextureFormatRG8Snorm,
	wgpu.TextureFormatRG16Float,
	wgpu.TextureFormatRGBA8Unorm,
	wgpu.TextureFormatRGBA8UnormSrgb,
	wgpu.TextureFormatRGBA8Snorm,
	wgpu.TextureFormatBGRA8Unorm,
	wgpu.TextureFormatBGRA8UnormSrgb,
	wgpu.TextureFormatRGB10A2Unorm,
	wgpu.TextureFormatRG11B10Ufloat,
	wgpu.TextureFormatRGB9E5Ufloat,
	wgpu.TextureFormatRGBA16Float,
	wgpu.TextureFormatBC1RGBAUnorm,
	wgpu.TextureFormatBC1RGBAUnormSrgb,
	wgpu.TextureFormatBC2RGBAUnorm,
	wgpu.TextureFormatBC2RGBAUnormSrgb,
	wgpu.TextureFormatBC3RGBAUnorm,
	wgpu.TextureFormatBC3RGBAUnormSrgb,
	wgpu.TextureFormatBC4RUnorm,
	wgpu.TextureFormatBC4RSnorm,
	wgpu.TextureFormatBC5RGUnorm,
	wgpu.TextureFormatBC5RGSnorm,
	wgpu.TextureFormatBC6HRGBUfloat,
	wgpu.TextureFormatBC6HRGBFloat,
	wgpu.TextureFormatBC7RGBAUnorm,
	wgpu.TextureFormatBC7RGBAUnormSrgb,
}

// compressedFloatFormats are the ETC2, EAC and ASTC block formats. They sample as filterable floats once the
// device has created the texture, which already requires the matching compression feature.
var compressedFloatFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatETC2RGB8Unorm,
	wgpu.TextureFormatETC2RGB8UnormSrgb,
	wgpu.TextureFormatETC2RGB8A1Unorm,
	wgpu.TextureFormatETC2RGB8A1UnormSrgb,
	wgpu.TextureFormatETC2RGBA8Unorm,
	wgpu.TextureFormatETC2RGBA8UnormSrgb,
	wgpu.TextureFormatEACR11Unorm,
	wgpu.TextureFormatEACR11Snorm,
	wgpu.TextureFormatEACRG11Unorm,
	wgpu.TextureFormatEACRG11Snorm,
	wgpu.TextureFormatASTC4x4Unorm,
	wgpu.TextureFormatASTC4x4UnormSrgb,
	wgpu.TextureFormatASTC5x4Unorm,
	wgpu.TextureFormatASTC5x4UnormSrgb,
	wgpu.TextureFormatASTC5x5Unorm,
	wgpu.TextureFormatASTC5x5UnormSrgb,
	wgpu.TextureFormatASTC6x5Unorm,
	wgpu.TextureFormatASTC6x5UnormSrgb,
	wgpu.TextureFormatASTC6x6Unorm,
	wgpu.TextureFormatASTC6x6UnormSrgb,
	wgpu.TextureFormatASTC8x5Unorm,
	wgpu.TextureFormatASTC8x5UnormSrgb,
	wgpu.TextureFormatASTC8x6Unorm,
	wgpu.TextureFormatASTC8x6UnormSrgb,
	wgpu.TextureFormatASTC8x8Unorm,
	wgpu.TextureFormatASTC8x8UnormSrgb,
	wgpu.TextureFormatASTC10x5Unorm,
	wgpu.TextureFormatASTC10x5UnormSrgb,
	wgpu.TextureFormatASTC10x6Unorm,
	wgpu.TextureFormatASTC10x6UnormSrgb,
	wgpu.TextureFormatASTC10x8Unorm,
	wgpu.TextureFormatASTC10x8UnormSrgb,
	wgpu.TextureFormatASTC10x10Unorm,
	wgpu.TextureFormatASTC10x10UnormSrgb,
	wgpu.TextureFormatASTC12x10Unorm,
	wgpu.TextureFormatASTC12x10UnormSrgb,
	wgpu.TextureFormatASTC12x12Unorm,
	wgpu.TextureFormatASTC12x12UnormSrgb,
}

// float32Formats sample as filterable floats only when the device enables FeatureNameFloat32Filterable.
var float32Formats = []wgpu.TextureFormat{
	wgpu.TextureFormatR32Float,
	wgpu.TextureFormatRG32Float,
	wgpu.TextureFormatRGBA32Float,
}

var uintFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatR8Uint,
	wgpu.TextureFormatR16Uint,
	wgpu.TextureFormatRG8Uint,
	wgpu.TextureFormatR32Uint,
	wgpu.TextureFormatRG16Uint,
	wgpu.TextureFormatRGBA8Uint,
	wgpu.TextureFormatRGB10A2Uint,
	wgpu.TextureFormatRG32Uint,
	wgpu.TextureFormatRGBA16Uint,
	wgpu.TextureFormatRGBA32Uint,
}

var sintFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatR8Sint,
	wgpu.TextureFormatR16Sint,
	wgpu.TextureFormatRG8Sint,
	wgpu.TextureFormatR32Sint,
	wgpu.TextureFormatRG16Sint,
	wgpu.TextureFormatRGBA8Sint,
	wgpu.TextureFormatRG32Sint,
	wgpu.TextureFormatRGBA16Sint,
	wgpu.TextureFormatRGBA32Sint,
}

// depthFormats carry only a depth aspect.
var depthFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatDepth16Unorm,
	wgpu.TextureFormatDepth24Plus,
	wgpu.TextureFormatDepth32Float,
}

// depthStencilFormats carry both aspects and have no sample type for the combined view.
var depthStencilFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatDepth24PlusStencil8,
	wgpu.TextureFormatDepth32FloatStencil8,
}

// SampleType returns the sample type of a texture format viewed through the given aspect.
// The second return value is false when the format cannot be sampled through that aspect.
//
// Parameters:
//   - format: the texture format
//   - aspect: the aspect the view selects
//   - features: the features enabled on the device
//
// Returns:
//   - wgpu.TextureSampleType: the sample type
//   - bool: whether a sample type exists
func SampleType(format wgpu.TextureFormat, aspect wgpu.TextureAspect, features []wgpu.FeatureName) (wgpu.TextureSampleType, bool) {
	switch {
	case slices.Contains(depthFormats, format):
		if aspect == wgpu.TextureAspectStencilOnly {
			return wgpu.TextureSampleTypeUndefined, false
		}
		return wgpu.TextureSampleTypeDepth, true
	case slices.Contains(depthStencilFormats, format):
		switch aspect {
		case wgpu.TextureAspectDepthOnly:
			return wgpu.TextureSampleTypeDepth, true
		case wgpu.TextureAspectStencilOnly:
			return wgpu.TextureSampleTypeUint, true
		}
		return wgpu.TextureSampleTypeUndefined, false
	case format == wgpu.TextureFormatStencil8:
		if aspect == wgpu.TextureAspectDepthOnly {
			return wgpu.TextureSampleTypeUndefined, false
		}
		return wgpu.TextureSampleTypeUint, true
	}

	// color formats only have the full aspect
	if aspect != wgpu.TextureAspectAll {
		return wgpu.TextureSampleTypeUndefined, false
	}

	switch {
	case slices.Contains(filterableFloatFormats, format), slices.Contains(compressedFloatFormats, format):
		return wgpu.TextureSampleTypeFloat, true
	case slices.Contains(float32Formats, format):
		if slices.Contains(features, wgpu.FeatureNameFloat32Filterable) {
			return wgpu.TextureSampleTypeFloat, true
		}
		return wgpu.TextureSampleTypeUnfilterableFloat, true
	case slices.Contains(uintFormats, format):
		return wgpu.TextureSampleTypeUint, true
	case slices.Contains(sintFormats, format):
		return wgpu.TextureSampleTypeSint, true
	}
	return wgpu.TextureSampleTypeUndefined, false
}

// InferSlotShape derives the layout slot shape for a texture binding.
// The full aspect is tried first, then the depth aspect so combined depth-stencil textures bind as depth.
// Multisampled float textures are demoted to unfilterable, and layered textures bind as 2D arrays.
//
// Parameters:
//   - binding: the texture binding to inspect
//   - features: the features enabled on the device
//
// Returns:
//   - SlotShape: the inferred slot shape
//   - error: ErrUnsupportedTextureFormat if neither aspect yields a sample type
func InferSlotShape(binding TextureBinding, features []wgpu.FeatureName) (SlotShape, error) {
	sampleType, ok := SampleType(binding.Format, wgpu.TextureAspectAll, features)
	if !ok {
		sampleType, ok = SampleType(binding.Format, wgpu.TextureAspectDepthOnly, features)
	}
	if !ok {
		return SlotShape{}, fmt.Errorf("%w: %v", ErrUnsupportedTextureFormat, binding.Format)
	}

	multisampled := binding.Multisampled()
	if multisampled && sampleType == wgpu.TextureSampleTypeFloat {
		sampleType = wgpu.TextureSampleTypeUnfilterableFloat
	}

	viewDimension := wgpu.TextureViewDimension2D
	if binding.Layered() {
		viewDimension = wgpu.TextureViewDimension2DArray
	}

	return SlotShape{
		SampleType:    sampleType,
		Multisampled:  multisampled,
		ViewDimension: viewDimension,
	}, nil
}

// inferSlotShapes runs InferSlotShape over every binding in order, stopping at the first unsupported format.
func inferSlotShapes(bindings []TextureBinding, features []wgpu.FeatureName) ([]SlotShape, error) {
	shapes := make([]SlotShape, len(bindings))
	for i, b := range bindings {
		shape, err := InferSlotShape(b, features)
		if err != nil {
			return nil, fmt.Errorf("texture %d (%s): %w", i, b.Label, err)
		}
		shapes[i] = shape
	}
	return shapes, nil
}

// layoutEntries builds the ordered layout slots: the filtering sampler at binding 0, one texture slot per shape,
// then the comparison sampler and depth-array texture when hasShadow is set. Every slot is fragment visible.
func layoutEntries(shapes []SlotShape, hasShadow bool) []wgpu.BindGroupLayoutEntry {
	entries := make([]wgpu.BindGroupLayoutEntry, 0, len(shapes)+3)
	binding := uint32(0)

	entries = append(entries, wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageFragment,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
	})
	binding++

	for _, shape := range shapes {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    shape.SampleType,
				ViewDimension: shape.ViewDimension,
				Multisampled:  shape.Multisampled,
			},
		})
		binding++
	}

	if hasShadow {
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
		})
		binding++

		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeDepth,
				ViewDimension: wgpu.TextureViewDimension2DArray,
			},
		})
	}

	return entries
}
