package material_bind_groups

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-bindings/common"
	"github.com/Carmen-Shannon/oxy-bindings/engine/logger"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// DefaultLabel is the debug label prefix used when no label option is given.
const DefaultLabel = "material"

// Layout is a cached bind group layout together with the slots it was created from.
// It is immutable once returned and stays valid until the owning MaterialBindGroups is released.
type Layout struct {
	// BindGroupLayout is the GPU layout object.
	BindGroupLayout *wgpu.BindGroupLayout
	// Entries are the ordered slot descriptors the layout was created with.
	Entries []wgpu.BindGroupLayoutEntry
	// Shapes are the texture slot shapes, excluding the sampler and shadow slots.
	Shapes []SlotShape
	// Key is the shape key the layout is cached under.
	Key ShapeKey
}

// HasShadow reports whether the layout ends with the comparison sampler and depth-array slots.
//
// Returns:
//   - bool: true if shadow slots are present
func (l *Layout) HasShadow() bool {
	return l.Key.HasShadow
}

// validate checks that bind group entries line up slot for slot with the layout.
func (l *Layout) validate(entries []wgpu.BindGroupEntry) error {
	if len(entries) != len(l.Entries) {
		return fmt.Errorf("%w: %d entries for %d slots", ErrLayoutMismatch, len(entries), len(l.Entries))
	}
	for i, slot := range l.Entries {
		entry := entries[i]
		if entry.Binding != slot.Binding {
			return fmt.Errorf("%w: entry %d has binding %d, slot expects %d", ErrLayoutMismatch, i, entry.Binding, slot.Binding)
		}
		switch {
		case slot.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			if entry.Sampler == nil || entry.TextureView != nil {
				return fmt.Errorf("%w: binding %d expects a sampler", ErrLayoutMismatch, slot.Binding)
			}
		case slot.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			if entry.TextureView == nil || entry.Sampler != nil {
				return fmt.Errorf("%w: binding %d expects a texture view", ErrLayoutMismatch, slot.Binding)
			}
		}
	}
	return nil
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	// Layouts is the number of cached layouts.
	Layouts int
	// BindGroups is the number of cached bind groups.
	BindGroups int
	// Hits and Misses count GetOrCreate lookups.
	Hits, Misses uint64
	// LayoutHits and LayoutMisses count layout lookups, including those made on behalf of GetOrCreate.
	LayoutHits, LayoutMisses uint64
}

// bindGroupEntry is one cached bind group and the exact binding IDs it was created for.
type bindGroupEntry struct {
	ids       []uuid.UUID
	bindGroup *wgpu.BindGroup
	layout    *Layout
}

// materialBindGroups is the implementation of the MaterialBindGroups interface.
type materialBindGroups struct {
	mu *sync.Mutex

	label       string
	device      GPUDevice
	features    []wgpu.FeatureName
	samplerData common.SamplerStagingData
	sampler     *wgpu.Sampler
	logger      *log.Logger

	layouts    map[ShapeKey][]*Layout
	bindGroups map[IdentityKey][]*bindGroupEntry

	layoutCount    int
	bindGroupCount int
	stats          Stats
}

// MaterialBindGroups caches the bind group layouts and bind groups used to bind material textures.
//
// Layouts are cached by the shape of the textures (sample type, multisampling, array-ness), so materials whose
// textures differ but look alike share one layout. Bind groups are cached by the exact, ordered texture bindings.
// Every bind group is created against a layout obtained from the same shape inference, so the two always agree.
//
// Slot order is fixed: binding 0 is the shared filtering sampler, bindings 1..N are the material textures in input
// order, and when a shadow pair is given the comparison sampler and depth-array texture follow.
//
// All methods are safe for concurrent use; a lookup and the insert that follows a miss happen under one lock.
type MaterialBindGroups interface {
	// Label returns the debug label prefix used for created GPU objects.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Sampler returns the shared filtering sampler bound at binding 0 of every bind group.
	//
	// Returns:
	//   - *wgpu.Sampler: the default material sampler
	Sampler() *wgpu.Sampler

	// Layout returns the bind group layout for the given textures, creating it on first use.
	// Texture lists with equal slot shapes return the same Layout.
	//
	// Parameters:
	//   - views: the material texture bindings, in slot order
	//   - hasShadow: whether the comparison sampler and depth-array slots are appended
	//
	// Returns:
	//   - *Layout: the cached layout
	//   - error: ErrUnsupportedTextureFormat if a texture cannot be sampled, or the device error if creation fails
	Layout(views []TextureBinding, hasShadow bool) (*Layout, error)

	// MustLayout is like Layout but panics on error.
	//
	// Parameters:
	//   - views: the material texture bindings, in slot order
	//   - hasShadow: whether the comparison sampler and depth-array slots are appended
	//
	// Returns:
	//   - *Layout: the cached layout
	MustLayout(views []TextureBinding, hasShadow bool) *Layout

	// GetOrCreate returns the bind group wiring the given textures, and optionally a shadow pair, creating it and
	// its layout on first use. Swapping two textures produces a different bind group.
	// Bind groups are keyed by the textures and by whether a shadow pair is given, not by which pair: a call with a
	// different ShadowPair returns the bind group wired to the first one. Call Clear after swapping shadow maps.
	//
	// Parameters:
	//   - views: the material texture bindings, in slot order
	//   - shadow: the shadow comparison sampler and depth-array view, or nil
	//
	// Returns:
	//   - *wgpu.BindGroup: the cached bind group, valid until Clear or Release
	//   - error: an error if a texture is unsupported, a view is missing, or the device fails
	GetOrCreate(views []TextureBinding, shadow *ShadowPair) (*wgpu.BindGroup, error)

	// Clear releases and forgets every cached bind group. Layouts are kept.
	// Call this when the textures behind cached bind groups are reloaded or destroyed.
	Clear()

	// Stats returns a snapshot of the cache counters.
	//
	// Returns:
	//   - Stats: the current counters
	Stats() Stats

	// Release releases every cached bind group, every cached layout and the default sampler.
	// The MaterialBindGroups must not be used afterwards.
	Release()
}

var _ MaterialBindGroups = &materialBindGroups{}

// NewMaterialBindGroups creates an empty MaterialBindGroups backed by the given device and creates the shared
// default sampler.
//
// Parameters:
//   - device: the device used to create samplers, layouts and bind groups
//   - options: variadic list of MaterialBindGroupsBuilderOption functions
//
// Returns:
//   - MaterialBindGroups: the new cache
//   - error: ErrNilDevice, or the device error if the default sampler cannot be created
func NewMaterialBindGroups(device GPUDevice, options ...MaterialBindGroupsBuilderOption) (MaterialBindGroups, error) {
	if device == nil {
		return nil, ErrNilDevice
	}

	m := &materialBindGroups{
		mu:         &sync.Mutex{},
		label:      DefaultLabel,
		device:     device,
		layouts:    make(map[ShapeKey][]*Layout),
		bindGroups: make(map[IdentityKey][]*bindGroupEntry),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logger.Default()
	}

	m.features = device.Features()

	sampler, err := device.CreateSampler(m.samplerData.Descriptor(m.label + " sampler"))
	if err != nil {
		return nil, fmt.Errorf("failed to create material sampler: %w", err)
	}
	m.sampler = sampler

	return m, nil
}

func (m *materialBindGroups) Label() string {
	return m.label
}

func (m *materialBindGroups) Sampler() *wgpu.Sampler {
	return m.sampler
}

func (m *materialBindGroups) Layout(views []TextureBinding, hasShadow bool) (*Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layout(views, hasShadow)
}

func (m *materialBindGroups) MustLayout(views []TextureBinding, hasShadow bool) *Layout {
	l, err := m.Layout(views, hasShadow)
	if err != nil {
		panic(err)
	}
	return l
}

func (m *materialBindGroups) GetOrCreate(views []TextureBinding, shadow *ShadowPair) (*wgpu.BindGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hasShadow := shadow != nil
	key, ids := identityKeyFor(views, hasShadow)
	for _, e := range m.bindGroups[key] {
		if slices.Equal(e.ids, ids) {
			m.stats.Hits++
			return e.bindGroup, nil
		}
	}
	m.stats.Misses++

	for i, v := range views {
		if v.View == nil {
			return nil, fmt.Errorf("texture %d (%s): %w", i, v.Label, ErrNilTextureView)
		}
	}
	if hasShadow && shadow.View.View == nil {
		return nil, fmt.Errorf("shadow view: %w", ErrNilTextureView)
	}

	layout, err := m.layout(views, hasShadow)
	if err != nil {
		return nil, err
	}

	entries := m.bindGroupEntries(views, shadow)
	if err := layout.validate(entries); err != nil {
		return nil, err
	}

	bindGroup, err := m.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   m.label + " bind group",
		Layout:  layout.BindGroupLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create material bind group: %w", err)
	}

	m.bindGroups[key] = append(m.bindGroups[key], &bindGroupEntry{
		ids:       ids,
		bindGroup: bindGroup,
		layout:    layout,
	})
	m.bindGroupCount++
	m.logger.Debug("created material bind group", "label", m.label, "textures", len(views), "shadow", hasShadow, "key", key.Hash)

	return bindGroup, nil
}

func (m *materialBindGroups) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearBindGroups()
}

func (m *materialBindGroups) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Layouts = m.layoutCount
	s.BindGroups = m.bindGroupCount
	return s
}

func (m *materialBindGroups) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearBindGroups()
	for key, bucket := range m.layouts {
		for _, l := range bucket {
			m.device.Release(l.BindGroupLayout)
		}
		delete(m.layouts, key)
	}
	m.layoutCount = 0

	if m.sampler != nil {
		m.device.Release(m.sampler)
		m.sampler = nil
	}
}

// clearBindGroups releases and drops every cached bind group. The caller must hold m.mu.
func (m *materialBindGroups) clearBindGroups() {
	if m.bindGroupCount == 0 {
		return
	}
	for _, bucket := range m.bindGroups {
		for _, e := range bucket {
			m.device.Release(e.bindGroup)
		}
	}
	m.logger.Debug("cleared material bind groups", "label", m.label, "count", m.bindGroupCount)
	m.bindGroups = make(map[IdentityKey][]*bindGroupEntry)
	m.bindGroupCount = 0
}

// layout resolves the layout for the given textures, creating it on a miss. The caller must hold m.mu.
func (m *materialBindGroups) layout(views []TextureBinding, hasShadow bool) (*Layout, error) {
	shapes, err := inferSlotShapes(views, m.features)
	if err != nil {
		m.logger.Error("cannot build material layout", "label", m.label, "err", err)
		return nil, err
	}

	key := shapeKeyFor(shapes, hasShadow)
	for _, l := range m.layouts[key] {
		if slices.Equal(l.Shapes, shapes) {
			m.stats.LayoutHits++
			return l, nil
		}
	}
	m.stats.LayoutMisses++

	entries := layoutEntries(shapes, hasShadow)
	bindGroupLayout, err := m.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   m.label + " bind group layout",
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create material bind group layout: %w", err)
	}

	l := &Layout{
		BindGroupLayout: bindGroupLayout,
		Entries:         entries,
		Shapes:          shapes,
		Key:             key,
	}
	m.layouts[key] = append(m.layouts[key], l)
	m.layoutCount++
	m.logger.Debug("created material bind group layout", "label", m.label, "slots", len(entries), "shadow", hasShadow, "key", key.Hash)

	return l, nil
}

// bindGroupEntries assembles the resources in slot order: default sampler, textures, then the shadow pair if any.
func (m *materialBindGroups) bindGroupEntries(views []TextureBinding, shadow *ShadowPair) []wgpu.BindGroupEntry {
	entries := make([]wgpu.BindGroupEntry, 0, len(views)+3)
	binding := uint32(0)

	entries = append(entries, wgpu.BindGroupEntry{
		Binding: binding,
		Sampler: m.sampler,
	})
	binding++

	for _, v := range views {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     binding,
			TextureView: v.View,
		})
		binding++
	}

	if shadow != nil {
		entries = append(entries, wgpu.BindGroupEntry{
			Binding: binding,
			Sampler: shadow.Sampler,
		})
		binding++

		entries = append(entries, wgpu.BindGroupEntry{
			Binding:     binding,
			TextureView: shadow.View.View,
		})
	}

	return entries
}
