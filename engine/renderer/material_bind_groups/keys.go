package material_bind_groups

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/google/uuid"
)

// IdentityKey identifies a bind group by the ordered texture binding IDs it wires, plus whether a shadow pair is bound.
// The hash only selects a bucket; entries inside a bucket are matched on the exact ID sequence.
type IdentityKey struct {
	Hash      uint64
	HasShadow bool
}

// ShapeKey identifies a layout by the ordered slot shapes of its textures, plus whether shadow slots follow.
// Texture lists with different views but equal shapes produce the same ShapeKey.
type ShapeKey struct {
	Hash      uint64
	HasShadow bool
}

// identityKeyFor hashes the binding IDs in order and returns the key together with the ID sequence used to verify bucket hits.
func identityKeyFor(bindings []TextureBinding, hasShadow bool) (IdentityKey, []uuid.UUID) {
	ids := make([]uuid.UUID, len(bindings))
	h := fnv.New64a()
	for i, b := range bindings {
		ids[i] = b.ID
		h.Write(b.ID[:])
	}
	return IdentityKey{Hash: h.Sum64(), HasShadow: hasShadow}, ids
}

// shapeKeyFor hashes the slot shapes in order.
func shapeKeyFor(shapes []SlotShape, hasShadow bool) ShapeKey {
	h := fnv.New64a()
	buf := make([]byte, 9)
	for _, s := range shapes {
		binary.LittleEndian.PutUint32(buf[0:4], uint32(s.SampleType))
		binary.LittleEndian.PutUint32(buf[4:8], uint32(s.ViewDimension))
		buf[8] = 0
		if s.Multisampled {
			buf[8] = 1
		}
		h.Write(buf)
	}
	return ShapeKey{Hash: h.Sum64(), HasShadow: hasShadow}
}
