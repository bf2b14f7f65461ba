package material_bind_groups

import "errors"

var (
	// ErrUnsupportedTextureFormat is returned when no sample type can be derived for a texture format,
	// neither for its full aspect nor for its depth aspect. Layout construction stops and nothing is cached.
	ErrUnsupportedTextureFormat = errors.New("unsupported texture format")

	// ErrLayoutMismatch is returned when the entries assembled for a bind group do not line up with the
	// slots of the layout they are created against.
	ErrLayoutMismatch = errors.New("bind group entries do not match layout")

	// ErrNilDevice is returned when a MaterialBindGroups is constructed without a device.
	ErrNilDevice = errors.New("device is nil")

	// ErrNilTextureView is returned when a texture binding carries no texture view.
	ErrNilTextureView = errors.New("texture binding has no texture view")
)
