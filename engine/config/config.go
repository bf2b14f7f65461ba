// package config loads the engine's TOML configuration. Every section is optional; values that are left out keep
// the defaults returned by Default.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-bindings/common"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidValue is returned when a configuration value is outside its allowed set.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config is the root of the configuration file.
type Config struct {
	Logging         Logging        `toml:"logging"`
	MaterialSampler Sampler        `toml:"material_sampler"`
	TextureWatcher  TextureWatcher `toml:"texture_watcher"`
	Profiler        Profiler       `toml:"profiler"`
}

// Logging configures the shared logger.
type Logging struct {
	Level string `toml:"level"`
}

// Sampler configures the default material sampler. Enum fields take the lower-case snake_case names of the
// matching wgpu enums; an empty string keeps the engine default.
type Sampler struct {
	AddressModeU  string  `toml:"address_mode_u"`
	AddressModeV  string  `toml:"address_mode_v"`
	AddressModeW  string  `toml:"address_mode_w"`
	MagFilter     string  `toml:"mag_filter"`
	MinFilter     string  `toml:"min_filter"`
	MipmapFilter  string  `toml:"mipmap_filter"`
	LodMinClamp   float32 `toml:"lod_min_clamp"`
	LodMaxClamp   float32 `toml:"lod_max_clamp"`
	MaxAnisotropy uint16  `toml:"max_anisotropy"`
}

// TextureWatcher configures the on-disk texture watcher.
type TextureWatcher struct {
	Enabled     bool     `toml:"enabled"`
	Directories []string `toml:"directories"`
	Extensions  []string `toml:"extensions"`
	Debounce    Duration `toml:"debounce"`
}

// Profiler configures the cache statistics reporter.
type Profiler struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// Duration is a time.Duration written as a Go duration string ("250ms", "1s") in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("%w: duration %q: %w", ErrInvalidValue, string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Logging: Logging{Level: "info"},
		TextureWatcher: TextureWatcher{
			Extensions: []string{".png", ".jpg", ".jpeg", ".hdr", ".ktx2", ".dds"},
			Debounce:   Duration(250 * time.Millisecond),
		},
		Profiler: Profiler{Interval: Duration(time.Second)},
	}
}

// Load reads and parses the configuration file at path.
//
// Parameters:
//   - path: the path of the TOML file
//
// Returns:
//   - Config: the parsed configuration layered over Default
//   - error: an error if the file cannot be read or is invalid
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: an error if the document is malformed or a value is invalid
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every enumerated and ranged value.
//
// Returns:
//   - error: an error wrapping ErrInvalidValue for the first invalid value found
func (c Config) Validate() error {
	if _, err := log.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if _, err := c.SamplerStagingData(); err != nil {
		return err
	}
	s := c.MaterialSampler
	if s.LodMaxClamp != 0 && s.LodMaxClamp < s.LodMinClamp {
		return fmt.Errorf("%w: material_sampler.lod_max_clamp %v is below lod_min_clamp %v", ErrInvalidValue, s.LodMaxClamp, s.LodMinClamp)
	}
	if c.TextureWatcher.Debounce < 0 {
		return fmt.Errorf("%w: texture_watcher.debounce must not be negative", ErrInvalidValue)
	}
	if c.Profiler.Enabled && c.Profiler.Interval <= 0 {
		return fmt.Errorf("%w: profiler.interval must be positive", ErrInvalidValue)
	}
	return nil
}

// SamplerStagingData converts the [material_sampler] section into staging data for the default material sampler.
//
// Returns:
//   - common.SamplerStagingData: the staging data, zero fields meaning engine defaults
//   - error: an error wrapping ErrInvalidValue if an enum name is unknown
func (c Config) SamplerStagingData() (common.SamplerStagingData, error) {
	s := c.MaterialSampler
	var out common.SamplerStagingData
	var err error

	if out.AddressModeU, err = addressMode("address_mode_u", s.AddressModeU); err != nil {
		return out, err
	}
	if out.AddressModeV, err = addressMode("address_mode_v", s.AddressModeV); err != nil {
		return out, err
	}
	if out.AddressModeW, err = addressMode("address_mode_w", s.AddressModeW); err != nil {
		return out, err
	}
	if out.MagFilter, err = filterMode("mag_filter", s.MagFilter); err != nil {
		return out, err
	}
	if out.MinFilter, err = filterMode("min_filter", s.MinFilter); err != nil {
		return out, err
	}
	if out.MipmapFilter, err = mipmapFilterMode("mipmap_filter", s.MipmapFilter); err != nil {
		return out, err
	}
	out.LodMinClamp = s.LodMinClamp
	out.LodMaxClamp = s.LodMaxClamp
	out.MaxAnisotropy = s.MaxAnisotropy
	return out, nil
}

var addressModes = map[string]wgpu.AddressMode{
	"repeat":        wgpu.AddressModeRepeat,
	"clamp_to_edge": wgpu.AddressModeClampToEdge,
	"mirror_repeat": wgpu.AddressModeMirrorRepeat,
}

var filterModes = map[string]wgpu.FilterMode{
	"linear":  wgpu.FilterModeLinear,
	"nearest": wgpu.FilterModeNearest,
}

var mipmapFilterModes = map[string]wgpu.MipmapFilterMode{
	"linear":  wgpu.MipmapFilterModeLinear,
	"nearest": wgpu.MipmapFilterModeNearest,
}

func addressMode(key, name string) (wgpu.AddressMode, error) {
	return lookup(addressModes, key, name)
}

func filterMode(key, name string) (wgpu.FilterMode, error) {
	return lookup(filterModes, key, name)
}

func mipmapFilterMode(key, name string) (wgpu.MipmapFilterMode, error) {
	return lookup(mipmapFilterModes, key, name)
}

func lookup[T any](table map[string]T, key, name string) (T, error) {
	var zero T
	if name == "" {
		return zero, nil
	}
	v, ok := table[strings.ToLower(name)]
	if !ok {
		return zero, fmt.Errorf("%w: material_sampler.%s %q", ErrInvalidValue, key, name)
	}
	return v, nil
}
