package engine

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-bindings/engine/config"
	"github.com/Carmen-Shannon/oxy-bindings/engine/logger"
	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material"
	mbg "github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups"
	"github.com/Carmen-Shannon/oxy-bindings/engine/renderer/material_bind_groups/stub_device"
	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() EngineBuilderOption {
	return WithLogger(log.New(io.Discard))
}

func TestNewEngineRequiresDevice(t *testing.T) {
	_, err := NewEngine(nil)
	assert.ErrorIs(t, err, mbg.ErrNilDevice)
}

func TestNewEngineDefaults(t *testing.T) {
	dev := stub_device.New()
	e, err := NewEngine(dev, quiet())
	require.NoError(t, err)
	defer e.Close()

	assert.NotNil(t, e.Cache())
	assert.Nil(t, e.Watcher())
	assert.Nil(t, e.Profiler())
	assert.Equal(t, 1, dev.SamplerCount())
	assert.Equal(t, wgpu.AddressModeRepeat, dev.Samplers()[0].AddressModeU)

	e.Tick()
}

func TestNewEngineAppliesSamplerConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("[material_sampler]\naddress_mode_u = \"clamp_to_edge\"\n"))
	require.NoError(t, err)

	dev := stub_device.New()
	e, err := NewEngine(dev, WithConfig(cfg), quiet())
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, wgpu.AddressModeClampToEdge, dev.Samplers()[0].AddressModeU)
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaterialSampler.MagFilter = "cubic"

	_, err := NewEngine(stub_device.New(), WithConfig(cfg), quiet())
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestNewEngineWatcherFailureReleasesCache(t *testing.T) {
	cfg := config.Default()
	cfg.TextureWatcher.Enabled = true
	cfg.TextureWatcher.Directories = []string{filepath.Join(t.TempDir(), "missing")}

	dev := stub_device.New()
	_, err := NewEngine(dev, WithConfig(cfg), quiet())
	require.Error(t, err)
	assert.Equal(t, 1, dev.ReleasedCount())
}

func TestMaterials(t *testing.T) {
	brick := material.NewMaterial(material.WithName("brick"))
	e, err := NewEngine(stub_device.New(), quiet(), WithMaterial(brick))
	require.NoError(t, err)
	defer e.Close()

	stone := material.NewMaterial(material.WithName("stone"))
	e.AddMaterial(stone)

	assert.Same(t, brick, e.Material("brick"))
	assert.Nil(t, e.Material("glass"))
	all := e.Materials()
	assert.Len(t, all, 2)
	delete(all, "brick")
	assert.NotNil(t, e.Material("brick"))
}

func TestTextureChangeRebuildsBindGroups(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.TextureWatcher.Enabled = true
	cfg.TextureWatcher.Directories = []string{dir}
	cfg.TextureWatcher.Debounce = config.Duration(10 * time.Millisecond)
	cfg.Profiler.Enabled = true

	dev := stub_device.New()
	e, err := NewEngine(dev, WithConfig(cfg), quiet())
	require.NoError(t, err)
	defer e.Close()
	require.NotNil(t, e.Watcher())
	require.NotNil(t, e.Profiler())

	albedo := stub_device.Texture(wgpu.TextureFormatRGBA8UnormSrgb, 1, 1)
	brick := material.NewMaterial(material.WithName("brick"), material.WithTexture(albedo))

	first, err := brick.BindGroup(e.Cache(), nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "albedo.png"), []byte("texels"), 0o644))
	assert.Eventually(t, func() bool { return e.Cache().Stats().BindGroups == 0 }, 2*time.Second, 10*time.Millisecond)

	second, err := brick.BindGroup(e.Cache(), nil)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 1, dev.LayoutCount())
	assert.Equal(t, 2, dev.BindGroupCount())
}

func TestCloseIsIdempotent(t *testing.T) {
	dev := stub_device.New()
	e, err := NewEngine(dev, quiet())
	require.NoError(t, err)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	assert.Equal(t, 1, dev.ReleasedCount())
}

func TestEnginesOwnTheirLogLevel(t *testing.T) {
	before := logger.Default().GetLevel()

	debug := config.Default()
	debug.Logging.Level = "debug"
	a, err := NewEngine(stub_device.New(), WithConfig(debug))
	require.NoError(t, err)
	defer a.Close()

	warn := config.Default()
	warn.Logging.Level = "warn"
	b, err := NewEngine(stub_device.New(), WithConfig(warn))
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, log.DebugLevel, a.Logger().GetLevel())
	assert.Equal(t, log.WarnLevel, b.Logger().GetLevel())
	assert.NotSame(t, a.Logger(), b.Logger())
	assert.Equal(t, before, logger.Default().GetLevel())
}
