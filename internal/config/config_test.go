package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-gl/internal/graphics/renderer"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "scene.yaml", `
window:
  title: cubes
renderer:
  clearColor: [0, 0, 0, 1]
  camera: {x: 1, y: 0, z: 4}
  fieldOfView: 45
fpsLimit: 144
shaders:
  cubes:
    vertex: cube.vert
    fragment: /abs/cube.frag
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "cubes", cfg.Window.Title)
	assert.Equal(t, 900, cfg.Window.Width, "defaults survive")
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, renderer.Position{X: 1, Z: 4}, cfg.Renderer.Camera)
	assert.Equal(t, float32(45), cfg.Renderer.FieldOfView)
	assert.Equal(t, float32(0.1), cfg.Renderer.ClipNear)
	assert.Equal(t, 144, cfg.FPSLimit)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "cube.vert"), cfg.Shaders["cubes"].Vertex)
	assert.Equal(t, "/abs/cube.frag", cfg.Shaders["cubes"].Fragment)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "scene.toml", `
debug = true
idleFPS = 10

[renderer]
devicePixelRatio = 2.0
clipFar = 50.0

[renderer.camera]
z = 6.0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 10, cfg.IdleFPS)
	assert.Equal(t, float32(2), cfg.Renderer.DevicePixelRatio)
	assert.Equal(t, float32(50), cfg.Renderer.ClipFar)
	assert.Equal(t, renderer.Position{Z: 6}, cfg.Renderer.Camera)
	assert.Equal(t, 60, cfg.FPSLimit)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "scene.json", `{}`))
	assert.ErrorContains(t, err, "unsupported config format")

	_, err = Load(writeFile(t, "scene.yaml", "renderer: [oops"))
	assert.ErrorContains(t, err, "could not parse")
}

func TestRuntimeSettingsClamp(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())
	defer SetIdleFPS(GetIdleFPS())

	SetFPSLimit(-5)
	assert.Zero(t, GetFPSLimit())
	SetFPSLimit(5000)
	assert.Equal(t, 1000, GetFPSLimit())

	SetIdleFPS(0)
	assert.Equal(t, 1, GetIdleFPS())

	File{FPSLimit: 90, IdleFPS: 20}.Apply()
	assert.Equal(t, 90, GetFPSLimit())
	assert.Equal(t, 20, GetIdleFPS())
}
