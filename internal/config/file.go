package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"mini-gl/internal/graphics/renderer"
)

// Window describes the host window.
type Window struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

// File is the on-disk configuration of the demo host.
type File struct {
	Window   Window            `yaml:"window" toml:"window"`
	Renderer renderer.Settings `yaml:"renderer" toml:"renderer"`
	FPSLimit int               `yaml:"fpsLimit" toml:"fpsLimit"`
	IdleFPS  int               `yaml:"idleFPS" toml:"idleFPS"`
	Debug    bool              `yaml:"debug" toml:"debug"`
	// Shaders maps an instance key to its vertex and fragment source files.
	Shaders map[string]ShaderFiles `yaml:"shaders" toml:"shaders"`
}

// ShaderFiles names the two source files of one program.
type ShaderFiles struct {
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Window:   Window{Width: 900, Height: 600, Title: "mini-gl"},
		Renderer: renderer.DefaultSettings(),
		FPSLimit: 60,
		IdleFPS:  30,
	}
}

// Load reads a .yaml, .yml or .toml file over Default. Fields missing from
// the file keep their default values.
func Load(path string) (File, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("could not parse %s: %w", path, err)
	}

	// relative shader paths are relative to the config file
	dir := filepath.Dir(path)
	for key, files := range cfg.Shaders {
		cfg.Shaders[key] = ShaderFiles{
			Vertex:   resolve(dir, files.Vertex),
			Fragment: resolve(dir, files.Fragment),
		}
	}
	return cfg, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Apply pushes the runtime values into the process-wide settings.
func (f File) Apply() {
	SetFPSLimit(f.FPSLimit)
	SetIdleFPS(f.IdleFPS)
}
