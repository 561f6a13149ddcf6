package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"mini-gl/internal/config"
	"mini-gl/internal/gpu"
	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/renderer"
	"mini-gl/internal/shaderwatch"
)

const (
	gridSide    = 8
	gridSpacing = 0.22
	uTime       = "uTime"
)

const cubeVertexShader = `#version 410 core
in vec3 position;
in vec3 normal;
in vec3 offset;
in vec3 color;

uniform mat4 uProjectionMatrix;
uniform mat4 uViewMatrix;
uniform mat4 uModelMatrix;
uniform float uTime;

out vec3 vColor;

void main() {
	vec3 p = position * 0.1 + offset;
	p.z += 0.08 * sin(uTime * 2.0 + offset.x * 6.0 + offset.y * 4.0);
	float light = 0.55 + 0.45 * max(dot(normal, normalize(vec3(0.4, 0.8, 0.6))), 0.0);
	vColor = color * light;
	gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(p, 1.0);
}
`

const cubeFragmentShader = `#version 410 core
in vec3 vColor;
out vec4 fragColor;

void main() {
	fragColor = vec4(vColor, 1.0);
}
`

const floorVertexShader = `#version 410 core
in vec3 position;

uniform mat4 uProjectionMatrix;
uniform mat4 uViewMatrix;
uniform mat4 uModelMatrix;

out vec2 vUV;

void main() {
	vUV = position.xy + 0.5;
	vec3 p = position * 2.2 + vec3(0.0, 0.0, -0.3);
	gl_Position = uProjectionMatrix * uViewMatrix * uModelMatrix * vec4(p, 1.0);
}
`

const floorFragmentShader = `#version 410 core
in vec2 vUV;
uniform vec3 uColor;
out vec4 fragColor;

void main() {
	vec2 cell = floor(vUV * 16.0);
	float checker = mod(cell.x + cell.y, 2.0);
	fragColor = vec4(uColor * (0.85 + 0.15 * checker), 1.0);
}
`

// scene owns the demo instances and rebuilds them when their sources change.
type scene struct {
	r       *renderer.Renderer
	shaders map[string]config.ShaderFiles
	start   time.Time
}

func newScene(r *renderer.Renderer, shaders map[string]config.ShaderFiles) *scene {
	return &scene{r: r, shaders: shaders, start: time.Now()}
}

func (s *scene) keys() []string {
	return []string{"floor", "cubes"}
}

func (s *scene) load() error {
	for _, key := range s.keys() {
		if err := s.add(key); err != nil {
			return err
		}
	}
	return nil
}

// watch registers the configured shader files of every demo instance.
func (s *scene) watch(w *shaderwatch.Watcher) error {
	for _, key := range s.keys() {
		files, ok := s.shaders[key]
		if !ok {
			continue
		}
		if err := w.Watch(key, files.Vertex, files.Fragment); err != nil {
			return err
		}
	}
	return nil
}

// reload replaces the instance under key. A failed rebuild is logged and
// leaves the key empty until the next edit.
func (s *scene) reload(key string) {
	s.r.Remove(key)
	if err := s.add(key); err != nil {
		graphics.Logger().Error("shader reload failed", "key", key, "err", err)
		return
	}
	graphics.Logger().Info("shader reloaded", "key", key)
}

func (s *scene) add(key string) error {
	var cfg graphics.InstanceConfig
	switch key {
	case "cubes":
		cfg = s.cubes()
	case "floor":
		cfg = s.floor()
	default:
		return fmt.Errorf("unknown instance %q", key)
	}
	vs, fs, err := s.sources(key, cfg.VertexSource, cfg.FragmentSource)
	if err != nil {
		return err
	}
	cfg.VertexSource, cfg.FragmentSource = vs, fs
	inst, err := s.r.Add(key, cfg)
	if inst != nil && isShaderDiagnostic(err) {
		// registered; the renderer has already logged the compiler output
		return nil
	}
	return err
}

func isShaderDiagnostic(err error) bool {
	return errors.Is(err, graphics.ErrCompile) || errors.Is(err, graphics.ErrLink)
}

// sources returns the configured shader files for key, falling back to the
// built-in programs.
func (s *scene) sources(key, vs, fs string) (string, string, error) {
	files, ok := s.shaders[key]
	if !ok {
		return vs, fs, nil
	}
	if files.Vertex != "" {
		b, err := os.ReadFile(files.Vertex)
		if err != nil {
			return "", "", fmt.Errorf("could not read vertex shader: %w", err)
		}
		vs = string(b)
	}
	if files.Fragment != "" {
		b, err := os.ReadFile(files.Fragment)
		if err != nil {
			return "", "", fmt.Errorf("could not read fragment shader: %w", err)
		}
		fs = string(b)
	}
	return vs, fs, nil
}

func (s *scene) cubes() graphics.InstanceConfig {
	return graphics.InstanceConfig{
		VertexSource:   cubeVertexShader,
		FragmentSource: cubeFragmentShader,
		Geometry:       graphics.Cube(),
		Mode:           gpu.Triangles,
		Multiplier:     gridSide * gridSide,
		Attributes: []graphics.AttributeSpec{
			{Name: "offset", Size: 3, Source: gridOffset},
			{Name: "color", Size: 3, Source: gridColor},
		},
		Modifiers: map[string]graphics.Modifier{
			// darker side faces, one face every six vertices
			"color": func(data []float32, vertex, component int, _ *graphics.Instance) float32 {
				shade := []float32{1, 1, 0.8, 0.8, 0.65, 0.65}[(vertex/6)%6]
				return data[component] * shade
			},
		},
		Uniforms: graphics.UniformSet{
			uTime: {Type: graphics.Scalar, Value: []float32{0}},
		},
		OnRender: func(inst *graphics.Instance) {
			t := float32(time.Since(s.start).Seconds())
			if err := inst.Uniforms().Set(uTime, []float32{t}); err != nil {
				graphics.Logger().Warn("could not advance time", "err", err)
			}
		},
	}
}

func (s *scene) floor() graphics.InstanceConfig {
	return graphics.InstanceConfig{
		VertexSource:   floorVertexShader,
		FragmentSource: floorFragmentShader,
		Geometry:       graphics.Quad(),
		Mode:           gpu.Triangles,
		Uniforms: graphics.UniformSet{
			"uColor": {Type: graphics.Vec3, Value: []float32{0.9, 0.9, 0.92}},
		},
	}
}

func gridOffset(i, n int) []float32 {
	side := int(math.Sqrt(float64(n)))
	x, y := i%side, i/side
	half := float32(side-1) / 2
	return []float32{
		(float32(x) - half) * gridSpacing,
		(float32(y) - half) * gridSpacing,
		0,
	}
}

func gridColor(i, n int) []float32 {
	h := float64(i) / float64(n)
	return []float32{
		float32(0.5 + 0.5*math.Cos(2*math.Pi*h)),
		float32(0.5 + 0.5*math.Cos(2*math.Pi*(h-1.0/3))),
		float32(0.5 + 0.5*math.Cos(2*math.Pi*(h-2.0/3))),
	}
}
