// Command triangle is the smallest host of the renderer: one window, one
// instance, no config file. It prints the frame rate once per second.
package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"mini-gl/internal/driver"
	"mini-gl/internal/gpu"
	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/renderer"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	runtime.LockOSThread()
}

const vertexSrc = `#version 410 core
in vec3 position;
void main() {
	gl_Position = vec4(position, 1.0);
}`

const fragmentSrc = `#version 410 core
uniform vec4 uColor;
out vec4 fragColor;
void main() {
	fragColor = uColor;
}`

type host struct {
	*glfw.Window
}

func (host) PollEvents() { glfw.PollEvents() }

func (h host) Size() (int, int) { return h.GetFramebufferSize() }

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "mini-gl triangle", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)

	backend, err := gpu.NewGL()
	if err != nil {
		panic(err)
	}
	defer backend.Release()

	// FPS counter variables
	frames := 0
	last := time.Now()

	r, err := renderer.New(renderer.Config{
		Context:  backend,
		Target:   host{window},
		Settings: renderer.Settings{ClearColor: [4]float32{0, 0, 0, 1}},
		OnRender: func(*renderer.Renderer) {
			frames++
			if elapsed := time.Since(last).Seconds(); elapsed >= 1 {
				fmt.Printf("FPS: %d\n", int(float64(frames)/elapsed+0.5))
				frames = 0
				last = time.Now()
			}
		},
	})
	if err != nil {
		panic(err)
	}
	defer r.Destroy()

	_, err = r.Add("triangle", graphics.InstanceConfig{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		Geometry: graphics.Geometry{Vertices: []mgl32.Vec3{
			{0, 0.5, 0}, {-0.5, -0.5, 0}, {0.5, -0.5, 0},
		}},
		Mode: gpu.Triangles,
		Uniforms: graphics.UniformSet{
			"uColor": {Type: graphics.Vec4, Value: []float32{0, 1, 0, 1}},
		},
	})
	if err != nil {
		panic(err)
	}

	err = driver.Run(context.Background(), host{window}, r, driver.Options{
		BeforeFrame: func() {
			// close on Esc
			if window.GetKey(glfw.KeyEscape) == glfw.Press {
				window.SetShouldClose(true)
			}
		},
	})
	if err != nil {
		panic(err)
	}
}
