package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-gl/internal/config"
	"mini-gl/internal/graphics/renderer"
)

func setupWindow(cfg config.Window) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Disable V-Sync; the driver's FPS limiter paces frames
	glfw.SwapInterval(0)

	return window, nil
}

// host adapts a glfw window to the driver loop and the renderer target.
// Size reports the framebuffer in pixels, so the renderer runs with a
// device pixel ratio of 1 on every platform.
type host struct {
	*glfw.Window
}

func (host) PollEvents() { glfw.PollEvents() }

func (h host) Size() (int, int) {
	return h.GetFramebufferSize()
}

// pixelSettings adapts file settings to a target that already reports pixels.
func pixelSettings(s renderer.Settings) renderer.Settings {
	s.DevicePixelRatio = 1
	return s
}
