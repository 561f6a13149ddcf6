package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-gl/internal/graphics"
	"mini-gl/internal/graphics/renderer"
	"mini-gl/internal/input"
)

// camera units per second
const cameraSpeed = 1.5

type controls struct {
	window *glfw.Window
	r      *renderer.Renderer
	scene  *scene
	keys   *input.Manager
	last   time.Time
}

func setupInputHandlers(window *glfw.Window, r *renderer.Renderer, s *scene) *controls {
	c := &controls{
		window: window,
		r:      r,
		scene:  s,
		keys:   input.NewManager(),
		last:   time.Now(),
	}
	c.keys.SetKeyCallback(window)

	// Framebuffer size callback; also fires when the content scale changes
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.Resize()
	})

	return c
}

// update applies the actions gathered since the previous frame. It runs on
// the loop thread whether or not the renderer is running.
func (c *controls) update() {
	now := time.Now()
	dt := float32(now.Sub(c.last).Seconds())
	c.last = now
	defer c.keys.PostUpdate()

	if c.keys.JustPressed(input.ActionQuit) {
		c.window.SetShouldClose(true)
		return
	}
	if c.keys.JustPressed(input.ActionToggleRunning) {
		if err := c.r.Toggle(); err != nil {
			graphics.Logger().Error("frame failed", "err", err)
		}
	}
	if c.keys.JustPressed(input.ActionReload) {
		for _, key := range c.scene.keys() {
			c.scene.reload(key)
		}
	}

	cam := c.r.Settings().Camera
	step := cameraSpeed * dt
	moves := []struct {
		action input.Action
		axis   *float32
		sign   float32
	}{
		{input.ActionCameraLeft, &cam.X, -1},
		{input.ActionCameraRight, &cam.X, 1},
		{input.ActionCameraUp, &cam.Y, 1},
		{input.ActionCameraDown, &cam.Y, -1},
		{input.ActionCameraIn, &cam.Z, -1},
		{input.ActionCameraOut, &cam.Z, 1},
	}
	moved := false
	for _, m := range moves {
		if c.keys.IsActive(m.action) {
			*m.axis += m.sign * step
			moved = true
		}
	}
	if moved {
		c.r.SetCamera(cam)
	}
}
