package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestPressAndReleaseEdges(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	assert.True(t, m.IsActive(ActionToggleRunning))
	assert.True(t, m.JustPressed(ActionToggleRunning))

	m.PostUpdate()
	assert.True(t, m.IsActive(ActionToggleRunning))
	assert.False(t, m.JustPressed(ActionToggleRunning))

	m.HandleKeyEvent(glfw.KeySpace, glfw.Repeat)
	assert.False(t, m.JustPressed(ActionToggleRunning), "repeat is not a new press")

	m.HandleKeyEvent(glfw.KeySpace, glfw.Release)
	assert.False(t, m.IsActive(ActionToggleRunning))
	assert.True(t, m.JustReleased(ActionToggleRunning))
}

func TestSeveralKeysOneAction(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	assert.True(t, m.IsActive(ActionCameraLeft))
	m.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	assert.True(t, m.IsActive(ActionCameraLeft))
}

func TestUnbindAndUnknownKeys(t *testing.T) {
	m := NewManager()
	m.Unbind(glfw.KeyEscape)
	m.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	assert.False(t, m.IsActive(ActionQuit))

	m.HandleKeyEvent(glfw.KeyF12, glfw.Press)
	for a := range ActionCount {
		assert.False(t, m.IsActive(a))
	}

	m.Bind(glfw.KeyQ, ActionQuit)
	m.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	assert.True(t, m.JustPressed(ActionQuit))
}

func TestOutOfRangeAction(t *testing.T) {
	m := NewManager()
	m.Bind(glfw.KeyZ, ActionCount)
	m.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	assert.False(t, m.IsActive(ActionCount))
	assert.False(t, m.JustPressed(-1))
}
