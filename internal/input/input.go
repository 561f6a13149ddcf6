// Package input maps window keys to the actions of the demo host and keeps
// per-frame edge state for them.
package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical host action, not a physical key.
type Action int

const (
	ActionToggleRunning Action = iota
	ActionQuit
	ActionCameraLeft
	ActionCameraRight
	ActionCameraUp
	ActionCameraDown
	ActionCameraIn
	ActionCameraOut
	ActionReload
	ActionCount // sentinel for array sizing
)

// Manager tracks which actions are held and which changed this frame.
// Events may arrive from glfw callbacks; reads happen on the frame loop.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	current      [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewManager returns a manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.Bind(glfw.KeySpace, ActionToggleRunning)
	m.Bind(glfw.KeyEscape, ActionQuit)
	m.Bind(glfw.KeyLeft, ActionCameraLeft)
	m.Bind(glfw.KeyA, ActionCameraLeft)
	m.Bind(glfw.KeyRight, ActionCameraRight)
	m.Bind(glfw.KeyD, ActionCameraRight)
	m.Bind(glfw.KeyUp, ActionCameraUp)
	m.Bind(glfw.KeyDown, ActionCameraDown)
	m.Bind(glfw.KeyW, ActionCameraIn)
	m.Bind(glfw.KeyS, ActionCameraOut)
	m.Bind(glfw.KeyR, ActionReload)

	return m
}

// Bind adds action to key. A key may drive several actions and an action
// may have several keys.
func (m *Manager) Bind(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// Unbind removes every action bound to key.
func (m *Manager) Unbind(key glfw.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keyToActions, key)
}

// HandleKeyEvent records a key transition. Repeats count as held.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if pressed && !m.current[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.current[act] {
			m.justReleased[act] = true
		}
		m.current[act] = pressed
	}
}

// SetKeyCallback routes the window's key events to the manager.
func (m *Manager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears the edge flags. Call it once per frame after the
// actions have been read.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
}

// IsActive reports whether action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current[action]
}

// JustPressed reports whether action went down since the last PostUpdate.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether action went up since the last PostUpdate.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}
