package config

import "sync"

// RuntimeSettings holds values the host may change while frames are running.
type RuntimeSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 means uncapped
	idleFPS  int // poll rate while the renderer is stopped
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 60,
	idleFPS:  30,
}

// GetFPSLimit returns the frame cap, 0 when uncapped.
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values mean uncapped.
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}
	globalRuntimeSettings.fpsLimit = limit
}

// GetIdleFPS returns the event polling rate used while stopped.
func GetIdleFPS() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.idleFPS
}

// SetIdleFPS sets the polling rate used while stopped, clamped to 1..120.
func SetIdleFPS(fps int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if fps < 1 {
		fps = 1
	}
	if fps > 120 {
		fps = 120
	}
	globalRuntimeSettings.idleFPS = fps
}
