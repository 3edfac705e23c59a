package config

import "sync"

// ViewSettings holds viewer configuration that can change while running
type ViewSettings struct {
	mu           sync.RWMutex
	fpsLimit     int
	orbitSpeed   float32 // degrees per second
	heightColour bool
	smoothing    bool
}

var globalViewSettings = &ViewSettings{
	fpsLimit:     60,
	orbitSpeed:   45,
	heightColour: true,
	smoothing:    false,
}

// GetFPSLimit returns the frame cap, 0 meaning uncapped
func GetFPSLimit() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(fps int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()

	// 0 disables the cap; otherwise keep it sane
	if fps < 0 {
		fps = 0
	}
	if fps > 0 && fps < 10 {
		fps = 10
	}
	if fps > 240 {
		fps = 240
	}

	globalViewSettings.fpsLimit = fps
}

// GetOrbitSpeed returns the camera orbit speed in degrees per second
func GetOrbitSpeed() float32 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.orbitSpeed
}

// SetOrbitSpeed sets the orbit speed
func SetOrbitSpeed(speed float32) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()

	if speed < 5 {
		speed = 5
	}
	if speed > 360 {
		speed = 360
	}

	globalViewSettings.orbitSpeed = speed
}

// GetHeightColour returns whether lines are coloured by height
func GetHeightColour() bool {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.heightColour
}

// SetHeightColour sets height colouring
func SetHeightColour(enabled bool) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.heightColour = enabled
}

// GetSmoothing returns whether the smoothing post-pass runs after generation
func GetSmoothing() bool {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.smoothing
}

// SetSmoothing sets the smoothing post-pass
func SetSmoothing(enabled bool) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.smoothing = enabled
}
