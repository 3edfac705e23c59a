package viewer

import (
	"strings"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heightgen/internal/config"
	"heightgen/internal/graphics"
	"heightgen/internal/input"
	"heightgen/internal/terrain"
)

// restoreViewSettings puts the toggles the controls touch back afterwards.
func restoreViewSettings(t *testing.T) {
	colour, smooth, speed := config.GetHeightColour(), config.GetSmoothing(), config.GetOrbitSpeed()
	t.Cleanup(func() {
		config.SetHeightColour(colour)
		config.SetSmoothing(smooth)
		config.SetOrbitSpeed(speed)
	})
}

func press(im *input.InputManager, key glfw.Key) {
	im.HandleKeyEvent(key, glfw.Press)
}

// TestHandleInputRegenerate verifies R bumps the seed and asks for a new field.
func TestHandleInputRegenerate(t *testing.T) {
	restoreViewSettings(t)
	im := input.NewInputManager()
	cam := graphics.NewCamera(500, 500)
	run := config.DefaultRunConfig()

	press(im, glfw.KeyR)
	c := HandleInput(im, cam, &run, 0.016)
	assert.True(t, c.Regenerate)
	assert.False(t, c.ResetView)
	assert.Equal(t, int64(2), run.Seed)

	// Held key does not regenerate again.
	im.PostUpdate()
	c = HandleInput(im, cam, &run, 0.016)
	assert.False(t, c.Regenerate)
	assert.Equal(t, int64(2), run.Seed)
}

// TestHandleInputNextAlgorithm verifies Tab cycles the algorithm and resets size and smoothing.
func TestHandleInputNextAlgorithm(t *testing.T) {
	restoreViewSettings(t)
	im := input.NewInputManager()
	cam := graphics.NewCamera(500, 500)
	run := config.DefaultRunConfig()
	run.Size = 50
	off := false
	run.Smooth = &off

	press(im, glfw.KeyTab)
	c := HandleInput(im, cam, &run, 0.016)
	assert.True(t, c.Regenerate)
	assert.True(t, c.ResetView)
	assert.Equal(t, string(terrain.AlgorithmDiamondSquare), run.Algorithm)
	assert.Equal(t, config.DefaultDiamondSize, run.GridSize())
	assert.Nil(t, run.Smooth)
	assert.True(t, config.GetSmoothing())
	require.NoError(t, run.Validate())
}

// TestHandleInputToggleSmoothing verifies S flips the effective smoothing of the run.
func TestHandleInputToggleSmoothing(t *testing.T) {
	restoreViewSettings(t)
	im := input.NewInputManager()
	cam := graphics.NewCamera(500, 500)
	run := config.DefaultRunConfig()
	require.Nil(t, run.Options().Smooth)

	press(im, glfw.KeyS)
	c := HandleInput(im, cam, &run, 0.016)
	assert.True(t, c.Regenerate)
	assert.NotNil(t, run.Options().Smooth)
	assert.True(t, config.GetSmoothing())

	im.HandleKeyEvent(glfw.KeyS, glfw.Release)
	im.PostUpdate()
	press(im, glfw.KeyS)
	HandleInput(im, cam, &run, 0.016)
	assert.Nil(t, run.Options().Smooth)
	assert.False(t, config.GetSmoothing())
}

// TestHandleInputToggles verifies the one-shot keys raise their requests.
func TestHandleInputToggles(t *testing.T) {
	restoreViewSettings(t)
	im := input.NewInputManager()
	cam := graphics.NewCamera(500, 500)
	run := config.DefaultRunConfig()
	colour := config.GetHeightColour()

	for _, k := range []glfw.Key{glfw.KeyF, glfw.KeyP, glfw.KeyE, glfw.KeyEscape, glfw.KeyHome} {
		press(im, k)
	}
	c := HandleInput(im, cam, &run, 0.016)
	assert.Equal(t, !colour, config.GetHeightColour())
	assert.True(t, c.PrintProfile)
	assert.True(t, c.Export)
	assert.True(t, c.Quit)
	assert.True(t, c.ResetView)
	assert.False(t, c.Regenerate)
}

// TestHandleInputOrbitAndZoom verifies held keys move the camera in proportion to dt.
func TestHandleInputOrbitAndZoom(t *testing.T) {
	restoreViewSettings(t)
	config.SetOrbitSpeed(90)
	im := input.NewInputManager()
	cam := graphics.NewCamera(500, 500)
	run := config.DefaultRunConfig()
	yaw, pitch, dist := cam.Yaw, cam.Pitch, cam.Distance

	press(im, glfw.KeyRight)
	press(im, glfw.KeyUp)
	HandleInput(im, cam, &run, 0.5)
	assert.InDelta(t, yaw+45, cam.Yaw, 1e-3)
	assert.InDelta(t, pitch+45, cam.Pitch, 1e-3)
	assert.InDelta(t, dist, cam.Distance, 1e-6)

	im.HandleKeyEvent(glfw.KeyRight, glfw.Release)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	press(im, glfw.KeyEqual)
	HandleInput(im, cam, &run, 1)
	assert.InDelta(t, dist/2, cam.Distance, 1e-3)
}

// TestHelpListsBindings verifies the help text names keys and actions.
func TestHelpListsBindings(t *testing.T) {
	help := Help(input.NewInputManager())
	assert.Contains(t, help, "R ")
	assert.Contains(t, help, "regenerate")
	assert.Contains(t, help, "Esc")
	assert.Contains(t, help, "=/KP+")
	assert.Equal(t, int(input.ActionCount)-1, strings.Count(help, "\n"))
}
