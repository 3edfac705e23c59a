package viewer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"heightgen/internal/config"
	"heightgen/internal/graphics"
	"heightgen/internal/input"
	"heightgen/internal/terrain"
)

const (
	dragDegreesPerPixel = 0.25
	zoomPerSecond       = 2 // distance factor per second of holding zoom
)

// Controls are the one-shot requests raised by a frame's input.
type Controls struct {
	Regenerate   bool
	ResetView    bool
	PrintProfile bool
	Export       bool
	Quit         bool
}

// HandleInput applies held camera actions to cam and edits run for the
// regeneration keys. It does not touch GL.
func HandleInput(im *input.InputManager, cam *graphics.Camera, run *config.RunConfig, dt float64) Controls {
	var c Controls

	step := config.GetOrbitSpeed() * float32(dt)
	var dYaw, dPitch float32
	if im.IsActive(input.ActionOrbitLeft) {
		dYaw -= step
	}
	if im.IsActive(input.ActionOrbitRight) {
		dYaw += step
	}
	if im.IsActive(input.ActionOrbitUp) {
		dPitch += step
	}
	if im.IsActive(input.ActionOrbitDown) {
		dPitch -= step
	}
	dx, dy := im.Drag()
	dYaw -= float32(dx * dragDegreesPerPixel)
	dPitch += float32(dy * dragDegreesPerPixel)
	if dYaw != 0 || dPitch != 0 {
		cam.Orbit(dYaw, dPitch)
	}

	if im.IsActive(input.ActionZoomIn) {
		cam.Zoom(float32(math.Pow(zoomPerSecond, -dt)))
	}
	if im.IsActive(input.ActionZoomOut) {
		cam.Zoom(float32(math.Pow(zoomPerSecond, dt)))
	}

	if im.JustPressed(input.ActionRegenerate) {
		run.Seed++
		c.Regenerate = true
	}
	if im.JustPressed(input.ActionNextAlgorithm) {
		run.Algorithm = string(terrain.Algorithm(run.Algorithm).Next())
		// Let the size follow the algorithm; diamond-square needs 2^k+1.
		run.Size = 0
		run.Smooth = nil
		config.SetSmoothing(run.Options().Smooth != nil)
		c.Regenerate = true
		c.ResetView = true
	}
	if im.JustPressed(input.ActionToggleSmoothing) {
		smooth := run.Options().Smooth == nil
		run.Smooth = &smooth
		config.SetSmoothing(smooth)
		c.Regenerate = true
	}
	if im.JustPressed(input.ActionToggleColour) {
		config.SetHeightColour(!config.GetHeightColour())
	}

	c.ResetView = c.ResetView || im.JustPressed(input.ActionResetView)
	c.PrintProfile = im.JustPressed(input.ActionPrintProfile)
	c.Export = im.JustPressed(input.ActionExport)
	c.Quit = im.JustPressed(input.ActionQuit)
	return c
}

// Help lists the key bindings, one action per line.
func Help(im *input.InputManager) string {
	bindings := im.Bindings()
	actions := make([]input.Action, 0, len(bindings))
	for a := range bindings {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	var b strings.Builder
	for _, a := range actions {
		names := make([]string, 0, len(bindings[a]))
		for _, k := range bindings[a] {
			names = append(names, keyName(k))
		}
		sort.Strings(names)
		fmt.Fprintf(&b, "%-12s %s\n", strings.Join(names, "/"), a)
	}
	return b.String()
}

var specialKeys = map[glfw.Key]string{
	glfw.KeyTab:        "Tab",
	glfw.KeyEscape:     "Esc",
	glfw.KeyLeft:       "Left",
	glfw.KeyRight:      "Right",
	glfw.KeyUp:         "Up",
	glfw.KeyDown:       "Down",
	glfw.KeyHome:       "Home",
	glfw.KeyEqual:      "=",
	glfw.KeyMinus:      "-",
	glfw.KeyKPAdd:      "KP+",
	glfw.KeyKPSubtract: "KP-",
}

// keyName names printable keys by their character without a GLFW context.
func keyName(k glfw.Key) string {
	if name, ok := specialKeys[k]; ok {
		return name
	}
	if k >= glfw.KeyA && k <= glfw.KeyZ {
		return string(rune('A' + int(k-glfw.KeyA)))
	}
	return fmt.Sprintf("key%d", int(k))
}
