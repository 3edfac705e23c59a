package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a viewer command, independent of the key that triggers it
type Action int

const (
	ActionRegenerate Action = iota
	ActionNextAlgorithm
	ActionToggleSmoothing
	ActionToggleColour
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionResetView
	ActionPrintProfile
	ActionExport
	ActionQuit
	ActionMouseLeft
	ActionCount
)

// InputManager maps keys and mouse buttons to viewer actions and tracks
// per-frame press and release edges.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
	haveCursor       bool
	dragX, dragY     float64
}

// NewInputManager returns a manager with the viewer's default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyR, ActionRegenerate)
	im.BindKey(glfw.KeyTab, ActionNextAlgorithm)
	im.BindKey(glfw.KeyS, ActionToggleSmoothing)
	im.BindKey(glfw.KeyF, ActionToggleColour)
	im.BindKey(glfw.KeyLeft, ActionOrbitLeft)
	im.BindKey(glfw.KeyRight, ActionOrbitRight)
	im.BindKey(glfw.KeyUp, ActionOrbitUp)
	im.BindKey(glfw.KeyDown, ActionOrbitDown)
	im.BindKey(glfw.KeyEqual, ActionZoomIn)
	im.BindKey(glfw.KeyKPAdd, ActionZoomIn)
	im.BindKey(glfw.KeyMinus, ActionZoomOut)
	im.BindKey(glfw.KeyKPSubtract, ActionZoomOut)
	im.BindKey(glfw.KeyHome, ActionResetView)
	im.BindKey(glfw.KeyP, ActionPrintProfile)
	im.BindKey(glfw.KeyE, ActionExport)
	im.BindKey(glfw.KeyEscape, ActionQuit)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionMouseLeft)

	return im
}

// String names the action for help output
func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

var actionNames = [ActionCount]string{
	ActionRegenerate:      "regenerate",
	ActionNextAlgorithm:   "next algorithm",
	ActionToggleSmoothing: "toggle smoothing",
	ActionToggleColour:    "toggle height colour",
	ActionOrbitLeft:       "orbit left",
	ActionOrbitRight:      "orbit right",
	ActionOrbitUp:         "orbit up",
	ActionOrbitDown:       "orbit down",
	ActionZoomIn:          "zoom in",
	ActionZoomOut:         "zoom out",
	ActionResetView:       "reset view",
	ActionPrintProfile:    "print profile",
	ActionExport:          "export snapshot",
	ActionQuit:            "quit",
	ActionMouseLeft:       "drag to orbit",
}

// Bindings lists the keys bound to each action, for help output
func (im *InputManager) Bindings() map[Action][]glfw.Key {
	im.mu.RLock()
	defer im.mu.RUnlock()

	out := make(map[Action][]glfw.Key)
	for key, actions := range im.keyToActions {
		for _, a := range actions {
			out[a] = append(out[a], key)
		}
	}
	return out
}

// BindKey adds an action to a key. Several keys may share one action.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
	im.mu.Unlock()
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key glfw.Key) {
	im.mu.Lock()
	delete(im.keyToActions, key)
	im.mu.Unlock()
}

// BindMouseButton adds an action to a mouse button
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
	im.mu.Unlock()
}

func (a Action) valid() bool { return a >= 0 && a < ActionCount }

// HandleKeyEvent feeds a key event into the action state. Repeats count as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent feeds a mouse button event into the action state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

// HandleCursorPos accumulates cursor movement while any mouse action is held.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.haveCursor && im.currentState[ActionMouseLeft] {
		im.dragX += x - im.cursorX
		im.dragY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.haveCursor = true
}

// Drag returns the cursor movement accumulated this frame while dragging
func (im *InputManager) Drag() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.dragX, im.dragY
}

// apply updates held state and edge flags. Callers hold mu.
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// Attach installs key, mouse button and cursor callbacks on the window
func (im *InputManager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		im.HandleCursorPos(x, y)
	})
}

// PostUpdate clears per-frame edges and drag. Call once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.justPressed = [ActionCount]bool{}
	im.justReleased = [ActionCount]bool{}
	im.dragX, im.dragY = 0, 0
}

// IsActive reports whether the action is held
func (im *InputManager) IsActive(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed reports whether the action went down during this frame
func (im *InputManager) JustPressed(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased reports whether the action went up during this frame
func (im *InputManager) JustReleased(action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}
