package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"heightgen/internal/graphics/renderables/direction"
	"heightgen/internal/graphics/renderables/wireframe"
	"heightgen/internal/graphics/renderer"
)

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "terrain-view", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, err
	}

	// Disable V-Sync; the viewer paces frames itself
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return window, nil
}

func setupRenderer(window *glfw.Window) (*renderer.Renderer, error) {
	// The framebuffer can be larger than the window on HiDPI displays
	width, height := window.GetFramebufferSize()
	return renderer.NewRenderer(width, height, wireframe.NewWireframe(), direction.NewDirection())
}
