package renderer

import (
	"heightgen/internal/graphics"
	"heightgen/internal/heightfield"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the read-only state a frame draws. Version changes whenever
// Field is replaced, so renderables can cache derived GPU data.
type Scene struct {
	Field        *heightfield.Field
	Version      uint64
	HeightColour bool
}

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	Scene  Scene
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
