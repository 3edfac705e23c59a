package wireframe

import (
	"path/filepath"

	"heightgen/internal/graphics"
	renderer "heightgen/internal/graphics/renderer"
	"heightgen/internal/mesh"
	"heightgen/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ShadersDir = "assets/shaders/wireframe"
)

var (
	WireframeVertShader = filepath.Join(ShadersDir, "wireframe.vert")
	WireframeFragShader = filepath.Join(ShadersDir, "wireframe.frag")
)

// Wireframe draws the heightfield as two outlined triangles per grid quad
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32

	// what is currently uploaded
	version     uint64
	coloured    bool
	uploaded    bool
	vertexCount int32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init compiles the shader and sets up the vertex layout
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader(WireframeVertShader, WireframeFragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)

	stride := int32(mesh.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	return nil
}

// Render draws the current scene field, re-uploading it when it changed
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	scene := ctx.Scene
	if scene.Field == nil {
		return
	}
	if !w.uploaded || scene.Version != w.version || scene.HeightColour != w.coloured {
		func() {
			defer profiling.Track("renderer.uploadWireframe")()
			w.upload(scene)
		}()
	}
	if w.vertexCount == 0 {
		return
	}

	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])
	model := mgl32.Ident4()
	w.shader.SetMatrix4("model", &model[0])

	gl.BindVertexArray(w.vao)
	gl.LineWidth(1.0)
	gl.DrawArrays(gl.LINES, 0, w.vertexCount)
}

func (w *Wireframe) upload(scene renderer.Scene) {
	verts := mesh.Lines(scene.Field, scene.HeightColour)
	gl.BindVertexArray(w.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	w.vertexCount = int32(len(verts) / mesh.FloatsPerVertex)
	w.version = scene.Version
	w.coloured = scene.HeightColour
	w.uploaded = true
}

// SetViewport is a no-op; the projection comes from the camera
func (w *Wireframe) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	if w.shader != nil {
		w.shader.Delete()
	}
}
