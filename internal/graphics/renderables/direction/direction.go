// Package direction draws a compass in the bottom of the view: an arrow
// pointing at grid north (-Z) and the letter of the direction the camera
// looks.
package direction

import (
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"heightgen/internal/graphics"
	"heightgen/internal/graphics/renderer"
	"heightgen/internal/profiling"
)

const (
	ShadersDir = "assets/shaders/direction"
)

var (
	DirectionVertShader = filepath.Join(ShadersDir, "direction.vert")
	DirectionFragShader = filepath.Join(ShadersDir, "direction.frag")
)

// Arrow outline pointing up in clip units: body loop then head loop.
var arrowVertices = []float32{
	-0.01, -0.08,
	0.01, -0.08,
	0.01, -0.02,
	-0.01, -0.02,

	-0.03, -0.02,
	0.03, -0.02,
	0.0, 0.02,
}

// Letter strokes as line-segment pairs.
var letters = map[string][]float32{
	"N": {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, -0.02,
		0.02, -0.02, 0.02, 0.02,
	},
	"E": {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, 0.02,
		-0.02, 0.0, 0.01, 0.0,
		-0.02, -0.02, 0.02, -0.02,
	},
	"S": {
		0.02, 0.02, -0.02, 0.02,
		-0.02, 0.02, -0.02, 0.0,
		-0.02, 0.0, 0.02, 0.0,
		0.02, 0.0, 0.02, -0.02,
		0.02, -0.02, -0.02, -0.02,
	},
	"W": {
		-0.02, 0.02, -0.02, -0.02,
		-0.02, -0.02, -0.01, 0.0,
		-0.01, 0.0, 0.01, -0.02,
		0.01, -0.02, 0.02, 0.0,
		0.02, 0.0, 0.02, 0.02,
	},
}

// Heading returns the compass bearing the camera looks along, in degrees
// clockwise from -Z.
func Heading(yaw float32) float32 {
	h := math32.Mod(-yaw, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// Cardinal names the quarter a heading falls in.
func Cardinal(heading float32) string {
	switch {
	case heading >= 315 || heading < 45:
		return "N"
	case heading < 135:
		return "E"
	case heading < 225:
		return "S"
	default:
		return "W"
	}
}

// NorthRotation is the counter-clockwise screen rotation, in radians, that
// turns the up arrow toward grid north.
func NorthRotation(yaw float32) float32 {
	return mgl32.DegToRad(Heading(yaw))
}

// Direction implements the compass renderable
type Direction struct {
	shader    *graphics.Shader
	vao       uint32
	vbo       uint32
	letterVAO uint32
	letterVBO uint32
	aspect    float32
}

// NewDirection creates a new compass renderable
func NewDirection() *Direction {
	return &Direction{aspect: 1}
}

// Init compiles the shader and allocates the arrow and letter buffers
func (d *Direction) Init() error {
	var err error
	d.shader, err = graphics.NewShader(DirectionVertShader, DirectionFragShader)
	if err != nil {
		return err
	}

	d.vao, d.vbo = lineBuffer()
	gl.BufferData(gl.ARRAY_BUFFER, len(arrowVertices)*4, gl.Ptr(arrowVertices), gl.STATIC_DRAW)
	d.letterVAO, d.letterVBO = lineBuffer()
	return nil
}

func lineBuffer() (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	return vao, vbo
}

// Render draws the arrow and heading letter over the scene
func (d *Direction) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderDirection")()

	yaw := ctx.Camera.Yaw
	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	d.shader.Use()
	d.shader.SetFloat("aspectRatio", d.aspect)
	d.shader.SetVector3("directionColor", 0.8, 0.1, 0.1)

	d.shader.SetFloat("positionX", 0)
	d.shader.SetFloat("positionY", -0.85)
	d.shader.SetFloat("rotation", NorthRotation(yaw))
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.LINE_LOOP, 0, 4)
	gl.DrawArrays(gl.LINE_LOOP, 4, 3)

	strokes := letters[Cardinal(Heading(yaw))]
	d.shader.SetFloat("positionY", -0.72)
	d.shader.SetFloat("rotation", 0)
	gl.BindVertexArray(d.letterVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.letterVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(strokes)*4, gl.Ptr(strokes), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(strokes)/2))
}

// SetViewport keeps the compass round on wide windows
func (d *Direction) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		d.aspect = float32(width) / float32(height)
	}
}

// Dispose cleans up OpenGL resources
func (d *Direction) Dispose() {
	if d.shader != nil {
		d.shader.Delete()
	}
	for _, vao := range []*uint32{&d.vao, &d.letterVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	for _, vbo := range []*uint32{&d.vbo, &d.letterVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
		}
	}
}
