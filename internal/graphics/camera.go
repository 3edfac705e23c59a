package graphics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default eye position, looking at the origin with +Y up. Frames a 50×50
// field with unit spacing.
var DefaultEye = mgl32.Vec3{-1, 10, 20}

const (
	defaultExtent = 25 // half-width of the field DefaultEye frames
	minPitch      = -89
	maxPitch      = 89
	minDistance   = 2
)

// Camera orbits a target point. The projection is a symmetric frustum with
// near plane 1, widened horizontally by the aspect ratio.
type Camera struct {
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Yaw      float32 // degrees around +Y, 0 looking down -Z
	Pitch    float32 // degrees above the horizon
	Distance float32

	maxDistance float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		NearPlane: 1,
		FarPlane:  100,
	}
	c.SetViewport(width, height)
	c.lookFrom(DefaultEye, 1)
	return c
}

// SetViewport updates the aspect ratio.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// lookFrom places the camera at eye*scale, orbiting the origin.
func (c *Camera) lookFrom(eye mgl32.Vec3, scale float32) {
	eye = eye.Mul(scale)
	c.Target = mgl32.Vec3{}
	c.Distance = eye.Len()
	c.Pitch = mgl32.RadToDeg(math32.Asin(eye.Y() / c.Distance))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(eye.X(), eye.Z()))
	c.maxDistance = 4 * c.Distance
	c.FarPlane = math32.Max(100, 2*c.maxDistance)
}

// Frame resets the orbit to the default view scaled to a field of the given
// half-width, centred on centre.
func (c *Camera) Frame(centre mgl32.Vec3, halfWidth float32) {
	scale := float32(1)
	if halfWidth > defaultExtent {
		scale = halfWidth / defaultExtent
	}
	c.lookFrom(DefaultEye, scale)
	c.Target = centre
}

// Orbit turns the camera by the given angles in degrees.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = math32.Mod(c.Yaw+dYaw, 360)
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, minPitch, maxPitch)
}

// Zoom scales the distance to the target; factors below 1 move closer.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl32.Clamp(c.Distance*factor, minDistance, c.maxDistance)
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	dir := mgl32.Vec3{
		math32.Cos(pitch) * math32.Sin(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Cos(yaw),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	a := c.AspectRatio
	return mgl32.Frustum(-a, a, -1, 1, c.NearPlane, c.FarPlane)
}
