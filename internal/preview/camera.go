package preview

import (
	gomath "math"

	"github.com/Faultbox/eztree/pkg/math"
	"github.com/Faultbox/eztree/pkg/tree"
)

// OrbitCamera looks at a center point from spherical coordinates around it.
type OrbitCamera struct {
	Center math.Vec3

	Distance float64
	Pitch    float64 // Elevation above the horizon, radians
	Yaw      float64 // Rotation around the Y axis, radians

	// Half extent of the orthographic view volume.
	Radius float64
}

// NewOrbitCamera returns a camera at yaw/pitch degrees. Pitch is clamped
// short of the poles, where the view matrix is undefined.
func NewOrbitCamera(yawDeg, pitchDeg float64) *OrbitCamera {
	return &OrbitCamera{
		Distance: 2,
		Pitch:    math.Radians(math.Clamp(pitchDeg, -maxPitch, maxPitch)),
		Yaw:      math.Radians(yawDeg),
		Radius:   1,
	}
}

// Direction returns the unit vector from the center towards the camera.
func (c *OrbitCamera) Direction() math.Vec3 {
	return sphericalDirection(c.Yaw, c.Pitch)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	return c.Center.Add(c.Direction().Scale(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.Up)
}

// ProjectionMatrix returns an orthographic projection that keeps a sphere
// of Radius around the center in view, with a 5% margin.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	r := c.Radius * 1.05
	return math.Ortho(-r, r, -r, r, c.Distance-r, c.Distance+r)
}

// FitToBounds centers the camera on b and backs it off far enough to see
// the whole box.
func (c *OrbitCamera) FitToBounds(b tree.Bounds) {
	c.Center = b.Center()
	c.Radius = b.Size().Length() / 2
	if c.Radius == 0 {
		c.Radius = 1
	}
	c.Distance = c.Radius * 2
}

// SunDirection converts an azimuth around the Y axis and an elevation above
// the horizon, both in degrees, to a unit vector pointing towards the sun.
func SunDirection(azimuth, elevation float64) math.Vec3 {
	return sphericalDirection(math.Radians(azimuth), math.Radians(elevation))
}

func sphericalDirection(yaw, pitch float64) math.Vec3 {
	return math.Vec3{
		X: gomath.Cos(pitch) * gomath.Sin(yaw),
		Y: gomath.Sin(pitch),
		Z: gomath.Cos(pitch) * gomath.Cos(yaw),
	}
}
