package xr

import "math"

// Default clip plane distances, in meters.
const (
	DefaultNearClip = 0.1
	DefaultFarClip  = 1000.0
)

// ClipPlanes holds the near/far clip distances used to derive projection
// matrices from a field-of-view specification.
type ClipPlanes struct {
	Near float64
	Far  float64
}

// DefaultClipPlanes returns the default near/far pair.
func DefaultClipPlanes() ClipPlanes {
	return ClipPlanes{Near: DefaultNearClip, Far: DefaultFarClip}
}

// Update replaces both clip distances.
func (c *ClipPlanes) Update(near, far float64) {
	c.Near = near
	c.Far = far
}

// FOV is a field of view expressed as half-angles from the view axis, in
// radians. Left and Down are typically negative.
type FOV struct {
	Up    float64
	Down  float64
	Left  float64
	Right float64
}

// ProjectionFromFOV derives a perspective projection matrix from a field
// of view and the current clip planes.
func ProjectionFromFOV[Eye Space](fov FOV, clip ClipPlanes) Projection[Eye, Display] {
	tanL := math.Tan(fov.Left)
	tanR := math.Tan(fov.Right)
	tanU := math.Tan(fov.Up)
	tanD := math.Tan(fov.Down)
	near, far := clip.Near, clip.Far

	var p Projection[Eye, Display]
	p.M[0] = 2 / (tanR - tanL)
	p.M[5] = 2 / (tanU - tanD)
	p.M[8] = (tanR + tanL) / (tanR - tanL)
	p.M[9] = (tanU + tanD) / (tanU - tanD)
	p.M[10] = (near + far) / (near - far)
	p.M[11] = -1
	p.M[14] = 2 * near * far / (near - far)
	return p
}
