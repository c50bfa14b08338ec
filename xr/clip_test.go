package xr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultClipPlanes(t *testing.T) {
	clip := DefaultClipPlanes()
	assert.Equal(t, DefaultNearClip, clip.Near)
	assert.Equal(t, DefaultFarClip, clip.Far)
}

func TestClipPlanes_Update(t *testing.T) {
	clip := DefaultClipPlanes()
	clip.Update(0.5, 50)
	assert.Equal(t, 0.5, clip.Near)
	assert.Equal(t, 50.0, clip.Far)
}

func TestProjectionFromFOV_SymmetricFrustum(t *testing.T) {
	// GIVEN a symmetric 90° frustum
	fov := FOV{
		Up:    math.Pi / 4,
		Down:  -math.Pi / 4,
		Left:  -math.Pi / 4,
		Right: math.Pi / 4,
	}
	clip := ClipPlanes{Near: 0.1, Far: 100}

	// WHEN the projection is derived
	p := ProjectionFromFOV[Viewer](fov, clip)

	// THEN the focal terms are 1 and the skew terms vanish
	assert.InDelta(t, 1, p.M[0], tol)
	assert.InDelta(t, 1, p.M[5], tol)
	assert.InDelta(t, 0, p.M[8], tol)
	assert.InDelta(t, 0, p.M[9], tol)
	assert.InDelta(t, -1, p.M[11], tol)
	assert.InDelta(t, (clip.Near+clip.Far)/(clip.Near-clip.Far), p.M[10], tol)
	assert.InDelta(t, 2*clip.Near*clip.Far/(clip.Near-clip.Far), p.M[14], tol)
}

func TestProjectionFromFOV_AsymmetricFrustum_HasSkew(t *testing.T) {
	fov := FOV{
		Up:    math.Pi / 4,
		Down:  -math.Pi / 6,
		Left:  -math.Pi / 3,
		Right: math.Pi / 4,
	}
	p := ProjectionFromFOV[LeftEye](fov, DefaultClipPlanes())
	assert.NotZero(t, p.M[8])
	assert.NotZero(t, p.M[9])
}
