package xr

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// RigidTransform is a rotation followed by a translation (no scale or
// shear), mapping points in the Src frame to points in the Dst frame.
// Rotation must be a unit quaternion; the zero value is NOT a valid
// transform, use Identity.
type RigidTransform[Src, Dst Space] struct {
	Rotation    r3.Rotation
	Translation r3.Vec
}

// identityRotation is the unit quaternion with zero rotation angle.
var identityRotation = r3.Rotation(quat.Number{Real: 1})

// Identity returns the identity transform between two frames.
func Identity[Src, Dst Space]() RigidTransform[Src, Dst] {
	return RigidTransform[Src, Dst]{Rotation: identityRotation}
}

// NewRigidTransform builds a transform from a unit rotation and a translation.
func NewRigidTransform[Src, Dst Space](rotation r3.Rotation, translation r3.Vec) RigidTransform[Src, Dst] {
	return RigidTransform[Src, Dst]{Rotation: rotation, Translation: translation}
}

// Translation returns a pure-translation transform.
func Translation[Src, Dst Space](v r3.Vec) RigidTransform[Src, Dst] {
	return RigidTransform[Src, Dst]{Rotation: identityRotation, Translation: v}
}

// Compose chains first (A→B) with second (B→C) into a single A→C
// transform. Chaining across mismatched frames does not compile.
func Compose[A, B, C Space](first RigidTransform[A, B], second RigidTransform[B, C]) RigidTransform[A, C] {
	return RigidTransform[A, C]{
		Rotation:    r3.Rotation(quat.Mul(quat.Number(second.Rotation), quat.Number(first.Rotation))),
		Translation: second.Rotation.Rotate(first.Translation).Add(second.Translation),
	}
}

// Inverse returns the transform mapping Dst back to Src.
func (t RigidTransform[Src, Dst]) Inverse() RigidTransform[Dst, Src] {
	inv := r3.Rotation(quat.Conj(quat.Number(t.Rotation)))
	return RigidTransform[Dst, Src]{
		Rotation:    inv,
		Translation: inv.Rotate(t.Translation).Scale(-1),
	}
}

// TransformPoint maps a point expressed in Src into Dst.
func (t RigidTransform[Src, Dst]) TransformPoint(p r3.Vec) r3.Vec {
	return t.Rotation.Rotate(p).Add(t.Translation)
}

// RotateVector maps a direction expressed in Src into Dst. Directions are
// unaffected by the translation component.
func (t RigidTransform[Src, Dst]) RotateVector(v r3.Vec) r3.Vec {
	return t.Rotation.Rotate(v)
}

// CastTransform re-tags a transform's frames without altering the numbers.
// Callers must guarantee the new tags are physically equivalent to the old
// ones; this is a trust boundary, not a runtime check.
func CastTransform[NewSrc, NewDst, Src, Dst Space](t RigidTransform[Src, Dst]) RigidTransform[NewSrc, NewDst] {
	return RigidTransform[NewSrc, NewDst]{Rotation: t.Rotation, Translation: t.Translation}
}

// Projection is a general 4×4 mapping from Src to Dst, stored column-major.
// Unlike RigidTransform it may include perspective and scale; it is used
// for eye→display projection.
type Projection[Src, Dst Space] struct {
	M [16]float64
}

// IdentityProjection returns the identity 4×4 projection.
func IdentityProjection[Src, Dst Space]() Projection[Src, Dst] {
	var p Projection[Src, Dst]
	p.M[0], p.M[5], p.M[10], p.M[15] = 1, 1, 1, 1
	return p
}

// CastProjection re-tags a projection's frames without altering the
// numbers. Same trust boundary as CastTransform.
func CastProjection[NewSrc, NewDst, Src, Dst Space](p Projection[Src, Dst]) Projection[NewSrc, NewDst] {
	return Projection[NewSrc, NewDst]{M: p.M}
}

// rotationBetween returns the unit rotation taking unit vector a onto unit
// vector b.
func rotationBetween(a, b r3.Vec) r3.Rotation {
	const eps = 1e-9
	d := a.Dot(b)
	switch {
	case d > 1-eps:
		return identityRotation
	case d < -1+eps:
		// Antiparallel: rotate half a turn about any axis orthogonal to a.
		axis := a.Cross(r3.Vec{X: 1})
		if r3.Norm(axis) < eps {
			axis = a.Cross(r3.Vec{Y: 1})
		}
		return r3.NewRotation(math.Pi, r3.Unit(axis))
	default:
		axis := a.Cross(b)
		q := quat.Number{Real: 1 + d, Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
		return r3.Rotation(quat.Scale(1/quat.Abs(q), q))
	}
}
