package xr

import "gonum.org/v1/gonum/spatial/r3"

// EntityType classifies a world region for hit-test filtering.
type EntityType string

const (
	EntityPoint EntityType = "point"
	EntityPlane EntityType = "plane"
	EntityMesh  EntityType = "mesh"
)

// EntityTypes is a hit-test source's region type filter.
type EntityTypes struct {
	Point bool
	Plane bool
	Mesh  bool
}

// EntityTypesAll matches every region type.
var EntityTypesAll = EntityTypes{Point: true, Plane: true, Mesh: true}

// IsType reports whether the filter admits regions of type ty.
func (t EntityTypes) IsType(ty EntityType) bool {
	switch ty {
	case EntityPoint:
		return t.Point
	case EntityPlane:
		return t.Plane
	case EntityMesh:
		return t.Mesh
	default:
		return false
	}
}

// Triangle is one intersectable face, with vertices in native space.
type Triangle struct {
	First  r3.Vec
	Second r3.Vec
	Third  r3.Vec
}

// Region is a collection of intersectable faces sharing one region type.
type Region struct {
	Type  EntityType
	Faces []Triangle
}

// World is the synthetic geometry a simulated device tests rays against.
type World struct {
	Regions []Region
}

// intersectEpsilon rejects rays parallel to the face and hits behind the
// ray origin.
const intersectEpsilon = 1e-9

// Intersect runs Möller–Trumbore intersection of ray against the
// triangle. On a hit it returns the hit pose: translation at the
// intersection point, rotation aligning +Y with the face normal (flipped
// to oppose the ray).
func (t Triangle) Intersect(ray Ray[Native]) (RigidTransform[ApiSpace, Native], bool) {
	edge1 := t.Second.Sub(t.First)
	edge2 := t.Third.Sub(t.First)

	p := ray.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return RigidTransform[ApiSpace, Native]{}, false
	}
	invDet := 1 / det

	s := ray.Origin.Sub(t.First)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return RigidTransform[ApiSpace, Native]{}, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return RigidTransform[ApiSpace, Native]{}, false
	}

	dist := edge2.Dot(q) * invDet
	if dist < intersectEpsilon {
		return RigidTransform[ApiSpace, Native]{}, false
	}

	point := ray.Origin.Add(ray.Direction.Scale(dist))
	normal := r3.Unit(edge1.Cross(edge2))
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Scale(-1)
	}
	return RigidTransform[ApiSpace, Native]{
		Rotation:    rotationBetween(r3.Vec{Y: 1}, normal),
		Translation: point,
	}, true
}
