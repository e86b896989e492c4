package vmath

import "math"

// AABB is an axis-aligned box stored as min/max corners
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a box that encapsulates nothing
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// AABBFromPoints computes the bounds of a point set
// Returns an empty box for a nil/empty set
func AABBFromPoints(pts []Vec3) AABB {
	b := EmptyAABB()
	for _, p := range pts {
		b.Encapsulate(p)
	}
	return b
}

func (b *AABB) Encapsulate(p Vec3) {
	b.Min = V3Min(b.Min, p)
	b.Max = V3Max(b.Max, p)
}

func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) Center() Vec3 {
	return V3Scale(V3Add(b.Min, b.Max), 0.5)
}

// Translate returns the box shifted by offset
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{Min: V3Add(b.Min, offset), Max: V3Add(b.Max, offset)}
}

// TransformAABB rotates and translates a local box, re-fitting axis-aligned
// bounds around the 8 transformed corners
func TransformAABB(b AABB, pose Pose) AABB {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
	}
	out := EmptyAABB()
	for _, c := range corners {
		out.Encapsulate(pose.TransformPoint(c))
	}
	return out
}

// RayIntersectsAABB tests a ray (origin, unit direction, max length) against
// the box using the slab method. Degenerate direction components are handled
// by the IEEE inf semantics of the division
func RayIntersectsAABB(origin, dir Vec3, maxDist float32, b AABB) bool {
	tMin := float32(0)
	tMax := maxDist

	for i := 0; i < 3; i++ {
		var o, d, lo, hi float32
		switch i {
		case 0:
			o, d, lo, hi = origin.X, dir.X, b.Min.X, b.Max.X
		case 1:
			o, d, lo, hi = origin.Y, dir.Y, b.Min.Y, b.Max.Y
		case 2:
			o, d, lo, hi = origin.Z, dir.Z, b.Min.Z, b.Max.Z
		}
		if Abs(d) < Epsilon {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		inv := 1.0 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = Max(tMin, t1)
		tMax = Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
