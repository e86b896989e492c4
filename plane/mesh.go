// Package plane implements the plane acquisition and placement core: the
// mesh space transform, committed plane entities, the floor/hit registry,
// and the dwell-gated placement detector.
package plane

import (
	"github.com/mrdk/planekit/vmath"
)

// Mesh is plane geometry owned by an entity. Vertices are relative to the
// plane center and rotated into world-axis orientation, never camera axes;
// the registry can reposition a plane without re-deriving geometry
type Mesh struct {
	Vertices []vmath.Vec3
	Indices  []int32
}

// IsEmpty reports degenerate geometry, treated everywhere as "not found"
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0 || len(m.Indices) == 0
}

// Bounds computes the axis-aligned bounds of the local vertices
func (m *Mesh) Bounds() vmath.AABB {
	return vmath.AABBFromPoints(m.Vertices)
}

// release drops the geometry, keeping nothing alive for the GC
func (m *Mesh) release() {
	m.Vertices = nil
	m.Indices = nil
}

// TransformToLocal rebuilds dst from a camera-space source mesh: each vertex
// becomes rot * (v - center), triangle indices are copied unchanged. The
// source slices may alias reused staging buffers; dst owns fresh storage.
// Zero-count input produces an empty dst and copies nothing
func TransformToLocal(dst *Mesh, verts []vmath.Vec3, indices []int32, center vmath.Vec3, rot vmath.Quaternion) {
	dst.Vertices = dst.Vertices[:0]
	dst.Indices = dst.Indices[:0]
	if len(verts) == 0 || len(indices) == 0 {
		return
	}

	if cap(dst.Vertices) < len(verts) {
		dst.Vertices = make([]vmath.Vec3, 0, len(verts))
	}
	for _, v := range verts {
		dst.Vertices = append(dst.Vertices, vmath.QRotate(rot, vmath.V3Sub(v, center)))
	}

	if cap(dst.Indices) < len(indices) {
		dst.Indices = make([]int32, len(indices))
	} else {
		dst.Indices = dst.Indices[:len(indices)]
	}
	copy(dst.Indices, indices)
}
