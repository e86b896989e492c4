package plane

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrdk/planekit/vmath"
)

func TestTransformToLocal(t *testing.T) {
	center := vmath.Vec3{X: 1, Y: 2, Z: 3}
	verts := []vmath.Vec3{
		{X: 1, Y: 2, Z: 3},
		{X: 2, Y: 2, Z: 3},
		{X: 1, Y: 3, Z: 4},
	}
	indices := []int32{0, 1, 2}
	rot := vmath.QFromAngleAxis(float32(math.Pi/2), vmath.Vec3{Y: 1})

	var dst Mesh
	TransformToLocal(&dst, verts, indices, center, rot)

	require.Len(t, dst.Vertices, 3)
	for i, v := range verts {
		want := vmath.QRotate(rot, vmath.V3Sub(v, center))
		assert.True(t, vmath.V3ApproxEqual(dst.Vertices[i], want, 1e-6),
			"vertex %d: got %v want %v", i, dst.Vertices[i], want)
	}
	// Center maps to origin
	assert.True(t, vmath.V3ApproxEqual(dst.Vertices[0], vmath.Vec3{}, 1e-6))
	// Topology is copied bitwise
	assert.Equal(t, indices, dst.Indices)
}

func TestTransformToLocalZeroCounts(t *testing.T) {
	var dst Mesh
	dst.Vertices = []vmath.Vec3{{X: 9}}
	dst.Indices = []int32{7}

	TransformToLocal(&dst, nil, nil, vmath.Vec3{}, vmath.QIdentity)
	assert.True(t, dst.IsEmpty(), "zero-count source must yield an empty mesh")

	TransformToLocal(&dst, []vmath.Vec3{{X: 1}}, nil, vmath.Vec3{}, vmath.QIdentity)
	assert.True(t, dst.IsEmpty(), "missing indices must yield an empty mesh")
}

func TestTransformToLocalDoesNotAliasSource(t *testing.T) {
	verts := []vmath.Vec3{{X: 1}, {X: 2}, {X: 3}}
	indices := []int32{0, 1, 2}

	var dst Mesh
	TransformToLocal(&dst, verts, indices, vmath.Vec3{}, vmath.QIdentity)

	// Simulate the staging buffer being overwritten by the next query
	verts[0] = vmath.Vec3{X: 99}
	indices[0] = 42

	assert.InDelta(t, 1, dst.Vertices[0].X, 1e-6)
	assert.Equal(t, int32(0), dst.Indices[0])
}

func TestMeshBounds(t *testing.T) {
	m := Mesh{
		Vertices: []vmath.Vec3{{X: -1, Y: 0, Z: 2}, {X: 3, Y: -2, Z: 0}},
		Indices:  []int32{0, 1, 0},
	}
	b := m.Bounds()
	assert.True(t, vmath.V3ApproxEqual(b.Min, vmath.Vec3{X: -1, Y: -2, Z: 0}, 0))
	assert.True(t, vmath.V3ApproxEqual(b.Max, vmath.Vec3{X: 3, Y: 0, Z: 2}, 0))
}
