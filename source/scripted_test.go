package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrdk/planekit/vmath"
)

func testScene() *ScriptedSource {
	src := NewScriptedSource(1, 0)
	src.AddSurface(Surface{
		Kind:       KindFloor,
		Center:     vmath.Vec3{Y: -1.6, Z: 2},
		Normal:     vmath.Vec3{Y: 1},
		HalfWidth:  2,
		HalfHeight: 2,
		ScreenMin:  vmath.Vec2{X: 0, Y: 0.7},
		ScreenMax:  vmath.Vec2{X: 1, Y: 1},
		Subdiv:     2,
	})
	src.AddSurface(Surface{
		Kind:       KindHitVertical,
		Center:     vmath.Vec3{Z: 3},
		Normal:     vmath.Vec3{Z: -1},
		HalfWidth:  1,
		HalfHeight: 1,
		ScreenMin:  vmath.Vec2{X: 0.3, Y: 0.3},
		ScreenMax:  vmath.Vec2{X: 0.7, Y: 0.7},
		Subdiv:     1,
	})
	return src
}

func TestFindFloorPlane(t *testing.T) {
	src := testScene()

	data, height, ok := src.FindFloorPlane()
	require.True(t, ok)
	assert.Equal(t, KindFloor, data.Kind)
	assert.InDelta(t, 1.6, height, 1e-5)
	assert.Len(t, data.Bounds, 4)

	buf := NewMeshBuffers()
	nv, nt, err := src.ConvertLastFloorPlaneToMesh(buf)
	require.NoError(t, err)
	assert.Equal(t, 9, nv)  // 3x3 grid for subdiv 2
	assert.Equal(t, 24, nt) // 8 triangles
	assert.Len(t, buf.Vertices, nv)
	assert.Len(t, buf.Indices, nt)
}

func TestFindPlaneAtPoint(t *testing.T) {
	src := testScene()

	data, ok := src.FindPlaneAtPoint(vmath.Vec2{X: 0.5, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, KindHitVertical, data.Kind)

	_, ok = src.FindPlaneAtPoint(vmath.Vec2{X: 0.1, Y: 0.1})
	assert.False(t, ok, "query outside any surface region should miss")
}

func TestConvertWithoutMatchIsEmpty(t *testing.T) {
	src := testScene()
	buf := NewMeshBuffers()

	nv, nt, err := src.ConvertLastHitPlaneToMesh(buf)
	require.NoError(t, err)
	assert.Zero(t, nv)
	assert.Zero(t, nt)
}

func TestScriptedFailureWindow(t *testing.T) {
	src := testScene()
	src.FailNext(2)

	_, _, ok := src.FindFloorPlane()
	assert.False(t, ok)
	_, ok = src.FindPlaneAtPoint(vmath.Vec2{X: 0.5, Y: 0.5})
	assert.False(t, ok)

	_, _, ok = src.FindFloorPlane()
	assert.True(t, ok, "failure window should expire")
}

func TestSensorUnavailable(t *testing.T) {
	src := testScene()
	src.SetAvailable(false)

	_, _, ok := src.FindFloorPlane()
	assert.False(t, ok)
	_, ptOK := src.CameraSpacePointAt(vmath.Vec2{X: 0.5, Y: 0.5})
	assert.False(t, ptOK)

	src.SetAvailable(true)
	_, _, ok = src.FindFloorPlane()
	assert.True(t, ok)
}

func TestCameraSpacePointDeterministic(t *testing.T) {
	src := testScene()

	a, ok := src.CameraSpacePointAt(vmath.Vec2{X: 0.5, Y: 0.5})
	require.True(t, ok)
	b, ok := src.CameraSpacePointAt(vmath.Vec2{X: 0.5, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, a, b, "zero-sigma sampling must be stable")
	assert.InDelta(t, 1.0, a.W, 1e-6)

	// Center of the hit surface's screen region maps to its center point
	assert.True(t, vmath.V3ApproxEqual(a.XYZ(), vmath.Vec3{Z: 3}, 1e-5))
}

func TestMeshCapacityExceeded(t *testing.T) {
	src := testScene()
	_, ok := src.FindPlaneAtPoint(vmath.Vec2{X: 0.5, Y: 0.5})
	require.True(t, ok)

	buf := NewMeshBuffersWithCapacity(2, 6)
	_, _, err := src.ConvertLastHitPlaneToMesh(buf)
	assert.ErrorIs(t, err, ErrMeshCapacity)
}

func TestStagePreservesContentsOnOverflow(t *testing.T) {
	buf := NewMeshBuffersWithCapacity(4, 6)
	require.NoError(t, buf.Stage([]vmath.Vec3{{X: 1}}, []int32{0, 0, 0}))

	err := buf.Stage(make([]vmath.Vec3, 5), make([]int32, 3))
	assert.ErrorIs(t, err, ErrMeshCapacity)
	assert.Len(t, buf.Vertices, 1, "failed stage must not clobber previous result")
}

func TestJitterBounded(t *testing.T) {
	src := testScene()
	src.noise.Sigma = 0.01

	p, ok := src.CameraSpacePointAt(vmath.Vec2{X: 0.5, Y: 0.5})
	require.True(t, ok)
	assert.InDelta(t, 0, p.X, 0.1)
	assert.InDelta(t, 3, p.Z, 0.1)
}
