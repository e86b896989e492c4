package plane

import (
	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

// stubSource is a fully scripted source for exercising exact state machine
// transitions, unlike the jittering scripted simulator
type stubSource struct {
	planeData source.PlaneData
	planeOK   bool

	point   vmath.Vec4
	pointOK bool

	floorData   source.PlaneData
	floorHeight float32
	floorOK     bool

	meshVerts  []vmath.Vec3
	meshIdx    []int32
	convertErr error

	planeQueries int
	conversions  int
}

var _ source.Source = (*stubSource)(nil)

func (s *stubSource) FindFloorPlane() (source.PlaneData, float32, bool) {
	return s.floorData, s.floorHeight, s.floorOK
}

func (s *stubSource) FindPlaneAtPoint(vmath.Vec2) (source.PlaneData, bool) {
	s.planeQueries++
	return s.planeData, s.planeOK
}

func (s *stubSource) ConvertLastFloorPlaneToMesh(buf *source.MeshBuffers) (int, int, error) {
	return s.convert(buf)
}

func (s *stubSource) ConvertLastHitPlaneToMesh(buf *source.MeshBuffers) (int, int, error) {
	return s.convert(buf)
}

func (s *stubSource) convert(buf *source.MeshBuffers) (int, int, error) {
	s.conversions++
	if s.convertErr != nil {
		return 0, 0, s.convertErr
	}
	if err := buf.Stage(s.meshVerts, s.meshIdx); err != nil {
		return 0, 0, err
	}
	return len(buf.Vertices), len(buf.Indices), nil
}

func (s *stubSource) CameraSpacePointAt(vmath.Vec2) (vmath.Vec4, bool) {
	return s.point, s.pointOK
}

// quadAround builds a unit quad centered on c in the XY plane
func quadAround(c vmath.Vec3) ([]vmath.Vec3, []int32) {
	return []vmath.Vec3{
		{X: c.X - 0.5, Y: c.Y - 0.5, Z: c.Z},
		{X: c.X + 0.5, Y: c.Y - 0.5, Z: c.Z},
		{X: c.X + 0.5, Y: c.Y + 0.5, Z: c.Z},
		{X: c.X - 0.5, Y: c.Y + 0.5, Z: c.Z},
	}, []int32{0, 1, 2, 0, 2, 3}
}

// hitStub returns a stub that successfully detects a vertical hit plane
// centered at the camera-space point c
func hitStub(c vmath.Vec3) *stubSource {
	verts, idx := quadAround(c)
	return &stubSource{
		planeData: source.PlaneData{
			Kind:   source.KindHitVertical,
			Center: c,
			Normal: vmath.Vec3{Z: -1},
		},
		planeOK:   true,
		point:     vmath.Vec4{X: c.X, Y: c.Y, Z: c.Z, W: 1},
		pointOK:   true,
		meshVerts: verts,
		meshIdx:   idx,
	}
}
