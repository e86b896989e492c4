package source

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mrdk/planekit/vmath"
)

// Surface is one planar patch in the scripted scene. Geometry is expressed
// in camera space; ScreenMin/ScreenMax is the normalized screen region that
// resolves to this surface
type Surface struct {
	Kind       PlaneKind
	Center     vmath.Vec3
	Normal     vmath.Vec3
	HalfWidth  float32
	HalfHeight float32
	ScreenMin  vmath.Vec2
	ScreenMax  vmath.Vec2
	Subdiv     int // mesh grid cells per side, 0 means a plain quad
}

// ScriptedSource is a deterministic stand-in for the depth SDK: a fixed set
// of surfaces, optional Gaussian measurement jitter, and scripted failure
// windows. Used by the sandbox binary and the package tests; not safe for
// concurrent use, matching the single-tick driver contract
type ScriptedSource struct {
	surfaces  []Surface
	lastFloor *Surface
	lastHit   *Surface

	available bool
	failCount int

	noise distuv.Normal
}

var _ Source = (*ScriptedSource)(nil)

// NewScriptedSource creates an empty scene. sigma is the per-axis Gaussian
// jitter applied to sampled camera-space points, in meters; zero disables it
func NewScriptedSource(seed uint64, sigma float64) *ScriptedSource {
	return &ScriptedSource{
		available: true,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: sigma,
			Src:   rand.NewSource(seed),
		},
	}
}

// AddSurface appends a surface to the scene and returns its index
func (s *ScriptedSource) AddSurface(surf Surface) int {
	s.surfaces = append(s.surfaces, surf)
	return len(s.surfaces) - 1
}

// SetAvailable toggles the whole sensor; while false every query fails
func (s *ScriptedSource) SetAvailable(ok bool) {
	s.available = ok
}

// FailNext forces the next n plane queries to report NotFound
func (s *ScriptedSource) FailNext(n int) {
	s.failCount = n
}

// SetJitter changes the per-axis Gaussian noise, in meters
func (s *ScriptedSource) SetJitter(sigma float64) {
	s.noise.Sigma = sigma
}

// MoveSurface repositions a surface's camera-space center, simulating sensor
// drift or a moving fit between queries
func (s *ScriptedSource) MoveSurface(idx int, center vmath.Vec3) {
	if idx >= 0 && idx < len(s.surfaces) {
		s.surfaces[idx].Center = center
	}
}

func (s *ScriptedSource) consumeFailure() bool {
	if !s.available {
		return true
	}
	if s.failCount > 0 {
		s.failCount--
		return true
	}
	return false
}

func (s *ScriptedSource) jitter() float32 {
	if s.noise.Sigma == 0 {
		return 0
	}
	return float32(s.noise.Rand())
}

func (s *ScriptedSource) jitterPoint(p vmath.Vec3) vmath.Vec3 {
	return vmath.Vec3{
		X: p.X + s.jitter(),
		Y: p.Y + s.jitter(),
		Z: p.Z + s.jitter(),
	}
}

// FindFloorPlane implements Source. The floor is the first surface of
// KindFloor; observer height is the camera-space distance to its plane
func (s *ScriptedSource) FindFloorPlane() (PlaneData, float32, bool) {
	if s.consumeFailure() {
		return PlaneData{}, 0, false
	}
	for i := range s.surfaces {
		surf := &s.surfaces[i]
		if surf.Kind != KindFloor {
			continue
		}
		s.lastFloor = surf
		data := surf.planeData(s)
		// Height above the plane along its normal
		height := vmath.Abs(vmath.V3Dot(surf.Normal, surf.Center))
		return data, height, true
	}
	return PlaneData{}, 0, false
}

// FindPlaneAtPoint implements Source
func (s *ScriptedSource) FindPlaneAtPoint(pt vmath.Vec2) (PlaneData, bool) {
	if s.consumeFailure() {
		return PlaneData{}, false
	}
	surf := s.surfaceAt(pt)
	if surf == nil {
		return PlaneData{}, false
	}
	s.lastHit = surf
	return surf.planeData(s), true
}

// ConvertLastFloorPlaneToMesh implements Source
func (s *ScriptedSource) ConvertLastFloorPlaneToMesh(buf *MeshBuffers) (int, int, error) {
	return s.convert(s.lastFloor, buf)
}

// ConvertLastHitPlaneToMesh implements Source
func (s *ScriptedSource) ConvertLastHitPlaneToMesh(buf *MeshBuffers) (int, int, error) {
	return s.convert(s.lastHit, buf)
}

func (s *ScriptedSource) convert(surf *Surface, buf *MeshBuffers) (int, int, error) {
	if surf == nil {
		buf.Reset()
		return 0, 0, nil
	}
	verts, indices := surf.tessellate()
	if err := buf.Stage(verts, indices); err != nil {
		return 0, 0, err
	}
	return len(buf.Vertices), len(buf.Indices), nil
}

// CameraSpacePointAt implements Source. The sampled point is the surface
// position under the screen point plus measurement jitter
func (s *ScriptedSource) CameraSpacePointAt(pt vmath.Vec2) (vmath.Vec4, bool) {
	if !s.available {
		return vmath.Vec4{}, false
	}
	surf := s.surfaceAt(pt)
	if surf == nil {
		return vmath.Vec4{}, false
	}
	u, v := surf.basis()
	mid := vmath.Vec2{
		X: (surf.ScreenMin.X + surf.ScreenMax.X) * 0.5,
		Y: (surf.ScreenMin.Y + surf.ScreenMax.Y) * 0.5,
	}
	halfW := (surf.ScreenMax.X - surf.ScreenMin.X) * 0.5
	halfH := (surf.ScreenMax.Y - surf.ScreenMin.Y) * 0.5
	var du, dv float32
	if halfW > 0 {
		du = (pt.X - mid.X) / halfW * surf.HalfWidth
	}
	if halfH > 0 {
		dv = (pt.Y - mid.Y) / halfH * surf.HalfHeight
	}
	p := vmath.V3Add(surf.Center, vmath.V3Add(vmath.V3Scale(u, du), vmath.V3Scale(v, dv)))
	p = s.jitterPoint(p)
	return vmath.Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1}, true
}

func (s *ScriptedSource) surfaceAt(pt vmath.Vec2) *Surface {
	for i := range s.surfaces {
		surf := &s.surfaces[i]
		if pt.X >= surf.ScreenMin.X && pt.X <= surf.ScreenMax.X &&
			pt.Y >= surf.ScreenMin.Y && pt.Y <= surf.ScreenMax.Y {
			return surf
		}
	}
	return nil
}

// basis derives the in-plane axes from the surface normal
func (surf *Surface) basis() (u, v vmath.Vec3) {
	up := vmath.Vec3{Y: 1}
	if vmath.Abs(vmath.V3Dot(surf.Normal, up)) > 0.99 {
		up = vmath.Vec3{X: 1}
	}
	u = vmath.V3Normalize(vmath.V3Cross(up, surf.Normal))
	v = vmath.V3Cross(surf.Normal, u)
	return u, v
}

func (surf *Surface) planeData(s *ScriptedSource) PlaneData {
	u, v := surf.basis()
	corner := func(su, sv float32) vmath.Vec3 {
		offset := vmath.V3Add(
			vmath.V3Scale(u, su*surf.HalfWidth),
			vmath.V3Scale(v, sv*surf.HalfHeight),
		)
		return vmath.V3Add(surf.Center, offset)
	}
	return PlaneData{
		Kind:   surf.Kind,
		Center: s.jitterPoint(surf.Center),
		Normal: surf.Normal,
		Bounds: []vmath.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1),
		},
		Width:  surf.HalfWidth * 2,
		Height: surf.HalfHeight * 2,
	}
}

// tessellate produces a camera-space grid mesh over the surface extents
func (surf *Surface) tessellate() ([]vmath.Vec3, []int32) {
	n := surf.Subdiv
	if n < 1 {
		n = 1
	}
	u, v := surf.basis()
	side := n + 1
	verts := make([]vmath.Vec3, 0, side*side)
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			su := float32(i)/float32(n)*2 - 1
			sv := float32(j)/float32(n)*2 - 1
			offset := vmath.V3Add(
				vmath.V3Scale(u, su*surf.HalfWidth),
				vmath.V3Scale(v, sv*surf.HalfHeight),
			)
			verts = append(verts, vmath.V3Add(surf.Center, offset))
		}
	}
	indices := make([]int32, 0, n*n*6)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a := int32(j*side + i)
			b := a + 1
			c := a + int32(side)
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return verts, indices
}
