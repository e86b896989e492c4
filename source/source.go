// Package source defines the contract with the depth-camera plane-fitting
// service: plane queries, camera-space sampling, and the shared mesh staging
// buffers. The real SDK adapter and the scripted simulator both implement
// Source; the placement core never talks to a sensor directly.
package source

import (
	"errors"

	"github.com/mrdk/planekit/parameter"
	"github.com/mrdk/planekit/vmath"
)

// PlaneKind classifies a fitted plane
type PlaneKind int

const (
	KindUnknown PlaneKind = iota
	KindFloor
	KindHitHorizontal
	KindHitVertical
)

func (k PlaneKind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindHitHorizontal:
		return "hit_horizontal"
	case KindHitVertical:
		return "hit_vertical"
	default:
		return "unknown"
	}
}

// PlaneData is the parametric result of a plane query. All coordinates are
// camera-relative at the time of the query. The full mesh is not included;
// it is staged separately via the Convert* calls into shared buffers
type PlaneData struct {
	Kind   PlaneKind
	Center vmath.Vec3   // camera-space center of the fitted plane
	Normal vmath.Vec3   // unit normal, camera space
	Bounds []vmath.Vec3 // ordered boundary polygon, camera space
	Width  float32      // extent along the plane's local X, meters
	Height float32      // extent along the plane's local Y, meters
}

// ErrMeshCapacity reports a conversion larger than the fixed staging
// buffers. This is a misconfiguration: capacities in the parameter package
// must exceed any realistic plane mesh
var ErrMeshCapacity = errors.New("source: plane mesh exceeds staging buffer capacity")

// MeshBuffers is the single reused staging allocation for mesh conversions.
// Only one conversion result is valid at a time; callers must copy the
// contents out before issuing the next query
type MeshBuffers struct {
	Vertices []vmath.Vec3
	Indices  []int32

	vertexCap int
	indexCap  int
}

// NewMeshBuffers allocates staging buffers at the configured capacities
func NewMeshBuffers() *MeshBuffers {
	return NewMeshBuffersWithCapacity(parameter.MeshVertexCapacity, parameter.MeshIndexCapacity)
}

// NewMeshBuffersWithCapacity allocates staging buffers with explicit
// capacities, for tests that exercise the overflow path
func NewMeshBuffersWithCapacity(vertexCap, indexCap int) *MeshBuffers {
	return &MeshBuffers{
		Vertices:  make([]vmath.Vec3, 0, vertexCap),
		Indices:   make([]int32, 0, indexCap),
		vertexCap: vertexCap,
		indexCap:  indexCap,
	}
}

// Stage replaces the buffer contents with a converted mesh. Rejects
// conversions that exceed capacity without touching the previous contents
func (b *MeshBuffers) Stage(verts []vmath.Vec3, indices []int32) error {
	if len(verts) > b.vertexCap || len(indices) > b.indexCap {
		return ErrMeshCapacity
	}
	b.Vertices = append(b.Vertices[:0], verts...)
	b.Indices = append(b.Indices[:0], indices...)
	return nil
}

// Reset empties the buffers, keeping the allocation
func (b *MeshBuffers) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// Source is the depth/plane query service. All calls are synchronous and
// complete within the tick budget; failures are reported as ok=false, never
// as panics. Implementations keep the most recent floor and hit matches so
// a later Convert call can produce the full mesh for them
type Source interface {
	// FindFloorPlane fits the distinguished floor plane. Returns the plane,
	// the estimated observer height above it, and whether a plane was found
	FindFloorPlane() (PlaneData, float32, bool)

	// FindPlaneAtPoint fits a plane under a normalized screen point
	FindPlaneAtPoint(pt vmath.Vec2) (PlaneData, bool)

	// ConvertLastFloorPlaneToMesh stages the mesh of the last floor match.
	// Returns staged vertex and index counts; zero counts mean no match
	ConvertLastFloorPlaneToMesh(buf *MeshBuffers) (int, int, error)

	// ConvertLastHitPlaneToMesh stages the mesh of the last hit match
	ConvertLastHitPlaneToMesh(buf *MeshBuffers) (int, int, error)

	// CameraSpacePointAt samples the camera-space coordinate of the depth
	// pixel under a normalized screen point
	CameraSpacePointAt(pt vmath.Vec2) (vmath.Vec4, bool)
}
