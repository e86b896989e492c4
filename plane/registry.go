package plane

import (
	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

// Flags is display and physics state applied to committed entities. Owned
// explicitly by the registry and passed to entities as arguments, never read
// from ambient globals
type Flags struct {
	Physics          bool
	VisiblePrimary   bool
	VisibleSecondary bool
	Material         string // override material tag, empty for the default
}

// Candidate is a detection awaiting commitment: the matched plane data, the
// camera-space reference coordinate sampled at query time, and the camera
// pose at query time. The recorded pose is used at commit so the plane
// renders where it was detected, not where the camera has drifted to
type Candidate struct {
	Data     source.PlaneData
	RefPoint vmath.Vec3
	Pose     vmath.Pose
}

// WorldCenter is the candidate's committed world position
func (c Candidate) WorldCenter() vmath.Vec3 {
	return c.Pose.TransformPoint(c.Data.Center)
}

// Registry owns the lifecycle of placed planes: one floor entity updated in
// place, and an ordered append-only list of hit entities with strictly
// increasing indices. Not safe for concurrent use; all mutation happens on
// the tick driver's goroutine
type Registry struct {
	buf *source.MeshBuffers

	floor      *Entity
	hits       []*Entity
	hitCounter int

	flags           Flags
	estimatedHeight float32
}

// NewRegistry creates a registry staging through buf; nil allocates buffers
// at the default capacities
func NewRegistry(buf *source.MeshBuffers) *Registry {
	if buf == nil {
		buf = source.NewMeshBuffers()
	}
	return &Registry{buf: buf}
}

// SetFlags replaces the flag state and reapplies it to existing entities
func (r *Registry) SetFlags(flags Flags) {
	r.flags = flags
	apply := func(e *Entity) {
		e.SetPhysics(flags.Physics)
		e.SetVisible(flags.VisiblePrimary, flags.VisibleSecondary)
	}
	if r.floor != nil {
		apply(r.floor)
	}
	for _, e := range r.hits {
		apply(e)
	}
}

func (r *Registry) Flags() Flags { return r.flags }

// DetectFloor queries src for the floor plane and commits it: lazily creates
// the floor entity on first success, updates it in place afterwards. The
// estimated observer height is recorded as a side output. Returns false for
// NotFound or degenerate geometry; the error is non-nil only for staging
// capacity overflow
func (r *Registry) DetectFloor(src source.Source, pose vmath.Pose) (bool, error) {
	if src == nil {
		return false, nil
	}
	data, height, ok := src.FindFloorPlane()
	if !ok {
		return false, nil
	}
	nv, nt, err := src.ConvertLastFloorPlaneToMesh(r.buf)
	if err != nil {
		return false, err
	}

	var mesh Mesh
	TransformToLocal(&mesh, r.buf.Vertices[:nv], r.buf.Indices[:nt], data.Center, pose.Rotation)
	if mesh.IsEmpty() {
		return false, nil
	}

	entPose := vmath.Pose{
		Position: pose.TransformPoint(data.Center),
		Rotation: pose.Rotation,
	}
	if r.floor == nil {
		r.floor = newEntity(source.KindFloor, FloorIndex)
		r.floor.Create(mesh, entPose, r.flags.Material)
		r.floor.SetPhysics(r.flags.Physics)
		r.floor.SetVisible(r.flags.VisiblePrimary, r.flags.VisibleSecondary)
	} else {
		r.floor.UpdateInPlace(mesh, entPose)
	}
	r.estimatedHeight = height
	return true, nil
}

// PlaceCandidate converts the most recent hit match to mesh form and commits
// a new hit entity. The transform uses the candidate's recorded pose and
// center, not the current camera pose. Returns false for an empty mesh; the
// hit counter is untouched on failure
func (r *Registry) PlaceCandidate(src source.Source, cand Candidate) (bool, error) {
	if src == nil {
		return false, nil
	}
	nv, nt, err := src.ConvertLastHitPlaneToMesh(r.buf)
	if err != nil {
		return false, err
	}

	var mesh Mesh
	TransformToLocal(&mesh, r.buf.Vertices[:nv], r.buf.Indices[:nt], cand.Data.Center, cand.Pose.Rotation)
	if mesh.IsEmpty() {
		return false, nil
	}

	e := newEntity(cand.Data.Kind, r.hitCounter+1)
	e.Create(mesh, vmath.Pose{
		Position: cand.WorldCenter(),
		Rotation: cand.Pose.Rotation,
	}, r.flags.Material)
	e.SetPhysics(r.flags.Physics)
	e.SetVisible(r.flags.VisiblePrimary, r.flags.VisibleSecondary)

	r.hits = append(r.hits, e)
	r.hitCounter++
	return true, nil
}

// Floor returns the floor entity, nil before the first detection
func (r *Registry) Floor() *Entity { return r.floor }

// HasFloor reports whether a floor plane has been committed
func (r *Registry) HasFloor() bool { return r.floor != nil }

// EstimatedObserverHeight is the capture-point-to-floor distance from the
// most recent successful floor detection
func (r *Registry) EstimatedObserverHeight() float32 { return r.estimatedHeight }

// HitPlane returns the hit entity with the given 1-based index, nil if
// absent. Indices are assigned in detection order and never reused
func (r *Registry) HitPlane(index int) *Entity {
	i := index - 1
	if i < 0 || i >= len(r.hits) {
		return nil
	}
	return r.hits[i]
}

// HitCount is the number of committed hit planes
func (r *Registry) HitCount() int { return len(r.hits) }

// Hits returns the hit entities in insertion order. The slice is a copy;
// the entities are shared
func (r *Registry) Hits() []*Entity {
	out := make([]*Entity, len(r.hits))
	copy(out, r.hits)
	return out
}

// DestroyAll releases every entity, including the floor, and resets the hit
// counter so the next successful detection is assigned index 1 again
func (r *Registry) DestroyAll() {
	if r.floor != nil {
		r.floor.destroy()
		r.floor = nil
	}
	for _, e := range r.hits {
		e.destroy()
	}
	r.hits = nil
	r.hitCounter = 0
	r.estimatedHeight = 0
}

// RaycastAny tests a ray against the world bounds of committed entities with
// physics enabled. Used by the collision-avoidance gate
func (r *Registry) RaycastAny(origin, dir vmath.Vec3, maxDist float32) bool {
	test := func(e *Entity) bool {
		return e != nil && e.Created() && e.PhysicsEnabled() &&
			vmath.RayIntersectsAABB(origin, dir, maxDist, e.WorldBounds())
	}
	if test(r.floor) {
		return true
	}
	for _, e := range r.hits {
		if test(e) {
			return true
		}
	}
	return false
}
