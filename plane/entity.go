package plane

import (
	"github.com/google/uuid"

	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

// FloorIndex is the index reserved for the distinguished floor entity.
// Hit planes are numbered from 1
const FloorIndex = 0

// Entity is one committed plane. Its world pose is fixed at commit time to
// the camera pose that produced the detection; geometry is local, relative
// to the plane center in world orientation
type Entity struct {
	id    uuid.UUID
	kind  source.PlaneKind
	index int

	pose        vmath.Pose
	mesh        Mesh
	localBounds vmath.AABB
	material    string

	collider         bool
	visiblePrimary   bool
	visibleSecondary bool
	created          bool
}

func newEntity(kind source.PlaneKind, index int) *Entity {
	return &Entity{
		id:    uuid.New(),
		kind:  kind,
		index: index,
	}
}

// Create commits geometry for the first time. Returns false without side
// effects if the entity already holds committed geometry; the floor path
// uses UpdateInPlace for refreshes
func (e *Entity) Create(mesh Mesh, pose vmath.Pose, material string) bool {
	if e.created {
		return false
	}
	e.mesh = mesh
	e.localBounds = mesh.Bounds()
	e.pose = pose
	e.material = material
	e.created = true
	return true
}

// UpdateInPlace replaces geometry and pose while preserving identity, so
// external holders of the entity reference stay valid. Floor only
func (e *Entity) UpdateInPlace(mesh Mesh, pose vmath.Pose) bool {
	if !e.created {
		return false
	}
	e.mesh = mesh
	e.localBounds = mesh.Bounds()
	e.pose = pose
	return true
}

// SetPhysics toggles the collision participation flag. Idempotent
func (e *Entity) SetPhysics(enabled bool) {
	e.collider = enabled
}

// SetVisible toggles rendering flags independently per display target.
// Idempotent
func (e *Entity) SetVisible(primary, secondary bool) {
	e.visiblePrimary = primary
	e.visibleSecondary = secondary
}

// destroy releases owned geometry. The entity stays addressable but reports
// created=false afterwards
func (e *Entity) destroy() {
	e.mesh.release()
	e.localBounds = vmath.EmptyAABB()
	e.created = false
}

func (e *Entity) ID() uuid.UUID            { return e.id }
func (e *Entity) Kind() source.PlaneKind   { return e.kind }
func (e *Entity) Index() int               { return e.index }
func (e *Entity) Pose() vmath.Pose         { return e.pose }
func (e *Entity) Material() string         { return e.material }
func (e *Entity) Created() bool            { return e.created }
func (e *Entity) PhysicsEnabled() bool     { return e.collider }
func (e *Entity) VisibleInPrimary() bool   { return e.visiblePrimary }
func (e *Entity) VisibleInSecondary() bool { return e.visibleSecondary }

// Mesh exposes the local geometry. Callers must not mutate it
func (e *Entity) Mesh() *Mesh { return &e.mesh }

// LocalBounds is the mesh AABB around the plane center
func (e *Entity) LocalBounds() vmath.AABB { return e.localBounds }

// WorldBounds re-fits the local bounds under the entity's world pose
func (e *Entity) WorldBounds() vmath.AABB {
	return vmath.TransformAABB(e.localBounds, e.pose)
}
