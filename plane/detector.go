package plane

import (
	"time"

	"github.com/mrdk/planekit/parameter"
	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

// Params tunes the placement state machine
type Params struct {
	// DwellTime is how long the tracked point must hold within Tolerance
	// before a commit is attempted. Accumulated from per-tick dt, so pausing
	// the driver preserves progress
	DwellTime time.Duration

	// Tolerance is the camera-space Euclidean drift radius in meters.
	// Camera-space distance is compared rather than plane centers, which
	// shift when the fitted boundary changes between queries
	Tolerance float32

	// ReferencePoint is the normalized screen point sampled each tick in
	// automatic mode, typically screen center
	ReferencePoint vmath.Vec2

	// AvoidCollisions casts a ray from the camera toward the candidate and
	// vetoes placement when an existing collider obstructs it
	AvoidCollisions bool

	// BlockUnknown vetoes commitment of planes the source cannot classify
	BlockUnknown bool

	// CollisionRayLength bounds the obstruction ray
	CollisionRayLength float32
}

// DefaultParams returns the tuning from the parameter package
func DefaultParams() Params {
	return Params{
		DwellTime:          parameter.DefaultDwellTime,
		Tolerance:          parameter.DefaultSpatialTolerance,
		ReferencePoint:     vmath.Vec2{X: parameter.ReferencePointX, Y: parameter.ReferencePointY},
		CollisionRayLength: parameter.DefaultCollisionRayLength,
	}
}

// Detector is the placement state machine. Two states: idle (no candidate)
// and tracking (candidate held, dwell accumulating). Naive per-tick
// placement would flicker as the aim crosses surface edges; requiring a
// sustained dwell within a spatial tolerance filters transient detections.
// Single-goroutine only, driven once per tick
type Detector struct {
	params Params
	reg    *Registry

	tracking bool
	cand     Candidate
	dwell    time.Duration
}

// NewDetector creates a detector committing into reg
func NewDetector(params Params, reg *Registry) *Detector {
	return &Detector{params: params, reg: reg}
}

// Params returns the current tuning
func (d *Detector) Params() Params { return d.params }

// SetParams replaces the tuning. An in-flight candidate is kept; the new
// tolerance and dwell threshold apply from the next tick
func (d *Detector) SetParams(p Params) { d.params = p }

// Tracking reports whether a candidate is currently held
func (d *Detector) Tracking() bool { return d.tracking }

// Dwell is the accumulated hold time of the current candidate
func (d *Detector) Dwell() time.Duration { return d.dwell }

// Reset abandons any tracked candidate
func (d *Detector) Reset() {
	d.tracking = false
	d.cand = Candidate{}
	d.dwell = 0
}

// DetectAtPoint is the single-shot manual path: one query, immediate commit
// on success. No tracking state is touched. The commit uses the current
// camera pose; the error is non-nil only for staging capacity overflow
func (d *Detector) DetectAtPoint(src source.Source, pose vmath.Pose, pt vmath.Vec2) (bool, error) {
	if src == nil {
		return false, nil
	}
	data, ok := src.FindPlaneAtPoint(pt)
	if !ok {
		return false, nil
	}
	return d.reg.PlaceCandidate(src, Candidate{
		Data:     data,
		RefPoint: data.Center,
		Pose:     pose,
	})
}

// Tick advances the automatic state machine by dt. Returns true when a plane
// was committed this tick. All query failures are silent: they cost at most
// this tick's progress and never corrupt state
func (d *Detector) Tick(src source.Source, pose vmath.Pose, dt time.Duration) (bool, error) {
	if src == nil {
		return false, nil
	}
	if !d.tracking {
		d.acquire(src, pose)
		return false, nil
	}

	sample, ok := src.CameraSpacePointAt(d.params.ReferencePoint)
	if !ok {
		// Sensor hiccup: skip the tick, keep the candidate and its dwell
		return false, nil
	}
	if vmath.V3Dist(sample.XYZ(), d.cand.RefPoint) > d.params.Tolerance {
		// Drifted out of tolerance: abandon and retry from idle next tick
		d.Reset()
		return false, nil
	}

	d.dwell += dt
	if d.dwell <= d.params.DwellTime {
		return false, nil
	}

	// Stable long enough. The state machine returns to idle whatever the
	// gates or the registry decide
	cand := d.cand
	d.Reset()

	if d.params.BlockUnknown && cand.Data.Kind == source.KindUnknown {
		return false, nil
	}
	if d.params.AvoidCollisions && d.obstructed(cand, pose) {
		return false, nil
	}
	return d.reg.PlaceCandidate(src, cand)
}

// acquire tries to start tracking a candidate under the reference point
func (d *Detector) acquire(src source.Source, pose vmath.Pose) {
	data, ok := src.FindPlaneAtPoint(d.params.ReferencePoint)
	if !ok {
		return
	}
	ref, ok := src.CameraSpacePointAt(d.params.ReferencePoint)
	if !ok {
		return
	}
	d.cand = Candidate{Data: data, RefPoint: ref.XYZ(), Pose: pose}
	d.dwell = 0
	d.tracking = true
}

// obstructed casts from the current camera position toward the candidate's
// world center against committed colliders. The ray stops short of the
// target so a plane already at the destination does not block itself
func (d *Detector) obstructed(cand Candidate, pose vmath.Pose) bool {
	target := cand.WorldCenter()
	dist := vmath.V3Dist(pose.Position, target)
	if dist <= vmath.Epsilon {
		return false
	}
	dir := vmath.V3Scale(vmath.V3Sub(target, pose.Position), 1/dist)
	reach := vmath.Min(dist-0.05, d.params.CollisionRayLength)
	if reach <= 0 {
		return false
	}
	return d.reg.RaycastAny(pose.Position, dir, reach)
}
