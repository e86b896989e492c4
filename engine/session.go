// Package engine drives the plane detection core: session lifecycle, the
// per-tick dispatch for the configured detection mode, the pause flag, and
// configuration loading. One session owns one registry and one detector and
// must be driven from a single goroutine.
package engine

import (
	"time"

	"go.uber.org/zap"

	"github.com/mrdk/planekit/plane"
	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

// Session is the explicit handle for a detection run. Created with
// NewSession, released with Close; Close destroys every committed entity
type Session struct {
	cfg Config
	src source.Source
	log *zap.Logger

	reg *plane.Registry
	det *plane.Detector

	paused bool
	closed bool
}

// NewSession validates cfg and builds the registry and detector. src may be
// nil (every detection reports false until a source exists); log may be nil
func NewSession(cfg Config, src source.Source, log *zap.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	reg := plane.NewRegistry(nil)
	reg.SetFlags(plane.Flags{
		Physics:          cfg.Physics,
		VisiblePrimary:   cfg.VisiblePrimary,
		VisibleSecondary: cfg.VisibleSecondary,
		Material:         cfg.OverrideMaterial,
	})

	params := plane.DefaultParams()
	params.DwellTime = cfg.DwellTime
	params.Tolerance = cfg.SpatialTolerance
	params.ReferencePoint = vmath.Vec2{X: cfg.ReferenceX, Y: cfg.ReferenceY}
	params.AvoidCollisions = cfg.AvoidCollisions
	params.BlockUnknown = cfg.BlockUnknown

	return &Session{
		cfg:    cfg,
		src:    src,
		log:    log,
		reg:    reg,
		det:    plane.NewDetector(params, reg),
		paused: cfg.StartPaused,
	}, nil
}

// Close releases all committed entities. Further calls on the session are
// no-ops
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.det.Reset()
	s.reg.DestroyAll()
	s.closed = true
	s.log.Debug("session closed")
}

// Tick runs one scheduler step at the given camera pose. Pause is level
// triggered: a paused tick skips dispatch entirely but keeps candidate
// tracking state, so resuming continues the same dwell period
func (s *Session) Tick(pose vmath.Pose, dt time.Duration) {
	if s.closed || s.paused {
		return
	}
	if s.cfg.AutoDetectFloor && !s.reg.HasFloor() {
		s.DetectFloorPlane(true, pose)
	}
	if s.cfg.Mode != ModeAutomatic {
		return
	}

	placed, err := s.det.Tick(s.src, pose, dt)
	if err != nil {
		s.log.Error("hit plane mesh conversion failed", zap.Error(err))
		return
	}
	if placed {
		idx := s.reg.HitCount()
		e := s.reg.HitPlane(idx)
		s.log.Info("hit plane committed",
			zap.Int("index", idx),
			zap.String("kind", e.Kind().String()),
		)
	}
}

// DetectFloorPlane queries for the floor and creates or refreshes the floor
// entity. auto marks invocations from the tick driver; explicit calls work
// even while detection is paused
func (s *Session) DetectFloorPlane(auto bool, pose vmath.Pose) bool {
	if s.closed {
		return false
	}
	ok, err := s.reg.DetectFloor(s.src, pose)
	if err != nil {
		s.log.Error("floor mesh conversion failed", zap.Error(err))
		return false
	}
	if ok && !auto {
		s.log.Info("floor plane committed",
			zap.Float32("observer_height", s.reg.EstimatedObserverHeight()))
	}
	return ok
}

// DetectPlaneAtHit is the single-shot manual path at an arbitrary screen
// point
func (s *Session) DetectPlaneAtHit(pose vmath.Pose, pt vmath.Vec2) bool {
	if s.closed {
		return false
	}
	placed, err := s.det.DetectAtPoint(s.src, pose, pt)
	if err != nil {
		s.log.Error("hit plane mesh conversion failed", zap.Error(err))
		return false
	}
	if placed {
		s.log.Info("hit plane committed", zap.Int("index", s.reg.HitCount()))
	}
	return placed
}

// DestroyAllPlanes clears the registry and resets the hit counter. Any
// tracked candidate is abandoned
func (s *Session) DestroyAllPlanes() {
	if s.closed {
		return
	}
	s.det.Reset()
	s.reg.DestroyAll()
	s.log.Debug("all planes destroyed")
}

// HitPlane returns the committed hit entity with 1-based index i, nil if
// absent
func (s *Session) HitPlane(i int) *plane.Entity { return s.reg.HitPlane(i) }

// Floor returns the floor entity, nil before the first floor detection
func (s *Session) Floor() *plane.Entity { return s.reg.Floor() }

// HasDetectedFloor reports whether a floor plane has been committed
func (s *Session) HasDetectedFloor() bool { return s.reg.HasFloor() }

// EstimatedObserverHeight is the floor-detection height side output
func (s *Session) EstimatedObserverHeight() float32 { return s.reg.EstimatedObserverHeight() }

// HitCount is the number of committed hit planes
func (s *Session) HitCount() int { return s.reg.HitCount() }

// Tracking reports whether the automatic detector currently holds a candidate
func (s *Session) Tracking() bool { return s.det.Tracking() }

// Dwell is the accumulated hold time of the current candidate
func (s *Session) Dwell() time.Duration { return s.det.Dwell() }

// SetPaused sets the level-triggered pause flag
func (s *Session) SetPaused(paused bool) { s.paused = paused }

// IsPaused reports the pause flag
func (s *Session) IsPaused() bool { return s.paused }

// SetPhysics toggles colliders on all current and future entities
func (s *Session) SetPhysics(enabled bool) {
	s.cfg.Physics = enabled
	s.applyFlags()
}

// SetVisibility toggles the two display targets on all current and future
// entities
func (s *Session) SetVisibility(primary, secondary bool) {
	s.cfg.VisiblePrimary = primary
	s.cfg.VisibleSecondary = secondary
	s.applyFlags()
}

func (s *Session) applyFlags() {
	s.reg.SetFlags(plane.Flags{
		Physics:          s.cfg.Physics,
		VisiblePrimary:   s.cfg.VisiblePrimary,
		VisibleSecondary: s.cfg.VisibleSecondary,
		Material:         s.cfg.OverrideMaterial,
	})
}

// Config returns the session configuration as currently applied
func (s *Session) Config() Config { return s.cfg }
