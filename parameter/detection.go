package parameter

import "time"

// Mesh staging buffers
const (
	// MeshVertexCapacity is the fixed scratch capacity for staged plane
	// meshes. The depth source reuses one allocation across queries;
	// capacity must exceed any realistic fitted plane. Conversions that
	// would overflow are rejected, never truncated silently
	MeshVertexCapacity = 65536

	// MeshIndexCapacity bounds the triangle index buffer (3 per triangle)
	MeshIndexCapacity = 196608
)

// Placement state machine
const (
	// DefaultDwellTime is how long a candidate point must hold still
	// before automatic placement commits it
	DefaultDwellTime = 1500 * time.Millisecond

	// DefaultSpatialTolerance is the camera-space drift radius in meters.
	// Camera-space distance is compared rather than plane centers, which
	// shift when the fitted boundary changes between queries
	DefaultSpatialTolerance = 0.05

	// DefaultCollisionRayLength bounds the obstruction raycast from the
	// camera toward a candidate's world position
	DefaultCollisionRayLength = 10.0
)

// Screen reference
const (
	// ReferencePointX, ReferencePointY is the normalized screen point
	// sampled by automatic detection (screen center)
	ReferencePointX = 0.5
	ReferencePointY = 0.5
)
