package vmath

// Pose is a rigid transform: the capturing camera's position and
// orientation in world space at query time
type Pose struct {
	Position Vec3
	Rotation Quaternion
}

// TransformPoint maps a camera-space point into world space
func (p Pose) TransformPoint(v Vec3) Vec3 {
	return V3Add(p.Position, QRotate(p.Rotation, v))
}

// TransformDirection rotates a camera-space direction into world axes
func (p Pose) TransformDirection(v Vec3) Vec3 {
	return QRotate(p.Rotation, v)
}

// InverseTransformPoint maps a world-space point back into camera space
func (p Pose) InverseTransformPoint(v Vec3) Vec3 {
	return QRotate(QInverse(p.Rotation), V3Sub(v, p.Position))
}
