package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// AxisAngle returns the right-handed rotation by rad radians about axis.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, rad float64) Mat3 {
	a := axis.Normalize()
	if a == (Vec3{}) {
		return Mat3Identity()
	}
	c, s := math.Cos(rad), math.Sin(rad)
	t := 1 - c
	x, y, z := a[0], a[1], a[2]
	return Mat3Rows(
		Vec3{t*x*x + c, t*x*y - s*z, t*x*z + s*y},
		Vec3{t*x*y + s*z, t*y*y + c, t*y*z - s*x},
		Vec3{t*x*z - s*y, t*y*z + s*x, t*z*z + c},
	)
}

func RotX(rad float64) Mat3 { return AxisAngle(Vec3{1, 0, 0}, rad) }
func RotY(rad float64) Mat3 { return AxisAngle(Vec3{0, 1, 0}, rad) }
func RotZ(rad float64) Mat3 { return AxisAngle(Vec3{0, 0, 1}, rad) }

// EulerXYZ rotates about X, then Y, then Z, by the components of deg in degrees.
func EulerXYZ(deg Vec3) Mat3 {
	return RotZ(Deg2Rad(deg[2])).Mul(RotY(Deg2Rad(deg[1]))).Mul(RotX(Deg2Rad(deg[0])))
}

// OrbitView returns a view rotation looking down at the origin: yaw around Y,
// then pitch around X. Angles in degrees.
func OrbitView(yawDeg, pitchDeg float64) Mat3 {
	return RotX(Deg2Rad(pitchDeg)).Mul(RotY(Deg2Rad(yawDeg)))
}
