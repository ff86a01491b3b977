package scene

import "math"

// Scalar is the numeric type used by scene math.
//
// float32 matches the single-precision FPU on the target MCUs.
type Scalar = float32

// TwoPi is one full turn in radians.
const TwoPi = Scalar(2 * math.Pi)

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// RotateX rotates v about the X axis by rad radians.
func (v Vec3) RotateX(rad Scalar) Vec3 {
	c, s := cosSin(rad)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY rotates v about the Y axis by rad radians.
func (v Vec3) RotateY(rad Scalar) Vec3 {
	c, s := cosSin(rad)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ rotates v about the Z axis by rad radians.
func (v Vec3) RotateZ(rad Scalar) Vec3 {
	c, s := cosSin(rad)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// Rotate applies Euler angles r in X, Y, Z order.
func (v Vec3) Rotate(r Vec3) Vec3 {
	return v.RotateX(r.X).RotateY(r.Y).RotateZ(r.Z)
}

func cosSin(rad Scalar) (c, s Scalar) {
	sn, cs := math.Sincos(float64(rad))
	return Scalar(cs), Scalar(sn)
}
