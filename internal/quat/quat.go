package quat

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Equals. Canonical orientations are at
// least 90 degrees apart, so anything within this bound is the same pose.
const Epsilon = 1e-6

// Quat is a rotation quaternion. W is the scalar part.
type Quat struct {
	X, Y, Z, W float64
}

// Identity returns the quaternion for "no rotation".
func Identity() Quat {
	return Quat{W: 1}
}

// FromAxisAngle returns the rotation of angle radians about axis.
// The axis does not need to be normalized.
func FromAxisAngle(axis Vec3, angle float64) Quat {
	l := math.Sqrt(axis.Dot(axis))
	if l == 0 {
		return Identity()
	}
	s := math.Sin(angle/2) / l
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(angle / 2)}
}

// FromEuler returns the rotation for intrinsic Euler angles applied in XYZ
// order, the convention used by pointer drags.
func FromEuler(x, y, z float64) Quat {
	c1, s1 := math.Cos(x/2), math.Sin(x/2)
	c2, s2 := math.Cos(y/2), math.Sin(y/2)
	c3, s3 := math.Cos(z/2), math.Sin(z/2)
	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// Mul returns q * o. Applied to a vector, o acts first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Negate returns -q, which encodes the same rotation.
func (q Quat) Negate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
}

func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quat) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length. The zero quaternion becomes
// the identity.
func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return Identity()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Slerp interpolates along the shortest great-circle arc from q to to.
// It returns q exactly at t <= 0 and to exactly at t >= 1.
func (q Quat) Slerp(to Quat, t float64) Quat {
	if t <= 0 {
		return q
	}
	if t >= 1 {
		return to
	}

	target := to
	cosHalf := q.Dot(to)
	if cosHalf < 0 {
		target = to.Negate()
		cosHalf = -cosHalf
	}
	if cosHalf >= 1 {
		return q
	}

	sqrSinHalf := 1 - cosHalf*cosHalf
	if sqrSinHalf <= 1e-12 {
		s := 1 - t
		return Quat{
			X: s*q.X + t*target.X,
			Y: s*q.Y + t*target.Y,
			Z: s*q.Z + t*target.Z,
			W: s*q.W + t*target.W,
		}.Normalize()
	}

	sinHalf := math.Sqrt(sqrSinHalf)
	half := math.Atan2(sinHalf, cosHalf)
	a := math.Sin((1-t)*half) / sinHalf
	b := math.Sin(t*half) / sinHalf
	return Quat{
		X: q.X*a + target.X*b,
		Y: q.Y*a + target.Y*b,
		Z: q.Z*a + target.Z*b,
		W: q.W*a + target.W*b,
	}
}

// Equals reports whether a and b describe the same rotation. q and -q are
// equal.
func Equals(a, b Quat) bool {
	return math.Abs(a.Dot(b)) > 1-Epsilon
}

// Local expresses a world-space orientation relative to a parent whose
// world orientation is parent.
func Local(parent, world Quat) Quat {
	return parent.Conjugate().Mul(world)
}

func (q Quat) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", q.X, q.Y, q.Z, q.W)
}
