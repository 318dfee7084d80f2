// Package quat provides the vector and quaternion math used by the puzzle:
// composition, conversion from Euler angles, interpolation, equality up to
// sign and snapping to one of the 24 canonical cube orientations.
package quat

import (
	"fmt"
	"math"
)

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector along the axis.
func (a Axis) Unit() Vec3 {
	var v Vec3
	v.Set(a, 1)
	return v
}

// Vec2 is a 2D point or delta, used for normalized pointer positions.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Vec3 is a 3D point or direction.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Round rounds every component to the nearest integer value.
func (v Vec3) Round() Vec3 {
	return Vec3{X: math.Round(v.X), Y: math.Round(v.Y), Z: math.Round(v.Z)}
}

// Grid returns the components rounded to integers.
func (v Vec3) Grid() [3]int {
	r := v.Round()
	return [3]int{int(r.X), int(r.Y), int(r.Z)}
}

// Get returns the component along axis a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// Set assigns the component along axis a.
func (v *Vec3) Set(a Axis, value float64) {
	switch a {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	default:
		v.Z = value
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
