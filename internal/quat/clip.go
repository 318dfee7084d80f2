package quat

import "math"

// Face is one of the six outward face directions of the puzzle.
type Face int

// The declaration order is the scan order of FindClipped; the first face
// wins ties.
const (
	FaceNegX Face = iota
	FacePosX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// Faces lists all six faces in scan order.
var Faces = [6]Face{FaceNegX, FacePosX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() Vec3 {
	switch f {
	case FaceNegX:
		return Vec3{X: -1}
	case FacePosX:
		return Vec3{X: 1}
	case FacePosY:
		return Vec3{Y: 1}
	case FaceNegY:
		return Vec3{Y: -1}
	case FacePosZ:
		return Vec3{Z: 1}
	default:
		return Vec3{Z: -1}
	}
}

// Axis returns the axis the face is perpendicular to.
func (f Face) Axis() Axis {
	switch f {
	case FaceNegX, FacePosX:
		return AxisX
	case FacePosY, FaceNegY:
		return AxisY
	default:
		return AxisZ
	}
}

// Adjacent returns the four faces that share an edge with f, in scan order.
func (f Face) Adjacent() [4]Face {
	switch f.Axis() {
	case AxisX:
		return [4]Face{FacePosZ, FacePosY, FaceNegY, FaceNegZ}
	case AxisY:
		return [4]Face{FacePosZ, FaceNegX, FacePosX, FaceNegZ}
	default:
		return [4]Face{FacePosY, FaceNegX, FacePosX, FaceNegY}
	}
}

func (f Face) String() string {
	switch f {
	case FaceNegX:
		return "-x"
	case FacePosX:
		return "+x"
	case FacePosY:
		return "+y"
	case FaceNegY:
		return "-y"
	case FacePosZ:
		return "+z"
	case FaceNegZ:
		return "-z"
	default:
		return "?"
	}
}

// Pose names a canonical orientation by the puzzle face that points at the
// viewer (+Z) and the face that points up (+Y).
type Pose struct {
	Front Face
	Top   Face
}

var canonical = buildCanonical()

// buildCanonical derives the 24 rotations of the cube. For each (front, top)
// pair the rotation matrix has rows (top x front, top, front), so it maps
// front to +Z and top to +Y.
func buildCanonical() map[Pose]Quat {
	table := make(map[Pose]Quat, 24)
	for _, front := range Faces {
		for _, top := range front.Adjacent() {
			f, t := front.Normal(), top.Normal()
			table[Pose{Front: front, Top: top}] = fromRows(t.Cross(f), t, f)
		}
	}
	return table
}

// fromRows converts an orthonormal rotation matrix given by rows to a
// quaternion.
func fromRows(r0, r1, r2 Vec3) Quat {
	m11, m12, m13 := r0.X, r0.Y, r0.Z
	m21, m22, m23 := r1.X, r1.Y, r1.Z
	m31, m32, m33 := r2.X, r2.Y, r2.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		return Quat{W: 0.25 / s, X: (m32 - m23) * s, Y: (m13 - m31) * s, Z: (m21 - m12) * s}
	case m11 > m22 && m11 > m33:
		s := 2 * math.Sqrt(1+m11-m22-m33)
		return Quat{W: (m32 - m23) / s, X: 0.25 * s, Y: (m12 + m21) / s, Z: (m13 + m31) / s}
	case m22 > m33:
		s := 2 * math.Sqrt(1+m22-m11-m33)
		return Quat{W: (m13 - m31) / s, X: (m12 + m21) / s, Y: 0.25 * s, Z: (m23 + m32) / s}
	default:
		s := 2 * math.Sqrt(1+m33-m11-m22)
		return Quat{W: (m21 - m12) / s, X: (m13 + m31) / s, Y: (m23 + m32) / s, Z: 0.25 * s}
	}
}

// Canonical returns the 24 canonical orientations in scan order.
func Canonical() []Quat {
	out := make([]Quat, 0, 24)
	for _, p := range Poses() {
		out = append(out, canonical[p])
	}
	return out
}

// Poses returns the 24 (front, top) pairs in scan order.
func Poses() []Pose {
	out := make([]Pose, 0, 24)
	for _, front := range Faces {
		for _, top := range front.Adjacent() {
			out = append(out, Pose{Front: front, Top: top})
		}
	}
	return out
}

// Orientation returns the canonical orientation for p. ok is false if top
// is not adjacent to front.
func (p Pose) Orientation() (q Quat, ok bool) {
	q, ok = canonical[p]
	return q, ok
}

// PoseOf returns which puzzle faces point at the viewer and up under q.
func PoseOf(q Quat) Pose {
	front, fz := FaceNegX, -1.0
	for _, f := range Faces {
		if z := q.Rotate(f.Normal()).Z; z > fz {
			front, fz = f, z
		}
	}

	top, ty := front.Adjacent()[0], -1.0
	for _, f := range front.Adjacent() {
		if y := q.Rotate(f.Normal()).Y; y > ty {
			top, ty = f, y
		}
	}
	return Pose{Front: front, Top: top}
}

// FindClipped snaps q to the nearest canonical orientation: the face most
// aligned with +Z becomes the front, and of its neighbours the one most
// aligned with +Y becomes the top.
func FindClipped(q Quat) Quat {
	return canonical[PoseOf(q)]
}
