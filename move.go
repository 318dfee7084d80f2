package cubie

import (
	"fmt"
	"math"
	"strings"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

// Face represents a puzzle face in standard notation, named from the
// viewer's side: F is whatever currently faces the viewer.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Outward returns the world-space outward normal of the face.
func (f Face) Outward() (quat.Vec3, bool) {
	switch f {
	case FaceR:
		return quat.Vec3{X: 1}, true
	case FaceL:
		return quat.Vec3{X: -1}, true
	case FaceU:
		return quat.Vec3{Y: 1}, true
	case FaceD:
		return quat.Vec3{Y: -1}, true
	case FaceF:
		return quat.Vec3{Z: 1}, true
	case FaceB:
		return quat.Vec3{Z: -1}, true
	default:
		return quat.Vec3{}, false
	}
}

// Slice returns the world slice holding the face's 9 cubies.
func (f Face) Slice() (cube.Slice, bool) {
	n, ok := f.Outward()
	if !ok {
		return cube.Slice{}, false
	}
	for _, a := range []quat.Axis{quat.AxisX, quat.AxisY, quat.AxisZ} {
		if v := n.Get(a); v != 0 {
			return cube.Slice{Axis: a, Layer: int(v)}, true
		}
	}
	return cube.Slice{}, false
}

// Turn represents the direction of a quarter turn.
type Turn int

const (
	CW  Turn = 1  // Clockwise seen from outside the face
	CCW Turn = -1 // Counter-clockwise (primed)
)

// Move is a named quarter turn of one outer face.
type Move struct {
	Face Face // Which face to turn
	Turn Turn // Direction
}

// IsZero reports whether m is the zero Move, used for drag actions.
func (m Move) IsZero() bool {
	return m.Face == ""
}

// Valid reports whether m names one of the 12 quarter turns.
func (m Move) Valid() bool {
	_, ok := m.Face.Outward()
	return ok && (m.Turn == CW || m.Turn == CCW)
}

// Angle returns the rotation about the face's outward normal: -90 degrees
// for clockwise, +90 for primed.
func (m Move) Angle() float64 {
	return -float64(m.Turn) * math.Pi / 2
}

// Rotation returns the world-space rotation performed by the move.
func (m Move) Rotation() quat.Quat {
	n, _ := m.Face.Outward()
	return quat.FromAxisAngle(n, m.Angle())
}

// Notation returns the standard notation string for this move.
// Examples: R, R', U, U'
func (m Move) Notation() string {
	if m.Turn == CCW {
		return string(m.Face) + "'"
	}
	return string(m.Face)
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R.
func (m Move) Inverse() Move {
	inv := m
	inv.Turn = -m.Turn
	return inv
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', F_ (underscore is accepted as the prime mark).
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidMove
	}

	var face Face
	switch s[0] {
	case 'R', 'r':
		face = FaceR
	case 'L', 'l':
		face = FaceL
	case 'U', 'u':
		face = FaceU
	case 'D', 'd':
		face = FaceD
	case 'F', 'f':
		face = FaceF
	case 'B', 'b':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	turn := CW
	switch s[1:] {
	case "":
	case "'", "`", "_":
		turn = CCW
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
