package cube

import (
	"strings"

	"github.com/SeamusWaldron/cubie/internal/quat"
)

// NetFace is a face of the unfolded net, named from the viewer's side.
type NetFace int

const (
	NetU NetFace = iota // +y
	NetL                // -x
	NetF                // +z
	NetR                // +x
	NetB                // -z
	NetD                // -y
)

// facelet returns the world grid position and outward direction of the
// facelet at row, col of face f, as seen from outside the puzzle.
//
//	0 1 2
//	3 4 5
//	6 7 8
func facelet(f NetFace, row, col int) ([3]int, quat.Vec3) {
	switch f {
	case NetU:
		return [3]int{col - 1, 1, row - 1}, quat.Vec3{Y: 1}
	case NetD:
		return [3]int{col - 1, -1, 1 - row}, quat.Vec3{Y: -1}
	case NetF:
		return [3]int{col - 1, 1 - row, 1}, quat.Vec3{Z: 1}
	case NetB:
		return [3]int{1 - col, 1 - row, -1}, quat.Vec3{Z: -1}
	case NetR:
		return [3]int{1, 1 - row, 1 - col}, quat.Vec3{X: 1}
	default:
		return [3]int{-1, 1 - row, col - 1}, quat.Vec3{X: -1}
	}
}

// Facelets reads the 9 visible colors of a face from the current world
// arrangement.
func (c *Cube) Facelets(f NetFace) [9]Color {
	var out [9]Color
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			pos, dir := facelet(f, row, col)
			if cb := c.CubieAt(pos); cb != nil {
				out[row*3+col] = cb.ColorToward(dir)
			}
		}
	}
	return out
}

// Net returns a text representation of the puzzle as an unfolded net.
func (c *Cube) Net() string {
	var faces [6][9]Color
	for f := NetU; f <= NetD; f++ {
		faces[f] = c.Facelets(f)
	}

	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(faces[NetU][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, f := range []NetFace{NetL, NetF, NetR, NetB} {
			for col := 0; col < 3; col++ {
				b.WriteString(faces[f][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(faces[NetD][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Solved reports whether every face shows a single color.
func (c *Cube) Solved() bool {
	for f := NetU; f <= NetD; f++ {
		faces := c.Facelets(f)
		for _, color := range faces[1:] {
			if color != faces[0] {
				return false
			}
		}
	}
	return true
}
