// Package cube provides the 3x3x3 puzzle model: 27 cubies hanging off a
// root node, their face colors and classification, and slice grouping.
package cube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubie/internal/quat"
	"github.com/SeamusWaldron/cubie/internal/scene"
)

// ErrSliceGrouped is returned when a slice is grouped while another one is
// still grouped.
var ErrSliceGrouped = errors.New("cube: a slice is already grouped")

// Color represents a face color.
type Color byte

const (
	Background Color = 0 // inner faces
	Orange     Color = 1 // +x when solved
	Red        Color = 2 // -x when solved
	Yellow     Color = 3 // +y when solved
	White      Color = 4 // -y when solved
	Green      Color = 5 // +z when solved
	Blue       Color = 6 // -z when solved
)

func (c Color) String() string {
	switch c {
	case Background:
		return "-"
	case Orange:
		return "O"
	case Red:
		return "R"
	case Yellow:
		return "Y"
	case White:
		return "W"
	case Green:
		return "G"
	case Blue:
		return "B"
	default:
		return "?"
	}
}

// Hex returns the display color as an RGB hex string.
func (c Color) Hex() string {
	switch c {
	case Orange:
		return "#ff8800"
	case Red:
		return "#ff0000"
	case Yellow:
		return "#ffff00"
	case White:
		return "#eeeeee"
	case Green:
		return "#00ff00"
	case Blue:
		return "#0000ff"
	default:
		return "#333333"
	}
}

// FaceColor returns the color of a face when solved.
func FaceColor(f quat.Face) Color {
	switch f {
	case quat.FacePosX:
		return Orange
	case quat.FaceNegX:
		return Red
	case quat.FacePosY:
		return Yellow
	case quat.FaceNegY:
		return White
	case quat.FacePosZ:
		return Green
	case quat.FaceNegZ:
		return Blue
	default:
		return Background
	}
}

// Kind classifies a cubie by how many colored faces it has.
type Kind int

const (
	KindNone   Kind = 0
	KindCenter Kind = 1
	KindEdge   Kind = 2
	KindCorner Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCenter:
		return "center"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	default:
		return "unknown"
	}
}

// Classify counts the non-background faces.
func Classify(faces [6]Color) Kind {
	n := 0
	for _, c := range faces {
		if c != Background {
			n++
		}
	}
	return Kind(n)
}

// Cubie is one of the 27 sub-cubes.
type Cubie struct {
	Node  *scene.Node
	Home  [3]int   // grid position in the solved puzzle
	Faces [6]Color // indexed by quat.Face, in the cubie's own frame
	Kind  Kind
}

func newCubie(x, y, z int) *Cubie {
	c := &Cubie{
		Node: scene.NewNode(fmt.Sprintf("cubie(%d,%d,%d)", x, y, z)),
		Home: [3]int{x, y, z},
	}
	c.Node.Position = quat.Vec3{X: float64(x), Y: float64(y), Z: float64(z)}

	home := [3]int{x, y, z}
	for _, f := range quat.Faces {
		n := f.Normal()
		if float64(home[f.Axis()]) == n.Get(f.Axis()) {
			c.Faces[f] = FaceColor(f)
		}
	}
	c.Kind = Classify(c.Faces)
	return c
}

// GridPosition returns the world position rounded to the integer grid.
func (c *Cubie) GridPosition() [3]int {
	return c.Node.WorldPosition().Grid()
}

// ColorToward returns the color of the face whose world normal points
// along dir. Returns Background if no face is aligned with dir.
func (c *Cubie) ColorToward(dir quat.Vec3) Color {
	wo := c.Node.WorldOrientation()
	for _, f := range quat.Faces {
		if wo.Rotate(f.Normal()).Dot(dir) > 0.5 {
			return c.Faces[f]
		}
	}
	return Background
}

// Cube is the whole puzzle. The root node carries the puzzle orientation;
// at most one slice group is attached under it at a time.
type Cube struct {
	root   *scene.Node
	cubies []*Cubie
	group  *scene.Node
}

// New creates a solved puzzle with identity orientation.
func New() *Cube {
	c := &Cube{root: scene.NewNode("puzzle")}
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				cb := newCubie(x, y, z)
				c.root.Add(cb.Node)
				c.cubies = append(c.cubies, cb)
			}
		}
	}
	return c
}

// Root returns the puzzle's root node.
func (c *Cube) Root() *scene.Node {
	return c.root
}

// Cubies returns all 27 cubies in construction order.
func (c *Cube) Cubies() []*Cubie {
	return c.cubies
}

// Orientation returns the puzzle orientation.
func (c *Cube) Orientation() quat.Quat {
	return c.root.Orientation
}

// SetOrientation sets the puzzle orientation.
func (c *Cube) SetOrientation(q quat.Quat) {
	c.root.Orientation = q
}

// Group returns the active slice group, or nil.
func (c *Cube) Group() *scene.Node {
	return c.group
}

// CubieAt returns the cubie whose world position rounds to pos.
func (c *Cube) CubieAt(pos [3]int) *Cubie {
	for _, cb := range c.cubies {
		if cb.GridPosition() == pos {
			return cb
		}
	}
	return nil
}

// CubieFor returns the cubie owning node n.
func (c *Cube) CubieFor(n *scene.Node) *Cubie {
	for _, cb := range c.cubies {
		if cb.Node == n {
			return cb
		}
	}
	return nil
}
