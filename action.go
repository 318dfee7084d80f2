package cubie

import (
	"fmt"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

// DragAxis is the screen axis a slice drag committed to.
type DragAxis int

const (
	AxisUndetermined DragAxis = iota
	DragX                     // horizontal drag, turns a y-slice about Y
	DragY                     // vertical drag, turns an x-slice about X
)

func (a DragAxis) String() string {
	switch a {
	case DragX:
		return "x"
	case DragY:
		return "y"
	default:
		return "undetermined"
	}
}

// ParseDragAxis parses the String form of a DragAxis.
func ParseDragAxis(s string) (DragAxis, error) {
	switch s {
	case "x":
		return DragX, nil
	case "y":
		return DragY, nil
	case "", "undetermined":
		return AxisUndetermined, nil
	}
	return AxisUndetermined, fmt.Errorf("cubie: unknown drag axis %q", s)
}

// Action is one recorded discrete move. From and To are world
// orientations: of the puzzle when Slice is nil, of the slice group
// otherwise.
type Action struct {
	Slice *cube.Slice
	Axis  DragAxis
	From  quat.Quat
	To    quat.Quat
	Move  Move // zero for pointer drags
}

// IsCube reports whether the action rotated the whole puzzle.
func (a Action) IsCube() bool {
	return a.Slice == nil
}

// Trivial reports whether the action ended where it started.
func (a Action) Trivial() bool {
	return quat.Equals(a.From, a.To)
}

func (a Action) String() string {
	switch {
	case !a.Move.IsZero():
		return a.Move.Notation()
	case a.Slice == nil:
		return fmt.Sprintf("cube %v -> %v", a.From, a.To)
	default:
		return fmt.Sprintf("slice %v %v -> %v", a.Slice, a.From, a.To)
	}
}
