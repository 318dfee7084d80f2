package cubie

import (
	"github.com/SeamusWaldron/cubie/internal/quat"
	"github.com/SeamusWaldron/cubie/internal/stabilizer"
)

// State is the interaction state of a Machine.
type State int

const (
	StateStill State = iota
	StateGrabbingCube
	StateStabilizingCube
	StateGrabbingSlice
	StateStabilizingSlice
)

var stateNames = map[State]string{
	StateStill:            "still",
	StateGrabbingCube:     "grabbing-cube",
	StateStabilizingCube:  "stabilizing-cube",
	StateGrabbingSlice:    "grabbing-slice",
	StateStabilizingSlice: "stabilizing-slice",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseState parses a state name as returned by String.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, ErrUnknownState
}

// Grabbing reports whether the pointer holds the puzzle or a slice.
func (s State) Grabbing() bool {
	return s == StateGrabbingCube || s == StateGrabbingSlice
}

// Stabilizing reports whether a snap animation is running.
func (s State) Stabilizing() bool {
	return s == StateStabilizingCube || s == StateStabilizingSlice
}

// Cursor returns the pointer hint for the state. hovering reports
// whether the pointer is over the puzzle.
func (s State) Cursor(hovering bool) string {
	switch {
	case s.Grabbing():
		return "grabbing"
	case s == StateStill && hovering:
		return "grab"
	default:
		return "auto"
	}
}

// Each state carries only the data valid while it is active.
type state interface {
	kind() State
}

type still struct{}

type grabbingCube struct {
	pointerStart quat.Vec2
	start        quat.Quat
}

type stabilizingCube struct {
	stab *stabilizer.Stabilizer
}

type grabbingSlice struct {
	pointerStart quat.Vec2
	grabbed      quat.Vec3
	axis         DragAxis
	start        quat.Quat // slice world orientation once the axis is committed
}

type stabilizingSlice struct {
	stab *stabilizer.Stabilizer
}

func (still) kind() State            { return StateStill }
func (grabbingCube) kind() State     { return StateGrabbingCube }
func (stabilizingCube) kind() State  { return StateStabilizingCube }
func (*grabbingSlice) kind() State   { return StateGrabbingSlice }
func (stabilizingSlice) kind() State { return StateStabilizingSlice }
