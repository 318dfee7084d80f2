// Package cubie provides the interaction core of a 3x3x3 twisty puzzle:
// grabbing and turning the whole puzzle or a single slice with a pointer,
// snapping back to the nearest axis-aligned orientation on release,
// undo, named face turns and shuffle.
//
// # Features
//
//   - Finite state machine for whole-puzzle and slice manipulation
//   - Quaternion-based snapping to the 24 canonical orientations
//   - Undo history of discrete moves
//   - Named face turns and shuffle driven through the same snap pipeline
//
// # Quick Start
//
// Drive the machine from pointer events and a render loop:
//
//	m := cubie.New()
//
//	m.OnAction(func(a cubie.Action) {
//	    fmt.Println("Recorded:", a)
//	})
//
//	// pointer down on an edge cubie hit at world point p
//	m.Press(pointer, cubie.KindEdge, p)
//	m.PointerMove(next)
//	m.Release()
//
//	// every frame
//	m.Tick()
//
// # Named Moves
//
// Named moves bypass the grab phase and go straight to the snap animation:
//
//	m.Do(cubie.F)      // Front clockwise
//	m.Do(cubie.RPrime) // Right counter-clockwise
//	m.Shuffle(20)      // 20 random moves, no face repeated twice in a row
//	m.QueueNotation("R U R' U'")
//	m.UndoLast()
//
// Commands are only accepted while the machine is still; otherwise they
// return ErrBusy.
//
// A Machine is not safe for concurrent use. Drive it from one goroutine,
// typically the UI event loop.
package cubie

import (
	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

// Aliases for the math and model types that appear in the public API.
type (
	Quat  = quat.Quat
	Vec2  = quat.Vec2
	Vec3  = quat.Vec3
	Slice = cube.Slice
	Kind  = cube.Kind
)

// Cubie kinds accepted by Press.
const (
	KindNone   = cube.KindNone
	KindCenter = cube.KindCenter
	KindEdge   = cube.KindEdge
	KindCorner = cube.KindCorner
)
