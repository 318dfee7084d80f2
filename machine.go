package cubie

import (
	"fmt"
	"math"
	"time"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
	"github.com/SeamusWaldron/cubie/internal/stabilizer"
)

// Machine coordinates grabbing, dragging, snapping, undo and programmatic
// moves for one puzzle.
type Machine struct {
	cfg     *config
	puzzle  *cube.Cube
	current state

	action  *Action
	grabbed *quat.Vec3
	history []Action
	pending []Move

	onStateChange []func(from, to State)
	onAction      []func(Action)
	onUndo        []func(Action)
	onReset       []func()
}

// New creates a machine around a solved puzzle in the still state.
func New(opts ...Option) *Machine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Machine{
		cfg:     cfg,
		puzzle:  cube.New(),
		current: still{},
	}
}

// Event callbacks

// OnStateChange registers a callback for every state transition.
func (m *Machine) OnStateChange(cb func(from, to State)) {
	m.onStateChange = append(m.onStateChange, cb)
}

// OnAction registers a callback for every action pushed to the history.
func (m *Machine) OnAction(cb func(Action)) {
	m.onAction = append(m.onAction, cb)
}

// OnUndo registers a callback for every action popped by UndoLast.
func (m *Machine) OnUndo(cb func(Action)) {
	m.onUndo = append(m.onUndo, cb)
}

// OnReset registers a callback for every successful Reset.
func (m *Machine) OnReset(cb func()) {
	m.onReset = append(m.onReset, cb)
}

// State accessors

// State returns the current interaction state.
func (m *Machine) State() State {
	return m.current.kind()
}

// Puzzle returns the puzzle being manipulated.
func (m *Machine) Puzzle() *cube.Cube {
	return m.puzzle
}

// History returns a copy of the recorded actions, oldest first.
func (m *Machine) History() []Action {
	out := make([]Action, len(m.history))
	copy(out, m.history)
	return out
}

// Pending returns a copy of the queued moves not yet started.
func (m *Machine) Pending() []Move {
	out := make([]Move, len(m.pending))
	copy(out, m.pending)
	return out
}

// CurrentAction returns the action in progress, if any.
func (m *Machine) CurrentAction() (Action, bool) {
	if m.action == nil {
		return Action{}, false
	}
	return *m.action, true
}

// Grabbed returns the rounded grab point recorded by GrabAt.
func (m *Machine) Grabbed() (quat.Vec3, bool) {
	if m.grabbed == nil {
		return quat.Vec3{}, false
	}
	return *m.grabbed, true
}

// GrabAt records the world point hit on an edge or corner cubie. It must
// be called before entering StateGrabbingSlice.
func (m *Machine) GrabAt(p quat.Vec3) {
	r := p.Round()
	m.grabbed = &r
}

// transitions lists the states each state may be driven to by SetState.
var transitions = map[State][]State{
	StateStill:            {StateGrabbingCube, StateGrabbingSlice, StateStabilizingCube, StateStabilizingSlice},
	StateGrabbingCube:     {StateStabilizingCube, StateStill},
	StateGrabbingSlice:    {StateStabilizingSlice, StateStill},
	StateStabilizingCube:  {StateStill},
	StateStabilizingSlice: {StateStill},
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SetState moves the machine to next. Grab states need the pointer
// position that started the gesture; StateGrabbingSlice also needs a
// prior GrabAt. Transitions that skip a phase of a gesture, such as
// stabilizing the whole cube in the middle of a slice turn, return
// ErrInvalidTransition and leave the machine unchanged.
func (m *Machine) SetState(next State, origin *quat.Vec2) error {
	switch next {
	case StateStill, StateStabilizingCube, StateStabilizingSlice:
	case StateGrabbingCube:
		if origin == nil {
			return ErrNoPointer
		}
	case StateGrabbingSlice:
		if origin == nil {
			return ErrNoPointer
		}
		if m.grabbed == nil {
			return ErrNoGrabPoint
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownState, int(next))
	}
	if from := m.State(); !allowed(from, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, next)
	}

	grabbed := m.grabbed
	m.leave(next)

	switch next {
	case StateStill:
		m.enter(still{})

	case StateGrabbingCube:
		p := m.puzzle.Orientation()
		m.action = &Action{From: p, To: p}
		m.enter(grabbingCube{pointerStart: *origin, start: p})

	case StateStabilizingCube:
		p := m.puzzle.Orientation()
		if m.action == nil {
			m.action = &Action{From: p}
		}
		target := quat.FindClipped(p)
		m.action.To = target
		m.enter(stabilizingCube{stab: m.newStabilizer(p, target, m.cfg.stabilize)})

	case StateGrabbingSlice:
		p := m.puzzle.Orientation()
		m.action = &Action{From: p, To: p}
		m.enter(&grabbingSlice{pointerStart: *origin, grabbed: *grabbed})

	case StateStabilizingSlice:
		group := m.puzzle.Group()
		if group == nil {
			// Released before the drag committed to an axis.
			m.action = nil
			m.enter(still{})
			return nil
		}
		world := group.WorldOrientation()
		if m.action == nil {
			m.action = &Action{From: world}
		}
		target := quat.FindClipped(world)
		m.action.To = target
		m.enter(stabilizingSlice{stab: m.newStabilizer(world, target, m.cfg.stabilize)})
	}
	return nil
}

// Press starts a gesture for a pointer-down at p that hit a cubie of the
// given kind at world point hit. Centers grab the whole puzzle; edges and
// corners grab a slice.
func (m *Machine) Press(p quat.Vec2, kind Kind, hit quat.Vec3) error {
	if m.State() != StateStill {
		return ErrBusy
	}
	switch kind {
	case KindCenter:
		return m.SetState(StateGrabbingCube, &p)
	case KindEdge, KindCorner:
		m.GrabAt(hit)
		return m.SetState(StateGrabbingSlice, &p)
	}
	return nil
}

// Release ends the current grab and starts the snap animation.
func (m *Machine) Release() error {
	switch m.State() {
	case StateGrabbingCube:
		return m.SetState(StateStabilizingCube, nil)
	case StateGrabbingSlice:
		return m.SetState(StateStabilizingSlice, nil)
	}
	return nil
}

// PointerMove feeds a pointer position in normalized [-1,1] coordinates.
// Grab states follow the pointer; stabilizing states advance as in Tick.
func (m *Machine) PointerMove(p quat.Vec2) error {
	switch s := m.current.(type) {
	case grabbingCube:
		d := p.Sub(s.pointerStart)
		m.puzzle.SetOrientation(quat.FromEuler(-2*d.Y, 2*d.X, 0).Mul(s.start))
	case *grabbingSlice:
		return m.dragSlice(s, p)
	case stabilizingCube, stabilizingSlice:
		m.Tick()
	}
	return nil
}

// Tick advances a running snap animation. Grab states ignore it: drags
// only respond to pointer movement.
func (m *Machine) Tick() {
	switch s := m.current.(type) {
	case stabilizingCube:
		done := s.stab.Done()
		m.puzzle.SetOrientation(s.stab.Current())
		if done {
			m.leave(StateStill)
			m.enter(still{})
		}
	case stabilizingSlice:
		done := s.stab.Done()
		if g := m.puzzle.Group(); g != nil {
			g.Orientation = quat.Local(m.puzzle.Orientation(), s.stab.Current())
		}
		if done {
			m.leave(StateStill)
			m.enter(still{})
		}
	}
}

// Progress returns how far the running snap animation is, or 0 outside
// stabilizing states.
func (m *Machine) Progress() float64 {
	switch s := m.current.(type) {
	case stabilizingCube:
		return s.stab.Progress()
	case stabilizingSlice:
		return s.stab.Progress()
	}
	return 0
}

func (m *Machine) dragSlice(s *grabbingSlice, p quat.Vec2) error {
	d := p.Sub(s.pointerStart)

	if s.axis == AxisUndetermined {
		if d.IsZero() {
			return nil
		}
		axis := DragY
		slice := cube.Slice{Axis: quat.AxisX, Layer: layer(s.grabbed.X)}
		if math.Abs(d.X) > math.Abs(d.Y) {
			axis = DragX
			slice = cube.Slice{Axis: quat.AxisY, Layer: layer(s.grabbed.Y)}
		}
		if err := m.puzzle.GroupSlice(slice); err != nil {
			return fmt.Errorf("grab slice %v: %w", slice, err)
		}
		s.axis = axis
		s.start = m.puzzle.Group().WorldOrientation()
		m.action.Slice = &slice
		m.action.Axis = axis
		m.action.From = s.start
		m.action.To = s.start
	}

	var rx, ry float64
	if s.axis == DragY {
		rx = -2 * d.Y
	} else {
		ry = 2 * d.X
	}
	world := quat.FromEuler(rx, ry, 0).Mul(s.start)
	m.puzzle.Group().Orientation = quat.Local(m.puzzle.Orientation(), world)
	return nil
}

// leave cleans up the current state before entering next.
func (m *Machine) leave(next State) {
	switch s := m.current.(type) {
	case grabbingCube:
		m.grabbed = nil
		if next != StateStabilizingCube {
			m.puzzle.SetOrientation(s.start)
			m.action = nil
		}
	case *grabbingSlice:
		m.grabbed = nil
		if next != StateStabilizingSlice {
			if g := m.puzzle.Group(); g != nil {
				g.Orientation = quat.Identity()
			}
			m.puzzle.UngroupSlice()
			m.action = nil
		}
	case stabilizingCube:
		m.puzzle.SetOrientation(s.stab.Target())
	case stabilizingSlice:
		if g := m.puzzle.Group(); g != nil {
			g.Orientation = quat.Local(m.puzzle.Orientation(), s.stab.Target())
		}
		m.puzzle.UngroupSlice()
	}
}

func (m *Machine) enter(s state) {
	from := m.current.kind()
	m.current = s
	for _, cb := range m.onStateChange {
		cb(from, s.kind())
	}
	if _, ok := s.(still); ok {
		m.settle()
	}
}

// settle records the finished action and starts the next queued move.
func (m *Machine) settle() {
	if a := m.action; a != nil {
		m.action = nil
		if !a.Trivial() {
			m.history = append(m.history, *a)
			for _, cb := range m.onAction {
				cb(*a)
			}
		}
	}

	if len(m.pending) == 0 {
		return
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	if err := m.start(next); err != nil {
		m.pending = nil
	}
}

// start runs a named move: group its slice and snap it a quarter turn
// about the face's outward normal.
func (m *Machine) start(mv Move) error {
	if !mv.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMove, mv)
	}
	slice, _ := mv.Face.Slice()

	m.leave(StateStabilizingSlice)
	if err := m.puzzle.GroupSlice(slice); err != nil {
		return fmt.Errorf("move %s: %w", mv, err)
	}
	from := m.puzzle.Group().WorldOrientation()
	to := mv.Rotation().Mul(from)
	d := stabilizer.Duration(m.cfg.stabilize, len(m.pending))

	m.action = &Action{Slice: &slice, From: from, To: to, Move: mv}
	m.enter(stabilizingSlice{stab: m.newStabilizer(from, to, d)})
	return nil
}

func (m *Machine) newStabilizer(from, to quat.Quat, d time.Duration) *stabilizer.Stabilizer {
	return stabilizer.New(from, to, d, stabilizer.WithClock(m.cfg.clock))
}

// layer clamps a rounded grab coordinate to an existing layer.
func layer(v float64) int {
	return max(-1, min(1, int(math.Round(v))))
}
