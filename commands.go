package cubie

import (
	"fmt"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

// Do runs a named move. It returns ErrBusy unless the machine is still.
func (m *Machine) Do(mv Move) error {
	if m.State() != StateStill {
		return ErrBusy
	}
	return m.start(mv)
}

// DoNotation parses and runs a single move such as "R'" or "F_".
func (m *Machine) DoNotation(s string) error {
	mv, err := ParseMove(s)
	if err != nil {
		return err
	}
	return m.Do(mv)
}

// UndoLast pops the most recent action and plays it backwards at half the
// baseline snap duration. The reversal is not recorded. It is a no-op when
// the history is empty.
func (m *Machine) UndoLast() error {
	if m.State() != StateStill {
		return ErrBusy
	}
	if len(m.history) == 0 {
		return nil
	}
	last := m.history[len(m.history)-1]
	d := m.cfg.stabilize / 2

	if last.Slice == nil {
		m.history = m.history[:len(m.history)-1]
		m.action = nil
		m.notifyUndo(last)
		m.enter(stabilizingCube{stab: m.newStabilizer(last.To, last.From, d)})
		return nil
	}

	if err := m.puzzle.GroupSlice(*last.Slice); err != nil {
		return fmt.Errorf("undo %v: %w", last, err)
	}
	m.history = m.history[:len(m.history)-1]
	m.action = nil

	// Slice groups always start aligned with the puzzle, so the reverse
	// target is the recorded end conjugated through the puzzle orientation.
	p := m.puzzle.Orientation()
	to := p.Mul(last.To.Conjugate()).Mul(p)
	m.notifyUndo(last)
	m.enter(stabilizingSlice{stab: m.newStabilizer(p, to, d)})
	return nil
}

// Shuffle queues count random named moves, never turning the same face
// twice in a row, and starts the first one. It returns the queued moves.
func (m *Machine) Shuffle(count int) ([]Move, error) {
	if m.State() != StateStill {
		return nil, ErrBusy
	}
	if count <= 0 {
		return nil, nil
	}

	moves := make([]Move, 0, count)
	var prev Face
	for len(moves) < count {
		mv := AllMoves[m.cfg.intn(len(AllMoves))]
		if mv.Face == prev {
			continue
		}
		moves = append(moves, mv)
		prev = mv.Face
	}

	if err := m.Queue(moves...); err != nil {
		return nil, err
	}
	return moves, nil
}

// Queue runs moves one after another: the first starts now and the rest
// wait in the pending queue. Each queued move snaps faster the more moves
// are still waiting.
func (m *Machine) Queue(moves ...Move) error {
	if m.State() != StateStill {
		return ErrBusy
	}
	for _, mv := range moves {
		if !mv.Valid() {
			return fmt.Errorf("%w: %v", ErrInvalidMove, mv)
		}
	}
	if len(moves) == 0 {
		return nil
	}

	m.pending = append(m.pending, moves[1:]...)
	if err := m.start(moves[0]); err != nil {
		m.pending = nil
		return err
	}
	return nil
}

// QueueNotation parses a space separated sequence such as "R U R' U'" and
// queues it.
func (m *Machine) QueueNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	return m.Queue(moves...)
}

// Apply performs a recorded action instantly, without animation, and
// appends it to the history. Observers are not notified. It is used to
// rebuild a puzzle from a journal.
func (m *Machine) Apply(a Action) error {
	if m.State() != StateStill {
		return ErrBusy
	}
	if a.Slice == nil {
		m.puzzle.SetOrientation(quat.FindClipped(a.To))
	} else {
		if !a.Slice.Valid() {
			return fmt.Errorf("%w: slice %v", ErrInvalidMove, a.Slice)
		}
		if err := m.puzzle.GroupSlice(*a.Slice); err != nil {
			return err
		}
		m.puzzle.Group().Orientation = quat.Local(m.puzzle.Orientation(), a.To)
		m.puzzle.UngroupSlice()
	}
	m.history = append(m.history, a)
	return nil
}

// Reset discards history and returns to a solved puzzle with identity
// orientation. OnReset observers run after the puzzle is replaced.
func (m *Machine) Reset() error {
	if m.State() != StateStill {
		return ErrBusy
	}
	m.puzzle = cube.New()
	m.history = nil
	m.pending = nil
	m.action = nil
	m.grabbed = nil
	for _, cb := range m.onReset {
		cb()
	}
	return nil
}

func (m *Machine) notifyUndo(a Action) {
	for _, cb := range m.onUndo {
		cb(a)
	}
}
