package cubie

import "github.com/SeamusWaldron/cubie/internal/cube"

// Phase is a coarse measure of how close the puzzle is to solved, read
// from the faces as currently seen.
type Phase int

const (
	PhaseScrambled  Phase = iota
	PhaseFace             // one face shows a single color
	PhaseFirstLayer       // top or bottom layer complete
	PhaseTwoLayers        // that layer plus the middle layer
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseFace:
		return "face"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseTwoLayers:
		return "two_layers"
	case PhaseSolved:
		return "complete"
	default:
		return "unknown"
	}
}

var sideFaces = []cube.NetFace{cube.NetF, cube.NetR, cube.NetB, cube.NetL}

// DetectPhase returns the phase of c.
func DetectPhase(c *cube.Cube) Phase {
	if c.Solved() {
		return PhaseSolved
	}

	best := PhaseScrambled
	for f := cube.NetU; f <= cube.NetD; f++ {
		if uniform(c.Facelets(f)) {
			best = PhaseFace
			break
		}
	}

	// Top layer uses rows 0,1 of the side faces; bottom layer rows 2,1.
	for _, layer := range []struct {
		face  cube.NetFace
		outer int
	}{{cube.NetU, 0}, {cube.NetD, 2}} {
		if !uniform(c.Facelets(layer.face)) || !rowsMatch(c, layer.outer) {
			continue
		}
		best = max(best, PhaseFirstLayer)
		if rowsMatch(c, 1) {
			return PhaseTwoLayers
		}
	}
	return best
}

func uniform(faces [9]cube.Color) bool {
	for _, c := range faces[1:] {
		if c != faces[0] {
			return false
		}
	}
	return true
}

// rowsMatch reports whether row of every side face matches its center.
func rowsMatch(c *cube.Cube, row int) bool {
	for _, f := range sideFaces {
		faces := c.Facelets(f)
		for col := 0; col < 3; col++ {
			if faces[row*3+col] != faces[4] {
				return false
			}
		}
	}
	return true
}

// Tracker watches a machine and reports phase changes each time the
// puzzle comes to rest.
type Tracker struct {
	machine       *Machine
	lastPhase     Phase
	highestPhase  Phase // monotonic until Reset
	phaseCallback func(Phase)
	onSolved      []func()
}

// NewTracker attaches a tracker to m.
func NewTracker(m *Machine) *Tracker {
	t := &Tracker{
		machine:   m,
		lastPhase: DetectPhase(m.Puzzle()),
	}
	t.highestPhase = t.lastPhase
	m.OnStateChange(func(_, to State) {
		if to == StateStill {
			t.check()
		}
	})
	return t
}

// SetPhaseCallback sets a callback that fires when a new highest phase is
// reached.
func (t *Tracker) SetPhaseCallback(cb func(Phase)) {
	t.phaseCallback = cb
}

// OnSolved registers a callback for the puzzle becoming solved.
func (t *Tracker) OnSolved(cb func()) {
	t.onSolved = append(t.onSolved, cb)
}

// Reset starts tracking again from the current phase, typically after a
// shuffle.
func (t *Tracker) Reset() {
	t.lastPhase = DetectPhase(t.machine.Puzzle())
	t.highestPhase = t.lastPhase
}

func (t *Tracker) check() {
	current := DetectPhase(t.machine.Puzzle())
	previous := t.lastPhase
	t.lastPhase = current

	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current)
		}
	}
	if current == PhaseSolved && previous != PhaseSolved {
		for _, cb := range t.onSolved {
			cb()
		}
	}
}

// CurrentPhase returns the phase at the last rest.
func (t *Tracker) CurrentPhase() Phase {
	return t.lastPhase
}

// HighestPhase returns the highest phase reached since the last Reset.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}

// IsSolved returns true if the puzzle was solved at the last rest.
func (t *Tracker) IsSolved() bool {
	return t.lastPhase == PhaseSolved
}
