package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/SeamusWaldron/cubie"
)

// stepClock is a clock that only moves when stepped, so headless commands
// finish animations without waiting.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time { return c.t }

// headless runs a machine without a display.
type headless struct {
	machine *cubie.Machine
	tracker *cubie.Tracker
	clock   *stepClock
}

func newHeadless(opts ...cubie.Option) *headless {
	clock := &stepClock{t: time.Unix(0, 0)}
	opts = append(opts, cubie.WithClock(clock.Now))
	m := cubie.New(opts...)
	return &headless{machine: m, tracker: cubie.NewTracker(m), clock: clock}
}

// settle steps the clock until every queued animation has finished.
func (h *headless) settle() error {
	for i := 0; i < 100000; i++ {
		if h.machine.State() == cubie.StateStill {
			return nil
		}
		h.clock.t = h.clock.t.Add(10 * time.Millisecond)
		h.machine.Tick()
	}
	return fmt.Errorf("machine did not settle (state %s)", h.machine.State())
}

// result is the outcome of a headless run.
type result struct {
	Moves  string `json:"moves"`
	Phase  string `json:"phase"`
	Solved bool   `json:"solved"`
	Net    string `json:"net"`
}

func (h *headless) result(moves []cubie.Move) result {
	return result{
		Moves:  cubie.FormatMoves(moves),
		Phase:  cubie.DetectPhase(h.machine.Puzzle()).String(),
		Solved: h.machine.Puzzle().Solved(),
		Net:    h.machine.Puzzle().Net(),
	}
}

func writeResult(w io.Writer, r result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	if r.Moves != "" {
		fmt.Fprintf(w, "Moves: %s\n", r.Moves)
	}
	fmt.Fprintf(w, "Phase: %s\n", r.Phase)
	fmt.Fprintf(w, "Solved: %v\n\n", r.Solved)
	fmt.Fprint(w, r.Net)
	return nil
}
