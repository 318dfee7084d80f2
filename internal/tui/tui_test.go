package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubie"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestModel(t *testing.T, opts ...Option) (*Model, *cubie.Machine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(0, 0)}
	machine := cubie.New(cubie.WithClock(clock.Now))
	m := New(machine, opts...)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20 + frameTop + footerLines})
	return m, machine, clock
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func settle(t *testing.T, m *Model, clock *fakeClock) {
	t.Helper()
	for i := 0; i < 200 && m.machine.State() != cubie.StateStill; i++ {
		clock.t = clock.t.Add(50 * time.Millisecond)
		m.Update(tickMsg(clock.t))
	}
	if m.machine.State() != cubie.StateStill {
		t.Fatal("machine did not settle")
	}
}

func TestWindowSizeSetsViewport(t *testing.T) {
	m, _, _ := newTestModel(t)
	if vp := m.Viewport(); vp.Width != 40 || vp.Height != 20 {
		t.Errorf("viewport = %+v, want 40x20", vp)
	}
}

func TestKeyMoves(t *testing.T) {
	tests := []struct {
		key  string
		want cubie.Move
		ok   bool
	}{
		{"f", cubie.F, true},
		{"F", cubie.FPrime, true},
		{"u", cubie.U, true},
		{"D", cubie.DPrime, true},
		{"x", cubie.Move{}, false},
		{"ctrl+c", cubie.Move{}, false},
	}
	for _, tt := range tests {
		got, ok := keyMove(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("keyMove(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMoveAndUndoKeys(t *testing.T) {
	m, machine, clock := newTestModel(t)

	m.Update(key("r"))
	if machine.State() != cubie.StateStabilizingSlice {
		t.Fatalf("state = %v, want stabilizing-slice", machine.State())
	}
	settle(t, m, clock)
	if n := len(machine.History()); n != 1 {
		t.Fatalf("history = %d, want 1", n)
	}
	if got := recent(machine.History()); got != "R" {
		t.Errorf("recent moves = %q, want R", got)
	}

	m.Update(key("z"))
	settle(t, m, clock)
	if n := len(machine.History()); n != 0 {
		t.Errorf("history after undo = %d, want 0", n)
	}
	if !machine.Puzzle().Solved() {
		t.Error("puzzle should be solved after undo")
	}
}

func TestBusyKeyShowsError(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(key("f"))
	m.Update(key("r"))
	if !errors.Is(m.Err(), cubie.ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", m.Err())
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("view should show the error")
	}
}

func TestShuffleAndReset(t *testing.T) {
	m, machine, clock := newTestModel(t, WithShuffleCount(4))
	m.Update(key("s"))
	if len(m.lastShuffle) != 4 {
		t.Fatalf("shuffle = %v, want 4 moves", m.lastShuffle)
	}
	settle(t, m, clock)
	if n := len(machine.History()); n != 4 {
		t.Fatalf("history = %d, want 4", n)
	}

	m.Update(key("n"))
	if len(machine.History()) != 0 || !machine.Puzzle().Solved() {
		t.Error("reset should clear history and solve the puzzle")
	}
}

func TestMouseGrabsCube(t *testing.T) {
	m, machine, clock := newTestModel(t)

	// center cell of a 40x20 viewport is the front center cubie
	x, y := 20, 10+frameTop
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if machine.State() != cubie.StateGrabbingCube {
		t.Fatalf("state = %v, want grabbing-cube", machine.State())
	}
	if !strings.Contains(m.View(), "Cursor: grabbing") {
		t.Error("view should show the grabbing cursor")
	}

	m.Update(tea.MouseMsg{X: x + 2, Y: y, Action: tea.MouseActionMotion})
	m.Update(tea.MouseMsg{X: x + 2, Y: y, Action: tea.MouseActionRelease})
	if machine.State() != cubie.StateStabilizingCube {
		t.Fatalf("state = %v, want stabilizing-cube", machine.State())
	}
	settle(t, m, clock)
}

func TestMouseMissIgnored(t *testing.T) {
	m, machine, _ := newTestModel(t)
	m.Update(tea.MouseMsg{X: 0, Y: frameTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if machine.State() != cubie.StateStill {
		t.Errorf("state = %v, want still", machine.State())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(m.View(), "Goodbye") {
		t.Error("view should say goodbye")
	}
}
