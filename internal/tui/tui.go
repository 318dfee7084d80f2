// Package tui implements the interactive terminal view of the puzzle.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/recorder"
	"github.com/SeamusWaldron/cubie/internal/render"
)

const (
	// frameTop is the number of lines above the puzzle frame.
	frameTop = 2
	// footerLines is the number of lines below the puzzle frame.
	footerLines = 8

	defaultTick    = 16 * time.Millisecond
	defaultShuffle = 20
	recentMoves    = 20
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	edgeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#111111"))
)

// faceStyles holds one background style per face color.
var faceStyles = func() map[cube.Color]lipgloss.Style {
	out := make(map[cube.Color]lipgloss.Style)
	for c := cube.Background; c <= cube.Blue; c++ {
		out[c] = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex()))
	}
	return out
}()

// Messages
type tickMsg time.Time

// Model is the bubbletea model driving a cubie.Machine from keyboard and
// mouse input.
type Model struct {
	machine *cubie.Machine
	tracker *cubie.Tracker
	session *recorder.Session
	logger  *recorder.SessionLogger

	viewport render.Viewport
	hovering bool
	shuffle  int
	tick     time.Duration

	lastShuffle []cubie.Move
	err         error
	quitting    bool
}

// Option configures a Model.
type Option func(*Model)

// WithTracker shows phase progress from t.
func WithTracker(t *cubie.Tracker) Option {
	return func(m *Model) { m.tracker = t }
}

// WithSession records shuffles into s.
func WithSession(s *recorder.Session) Option {
	return func(m *Model) { m.session = s }
}

// WithLogger logs key presses to l.
func WithLogger(l *recorder.SessionLogger) Option {
	return func(m *Model) { m.logger = l }
}

// WithShuffleCount sets how many moves the shuffle key queues.
func WithShuffleCount(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.shuffle = n
		}
	}
}

// WithTickInterval sets how often running animations are advanced.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tick = d
		}
	}
}

// New creates a model for machine.
func New(machine *cubie.Machine, opts ...Option) *Model {
	m := &Model{
		machine:  machine,
		viewport: render.Viewport{Width: 48, Height: 24},
		shuffle:  defaultShuffle,
		tick:     defaultTick,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Viewport returns the area the puzzle is drawn in.
func (m *Model) Viewport() render.Viewport {
	return m.viewport
}

// Err returns the last error shown to the user.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.logger.LogKeyPress(msg.String())
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		h := msg.Height - frameTop - footerLines
		if h < 6 {
			h = 6
		}
		m.viewport = render.Viewport{Width: msg.Width, Height: h}
		return m, nil

	case tickMsg:
		m.machine.Tick()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "z", "backspace":
		m.setErr(m.machine.UndoLast())

	case "s":
		moves, err := m.machine.Shuffle(m.shuffle)
		m.setErr(err)
		if err == nil {
			m.lastShuffle = moves
			if m.session != nil {
				m.setErr(m.session.RecordScramble(moves))
			}
		}

	case "n":
		m.setErr(m.machine.Reset())
		if m.tracker != nil {
			m.tracker.Reset()
		}
		m.lastShuffle = nil

	default:
		if mv, ok := keyMove(key); ok {
			m.setErr(m.machine.Do(mv))
		}
	}
	return m, nil
}

// keyMove maps a face letter to a clockwise move and its upper case form
// to the primed move.
func keyMove(key string) (cubie.Move, bool) {
	if len(key) != 1 {
		return cubie.Move{}, false
	}
	lower := strings.ToLower(key)
	switch lower {
	case "f", "b", "r", "l", "u", "d":
	default:
		return cubie.Move{}, false
	}
	notation := strings.ToUpper(lower)
	if key != lower {
		notation += "'"
	}
	mv, err := cubie.ParseMove(notation)
	if err != nil {
		return cubie.Move{}, false
	}
	return mv, true
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	p := m.viewport.Normalize(msg.X, msg.Y-frameTop)
	cam := render.NewCamera(m.viewport)
	hit, ok := cam.HitTest(m.machine.Puzzle(), p)
	m.hovering = ok

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return
		}
		m.setErr(m.machine.Press(p, hit.Cubie.Kind, hit.Point))
	case tea.MouseActionMotion:
		m.setErr(m.machine.PointerMove(p))
	case tea.MouseActionRelease:
		m.setErr(m.machine.Release())
	}
}

func (m *Model) setErr(err error) {
	m.err = err
	if err != nil {
		m.logger.LogError(err)
	}
}

func (m *Model) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if path := m.logger.FilePath(); path != "" {
			msg += fmt.Sprintf("Log saved to: %s\n", path)
		}
		return msg
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("cubie"))
	b.WriteString("\n\n")

	b.WriteString(m.renderFrame())

	state := m.machine.State()
	status := fmt.Sprintf("State: %s  Cursor: %s", state, state.Cursor(m.hovering))
	if state.Stabilizing() {
		status += fmt.Sprintf("  %3.0f%%", m.machine.Progress()*100)
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.tracker != nil {
		if m.tracker.IsSolved() {
			b.WriteString(fmt.Sprintf("Puzzle: %s\n", phaseStyle.Render("SOLVED")))
		} else {
			b.WriteString(fmt.Sprintf("Phase: %s  Best: %s\n",
				phaseStyle.Render(m.tracker.CurrentPhase().String()),
				statusStyle.Render(m.tracker.HighestPhase().String())))
		}
	} else {
		b.WriteString("\n")
	}

	history := m.machine.History()
	b.WriteString(fmt.Sprintf("Actions: %d  Queued: %d\n", len(history), len(m.machine.Pending())))
	b.WriteString("Moves: ")
	b.WriteString(moveStyle.Render(recent(history)))
	b.WriteString("\n")

	if len(m.lastShuffle) > 0 {
		b.WriteString("Shuffle: " + statusStyle.Render(cubie.FormatMoves(m.lastShuffle)))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("f/b/r/l/u/d: turn  F/B/R/L/U/D: turn back  z: undo  s: shuffle  n: reset  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// recent formats the last moves of history. Drags that are not face turns
// show as their slice.
func recent(history []cubie.Action) string {
	start := 0
	prefix := ""
	if len(history) > recentMoves {
		start = len(history) - recentMoves
		prefix = "... "
	}
	parts := make([]string, 0, len(history)-start)
	for _, a := range history[start:] {
		switch {
		case !a.Move.IsZero():
			parts = append(parts, a.Move.Notation())
		case a.Slice != nil:
			parts = append(parts, a.Slice.String())
		default:
			parts = append(parts, "(turn)")
		}
	}
	return prefix + strings.Join(parts, " ")
}

// renderFrame draws the puzzle, merging runs of equal cells into a single
// styled span.
func (m *Model) renderFrame() string {
	var b strings.Builder
	for _, row := range render.Frame(m.machine.Puzzle(), m.viewport) {
		for i := 0; i < len(row); {
			j := i + 1
			for j < len(row) && row[j] == row[i] {
				j++
			}
			span := strings.Repeat(" ", j-i)
			switch cell := row[i]; {
			case !cell.Hit:
				b.WriteString(span)
			case cell.Edge:
				b.WriteString(edgeStyle.Render(span))
			default:
				b.WriteString(faceStyles[cell.Color].Render(span))
			}
			i = j
		}
		b.WriteString("\n")
	}
	return b.String()
}
