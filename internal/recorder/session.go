package recorder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

// ErrNoSession is returned when recording is requested outside a session.
var ErrNoSession = errors.New("recorder: no session in progress")

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records the actions of one machine into the journal.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	logger    *SessionLogger

	mu          sync.Mutex
	state       SessionState
	sessionID   string
	startTime   time.Time
	epoch       int
	actionIndex int
	lastErr     error

	sessionRepo *storage.SessionRepository
	actionRepo  *storage.ActionRepository
	phaseRepo   *storage.PhaseRepository
}

// NewSession creates a new session recorder. stateFile and logger may be
// nil.
func NewSession(db *storage.DB, stateFile *StateFile, logger *SessionLogger) *Session {
	return &Session{
		db:          db,
		stateFile:   stateFile,
		logger:      logger,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		actionRepo:  storage.NewActionRepository(db),
		phaseRepo:   storage.NewPhaseRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// ActionCount returns the number of live actions recorded so far.
func (s *Session) ActionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actionIndex
}

// Err returns the last error raised while recording from a callback.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Start starts a new session.
func (s *Session) Start(notes, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("recorder: session already in progress")
	}

	id, err := s.sessionRepo.Create(notes, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.epoch = 0
	s.actionIndex = 0
	s.lastErr = nil
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(id); err != nil {
			s.logger.LogError(err)
		}
	}

	return id, nil
}

// End ends the current session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.logger.LogError(err)
		}
	}

	return nil
}

func (s *Session) elapsedMs() int64 {
	return time.Since(s.startTime).Milliseconds()
}

// RecordAction stores a completed action.
func (s *Session) RecordAction(a cubie.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	if _, err := s.actionRepo.Create(s.sessionID, s.epoch, s.actionIndex, s.elapsedMs(), a); err != nil {
		return fmt.Errorf("failed to store action: %w", err)
	}
	s.actionIndex++
	s.logger.LogAction(a.String())
	return nil
}

// RecordUndo flags the latest stored action as undone.
func (s *Session) RecordUndo(a cubie.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	ok, err := s.actionRepo.MarkLastUndone(s.sessionID)
	if err != nil {
		return err
	}
	if ok {
		s.actionIndex--
	}
	s.logger.LogUndo(a.String())
	return nil
}

// RecordReset starts a new epoch: actions recorded before it no longer
// count towards the puzzle state.
func (s *Session) RecordReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	epoch, err := s.sessionRepo.AddReset(s.sessionID)
	if err != nil {
		return err
	}
	s.epoch = epoch
	s.actionIndex = 0
	s.logger.LogReset()
	return nil
}

// RecordScramble stores the moves of a shuffle as the session scramble.
func (s *Session) RecordScramble(moves []cubie.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}
	return s.sessionRepo.SetScramble(s.sessionID, cubie.FormatMoves(moves))
}

// MarkPhase records that the session reached a phase.
func (s *Session) MarkPhase(phaseKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNoSession
	}

	if _, err := s.phaseRepo.CreatePhaseMark(s.sessionID, s.elapsedMs(), phaseKey); err != nil {
		return fmt.Errorf("failed to mark phase: %w", err)
	}
	s.logger.LogPhaseChange(phaseKey)
	return nil
}

// Attach subscribes the session to m's observers, and to t's phase changes
// when t is not nil. Errors from callbacks are kept for Err.
func (s *Session) Attach(m *cubie.Machine, t *cubie.Tracker) {
	m.OnAction(func(a cubie.Action) {
		s.keep(s.RecordAction(a))
	})
	m.OnUndo(func(a cubie.Action) {
		s.keep(s.RecordUndo(a))
	})
	m.OnReset(func() {
		s.keep(s.RecordReset())
	})
	m.OnStateChange(func(from, to cubie.State) {
		s.logger.LogStateChange(from.String(), to.String())
	})
	if t != nil {
		t.SetPhaseCallback(func(p cubie.Phase) {
			s.keep(s.MarkPhase(p.String()))
		})
	}
}

func (s *Session) keep(err error) {
	if err == nil || errors.Is(err, ErrNoSession) {
		return
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.logger.LogError(err)
}
