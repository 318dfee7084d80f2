package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed width so that stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Session is one play session in the database.
type Session struct {
	SessionID    string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	Notes        *string
	AppVersion   *string
	Resets       int
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session and returns its ID.
func (r *SessionRepository) Create(notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, notes, app_version)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(timeLayout), nullable(notes), nullable(appVersion))

	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// SetScramble records the scramble applied during a session.
func (r *SessionRepository) SetScramble(sessionID, scramble string) error {
	_, err := r.db.Exec(`UPDATE sessions SET scramble_text = ? WHERE session_id = ?`, nullable(scramble), sessionID)
	if err != nil {
		return fmt.Errorf("failed to set scramble: %w", err)
	}
	return nil
}

// AddReset counts a puzzle reset and returns the new epoch, the number of
// resets so far.
func (r *SessionRepository) AddReset(sessionID string) (int, error) {
	var resets int
	err := r.db.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`UPDATE sessions SET resets = resets + 1 WHERE session_id = ?`, sessionID)
		if err != nil {
			return err
		}
		if n, err := result.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return sql.ErrNoRows
		}
		return tx.QueryRow(`SELECT resets FROM sessions WHERE session_id = ?`, sessionID).Scan(&resets)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record reset: %w", err)
	}
	return resets, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM sessions WHERE session_id = ?", sessionID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get session start time: %w", err)
	}

	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	_, err = r.db.Exec(`
		UPDATE sessions
		SET ended_at = ?, duration_ms = ?
		WHERE session_id = ?
	`, endedAt.Format(timeLayout), durationMs, sessionID)

	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	return nil
}

const sessionColumns = `session_id, started_at, ended_at, duration_ms, scramble_text, notes, app_version, resets`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&s.SessionID, &startedAtStr, &endedAtStr,
		&s.DurationMs, &s.ScrambleText, &s.Notes, &s.AppVersion, &s.Resets,
	)
	if err != nil {
		return Session{}, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}
	return s, nil
}

// Get retrieves a session by ID. It returns nil when there is none.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// GetLast retrieves the most recent session.
func (r *SessionRepository) GetLast() (*Session, error) {
	s, err := scanSession(r.db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC LIMIT 1`))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last session: %w", err)
	}
	return &s, nil
}

// List retrieves recent sessions, newest first. A limit of zero or less
// lists every session.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(`SELECT `+sessionColumns+` FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Delete deletes a session and its actions.
func (r *SessionRepository) Delete(sessionID string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, q := range []string{
			"DELETE FROM actions WHERE session_id = ?",
			"DELETE FROM phase_marks WHERE session_id = ?",
			"DELETE FROM sessions WHERE session_id = ?",
		} {
			if _, err := tx.Exec(q, sessionID); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
		}
		return nil
	})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
