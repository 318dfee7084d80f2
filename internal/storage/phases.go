package storage

import "fmt"

// PhaseMark records when a session first reached a solve phase.
type PhaseMark struct {
	PhaseMarkID int64
	SessionID   string
	TsMs        int64
	PhaseKey    string
}

// PhaseRepository provides CRUD operations for phase marks.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// CreatePhaseMark creates a new phase mark.
func (r *PhaseRepository) CreatePhaseMark(sessionID string, tsMs int64, phaseKey string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO phase_marks (session_id, ts_ms, phase_key)
		VALUES (?, ?, ?)
	`, sessionID, tsMs, phaseKey)

	if err != nil {
		return 0, fmt.Errorf("failed to create phase mark: %w", err)
	}

	return result.LastInsertId()
}

// GetPhaseMarks retrieves all phase marks for a session in order.
func (r *PhaseRepository) GetPhaseMarks(sessionID string) ([]PhaseMark, error) {
	rows, err := r.db.Query(`
		SELECT phase_mark_id, session_id, ts_ms, phase_key
		FROM phase_marks
		WHERE session_id = ?
		ORDER BY ts_ms, phase_mark_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get phase marks: %w", err)
	}
	defer rows.Close()

	var marks []PhaseMark
	for rows.Next() {
		var m PhaseMark
		if err := rows.Scan(&m.PhaseMarkID, &m.SessionID, &m.TsMs, &m.PhaseKey); err != nil {
			return nil, fmt.Errorf("failed to scan phase mark: %w", err)
		}
		marks = append(marks, m)
	}

	return marks, rows.Err()
}
