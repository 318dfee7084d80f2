package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

// Action kinds stored in the kind column.
const (
	KindCube  = "cube"
	KindSlice = "slice"
	KindMove  = "move"
)

// ActionRecord is a recorded action in the database.
type ActionRecord struct {
	ActionID    int64
	SessionID   string
	Epoch       int
	ActionIndex int
	TsMs        int64
	Kind        string
	Slice       *string
	DragAxis    *string
	Notation    *string
	From        quat.Quat
	To          quat.Quat
	Undone      bool
}

// Action converts the record back into the action it was stored from.
func (rec ActionRecord) Action() (cubie.Action, error) {
	a := cubie.Action{From: rec.From, To: rec.To}
	if rec.Slice != nil {
		s, err := cube.ParseSlice(*rec.Slice)
		if err != nil {
			return cubie.Action{}, fmt.Errorf("action %d: %w", rec.ActionID, err)
		}
		a.Slice = &s
	}
	if rec.DragAxis != nil {
		axis, err := cubie.ParseDragAxis(*rec.DragAxis)
		if err != nil {
			return cubie.Action{}, fmt.Errorf("action %d: %w", rec.ActionID, err)
		}
		a.Axis = axis
	}
	if rec.Notation != nil {
		mv, err := cubie.ParseMove(*rec.Notation)
		if err != nil {
			return cubie.Action{}, fmt.Errorf("action %d: %w", rec.ActionID, err)
		}
		a.Move = mv
	}
	return a, nil
}

// ActionRepository provides CRUD operations for actions.
type ActionRepository struct {
	db *DB
}

// NewActionRepository creates a new action repository.
func NewActionRepository(db *DB) *ActionRepository {
	return &ActionRepository{db: db}
}

func kindOf(a cubie.Action) string {
	switch {
	case !a.Move.IsZero():
		return KindMove
	case a.Slice != nil:
		return KindSlice
	default:
		return KindCube
	}
}

func encodeQuat(q quat.Quat) (string, error) {
	data, err := json.Marshal([4]float64{q.X, q.Y, q.Z, q.W})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeQuat(s string) (quat.Quat, error) {
	var v [4]float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return quat.Quat{}, err
	}
	return quat.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}, nil
}

// Create stores an action and returns its ID. epoch is the number of
// resets the session had seen when the action was taken.
func (r *ActionRepository) Create(sessionID string, epoch, index int, tsMs int64, a cubie.Action) (int64, error) {
	from, err := encodeQuat(a.From)
	if err != nil {
		return 0, fmt.Errorf("failed to encode orientation: %w", err)
	}
	to, err := encodeQuat(a.To)
	if err != nil {
		return 0, fmt.Errorf("failed to encode orientation: %w", err)
	}

	var slice, axis, notation *string
	if a.Slice != nil {
		s := a.Slice.String()
		slice = &s
	}
	if a.Axis != cubie.AxisUndetermined {
		s := a.Axis.String()
		axis = &s
	}
	if !a.Move.IsZero() {
		s := a.Move.Notation()
		notation = &s
	}

	result, err := r.db.Exec(`
		INSERT INTO actions (session_id, epoch, action_index, ts_ms, kind, slice, drag_axis, notation, from_quat, to_quat)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, epoch, index, tsMs, kindOf(a), slice, axis, notation, from, to)

	if err != nil {
		return 0, fmt.Errorf("failed to create action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get action ID: %w", err)
	}

	return id, nil
}

// MarkLastUndone flags the most recent live action of a session as undone.
// It returns false when there is nothing to undo.
func (r *ActionRepository) MarkLastUndone(sessionID string) (bool, error) {
	result, err := r.db.Exec(`
		UPDATE actions SET undone = 1
		WHERE action_id = (
			SELECT MAX(action_id) FROM actions
			WHERE session_id = ? AND undone = 0
		)
	`, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to mark action undone: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to mark action undone: %w", err)
	}
	return n > 0, nil
}

// GetBySession retrieves all actions of a session in order.
func (r *ActionRepository) GetBySession(sessionID string) ([]ActionRecord, error) {
	rows, err := r.db.Query(`
		SELECT action_id, session_id, epoch, action_index, ts_ms, kind, slice, drag_axis, notation, from_quat, to_quat, undone
		FROM actions
		WHERE session_id = ?
		ORDER BY epoch, action_index, action_id
	`, sessionID)

	if err != nil {
		return nil, fmt.Errorf("failed to get actions: %w", err)
	}
	defer rows.Close()

	var records []ActionRecord
	for rows.Next() {
		var rec ActionRecord
		var from, to string
		err := rows.Scan(&rec.ActionID, &rec.SessionID, &rec.Epoch, &rec.ActionIndex, &rec.TsMs, &rec.Kind,
			&rec.Slice, &rec.DragAxis, &rec.Notation, &from, &to, &rec.Undone)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		if rec.From, err = decodeQuat(from); err != nil {
			return nil, fmt.Errorf("failed to decode action %d: %w", rec.ActionID, err)
		}
		if rec.To, err = decodeQuat(to); err != nil {
			return nil, fmt.Errorf("failed to decode action %d: %w", rec.ActionID, err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountBySession returns the number of live (not undone) actions.
func (r *ActionRepository) CountBySession(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM actions WHERE session_id = ? AND undone = 0", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get action count: %w", err)
	}
	return count, nil
}

// Moves returns the notation of the live named moves of a session since
// its last reset.
func (r *ActionRepository) Moves(sessionID string) ([]cubie.Move, error) {
	rows, err := r.db.Query(`
		SELECT a.notation FROM actions a
		JOIN sessions s ON s.session_id = a.session_id
		WHERE a.session_id = ? AND a.kind = ? AND a.undone = 0 AND a.epoch = s.resets
		ORDER BY a.action_index, a.action_id
	`, sessionID, KindMove)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []cubie.Move
	for rows.Next() {
		var notation sql.NullString
		if err := rows.Scan(&notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		mv, err := cubie.ParseMove(notation.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored move: %w", err)
		}
		moves = append(moves, mv)
	}
	return moves, rows.Err()
}
