// Package analysis computes statistics over recorded play sessions.
package analysis

import (
	"time"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID      string         `json:"session_id"`
	StartedAt      string         `json:"started_at"`
	EndedAt        string         `json:"ended_at,omitempty"`
	DurationMs     int64          `json:"duration_ms"`
	Scramble       string         `json:"scramble,omitempty"`
	TotalActions   int            `json:"total_actions"`
	Undone         int            `json:"undone"`
	Resets         int            `json:"resets,omitempty"`
	CubeTurns      int            `json:"cube_turns"`
	SliceDrags     int            `json:"slice_drags"`
	NamedMoves     int            `json:"named_moves"`
	OptimizedMoves int            `json:"optimized_moves"`
	APS            float64        `json:"actions_per_second"`
	LongestPauseMs int64          `json:"longest_pause_ms"`
	FaceCounts     map[string]int `json:"face_counts,omitempty"`
	Phases         []PhaseStats   `json:"phases,omitempty"`
}

// PhaseStats is the time a session first reached a phase.
type PhaseStats struct {
	PhaseKey string `json:"phase_key"`
	TsMs     int64  `json:"ts_ms"`
}

// Summarize builds the summary of a session from its journal rows. Undone
// actions count towards Undone only.
func Summarize(s storage.Session, records []storage.ActionRecord, marks []storage.PhaseMark) *SessionSummary {
	sum := &SessionSummary{
		SessionID:  s.SessionID,
		StartedAt:  s.StartedAt.Format(time.RFC3339),
		FaceCounts: make(map[string]int),
		Resets:     s.Resets,
	}
	if s.EndedAt != nil {
		sum.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}
	if s.ScrambleText != nil {
		sum.Scramble = *s.ScrambleText
	}

	var live []storage.ActionRecord
	for _, rec := range records {
		if rec.Undone {
			sum.Undone++
			continue
		}
		live = append(live, rec)
	}
	sum.TotalActions = len(live)

	var moves []cubie.Move
	for _, rec := range live {
		switch rec.Kind {
		case storage.KindCube:
			sum.CubeTurns++
		case storage.KindSlice:
			sum.SliceDrags++
		case storage.KindMove:
			sum.NamedMoves++
			if rec.Notation == nil {
				continue
			}
			if mv, err := cubie.ParseMove(*rec.Notation); err == nil {
				moves = append(moves, mv)
				sum.FaceCounts[string(mv.Face)]++
			}
		}
	}
	sum.OptimizedMoves = len(Simplify(moves))
	sum.LongestPauseMs = LongestPause(live)
	sum.APS = CalculateAPS(len(live), sum.DurationMs)

	for _, m := range marks {
		sum.Phases = append(sum.Phases, PhaseStats{PhaseKey: m.PhaseKey, TsMs: m.TsMs})
	}

	return sum
}

// CalculateAPS calculates actions per second.
func CalculateAPS(count int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(count) / (float64(durationMs) / 1000.0)
}

// LongestPause finds the longest gap between consecutive actions.
func LongestPause(records []storage.ActionRecord) int64 {
	var longest int64
	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap > longest {
			longest = gap
		}
	}
	return longest
}

// Simplify merges consecutive turns of the same face, dropping those that
// cancel out. Three quarter turns become one in the other direction and a
// half turn stays as two quarter turns.
func Simplify(moves []cubie.Move) []cubie.Move {
	type run struct {
		face  cubie.Face
		turns int
	}
	var stack []run
	for _, m := range moves {
		if n := len(stack); n > 0 && stack[n-1].face == m.Face {
			stack[n-1].turns = ((stack[n-1].turns+int(m.Turn))%4 + 4) % 4
			if stack[n-1].turns == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, run{face: m.Face, turns: (int(m.Turn) + 4) % 4})
	}

	var out []cubie.Move
	for _, r := range stack {
		switch r.turns {
		case 1:
			out = append(out, cubie.Move{Face: r.face, Turn: cubie.CW})
		case 2:
			out = append(out, cubie.Move{Face: r.face, Turn: cubie.CW}, cubie.Move{Face: r.face, Turn: cubie.CW})
		case 3:
			out = append(out, cubie.Move{Face: r.face, Turn: cubie.CCW})
		}
	}
	return out
}
