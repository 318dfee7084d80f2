package analysis

import (
	"testing"
	"time"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"R R'", ""},
		{"R U U' R'", ""},
		{"R R R", "R'"},
		{"F F", "F F"},
		{"R R R R U", "U"},
		{"R U R' U'", "R U R' U'"},
	}
	for _, tt := range tests {
		moves, err := cubie.ParseMoves(tt.in)
		if err != nil {
			t.Fatal(err)
		}
		if got := cubie.FormatMoves(Simplify(moves)); got != tt.want {
			t.Errorf("Simplify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	strp := func(s string) *string { return &s }
	dur := int64(2000)
	ended := time.Unix(2, 0)
	s := storage.Session{
		SessionID:    "abc",
		StartedAt:    time.Unix(0, 0),
		EndedAt:      &ended,
		DurationMs:   &dur,
		ScrambleText: strp("F R"),
	}
	records := []storage.ActionRecord{
		{Kind: storage.KindMove, Notation: strp("F"), TsMs: 0},
		{Kind: storage.KindMove, Notation: strp("R"), TsMs: 100},
		{Kind: storage.KindSlice, TsMs: 900},
		{Kind: storage.KindCube, TsMs: 1000},
		{Kind: storage.KindMove, Notation: strp("R'"), TsMs: 1100, Undone: true},
	}
	marks := []storage.PhaseMark{{PhaseKey: "face", TsMs: 500}}

	sum := Summarize(s, records, marks)
	if sum.TotalActions != 4 || sum.Undone != 1 {
		t.Errorf("actions = %d undone = %d, want 4 and 1", sum.TotalActions, sum.Undone)
	}
	if sum.NamedMoves != 2 || sum.SliceDrags != 1 || sum.CubeTurns != 1 {
		t.Errorf("kinds = %d/%d/%d", sum.NamedMoves, sum.SliceDrags, sum.CubeTurns)
	}
	if sum.OptimizedMoves != 2 {
		t.Errorf("optimized = %d, want 2", sum.OptimizedMoves)
	}
	if sum.LongestPauseMs != 800 {
		t.Errorf("longest pause = %d, want 800", sum.LongestPauseMs)
	}
	if sum.APS != 2 {
		t.Errorf("APS = %f, want 2", sum.APS)
	}
	if sum.FaceCounts["R"] != 1 || sum.FaceCounts["F"] != 1 {
		t.Errorf("face counts = %v", sum.FaceCounts)
	}
	if len(sum.Phases) != 1 || sum.Scramble != "F R" {
		t.Errorf("phases = %v scramble = %q", sum.Phases, sum.Scramble)
	}
}
