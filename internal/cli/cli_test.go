package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/analysis"
	"github.com/SeamusWaldron/cubie/internal/recorder"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

// resetFlags restores every flag to its default, since cobra keeps values
// between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApply(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := run(t, "apply", "F")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Moves: F", "Phase: face", "Solved: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "apply", "R", "U", "U_", "R'")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Solved: true") || !strings.Contains(out, "Phase: complete") {
		t.Errorf("inverse sequence should solve the puzzle:\n%s", out)
	}
}

func TestApplyInvalidMove(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := run(t, "apply", "R2"); !errors.Is(err, cubie.ErrInvalidMove) {
		t.Errorf("err = %v, want ErrInvalidMove", err)
	}
}

func TestShuffleSeedIsDeterministic(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var results [2]result
	for i := range results {
		out, err := run(t, "shuffle", "-n", "12", "--seed", "7", "--json")
		if err != nil {
			t.Fatal(err)
		}
		if err := json.Unmarshal([]byte(out), &results[i]); err != nil {
			t.Fatalf("bad JSON: %v\n%s", err, out)
		}
	}
	if results[0].Moves != results[1].Moves || results[0].Net != results[1].Net {
		t.Errorf("same seed gave different shuffles: %q vs %q", results[0].Moves, results[1].Moves)
	}
	moves, err := cubie.ParseMoves(results[0].Moves)
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 12 {
		t.Errorf("got %d moves, want 12", len(moves))
	}
}

func TestOrientations(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	out, err := run(t, "orientations")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 25 {
		t.Errorf("got %d lines, want header plus 24", len(lines))
	}
}

func recordSession(t *testing.T, path, notation string) string {
	t.Helper()
	db, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	session := recorder.NewSession(db, nil, nil)
	id, err := session.Start("test", version)
	if err != nil {
		t.Fatal(err)
	}
	h := newHeadless()
	session.Attach(h.machine, h.tracker)
	if err := h.machine.QueueNotation(notation); err != nil {
		t.Fatal(err)
	}
	if err := h.settle(); err != nil {
		t.Fatal(err)
	}
	if err := session.End(); err != nil {
		t.Fatal(err)
	}
	if err := session.Err(); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cubie.db")
	id := recordSession(t, path, "R U R'")

	out, err := run(t, "history", "--db", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, id[:8]) || !strings.Contains(out, "3 actions") {
		t.Errorf("history list:\n%s", out)
	}

	out, err = run(t, "history", "show", "--last", "--json", "--db", path)
	if err != nil {
		t.Fatal(err)
	}
	var summary analysis.SessionSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if summary.SessionID != id || summary.NamedMoves != 3 || summary.FaceCounts["R"] != 2 {
		t.Errorf("summary = %+v", summary)
	}

	out, err = run(t, "history", "replay", id, "--db", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Moves: R U R'") || !strings.Contains(out, "Solved: false") {
		t.Errorf("replay output:\n%s", out)
	}

	if _, err := run(t, "history", "delete", id, "--db", path); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "history", "--db", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No sessions recorded") {
		t.Errorf("after delete:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "cubie.db")

	out, err := run(t, "status", "--db", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Database: " + path, "Schema version: 2", "Total sessions: 0", "No unfinished session"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}
