package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie/internal/analysis"
	"github.com/SeamusWaldron/cubie/internal/recorder"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded play sessions",
	Long: `List recorded play sessions, most recent first.

Examples:
  cubie history
  cubie history --limit 5
  cubie history show --last
  cubie history replay <session_id>`,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [session_id]",
	Short: "Show the summary of a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyReplayCmd = &cobra.Command{
	Use:   "replay [session_id]",
	Short: "Rebuild the final puzzle of a session from its journal",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryReplay,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <session_id>",
	Short: "Delete a session and its actions",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyLogsCmd = &cobra.Command{
	Use:   "logs [log-file]",
	Short: "List session logs or show the events of one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryLogs,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum sessions to list")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&historyLast, "last", false, "Use the most recent session")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")

	historyCmd.AddCommand(historyReplayCmd)
	historyReplayCmd.Flags().BoolVar(&historyLast, "last", false, "Use the most recent session")
	historyReplayCmd.Flags().BoolVar(&historyJSON, "json", false, "Output JSON")

	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyLogsCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openCommandDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := storage.NewSessionRepository(db).List(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded")
		return nil
	}

	actions := storage.NewActionRepository(db)
	for _, s := range sessions {
		count, err := actions.CountBySession(s.SessionID)
		if err != nil {
			return err
		}
		duration := "in progress"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}
		fmt.Fprintf(out, "%s  %s  %4d actions  %s\n",
			s.SessionID[:8], s.StartedAt.Local().Format("2006-01-02 15:04"), count, duration)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openCommandDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := pickSession(db, args)
	if err != nil {
		return err
	}

	records, err := storage.NewActionRepository(db).GetBySession(session.SessionID)
	if err != nil {
		return err
	}
	marks, err := storage.NewPhaseRepository(db).GetPhaseMarks(session.SessionID)
	if err != nil {
		return err
	}
	summary := analysis.Summarize(*session, records, marks)

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintf(out, "Session: %s\n", summary.SessionID)
	fmt.Fprintf(out, "Started: %s\n", summary.StartedAt)
	if summary.EndedAt != "" {
		fmt.Fprintf(out, "Duration: %s\n", formatDuration(time.Duration(summary.DurationMs)*time.Millisecond))
	}
	if summary.Scramble != "" {
		fmt.Fprintf(out, "Scramble: %s\n", summary.Scramble)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Actions: %d (%d undone)\n", summary.TotalActions, summary.Undone)
	if summary.Resets > 0 {
		fmt.Fprintf(out, "Resets: %d\n", summary.Resets)
	}
	fmt.Fprintf(out, "  Puzzle turns: %d\n", summary.CubeTurns)
	fmt.Fprintf(out, "  Slice drags:  %d\n", summary.SliceDrags)
	fmt.Fprintf(out, "  Face moves:   %d (%d after merging)\n", summary.NamedMoves, summary.OptimizedMoves)
	fmt.Fprintf(out, "Actions/sec: %.2f\n", summary.APS)
	fmt.Fprintf(out, "Longest pause: %s\n", formatDuration(time.Duration(summary.LongestPauseMs)*time.Millisecond))

	if len(summary.FaceCounts) > 0 {
		faces := make([]string, 0, len(summary.FaceCounts))
		for f := range summary.FaceCounts {
			faces = append(faces, f)
		}
		sort.Strings(faces)
		parts := make([]string, 0, len(faces))
		for _, f := range faces {
			parts = append(parts, fmt.Sprintf("%s:%d", f, summary.FaceCounts[f]))
		}
		fmt.Fprintf(out, "Faces: %s\n", strings.Join(parts, " "))
	}

	if len(summary.Phases) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Phases:")
		for _, p := range summary.Phases {
			fmt.Fprintf(out, "  %-12s %s\n", p.PhaseKey, formatDuration(time.Duration(p.TsMs)*time.Millisecond))
		}
	}
	return nil
}

func runHistoryReplay(cmd *cobra.Command, args []string) error {
	db, err := openCommandDB()
	if err != nil {
		return err
	}
	defer db.Close()

	session, err := pickSession(db, args)
	if err != nil {
		return err
	}
	records, err := storage.NewActionRepository(db).GetBySession(session.SessionID)
	if err != nil {
		return err
	}

	h := newHeadless()
	if err := recorder.Replay(h.machine, *session, records); err != nil {
		return err
	}
	debugf(cmd, "Replayed %d actions", len(h.machine.History()))

	moves, err := storage.NewActionRepository(db).Moves(session.SessionID)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), h.result(analysis.Simplify(moves)), historyJSON)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	db, err := openCommandDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewSessionRepository(db).Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
	return nil
}

func runHistoryLogs(cmd *cobra.Command, args []string) error {
	logDir, err := recorder.DefaultLogDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		files, err := filepath.Glob(filepath.Join(logDir, "session_*.jsonl"))
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(out, "No logs in %s\n", logDir)
			return nil
		}
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
		for _, f := range files {
			fmt.Fprintln(out, filepath.Base(f))
		}
		return nil
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(logDir, path)
		}
	}
	log, err := recorder.LoadSessionLog(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session: %s\n", log.SessionID)
	fmt.Fprintf(out, "Created: %s\n", log.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "Events: %d\n\n", len(log.Events))
	for _, e := range log.Events {
		detail := e.Description
		switch e.EventType {
		case recorder.LogEventKeyPress:
			detail = e.KeyPress
		case recorder.LogEventState:
			detail = e.From + " -> " + e.To
		case recorder.LogEventPhase:
			detail = e.Phase
		}
		fmt.Fprintf(out, "%8dms  %-12s %s\n", e.ElapsedMs, e.EventType, detail)
	}
	return nil
}

func openCommandDB() (*storage.DB, error) {
	stateFile, err := loadState()
	if err != nil {
		return nil, err
	}
	return openDB(stateFile)
}

// pickSession resolves the session named by args, or the most recent one
// with --last or no argument.
func pickSession(db *storage.DB, args []string) (*storage.Session, error) {
	repo := storage.NewSessionRepository(db)
	var session *storage.Session
	var err error
	if len(args) == 0 || historyLast {
		session, err = repo.GetLast()
	} else {
		session, err = repo.Get(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("no session found")
	}
	return session, nil
}
