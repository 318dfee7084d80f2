package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/metrics"
	"github.com/SeamusWaldron/cubie/internal/recorder"
	"github.com/SeamusWaldron/cubie/internal/tui"
)

var (
	playShuffle   int
	playStabilize time.Duration
	playMetrics   string
	playNotes     string
	playNoRecord  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the puzzle in an interactive TUI",
	Long: `Start the interactive puzzle.

Mouse:
  drag a center     - turn the whole puzzle
  drag an edge      - turn the slice under the pointer
  drag a corner

Keyboard shortcuts:
  f b r l u d       - clockwise face turn
  F B R L U D       - counter-clockwise face turn
  z / Backspace     - undo the last action
  s                 - shuffle
  n                 - reset to solved
  q / Esc           - quit

Every action is journaled to the database unless --no-record is given.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntVarP(&playShuffle, "shuffle", "n", 0, "Moves queued by the shuffle key (default 20)")
	playCmd.Flags().DurationVar(&playStabilize, "stabilize", 0, "Baseline snap duration (default 300ms)")
	playCmd.Flags().StringVar(&playMetrics, "metrics", "", "Serve Prometheus metrics on this address, e.g. :9090")
	playCmd.Flags().StringVar(&playNotes, "notes", "", "Notes stored with the session")
	playCmd.Flags().BoolVar(&playNoRecord, "no-record", false, "Do not journal the session")
}

func runPlay(cmd *cobra.Command, args []string) error {
	stateFile, err := loadState()
	if err != nil {
		return err
	}
	state := stateFile.State()

	var opts []cubie.Option
	if d := playDuration(state); d > 0 {
		opts = append(opts, cubie.WithStabilizeDuration(d))
	}
	machine := cubie.New(opts...)
	tracker := cubie.NewTracker(machine)

	modelOpts := []tui.Option{
		tui.WithTracker(tracker),
		tui.WithShuffleCount(playShuffleCount(state)),
	}

	if !playNoRecord {
		db, err := openDB(stateFile)
		if err != nil {
			return err
		}
		defer db.Close()

		if stateFile.HasActiveSession() {
			debugf(cmd, "Abandoning unfinished session %s", state.ActiveSessionID)
		}

		logger := recorder.NewSessionLogger()
		session := recorder.NewSession(db, stateFile, logger)
		sessionID, err := session.Start(playNotes, version)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		logDir, err := recorder.DefaultLogDir()
		if err == nil {
			err = logger.Start(logDir, sessionID)
		}
		if err != nil {
			// logging is optional
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not start logging: %v\n", err)
		}
		defer logger.Close()

		session.Attach(machine, tracker)
		defer func() {
			if err := session.End(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to end session: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s saved (%d actions)\n", sessionID, session.ActionCount())
		}()

		modelOpts = append(modelOpts, tui.WithSession(session), tui.WithLogger(logger))
	}

	addr := playMetrics
	if addr == "" {
		addr = state.MetricsAddr
	}
	if addr != "" {
		registry := prometheus.NewRegistry()
		collector, err := metrics.New(registry)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		collector.Observe(machine)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := metrics.Listen(ctx, addr, registry); err != nil {
				debugf(cmd, "metrics server: %v", err)
			}
		}()
		debugf(cmd, "Serving metrics on %s/metrics", addr)
	}

	model := tui.New(machine, modelOpts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

func playDuration(state recorder.AppState) time.Duration {
	if playStabilize > 0 {
		return playStabilize
	}
	return time.Duration(state.StabilizeMs) * time.Millisecond
}

func playShuffleCount(state recorder.AppState) int {
	if playShuffle > 0 {
		return playShuffle
	}
	return state.ShuffleCount
}
