package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and session information",
	Long:  `Display the database location, schema version, recorded sessions and any session left open.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := loadState()
	if err != nil {
		return err
	}
	state := stateFile.State()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "cubie Status")
	fmt.Fprintln(out, "============")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "State file: %s\n", stateFile.Path())

	db, err := openDB(stateFile)
	if err != nil {
		fmt.Fprintf(out, "Database error: %v\n", err)
		return nil
	}
	defer db.Close()

	fmt.Fprintf(out, "Database: %s\n", db.Path())
	if v, err := db.CurrentVersion(); err == nil {
		fmt.Fprintf(out, "Schema version: %d\n", v)
	}

	sessions, err := storage.NewSessionRepository(db).List(0)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Total sessions: %d\n", len(sessions))
	if len(sessions) > 0 {
		fmt.Fprintf(out, "Last session: %s\n", sessions[0].StartedAt.Local().Format(time.RFC3339))
	}

	fmt.Fprintln(out)
	if state.ActiveSessionID != "" {
		fmt.Fprintf(out, "Unfinished session: %s\n", state.ActiveSessionID)
		fmt.Fprintln(out, "  (It was not ended cleanly; 'cubie history show' still reports it)")
	} else {
		fmt.Fprintln(out, "No unfinished session")
	}
	if state.MetricsAddr != "" {
		fmt.Fprintf(out, "Metrics address: %s\n", state.MetricsAddr)
	}
	return nil
}
