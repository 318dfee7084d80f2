// Package cli implements the command-line interface for cubie.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie/internal/recorder"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubie",
	Short: "Interactive 3x3x3 puzzle in the terminal",
	Long: `cubie - an interactive 3x3x3 twisty puzzle for the terminal.

Drag the puzzle with the mouse to turn it, drag edges and corners to turn
slices, or use the keyboard for face turns. Play sessions are journaled to
a local database for later review.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubie/cubie.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadState loads the state file, returning an empty state when it does
// not exist yet.
func loadState() (*recorder.StateFile, error) {
	sf, err := recorder.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return sf, nil
}

// resolveDBPath picks the database path from the flag, then the state
// file, then the default location.
func resolveDBPath(sf *recorder.StateFile) string {
	if dbPath != "" {
		return dbPath
	}
	if sf != nil {
		return sf.DBPath()
	}
	return ""
}

// openDB opens the database and applies pending migrations.
func openDB(sf *recorder.StateFile) (*storage.DB, error) {
	path := resolveDBPath(sf)
	var db *storage.DB
	var err error

	if path == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(path)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}

func debugf(cmd *cobra.Command, format string, args ...any) {
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
