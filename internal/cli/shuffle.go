package cli

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie"
)

var (
	shuffleCount int
	shuffleSeed  uint64
	shuffleJSON  bool
	applyJSON    bool
)

var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Generate a shuffle and print the resulting puzzle",
	Long: `Run a random shuffle on a solved puzzle without the TUI and print the
moves and the resulting net.

Examples:
  cubie shuffle
  cubie shuffle -n 30 --seed 7
  cubie shuffle --json`,
	RunE: runShuffle,
}

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence to a solved puzzle",
	Long: `Apply a sequence of face turns to a solved puzzle and print the result.
Primes may be written as ', ` + "`" + ` or _.

Examples:
  cubie apply "R U R' U'"
  cubie apply F R_ U`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(shuffleCmd)
	shuffleCmd.Flags().IntVarP(&shuffleCount, "count", "n", 20, "Number of moves")
	shuffleCmd.Flags().Uint64Var(&shuffleSeed, "seed", 0, "Random seed (default: random)")
	shuffleCmd.Flags().BoolVar(&shuffleJSON, "json", false, "Output JSON")

	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyJSON, "json", false, "Output JSON")
}

func runShuffle(cmd *cobra.Command, args []string) error {
	var opts []cubie.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, cubie.WithRand(rand.New(rand.NewPCG(shuffleSeed, shuffleSeed))))
	}
	h := newHeadless(opts...)

	moves, err := h.machine.Shuffle(shuffleCount)
	if err != nil {
		return fmt.Errorf("shuffle failed: %w", err)
	}
	if err := h.settle(); err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), h.result(moves), shuffleJSON)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubie.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	h := newHeadless()
	if err := h.machine.Queue(moves...); err != nil {
		return err
	}
	if err := h.settle(); err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), h.result(moves), applyJSON)
}
