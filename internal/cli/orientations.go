package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie/internal/cube"
	"github.com/SeamusWaldron/cubie/internal/quat"
)

var orientationsCmd = &cobra.Command{
	Use:   "orientations",
	Short: "List the 24 orientations the puzzle snaps to",
	RunE:  runOrientations,
}

func init() {
	rootCmd.AddCommand(orientationsCmd)
}

func runOrientations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFRONT\tTOP\tX\tY\tZ\tW")
	for i, p := range quat.Poses() {
		q, _ := p.Orientation()
		fmt.Fprintf(w, "%d\t%s (%s)\t%s (%s)\t%s\t%s\t%s\t%s\n",
			i+1,
			p.Front, cube.FaceColor(p.Front),
			p.Top, cube.FaceColor(p.Top),
			component(q.X), component(q.Y), component(q.Z), component(q.W))
	}
	return w.Flush()
}

// component formats a quaternion component, folding -0 into 0.
func component(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0
	}
	return fmt.Sprintf("%.4f", v)
}
