package cmd

import (
	"fmt"
	"time"

	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/pkg/analysis"
	"github.com/philipparndt/showcase/pkg/render"
	"github.com/spf13/cobra"
)

var (
	simulateDuration time.Duration
	simulateDragAt   time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <file>",
	Short: "Run the choreography headless and print mode transitions",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVarP(&simulateDuration, "duration", "d", 30*time.Second, "simulated time")
	simulateCmd.Flags().DurationVar(&simulateDragAt, "drag-at", 0, "simulate a short drag at this time")
	rootCmd.AddCommand(simulateCmd)
}

type discard struct{}

func (discard) Draw(render.Scene) {}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := app.LoadFile(cmd.Context(), args[0], nil)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	d := app.NewDriver(cfg, discard{}, newLogger())
	d.Show(app.Prepare(m, cfg.Scene.FitSize), 0)

	step := cfg.FrameInterval()
	dragged := false

	fmt.Printf("%10s  %-12s  %s\n", "time", "mode", "camera")
	for now := time.Duration(0); now <= simulateDuration; now += step {
		if simulateDragAt > 0 && !dragged && now >= simulateDragAt {
			dragged = true
			d.Orbit().BeginDrag()
			d.Orbit().EndDrag()
			fmt.Printf("%10s  %-12s  drag\n", fmtTime(now), d.Machine().Mode())
		}

		d.Tick(now)

		if f := d.LastFrame(); f.Transitioned {
			fmt.Printf("%10s  %-12s  %s\n", fmtTime(now), f.Mode, analysis.FormatVector(f.Pose.CameraPosition))
		}
	}
	return nil
}

func fmtTime(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
