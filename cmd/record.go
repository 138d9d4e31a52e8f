package cmd

import (
	"fmt"
	"time"

	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/internal/record"
	"github.com/spf13/cobra"
)

var (
	recordOut      string
	recordDuration time.Duration
	recordWorkers  int
)

var recordCmd = &cobra.Command{
	Use:   "record <file>",
	Short: "Render the showcase to numbered WebP frames",
	Long: `Render the choreography headless at the configured frame rate and write
one WebP image per frame. One full cycle takes the rotate interval plus the
zoom-in, hold and zoom-out durations.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "frames", "output directory")
	recordCmd.Flags().DurationVarP(&recordDuration, "duration", "d", 0, "length of the recording (default: one full cycle)")
	recordCmd.Flags().IntVarP(&recordWorkers, "workers", "w", 0, "encoder workers (default: number of CPUs)")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	m, err := app.LoadFile(cmd.Context(), args[0], nil)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	duration := recordDuration
	if duration <= 0 {
		duration = cfg.Choreo.RotateInterval + cfg.Choreo.CycleLength()
	}

	d := app.NewDriver(cfg, nil, logger)
	n, err := record.Run(d, app.Prepare(m, cfg.Scene.FitSize), duration, record.Config{
		OutputDir:   recordOut,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Supersample: cfg.Render.Supersample,
		Workers:     recordWorkers,
	}, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d frames to %s\n", n, recordOut)
	return nil
}
