package cmd

import (
	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/internal/gui"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui [file]",
	Short: "Show the model in a desktop window using the software renderer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	updates, stop, err := watchConfig(logger)
	if err != nil {
		return err
	}
	defer stop()

	d := app.NewDriver(cfg, nil, logger)
	d.WatchConfig(updates)
	if len(args) == 1 {
		reloads, stopModel, err := watchModel(args[0], logger)
		if err != nil {
			return err
		}
		defer stopModel()

		d.WatchModel(reloads)
		d.Load(args[0])
	}

	gui.Run(d, "Showcase")
	return nil
}
