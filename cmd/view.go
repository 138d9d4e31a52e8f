package cmd

import (
	"path/filepath"

	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/internal/window"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Show the model in a raylib window",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
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

	reloads, stopModel, err := watchModel(args[0], logger)
	if err != nil {
		return err
	}
	defer stopModel()

	d := app.NewDriver(cfg, nil, logger)
	d.WatchConfig(updates)
	d.WatchModel(reloads)
	d.Load(args[0])

	window.Run(d, "Showcase - "+filepath.Base(args[0]))
	return nil
}
