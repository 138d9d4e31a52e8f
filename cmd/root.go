package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/showcase/internal/config"
	"github.com/philipparndt/showcase/version"
	"github.com/spf13/cobra"
)

var (
	configPath string
	presetName string
	debug      bool
	width      int
	height     int
	fps        int
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Automatic camera showcase for a single 3D model",
	Long: `showcase rotates a 3D model, periodically zooms in on a point of interest,
holds, and zooms back out. Dragging the view takes over the camera; the
showcase resumes once you let go. Supports STL, GLB and glTF files.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file (reloaded on change)")
	flags.StringVarP(&presetName, "preset", "p", "", fmt.Sprintf("config preset %v", config.Presets()))
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.IntVar(&width, "width", 0, "output width in pixels")
	flags.IntVar(&height, "height", 0, "output height in pixels")
	flags.IntVar(&fps, "fps", 0, "frames per second")

	_ = rootCmd.RegisterFlagCompletionFunc("preset", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Presets(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func cliFlags() config.Flags {
	return config.Flags{
		Preset: presetName,
		Width:  width,
		Height: height,
		FPS:    fps,
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath, cliFlags())
}
