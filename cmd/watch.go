package cmd

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/internal/config"
	"github.com/philipparndt/showcase/pkg/watcher"
)

var watchModelFiles bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&watchModelFiles, "watch", false, "reload the model when it or its OpenSCAD dependencies change")
}

// watchModel requests a reload of path whenever one of its source files changes
func watchModel(path string, logger *log.Logger) (<-chan string, func(), error) {
	if !watchModelFiles {
		return nil, func() {}, nil
	}

	files, err := app.SourceFiles(path)
	if err != nil {
		return nil, nil, err
	}

	fw, err := watcher.NewFileWatcher(500*time.Millisecond, logger.WithPrefix("watch"))
	if err != nil {
		return nil, nil, err
	}

	reloads := make(chan string, 1)
	var onChange func(string)
	onChange = func(changed string) {
		logger.Info("model source changed", "path", changed)
		rewatch(fw, path, onChange, logger)
		select {
		case reloads <- path:
		default:
		}
	}
	if err := fw.Watch(files, onChange); err != nil {
		fw.Close()
		return nil, nil, err
	}

	fw.Start()
	logger.Info("watching model", "files", len(files))
	return reloads, func() { fw.Close() }, nil
}

// rewatch re-resolves the source files of path, since an edit may add or drop
// OpenSCAD includes. The previous set stays watched when resolving fails.
func rewatch(fw *watcher.FileWatcher, path string, onChange func(string), logger *log.Logger) {
	files, err := app.SourceFiles(path)
	if err != nil {
		logger.Warn("keeping previous watch set", "err", err)
		return
	}
	if err := fw.RemoveAll(); err != nil {
		logger.Warn("unwatch failed", "err", err)
	}
	if err := fw.Watch(files, onChange); err != nil {
		logger.Error("rewatch failed", "err", err)
		return
	}
	logger.Debug("watching model", "files", len(files))
}

// watchConfig reloads the config file whenever it changes. Invalid edits are
// logged and skipped. The returned stop function closes the watcher.
func watchConfig(logger *log.Logger) (<-chan config.Config, func(), error) {
	if configPath == "" {
		return nil, func() {}, nil
	}

	fw, err := watcher.NewFileWatcher(300*time.Millisecond, logger.WithPrefix("watch"))
	if err != nil {
		return nil, nil, err
	}

	updates := make(chan config.Config, 1)
	err = fw.Watch([]string{configPath}, func(path string) {
		cfg, err := config.Load(path, cliFlags())
		if err != nil {
			logger.Error("config reload failed", "err", err)
			return
		}
		// Only the newest config matters.
		select {
		case <-updates:
		default:
		}
		updates <- cfg
	})
	if err != nil {
		fw.Close()
		return nil, nil, err
	}

	fw.Start()
	logger.Info("watching config", "path", configPath)
	return updates, func() { fw.Close() }, nil
}
