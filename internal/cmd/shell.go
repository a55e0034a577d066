package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/fbrowse/internal/app"
	"github.com/kk-code-lab/fbrowse/internal/logger"
)

// runShell runs the interactive browser and returns the directory it ended in.
func runShell(opts *globalOptions, dir string) (string, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return "", err
	}

	// The browser owns the terminal, so its log goes to a file.
	logPath := cfg.Log.File
	if logPath == "" {
		logPath = logger.DefaultFilePath()
	}
	log, closer, err := logger.OpenFile(logPath, cfg.Log.Level)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		_ = closer.Close()
	}()

	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(cfg, log, dir)
	if err != nil {
		return "", fmt.Errorf("initializing browser: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	log.Infof("browsing %s", app.CurrentPath())
	app.Run()
	return app.CurrentPath(), nil
}
