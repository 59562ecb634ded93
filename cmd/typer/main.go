// cmd/typer/main.go
package main

import (
	"flag"
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"

	"github.com/aleontiev/vue-typer/internal/app"
	"github.com/aleontiev/vue-typer/internal/config"
	"github.com/aleontiev/vue-typer/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("typer %s\n", version)
		os.Exit(0)
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Positional arguments become text items, taking precedence over
	// config and the -text flag.
	if flag.NArg() > 0 {
		cfg.Typer.Text = args
	}
	if len(cfg.Typer.Text) == 0 {
		cfg.Typer.Text = []string{config.DefaultText}
	}

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogFileName
	}
	if logPath == "-" {
		logger.InitWithConfig(cfg.Logger, os.Stderr)
	} else {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			stlog.Fatalf("Failed to open log file '%s': %v", logPath, err)
		}
		defer logFile.Close()
		logger.InitWithConfig(cfg.Logger, logFile)
	}

	logger.Infof("Starting typer %s...", version)
	logger.Debugf("Text items: %d, repeat: %d, erase style: %s",
		len(cfg.Typer.Text), cfg.Typer.Repeat, cfg.Typer.EraseStyle)

	// --- Create and Run App ---
	typerApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		stlog.Fatalf("Error initializing application: %v", err)
	}

	if err := typerApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("typer finished.")
}
