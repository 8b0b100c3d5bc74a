//go:build !cli

package main

import (
	"fmt"
	"os"

	"rsafront/internal/app"
	"rsafront/internal/cli"
	"rsafront/internal/config"
	"rsafront/internal/ui"

	fyneapp "fyne.io/fyne/v2/app"
)

// appID identifies the application to the desktop (preferences, storage).
const appID = "io.github.rsafront"

// run is the GUI+CLI entry point.
// It first checks for CLI subcommands, and if none are found, launches the GUI.
func run() {
	if cli.Execute(version) {
		return
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.SetupLogging(false); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ui.New(fyneapp.NewWithID(appID), version, app.Options{
		Locator:        cfg.Locator(),
		EnginePath:     cfg.Engine.Path,
		ProbeTimeout:   cfg.Engine.ProbeTimeout,
		EncryptTimeout: cfg.Engine.EncryptTimeout,
	}).Run()
}
