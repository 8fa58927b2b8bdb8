// Package main launches the tzline terminal UI.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/codeGROOVE-dev/tzline/pkg/config"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/codeGROOVE-dev/tzline/pkg/tui"
)

var (
	configPath = flag.String("config", "", "YAML config file (or set TZLINE_CONFIG)")
	logFile    = flag.String("log", "", "Write logs to this file (the terminal is owned by the UI)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [timezone-id]...\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("tzline TUI v1.0.0")
		return
	}

	var out io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
			}
		}()
		out = f
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	if *configPath == "" {
		*configPath = os.Getenv("TZLINE_CONFIG")
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ids := flag.Args()
	if len(ids) == 0 {
		ids = cfg.Timezones
	}

	model := tui.New(registry.Default(), logger,
		session.WithTimezones(ids...),
		session.WithFallbackHour(cfg.FallbackHour))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("UI failed", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
