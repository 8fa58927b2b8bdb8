// Package main implements the tzline CLI: a one-shot comparison of one reference
// timezone against any number of others.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/tzline/pkg/client"
	"github.com/codeGROOVE-dev/tzline/pkg/config"
	"github.com/codeGROOVE-dev/tzline/pkg/daybar"
	"github.com/codeGROOVE-dev/tzline/pkg/registry"
	"github.com/codeGROOVE-dev/tzline/pkg/session"
	"github.com/codeGROOVE-dev/tzline/pkg/tzconvert"
	"github.com/fatih/color"
)

var (
	hour       = flag.Float64("hour", -1, "Reference hour in the first timezone, e.g. 13.5 (negative means now)")
	configPath = flag.String("config", "", "YAML config file (or set TZLINE_CONFIG)")
	width      = flag.Int("width", 0, "Strip width in columns (default from config)")
	list       = flag.Bool("list", false, "List every known timezone")
	search     = flag.String("search", "", "Search timezones by city, name or abbreviation")
	serverURL  = flag.String("server", "", "Compare through a tzline server instead of locally (or set TZLINE_SERVER)")
	jsonOut    = flag.Bool("json", false, "Print the comparison as JSON")
	noColor    = flag.Bool("no-color", false, "Disable colored output")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <timezone-id>...\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "The first timezone is the reference. With no ids, the configured defaults are used.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println("tzline CLI v1.0.0")
		return
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *noColor {
		color.NoColor = true
	}
	if *configPath == "" {
		*configPath = os.Getenv("TZLINE_CONFIG")
	}
	if *serverURL == "" {
		*serverURL = os.Getenv("TZLINE_SERVER")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Error("Invalid environment", "error", err)
		os.Exit(1)
	}

	opts := runOptions{
		ids:    flag.Args(),
		width:  cfg.BarWidth,
		server: *serverURL,
		json:   *jsonOut,
		now:    time.Now,
	}
	if *width > 0 {
		opts.width = *width
	}
	if *hour >= 0 {
		opts.hour = hour
	}
	if len(opts.ids) == 0 {
		opts.ids = cfg.Timezones
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reg := registry.Default()
	switch {
	case *list:
		printTimezones(os.Stdout, reg.All())
	case *search != "":
		matches := reg.Search(*search, 0)
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No timezones match %q\n", *search)
			os.Exit(1)
		}
		printTimezones(os.Stdout, matches)
	default:
		if err := compare(ctx, os.Stdout, reg, opts, logger); err != nil {
			cancel()
			logger.Error("Comparison failed", "error", err)
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

type runOptions struct {
	hour   *float64
	now    func() time.Time
	server string
	ids    []string
	width  int
	json   bool
}

// compare prints the comparison of opts.ids, computed locally or by a server.
// Unknown identifiers are reported and skipped rather than failing the whole run.
func compare(ctx context.Context, w io.Writer, reg *registry.Registry, opts runOptions, logger *slog.Logger) error {
	var known []string
	for _, id := range opts.ids {
		if _, err := reg.Lookup(id); err != nil {
			logger.Warn("skipping unknown timezone", "id", id)
			suggestion := ""
			if m := reg.Search(id, 1); len(m) > 0 {
				suggestion = fmt.Sprintf(" (did you mean %s?)", m[0].ID)
			}
			fmt.Fprintf(os.Stderr, "unknown timezone %q%s\n", id, suggestion)
			continue
		}
		known = append(known, id)
	}

	var snap session.Snapshot
	if opts.server != "" && len(known) > 0 {
		c := client.New(opts.server, client.WithLogger(logger))
		remote, err := c.Compare(ctx, known, opts.hour)
		if err != nil {
			var apiErr *client.APIError
			if errors.As(err, &apiErr) && apiErr.Body.Details != "" {
				return fmt.Errorf("server refused %s: %w", apiErr.Body.Details, err)
			}
			return err
		}
		snap = *remote
	} else {
		sopts := []session.Option{
			session.WithTimezones(known...),
			session.WithClock(opts.now),
			session.WithLogger(logger),
		}
		if opts.hour != nil {
			sopts = append(sopts, session.WithHour(*opts.hour))
		}
		snap = session.New(reg, sopts...).Snapshot()
	}

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	_, err := io.WriteString(w, daybar.Render(snap, opts.width))
	return err
}

func printTimezones(w io.Writer, descs []registry.Descriptor) {
	idWidth := 0
	for _, d := range descs {
		idWidth = max(idWidth, len(d.ID))
	}
	bold := color.New(color.Bold)
	for _, d := range descs {
		fmt.Fprintf(w, "%s  %-9s %-5s %s\n",
			bold.Sprint(d.ID+strings.Repeat(" ", idWidth-len(d.ID))),
			tzconvert.FormatOffset(d.Offset),
			d.Abbreviation,
			d.City)
	}
}
