// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// vitals is a terminal dashboard for live system metrics: CPU, memory,
// disk, network, temperature, fan, and battery readings polled from
// the local machine at a fixed cadence.
//
// Two modes of operation:
//
// Dashboard mode (default): a full-screen TUI with a searchable,
// categorized metric list, a detail pane with session statistics and
// threshold context, and keyboard/mouse control over the poll
// schedule. Values that cross a threshold are highlighted and
// collected on the Alerts tab.
//
// One-shot mode (--once): polls a single snapshot, prints it to
// stdout as a severity-annotated table grouped by category, and
// exits. Suitable for scripts and quick checks over SSH.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/config"
	"github.com/sysvitals/vitals/lib/dashui"
	"github.com/sysvitals/vitals/lib/poller"
	"github.com/sysvitals/vitals/lib/provider"
	"github.com/sysvitals/vitals/lib/tui"
	"github.com/sysvitals/vitals/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var intervalFlag string
	var themeFlag string
	var thresholdsPath string
	var logOutput string
	var once bool

	flagSet := pflag.NewFlagSet("vitals", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&intervalFlag, "interval", "", "poll interval, e.g. 2s or 500ms (overrides config)")
	flagSet.StringVar(&themeFlag, "theme", "", "color theme: dark, light, or auto (overrides config)")
	flagSet.StringVar(&thresholdsPath, "thresholds", "", "path to JSONC threshold rules (overrides config)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to status bar display)")
	flagSet.BoolVar(&once, "once", false, "poll one snapshot, print it as a table, and exit")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other flag errors.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("vitals")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	args := flagSet.Args()
	if len(args) > 0 {
		return Validation("unexpected argument: %s", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Flags override the config file.
	if intervalFlag != "" {
		cfg.Interval = intervalFlag
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	if thresholdsPath != "" {
		cfg.Thresholds = thresholdsPath
	}
	if logOutput != "" {
		cfg.Logging.Output = logOutput
	}
	if err := cfg.Validate(); err != nil {
		return Validation("invalid configuration: %w", err)
	}

	rules, err := loadRules(cfg.Thresholds)
	if err != nil {
		return err
	}

	if once {
		return runOnce(cfg, rules)
	}

	interval, err := cfg.PollInterval()
	if err != nil {
		return Validation("invalid configuration: %w", err)
	}
	return runDashboard(cfg, rules, interval)
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `vitals: live system metrics dashboard for the terminal.

Polls CPU, memory, disk, network, temperature, fan, and battery
readings from the local machine and renders them as a searchable,
categorized dashboard. Values that cross a threshold are highlighted
and collected on the Alerts tab.

Configuration is read from the file named by --config or the
VITALS_CONFIG environment variable; without either, built-in defaults
apply. Flags override the file.

Usage:
  vitals [flags]

Examples:
  # Open the dashboard with defaults
  vitals

  # Poll twice a second with the light palette
  vitals --interval 500ms --theme light

  # Use custom thresholds and keep a debug log
  vitals --thresholds rules.jsonc --log-output /tmp/vitals.log

  # Print one snapshot and exit
  vitals --once

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// loadConfig resolves the config file from the --config flag or the
// environment. A missing flag and environment variable means the
// built-in defaults; a named file that does not exist is an error.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv(config.EnvVar)
	}
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound("config file %s does not exist", path).
				WithHint("Pass --config <path> or set " + config.EnvVar + ". Without either, built-in defaults apply.")
		}
		return nil, Validation("%w", err)
	}
	return cfg, nil
}

// loadRules builds the threshold rule set. File rules take precedence
// over the built-ins, which stay as a fallback for metrics the file
// does not cover.
func loadRules(path string) (alert.RuleSet, error) {
	if path == "" {
		return alert.Defaults(), nil
	}
	loaded, err := alert.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NotFound("threshold file %s does not exist", path)
		}
		return nil, Validation("%w", err)
	}
	if issues := alert.Validate(loaded); len(issues) > 0 {
		return nil, Validation("invalid threshold rules in %s:\n  %s", path, strings.Join(issues, "\n  "))
	}
	return append(loaded, alert.Defaults()...), nil
}

// runDashboard starts the poll loop and runs the full-screen dashboard
// until the user quits or a signal arrives.
//
// Background logging (from the provider's collectors and the poller)
// is routed through a TUILogHandler that surfaces warnings and errors
// in the status bar instead of writing to stderr (which would corrupt
// the alt-screen display). An optional file logger captures all
// records to a JSON file for post-mortem debugging.
func runDashboard(cfg *config.Config, rules alert.RuleSet, interval time.Duration) error {
	theme, ok := tui.ThemeByName(cfg.Theme)
	if !ok {
		return Validation("unknown theme %q (want dark, light, or auto)", cfg.Theme)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tuiHandler := dashui.NewTUILogHandler(slog.LevelWarn)

	var logger *slog.Logger
	if cfg.Logging.Output != "" {
		fileHandler, fileCloser, err := openFileLogHandler(cfg.Logging.Output)
		if err != nil {
			return Validation("cannot open log file %s: %w", cfg.Logging.Output, err)
		}
		defer fileCloser()
		logger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		logger = slog.New(tuiHandler)
	}

	source := provider.NewSystem(logger)
	defer source.Close()

	metrics := poller.New(source, poller.Options{
		Interval: interval,
		Logger:   logger,
	})
	go metrics.Run(ctx)

	model := dashui.NewModel(metrics)
	model.SetTheme(theme)
	model.SetRules(rules)
	model.SetSplitRatio(cfg.UI.SplitRatio)
	model.SetDisabledCategories(cfg.Categories.Disabled)
	model.SetCollapsedCategories(cfg.UI.Collapsed)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	tuiHandler.SetProgram(program)

	// A signal must end the program loop gracefully so the alt screen
	// is restored; quitting normally cancels ctx via the deferred stop,
	// which ends the poll loop.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return Internal("dashboard terminated: %w", err)
	}
	return nil
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
