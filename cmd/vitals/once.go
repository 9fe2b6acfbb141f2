// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/config"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/provider"
)

// onceTimeout bounds the single poll so a hung measurement source
// cannot wedge a scripted invocation.
const onceTimeout = 10 * time.Second

// runOnce polls one snapshot and prints it to stdout as a plain table,
// no TUI. Collector diagnostics go to stderr.
func runOnce(cfg *config.Config, rules alert.RuleSet) error {
	level, err := cfg.LogLevel()
	if err != nil {
		return Validation("invalid configuration: %w", err)
	}
	logger := newCommandLogger(level)

	source := provider.NewSystem(logger)
	defer source.Close()

	ctx, cancel := context.WithTimeout(context.Background(), onceTimeout)
	defer cancel()

	snapshot, err := source.Poll(ctx)
	if err != nil {
		return Transient("reading system metrics: %w", err)
	}

	printSnapshot(os.Stdout, snapshot, rules, disabledSet(cfg.Categories.Disabled))
	return nil
}

// newCommandLogger creates the stderr logger for one-shot mode. When
// stderr is a terminal, uses slog.TextHandler for human-readable
// output. When stderr is piped or redirected (cron, scripts, CI), uses
// slog.JSONHandler for machine-parseable output.
func newCommandLogger(level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}

// disabledSet resolves configured category names into a lookup set.
// Unknown names were already rejected by config validation.
func disabledSet(names []string) map[metric.Category]bool {
	set := make(map[metric.Category]bool, len(names))
	for _, name := range names {
		if category, ok := metric.CategoryByName(name); ok {
			set[category] = true
		}
	}
	return set
}

// printSnapshot renders one snapshot grouped by category. Values that
// cross a threshold carry a [warn] or [crit] marker so the output
// greps cleanly.
func printSnapshot(w io.Writer, snapshot *metric.Snapshot, rules alert.RuleSet, disabled map[metric.Category]bool) {
	nameWidth := 0
	count := 0
	for _, value := range snapshot.Values {
		if disabled[value.Category] {
			continue
		}
		count++
		if len(value.Name) > nameWidth {
			nameWidth = len(value.Name)
		}
	}

	fmt.Fprintf(w, "system metrics at %s (%d values)\n",
		snapshot.Taken.Format("2006-01-02 15:04:05"), count)

	grouped := snapshot.ByCategory()
	for _, category := range metric.Categories() {
		if disabled[category] {
			continue
		}
		values := grouped[category]
		if len(values) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", category)
		for _, value := range values {
			marker := ""
			if severity, _, ok := rules.Classify(value); ok && severity > alert.SeverityOK {
				marker = "  [" + severity.String() + "]"
			}
			fmt.Fprintf(w, "  %-*s  %s%s\n", nameWidth, value.Name, value.Display(), marker)
		}
	}
}
