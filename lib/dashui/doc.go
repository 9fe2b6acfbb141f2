// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the vitals dashboard TUI: a live, filterable
// view of system metrics rendered with bubbletea.
//
// The dashboard is a split-pane layout. The left pane lists metrics
// grouped by category with collapsible headers, inline gauges, and
// per-metric sparklines; the right pane shows detail for the selected
// metric (session statistics, a full-width sparkline, the threshold
// rule in effect, and a description for known metric names). Two tabs
// switch between the full overview and an alerts-only view.
//
// Data arrives through the [Source] interface, normally backed by a
// poller. The model re-arms a blocking listen command after every
// received update, so snapshots flow through bubbletea's message loop
// without any goroutine of this package's own. Optional source
// capabilities (pause, refresh, interval control) are discovered by
// type assertion and wired to keys when present.
package dashui
