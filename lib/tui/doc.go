// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the vitals dashboard. Built on bubbletea (Elm architecture), these
// components handle common patterns: themes keyed to metric severity,
// gauges and sparklines, fuzzy match scoring, dropdown and modal
// overlays, threshold-crossing flash animation, and ANSI-aware text
// manipulation.
//
// The dashboard owns its data source, layout, and domain rendering;
// this package keeps the look consistent: same palette, same overlay
// mechanics, same keyboard conventions.
package tui
