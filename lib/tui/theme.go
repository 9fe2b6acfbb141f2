// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/sysvitals/vitals/lib/alert"
)

// Theme defines the color palette and visual properties for the
// vitals dashboard. All colors use lipgloss ANSI 256-color codes for
// broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the severity colors that recur across the dashboard: row
// gauges, alert badges, and threshold flashes all key off the same
// three severities.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Severity colors for thresholds and alerts.
	SeverityOK   lipgloss.Color
	SeverityWarn lipgloss.Color
	SeverityCrit lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent for focused elements: scrollbar thumb, active tab.
	Accent lipgloss.Color

	// Sparkline foreground.
	Sparkline lipgloss.Color

	// Flash accents: background tint for rows that just crossed a
	// severity threshold.
	FlashWarn lipgloss.Color
	FlashCrit lipgloss.Color

	// Filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Overlays: dropdown menus and modals.
	TooltipForeground lipgloss.Color
	TooltipBackground lipgloss.Color
}

// SeverityColor returns the color for a severity level. Unknown
// values return NormalText.
func (theme Theme) SeverityColor(severity alert.Severity) lipgloss.Color {
	switch severity {
	case alert.SeverityOK:
		return theme.SeverityOK
	case alert.SeverityWarn:
		return theme.SeverityWarn
	case alert.SeverityCrit:
		return theme.SeverityCrit
	default:
		return theme.NormalText
	}
}

// DarkTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background (the common case for
// development environments and tmux sessions).
var DarkTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeverityOK:   lipgloss.Color("114"), // green
	SeverityWarn: lipgloss.Color("220"), // yellow/amber
	SeverityCrit: lipgloss.Color("196"), // bright red

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	Accent: lipgloss.Color("75"), // blue

	Sparkline: lipgloss.Color("73"), // muted teal

	FlashWarn: lipgloss.Color("58"), // dark amber background tint
	FlashCrit: lipgloss.Color("52"), // dark red background tint

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber (matches FlashWarn)

	TooltipForeground: lipgloss.Color("252"), // same as NormalText
	TooltipBackground: lipgloss.Color("237"), // slightly lighter than terminal background
}

// LightTheme mirrors DarkTheme for terminals with a light background.
var LightTheme = Theme{
	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("253"),
	SelectedForeground: lipgloss.Color("16"),

	SeverityOK:   lipgloss.Color("28"),  // green
	SeverityWarn: lipgloss.Color("166"), // orange (amber washes out on white)
	SeverityCrit: lipgloss.Color("160"), // red

	HeaderForeground: lipgloss.Color("16"),
	BorderColor:      lipgloss.Color("250"),
	HelpText:         lipgloss.Color("247"),

	Accent: lipgloss.Color("26"), // blue

	Sparkline: lipgloss.Color("30"), // teal

	FlashWarn: lipgloss.Color("222"), // light amber background tint
	FlashCrit: lipgloss.Color("217"), // light red background tint

	SearchHighlightBackground: lipgloss.Color("222"),

	TooltipForeground: lipgloss.Color("235"),
	TooltipBackground: lipgloss.Color("254"),
}

// DetectTheme picks DarkTheme or LightTheme by querying the
// terminal's background color. Terminals that cannot answer the query
// (no TTY, redirected output) report a dark background, so DarkTheme
// is the effective default.
func DetectTheme() Theme {
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return DarkTheme
	}
	return LightTheme
}

// ThemeByName resolves a configured theme name. "auto" (and "")
// detect from the terminal; "dark" and "light" force a palette.
// Returns false for unrecognized names.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "auto":
		return DetectTheme(), true
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	default:
		return Theme{}, false
	}
}
