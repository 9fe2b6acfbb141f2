// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal is a centered read-only overlay: a bordered panel with a
// title, scrollable content lines, and a footer hint. The dashboard
// uses it for the help screen.
type Modal struct {
	Title  string
	Footer string

	lines  []string
	scroll int
	theme  Theme
}

// NewModal creates a modal showing the given pre-styled content
// lines. Lines wider than the available inner area are truncated at
// render time, not wrapped.
func NewModal(title, footer string, lines []string, theme Theme) Modal {
	return Modal{
		Title:  title,
		Footer: footer,
		lines:  lines,
		theme:  theme,
	}
}

// ScrollBy moves the content window by delta lines (positive scrolls
// down). The offset is clamped against the content during Render,
// when the visible height is known.
func (modal *Modal) ScrollBy(delta int) {
	modal.scroll += delta
	if modal.scroll < 0 {
		modal.scroll = 0
	}
}

// Modal chrome overhead: 2 columns border + 2 columns padding = 4
// columns horizontal; 2 lines border + 1 title + 1 footer = 4 lines
// vertical. The inner content area gets the remainder.
const (
	modalChromeWidth  = 4
	modalChromeHeight = 4
	// Minimum inner area. Below this the panel is too cramped to read.
	modalMinInnerWidth  = 24
	modalMinInnerHeight = 4
	// Margin between the modal edge and the screen edge, so the user
	// can see the underlying view isn't gone. Collapses to 0 on very
	// small screens.
	modalMargin = 2
)

// Render produces the modal overlay lines for splicing onto the view.
// The panel is sized to its content, clamped to the screen minus a
// margin, and centered. Returns the rendered lines and the anchor
// position (top-left corner in screen coordinates).
func (modal *Modal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	// Width: content-driven. The margin shrinks to zero before the
	// minimum inner area does; the screen edge is the final clamp.
	innerWidth := ansi.StringWidth(modal.Title)
	if width := ansi.StringWidth(modal.Footer); width > innerWidth {
		innerWidth = width
	}
	for _, line := range modal.lines {
		if width := ansi.StringWidth(line); width > innerWidth {
			innerWidth = width
		}
	}
	if innerWidth < modalMinInnerWidth {
		innerWidth = modalMinInnerWidth
	}
	if limit := screenWidth - modalChromeWidth - modalMargin*2; innerWidth > limit && limit >= modalMinInnerWidth {
		innerWidth = limit
	}
	if limit := screenWidth - modalChromeWidth; innerWidth > limit {
		innerWidth = limit
	}
	if innerWidth < 1 {
		innerWidth = 1
	}

	innerHeight := len(modal.lines)
	if innerHeight < modalMinInnerHeight {
		innerHeight = modalMinInnerHeight
	}
	if limit := screenHeight - modalChromeHeight - modalMargin*2; innerHeight > limit && limit >= modalMinInnerHeight {
		innerHeight = limit
	}
	if limit := screenHeight - modalChromeHeight; innerHeight > limit {
		innerHeight = limit
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	// Clamp the scroll offset now that the window height is known.
	maxScroll := len(modal.lines) - innerHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if modal.scroll > maxScroll {
		modal.scroll = maxScroll
	}

	backgroundStyle := lipgloss.NewStyle().
		Background(modal.theme.TooltipBackground)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.theme.HeaderForeground).
		Background(modal.theme.TooltipBackground)

	footerStyle := lipgloss.NewStyle().
		Foreground(modal.theme.FaintText).
		Background(modal.theme.TooltipBackground)

	textStyle := lipgloss.NewStyle().
		Foreground(modal.theme.TooltipForeground).
		Background(modal.theme.TooltipBackground)

	padLine := func(styled string) string {
		width := ansi.StringWidth(styled)
		if width < innerWidth {
			return styled + backgroundStyle.Render(strings.Repeat(" ", innerWidth-width))
		}
		return styled
	}

	title := padLine(titleStyle.Render(TruncateLine(modal.Title, innerWidth)))
	footer := padLine(footerStyle.Render(TruncateLine(modal.Footer, innerWidth)))

	var contentLines []string
	for lineIndex := modal.scroll; lineIndex < modal.scroll+innerHeight; lineIndex++ {
		var rendered string
		if lineIndex < len(modal.lines) {
			rendered = textStyle.Render(TruncateLine(modal.lines[lineIndex], innerWidth))
		}
		contentLines = append(contentLines, padLine(rendered))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		Background(modal.theme.TooltipBackground)

	inner := title + "\n" + strings.Join(contentLines, "\n") + "\n" + footer
	rendered := borderStyle.Render(inner)

	// Split into lines and compute anchor for centering.
	resultLines := strings.Split(rendered, "\n")
	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}

	anchorX := (screenWidth - renderedWidth) / 2
	anchorY := (screenHeight - len(resultLines)) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}

	return resultLines, anchorX, anchorY
}
