// Copyright 2026 The Vitals Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sysvitals/vitals/lib/alert"
	"github.com/sysvitals/vitals/lib/metric"
	"github.com/sysvitals/vitals/lib/poller"
	"github.com/sysvitals/vitals/lib/tui"
)

// Tab identifies a top-level dashboard view.
type Tab int

const (
	// TabOverview shows every enabled metric grouped by category.
	TabOverview Tab = iota

	// TabAlerts shows only metrics currently at warn or crit.
	TabAlerts
)

// FocusRegion identifies which part of the UI receives keyboard input.
type FocusRegion int

const (
	FocusList FocusRegion = iota
	FocusDetail
	FocusFilter
	FocusInterval
	FocusThemeMenu
	FocusHelp
)

// Split ratio bounds and step size.
const (
	splitRatioMin     = 0.20
	splitRatioMax     = 0.80
	splitRatioStep    = 0.05
	defaultSplitRatio = 0.55

	// doubleClickThreshold is the maximum interval between two clicks
	// on the splitter divider to count as a double-click.
	doubleClickThreshold = 400 * time.Millisecond
)

// snapshotMsg wraps one poller update for delivery through the
// bubbletea message loop.
type snapshotMsg struct {
	update poller.Update
}

// flashTickMsg is sent periodically to drive the severity flash decay
// animation. While any rows are flashing, a new tick is scheduled
// after each one.
type flashTickMsg struct{}

// clipboardFadeMsg is sent after a short delay to clear the clipboard
// feedback notice from the status bar.
type clipboardFadeMsg struct{}

// clipboardFadeDelay is how long the "Copied" notice stays visible.
const clipboardFadeDelay = 2 * time.Second

// copyToClipboard writes text to the system clipboard via the OSC 52
// terminal escape sequence. Writes directly to /dev/tty to bypass
// bubbletea's managed output; OSC 52 has no screen effect, so it is
// safe to write alongside the TUI renderer.
//
// Uses BEL (\x07) as the OSC terminator rather than ST (\x1b\\)
// because BEL is a single byte that survives intact through layered
// terminal environments (SSH, tmux, screen).
//
// When tmux is detected (via $TMUX or $TERM prefix), sends the OSC 52
// both via tmux DCS passthrough (for allow-passthrough configurations)
// and directly (for set-clipboard configurations). Duplicate clipboard
// sets are harmless.
//
// After a short delay, sends clipboardFadeMsg to clear the UI notice.
func copyToClipboard(text string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
			if err != nil {
				return nil
			}
			defer tty.Close()

			encoded := base64.StdEncoding.EncodeToString([]byte(text))
			osc52 := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)

			inTmux := os.Getenv("TMUX") != "" ||
				strings.HasPrefix(os.Getenv("TERM"), "tmux") ||
				strings.HasPrefix(os.Getenv("TERM"), "screen")

			if inTmux {
				// tmux DCS passthrough: escapes are doubled inside the
				// DCS wrapper. Requires tmux allow-passthrough on.
				fmt.Fprintf(tty, "\x1bPtmux;\x1b%s\x1b\\", osc52)
			}

			// Direct OSC 52: works without tmux, or with tmux
			// set-clipboard on/external.
			tty.WriteString(osc52)
			return nil
		},
		tea.Tick(clipboardFadeDelay, func(time.Time) tea.Msg {
			return clipboardFadeMsg{}
		}),
	)
}

// Model is the top-level bubbletea model for the metrics dashboard.
type Model struct {
	source Source
	theme  tui.Theme
	keys   KeyMap
	rules  alert.RuleSet

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Active tab and filter.
	activeTab Tab
	filter    FilterModel

	// Data state. snapshot is the latest good sample; pollErr is the
	// error from the most recent poll (nil when it succeeded), in
	// which case snapshot keeps showing the last good data.
	snapshot   *metric.Snapshot
	pollErr    error
	lastSample time.Time
	history    *History

	// Per-metric severity classification from the latest snapshot,
	// and counts across enabled categories for the header stats.
	severities map[string]alert.Severity
	warnCount  int
	critCount  int

	// Category visibility: disabled categories never appear;
	// collapsed categories show only their group header.
	disabled  map[metric.Category]bool
	collapsed map[metric.Category]bool

	// List state. items is the displayed list (group headers plus
	// metric rows, or a flat fuzzy-ordered list while filtering).
	items        []ListItem
	valueCount   int
	cursor       int
	scrollOffset int
	selectedName string // Stable focus: track selection by metric name.

	// Filter match highlighting: metric name to matched rune
	// positions. Populated while a fuzzy filter is applied.
	matchIndex map[string][]int

	// Two-pane layout.
	focus                FocusRegion
	priorFocus           FocusRegion // Saved focus when entering filter mode.
	splitRatio           float64     // Fraction of width for the list pane.
	detail               DetailPane
	draggingSplitter     bool
	draggingListScroll   bool
	draggingDetailScroll bool
	lastSplitterClick    time.Time // For double-click detection on the divider.

	// Tab bar click regions. Each entry maps a tab to its X range in
	// the header line so mouse clicks on Y=0 can switch tabs;
	// hoverTabIndex is the tab under the mouse cursor, -1 for none.
	tabHitRanges  []tabHitRange
	hoverTabIndex int

	// Severity flash animation for rows that just escalated.
	flashes     *tui.FlashTracker
	tickRunning bool

	// Transient status bar notices.
	copyNotice  string // "Copied <name>" feedback after an OSC 52 write.
	notice      string // Latest log record summary (or interval error).
	noticeLevel slog.Level
	noticeSeq   int

	// Inline interval entry, active while focus == FocusInterval.
	intervalInput string

	// Overlays.
	themeMenu *tui.DropdownOverlay
	help      *tui.Modal

	updates <-chan poller.Update
}

// tabHitRange maps a horizontal span in the header to a tab.
type tabHitRange struct {
	startX int // Inclusive.
	endX   int // Exclusive.
	tab    Tab
}

// NewModel creates a Model connected to the given metric source. The
// model seeds itself from Latest() so a dashboard attached to a
// running poller shows data before the first subscription update.
func NewModel(source Source) Model {
	theme := tui.DetectTheme()
	model := Model{
		source:        source,
		theme:         theme,
		keys:          DefaultKeyMap,
		rules:         alert.Defaults(),
		history:       NewHistory(),
		severities:    make(map[string]alert.Severity),
		disabled:      make(map[metric.Category]bool),
		collapsed:     make(map[metric.Category]bool),
		splitRatio:    defaultSplitRatio,
		detail:        NewDetailPane(theme),
		hoverTabIndex: -1,
		flashes:       tui.NewFlashTracker(),
		updates:       source.Subscribe(),
	}

	if snapshot, ok := source.Latest(); ok {
		model.applySnapshot(snapshot, time.Now())
	}

	// Seed the detail pane with the first metric so it is not empty
	// while the cursor sits on the leading group header.
	for _, item := range model.items {
		if !item.IsHeader {
			model.selectedName = item.Value.Name
			break
		}
	}
	model.syncDetailPane()

	return model
}

// SetTheme overrides the detected color theme. Call before running
// the program.
func (model *Model) SetTheme(theme tui.Theme) {
	model.theme = theme
	model.detail.SetTheme(theme)
}

// SetRules replaces the threshold rule set used to classify values.
// Call before running the program.
func (model *Model) SetRules(rules alert.RuleSet) {
	model.rules = rules
	if model.snapshot != nil {
		model.applySnapshot(model.snapshot, time.Now())
	}
}

// SetSplitRatio sets the list pane's share of the window width.
// Zero keeps the default; other values are clamped to the legal
// range.
func (model *Model) SetSplitRatio(ratio float64) {
	if ratio == 0 {
		return
	}
	if ratio < splitRatioMin {
		ratio = splitRatioMin
	}
	if ratio > splitRatioMax {
		ratio = splitRatioMax
	}
	model.splitRatio = ratio
}

// SetDisabledCategories hides the named categories entirely. Unknown
// names are ignored (config validation rejects them earlier).
func (model *Model) SetDisabledCategories(names []string) {
	for _, name := range names {
		if category, ok := metric.CategoryByName(name); ok {
			model.disabled[category] = true
		}
	}
	if model.snapshot != nil {
		model.applySnapshot(model.snapshot, time.Now())
	}
}

// SetCollapsedCategories marks the named categories as starting
// collapsed. Unknown names are ignored.
func (model *Model) SetCollapsedCategories(names []string) {
	for _, name := range names {
		if category, ok := metric.CategoryByName(name); ok {
			model.collapsed[category] = true
		}
	}
	if model.snapshot != nil {
		model.rebuildItems()
		model.restoreSelection()
		model.ensureCursorVisible()
		model.syncDetailPane()
	}
}

// Init implements tea.Model. Starts listening for poll updates.
func (model Model) Init() tea.Cmd {
	return listenForUpdates(model.updates)
}

// listenForUpdates returns a tea.Cmd that blocks until the next poll
// update arrives, then delivers it as a snapshotMsg. The command is
// re-armed after every receipt; a closed channel stops the loop.
func listenForUpdates(updates <-chan poller.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return nil
		}
		return snapshotMsg{update: update}
	}
}

// Update implements tea.Model. Routes keyboard events based on the
// current focus region and handles layout changes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		// Overlays capture all keyboard input while open.
		if model.focus == FocusHelp {
			return model.handleHelpKeys(message)
		}
		if model.focus == FocusThemeMenu {
			return model.handleThemeMenuKeys(message)
		}
		if model.focus == FocusInterval {
			return model.handleIntervalKeys(message)
		}
		// When the filter is active, route all input to it first so
		// letters like 'q' and 'p' type instead of acting.
		if model.focus == FocusFilter {
			return model.handleFilterKeys(message)
		}
		return model.handleGlobalKeys(message)

	case tea.MouseMsg:
		if cmd := model.handleMouse(message); cmd != nil {
			return model, cmd
		}

	case snapshotMsg:
		return model.handleSnapshot(message)

	case flashTickMsg:
		return model.handleFlashTick()

	case clipboardFadeMsg:
		model.copyNotice = ""

	case logRecordMsg:
		model.notice = message.Summary
		model.noticeLevel = message.Level
		model.noticeSeq++
		seq := model.noticeSeq
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{seq: seq}
		})

	case logRecordFadeMsg:
		if message.seq == model.noticeSeq {
			model.notice = ""
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		model.computeTabHitRanges()
		model.ensureCursorVisible()
		model.syncDetailPane()
	}
	return model, nil
}

// handleGlobalKeys processes keys outside any capturing overlay:
// global actions first, then whichever pane has focus.
func (model Model) handleGlobalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Help):
		model.openHelp()

	case key.Matches(message, model.keys.ThemeMenu):
		model.openThemeMenu()

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.SplitGrow):
		model.splitRatio += splitRatioStep
		if model.splitRatio > splitRatioMax {
			model.splitRatio = splitRatioMax
		}
		model.updatePaneSizes()

	case key.Matches(message, model.keys.SplitShrink):
		model.splitRatio -= splitRatioStep
		if model.splitRatio < splitRatioMin {
			model.splitRatio = splitRatioMin
		}
		model.updatePaneSizes()

	case key.Matches(message, model.keys.TabOverview):
		model.switchTab(TabOverview)

	case key.Matches(message, model.keys.TabAlerts):
		model.switchTab(TabAlerts)

	case key.Matches(message, model.keys.FilterActivate):
		model.priorFocus = model.focus
		model.focus = FocusFilter
		model.filter.Active = true
		// Reset list position to the top so the user sees results
		// from the beginning as they type.
		model.cursor = 0
		model.scrollOffset = 0

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		}

	case key.Matches(message, model.keys.Pause):
		if controller, ok := model.source.(PauseController); ok {
			if controller.Paused() {
				controller.Resume()
			} else {
				controller.Pause()
			}
		}

	case key.Matches(message, model.keys.Refresh):
		if refresher, ok := model.source.(Refresher); ok {
			refresher.Refresh()
		}

	case key.Matches(message, model.keys.Interval):
		if _, ok := model.source.(IntervalController); ok {
			model.priorFocus = model.focus
			model.focus = FocusInterval
			model.intervalInput = ""
		}

	case key.Matches(message, model.keys.Copy):
		if value, ok := model.selectedValue(); ok {
			model.copyNotice = value.Name
			return model, copyToClipboard(value.Name + " " + value.Display())
		}

	default:
		if model.focus == FocusList {
			model.handleListKeys(message)
		} else {
			model.handleDetailKeys(message)
		}
	}
	return model, nil
}

// handleFilterKeys processes keystrokes when the filter input has
// focus.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		// ctrl+c always quits, even in filter mode.
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		// 'q' is a regular character in filter mode.
		model.filter.HandleRune('q')
		model.applyFilter()
		return model, nil

	case key.Matches(message, model.keys.FilterClear):
		// Esc: if there's filter text, clear it; if already empty,
		// exit filter mode.
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		} else {
			model.filter.Active = false
			model.focus = model.priorFocus
		}
		return model, nil

	case message.Type == tea.KeyEnter:
		// Confirm the filter and return focus to the list. The filter
		// text stays applied.
		model.filter.Active = false
		model.focus = FocusList
		return model, nil

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter()
		}
		return model, nil

	case message.Type == tea.KeyUp:
		// Arrow keys move through results without leaving the filter;
		// letters like j and k must type instead.
		model.moveCursorUp()
		model.ensureCursorVisible()
		model.rememberSelection()
		model.syncDetailPane()
		return model, nil

	case message.Type == tea.KeyDown:
		model.moveCursorDown()
		model.ensureCursorVisible()
		model.rememberSelection()
		model.syncDetailPane()
		return model, nil

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilter()
		return model, nil
	}

	return model, nil
}

// handleIntervalKeys processes keystrokes for the inline interval
// entry in the status bar. Enter applies through the source's
// IntervalController; Esc cancels.
func (model Model) handleIntervalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEsc:
		model.intervalInput = ""
		model.focus = model.priorFocus

	case message.Type == tea.KeyEnter:
		input := model.intervalInput
		model.intervalInput = ""
		model.focus = model.priorFocus
		return model.applyIntervalInput(input)

	case message.Type == tea.KeyBackspace:
		if model.intervalInput != "" {
			runes := []rune(model.intervalInput)
			model.intervalInput = string(runes[:len(runes)-1])
		}

	case message.Type == tea.KeyRunes:
		model.intervalInput += string(message.Runes)
	}
	return model, nil
}

// applyIntervalInput parses the entered text and reconfigures the
// poll cadence. Parse failures surface as a transient status-bar
// notice. Bare numbers are treated as seconds.
func (model Model) applyIntervalInput(input string) (tea.Model, tea.Cmd) {
	controller, ok := model.source.(IntervalController)
	if !ok {
		return model, nil
	}
	interval, err := parseInterval(input)
	if err != nil {
		return model.showNotice(err.Error(), slog.LevelWarn)
	}
	controller.SetInterval(interval)
	return model, nil
}

// parseInterval interprets interval entry text: a time.ParseDuration
// string ("500ms", "2s", "1m"), or a bare number meaning seconds.
func parseInterval(input string) (time.Duration, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return 0, fmt.Errorf("empty interval")
	}
	if seconds, err := strconv.ParseFloat(text, 64); err == nil {
		duration := time.Duration(seconds * float64(time.Second))
		if duration <= 0 {
			return 0, fmt.Errorf("interval must be positive")
		}
		return duration, nil
	}
	duration, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", text)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	return duration, nil
}

// showNotice displays a transient status-bar notice, reusing the log
// record fade machinery so the newest notice wins.
func (model Model) showNotice(text string, level slog.Level) (tea.Model, tea.Cmd) {
	model.notice = text
	model.noticeLevel = level
	model.noticeSeq++
	seq := model.noticeSeq
	return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
		return logRecordFadeMsg{seq: seq}
	})
}

// handleHelpKeys processes keyboard input while the help overlay is
// open. Esc, q, and ? close it; j/k and paging keys scroll it.
func (model Model) handleHelpKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEsc,
		key.Matches(message, model.keys.Quit),
		key.Matches(message, model.keys.Help):
		model.closeHelp()

	case key.Matches(message, model.keys.Up):
		model.help.ScrollBy(-1)

	case key.Matches(message, model.keys.Down):
		model.help.ScrollBy(1)

	case key.Matches(message, model.keys.PageUp):
		model.help.ScrollBy(-10)

	case key.Matches(message, model.keys.PageDown):
		model.help.ScrollBy(10)
	}
	return model, nil
}

// handleThemeMenuKeys processes keyboard input while the theme
// dropdown is open.
func (model Model) handleThemeMenuKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.themeMenu == nil {
		model.focus = FocusList
		return model, nil
	}

	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEsc, key.Matches(message, model.keys.Quit):
		model.closeThemeMenu()

	case key.Matches(message, model.keys.Up):
		model.themeMenu.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.themeMenu.MoveDown()

	case message.Type == tea.KeyEnter:
		selected := model.themeMenu.Selected()
		model.closeThemeMenu()
		model.applyThemeName(selected.Value)
	}
	return model, nil
}

// openHelp shows the key reference overlay.
func (model *Model) openHelp() {
	modal := tui.NewModal("Keys", "Esc close · j/k scroll", model.helpLines(), model.theme)
	model.help = &modal
	model.priorFocus = model.focus
	model.focus = FocusHelp
}

func (model *Model) closeHelp() {
	model.help = nil
	model.focus = model.priorFocus
}

// helpLines builds the help overlay content from the active key map,
// so rebound keys document themselves.
func (model Model) helpLines() []string {
	keyStyle := lipgloss.NewStyle().Foreground(model.theme.Accent)
	descStyle := lipgloss.NewStyle().Foreground(model.theme.TooltipForeground)
	sectionStyle := lipgloss.NewStyle().Foreground(model.theme.TooltipForeground).Bold(true)

	row := func(binding key.Binding) string {
		help := binding.Help()
		return keyStyle.Render(fmt.Sprintf("  %-10s", help.Key)) + descStyle.Render(help.Desc)
	}

	keys := model.keys
	lines := []string{
		sectionStyle.Render("Navigate"),
		row(keys.Up),
		row(keys.Down),
		row(keys.Left),
		row(keys.Right),
		row(keys.PageUp),
		row(keys.PageDown),
		row(keys.Home),
		row(keys.End),
		row(keys.FocusToggle),
		"",
		sectionStyle.Render("View"),
		row(keys.TabOverview),
		row(keys.TabAlerts),
		row(keys.FilterActivate),
		row(keys.FilterClear),
		row(keys.SplitGrow),
		row(keys.SplitShrink),
		row(keys.ThemeMenu),
		"",
		sectionStyle.Render("Polling"),
		row(keys.Pause),
		row(keys.Refresh),
		row(keys.Interval),
		"",
		sectionStyle.Render("Misc"),
		row(keys.Copy),
		row(keys.Help),
		row(keys.Quit),
	}
	return lines
}

// openThemeMenu shows the theme dropdown anchored under the header,
// preselecting the current palette.
func (model *Model) openThemeMenu() {
	menu := &tui.DropdownOverlay{
		Options: []tui.DropdownOption{
			{Label: "dark", Value: "dark"},
			{Label: "light", Value: "light"},
			{Label: "auto", Value: "auto"},
		},
		AnchorY: 1,
	}
	if model.theme == tui.LightTheme {
		menu.Cursor = 1
	}
	anchorX := model.width - menu.Width() - 2
	if anchorX < 0 {
		anchorX = 0
	}
	menu.AnchorX = anchorX

	model.themeMenu = menu
	model.priorFocus = model.focus
	model.focus = FocusThemeMenu
}

func (model *Model) closeThemeMenu() {
	model.themeMenu = nil
	model.focus = model.priorFocus
}

// applyThemeName switches the palette by name ("dark", "light",
// "auto") and re-renders the detail pane with the new colors.
func (model *Model) applyThemeName(name string) {
	theme, ok := tui.ThemeByName(name)
	if !ok {
		return
	}
	model.theme = theme
	model.detail.SetTheme(theme)
}

// contentStartY returns the Y coordinate where the content area
// begins. The top chrome line is always exactly 1 row: either the tab
// bar (normal) or the filter bar (when the filter is active). The
// filter bar replaces the tab bar rather than pushing content down.
func (model Model) contentStartY() int {
	return 1
}

// handleMouse routes mouse events by position. The scroll wheel
// scrolls whichever pane the cursor is over. Clicks in the list
// select the clicked row or toggle headers. Dragging the divider
// resizes the split; scrollbar clicks and drags scroll the
// corresponding pane.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	listWidth := model.listWidth()
	contentStart := model.contentStartY()
	listScrollX := listWidth - 1     // Right edge of the list pane.
	dividerX := listWidth            // The divider column.
	detailScrollX := model.width - 1 // Rightmost column.

	inContentArea := message.Y >= contentStart && message.Y < model.height-2
	inListPane := message.X >= 0 && message.X < listScrollX
	onListScroll := message.X == listScrollX
	onDivider := message.X == dividerX
	inDetailPane := message.X > dividerX && message.X < detailScrollX
	onDetailScroll := message.X == detailScrollX

	// Motion with no button held: track which tab label is hovered so
	// the header can bold it.
	if message.Action == tea.MouseActionMotion && message.Button == tea.MouseButtonNone {
		model.hoverTabIndex = -1
		if message.Y == 0 {
			for index, hit := range model.tabHitRanges {
				if message.X >= hit.startX && message.X < hit.endX {
					model.hoverTabIndex = index
					break
				}
			}
		}
		return nil
	}

	// The help overlay swallows mouse input: wheel scrolls, any
	// click dismisses.
	if model.help != nil {
		switch message.Button {
		case tea.MouseButtonWheelUp:
			model.help.ScrollBy(-3)
		case tea.MouseButtonWheelDown:
			model.help.ScrollBy(3)
		default:
			if message.Action == tea.MouseActionPress {
				model.closeHelp()
			}
		}
		return nil
	}

	// The theme menu: clicks inside select, anything else dismisses.
	if model.themeMenu != nil {
		if message.Button == tea.MouseButtonLeft && message.Action == tea.MouseActionPress {
			if model.themeMenu.Contains(message.X, message.Y) {
				if index := model.themeMenu.OptionAtY(message.Y); index >= 0 {
					model.themeMenu.Cursor = index
					selected := model.themeMenu.Selected()
					model.closeThemeMenu()
					model.applyThemeName(selected.Value)
					return nil
				}
			}
			model.closeThemeMenu()
		}
		return nil
	}

	// Handle active drags: motion updates position, release ends
	// the drag.
	if model.draggingSplitter || model.draggingListScroll || model.draggingDetailScroll {
		if message.Action == tea.MouseActionRelease {
			model.draggingSplitter = false
			model.draggingListScroll = false
			model.draggingDetailScroll = false
			return nil
		}
		switch {
		case model.draggingSplitter:
			model.setSplitFromMouseX(message.X)
		case model.draggingListScroll:
			model.scrollListToY(message.Y - contentStart)
		case model.draggingDetailScroll:
			model.scrollDetailToY(message.Y - contentStart)
		}
		return nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		if !inContentArea {
			return nil
		}
		if inListPane || onListScroll || onDivider {
			model.scrollListUp(1)
		} else if inDetailPane || onDetailScroll {
			model.detail.viewport.LineUp(3)
		}

	case tea.MouseButtonWheelDown:
		if !inContentArea {
			return nil
		}
		if inListPane || onListScroll || onDivider {
			model.scrollListDown(1)
		} else if inDetailPane || onDetailScroll {
			model.detail.viewport.LineDown(3)
		}

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return nil
		}
		// Tab clicks: header row (Y=0) maps X to tab labels.
		if message.Y == 0 {
			for _, hit := range model.tabHitRanges {
				if message.X >= hit.startX && message.X < hit.endX {
					model.switchTab(hit.tab)
					return nil
				}
			}
			return nil
		}
		if !inContentArea {
			return nil
		}
		// Scrollbar clicks: jump to position and start drag tracking.
		if onListScroll {
			model.focus = FocusList
			model.draggingListScroll = true
			model.scrollListToY(message.Y - contentStart)
			return nil
		}
		if onDetailScroll {
			model.focus = FocusDetail
			model.draggingDetailScroll = true
			model.scrollDetailToY(message.Y - contentStart)
			return nil
		}
		if onDivider {
			now := time.Now()
			if now.Sub(model.lastSplitterClick) <= doubleClickThreshold {
				// Double-click: reset the split to the default.
				model.splitRatio = defaultSplitRatio
				model.updatePaneSizes()
				model.lastSplitterClick = time.Time{} // Prevent triple-click toggling.
				return nil
			}
			model.lastSplitterClick = now
			model.draggingSplitter = true
			return nil
		}
		if inListPane {
			model.handleListClick(message.Y - contentStart)
		} else if inDetailPane {
			model.focus = FocusDetail
		}
	}
	return nil
}

// scrollListToY sets the list scroll offset based on a Y position
// within the content area (0 = top of content). Maps the Y coordinate
// proportionally to the full item range.
func (model *Model) scrollListToY(relativeY int) {
	visible := model.visibleHeight()
	totalItems := len(model.items)
	if totalItems <= visible || visible <= 0 {
		return
	}

	maxOffset := totalItems - visible
	offset := 0
	if visible > 1 {
		offset = relativeY * maxOffset / (visible - 1)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	model.scrollOffset = offset

	// Move the cursor into the visible range.
	if model.cursor < model.scrollOffset {
		model.cursor = model.scrollOffset
	}
	if model.cursor >= model.scrollOffset+visible {
		model.cursor = model.scrollOffset + visible - 1
	}
	model.rememberSelection()
	model.syncDetailPane()
}

// scrollDetailToY sets the detail viewport scroll based on a Y
// position within the content area.
func (model *Model) scrollDetailToY(relativeY int) {
	totalLines := model.detail.viewport.TotalLineCount()
	visible := model.detail.viewport.Height
	if totalLines <= visible || visible <= 0 {
		return
	}

	// The scrollbar spans the pane height but the viewport body
	// starts below the fixed header. Remap clicks in the header zone
	// to the body region.
	bodyRelativeY := relativeY - detailHeaderLines
	if bodyRelativeY < 0 {
		bodyRelativeY = 0
	}

	maxOffset := totalLines - visible
	offset := 0
	if visible > 1 {
		offset = bodyRelativeY * maxOffset / (visible - 1)
	}
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	model.detail.viewport.SetYOffset(offset)
}

// setSplitFromMouseX updates the split ratio from the mouse X
// coordinate, clamped to the configured bounds.
func (model *Model) setSplitFromMouseX(mouseX int) {
	if model.width <= 0 {
		return
	}
	ratio := float64(mouseX) / float64(model.width)
	if ratio < splitRatioMin {
		ratio = splitRatioMin
	}
	if ratio > splitRatioMax {
		ratio = splitRatioMax
	}
	model.splitRatio = ratio
	model.updatePaneSizes()
}

// scrollListUp moves the cursor up by count items.
func (model *Model) scrollListUp(count int) {
	for step := 0; step < count; step++ {
		model.moveCursorUp()
	}
	model.ensureCursorVisible()
	model.rememberSelection()
	model.syncDetailPane()
}

// scrollListDown moves the cursor down by count items.
func (model *Model) scrollListDown(count int) {
	for step := 0; step < count; step++ {
		model.moveCursorDown()
	}
	model.ensureCursorVisible()
	model.rememberSelection()
	model.syncDetailPane()
}

// handleListClick processes a mouse click at the given row offset
// within the content area. Selects the clicked item, or toggles
// collapse on headers.
func (model *Model) handleListClick(rowOffset int) {
	// Clicking anywhere in the list pane focuses it, even on empty
	// space below the last item.
	model.focus = FocusList

	itemIndex := model.scrollOffset + rowOffset
	if itemIndex < 0 || itemIndex >= len(model.items) {
		return
	}

	item := model.items[itemIndex]
	if item.IsHeader {
		model.toggleCategory(item.Category)
		return
	}

	model.cursor = itemIndex
	model.rememberSelection()
	model.syncDetailPane()
}

// toggleCategory flips a category's collapsed state and keeps the
// cursor on its header.
func (model *Model) toggleCategory(category metric.Category) {
	model.collapsed[category] = !model.collapsed[category]
	model.rebuildItems()
	for index, item := range model.items {
		if item.IsHeader && item.Category == category {
			model.cursor = index
			break
		}
	}
	model.ensureCursorVisible()
	model.syncDetailPane()
}

// switchTab changes the active tab, clearing any filter.
func (model *Model) switchTab(tab Tab) {
	if model.activeTab == tab {
		return
	}
	model.activeTab = tab
	model.filter.Clear()
	model.rebuildItems()
	model.restoreSelection()
	model.ensureCursorVisible()
	model.syncDetailPane()
}

// applyFilter re-derives the item list after a filter change.
func (model *Model) applyFilter() {
	model.rebuildItems()

	// When actively filtering, snap to the top of the list so the
	// highest-scored matches are visible as the user types.
	if model.filter.Input != "" {
		model.cursor = 0
		model.scrollOffset = 0
		model.rememberSelection()
	} else {
		model.restoreSelection()
	}
	model.ensureCursorVisible()
	model.syncDetailPane()
}

// handleSnapshot processes one poll update: refresh data on success,
// mark staleness on error, and always re-arm the subscription listen
// command.
func (model Model) handleSnapshot(message snapshotMsg) (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{listenForUpdates(model.updates)}

	if message.update.Err != nil {
		// Keep showing the last good snapshot; the status bar
		// surfaces the growing staleness.
		model.pollErr = message.update.Err
	} else if message.update.Snapshot != nil {
		model.pollErr = nil
		model.applySnapshot(message.update.Snapshot, time.Now())
		if model.flashes.HasActive(time.Now()) && !model.tickRunning {
			model.tickRunning = true
			commands = append(commands, scheduleFlashTick())
		}
	}

	return model, tea.Batch(commands...)
}

// applySnapshot ingests a fresh snapshot: records history, classifies
// severities (igniting flash animations on escalations), and rebuilds
// the visible list.
func (model *Model) applySnapshot(snapshot *metric.Snapshot, now time.Time) {
	first := model.snapshot == nil
	previous := model.severities

	model.snapshot = snapshot
	model.lastSample = now
	model.history.Observe(snapshot)

	model.severities = make(map[string]alert.Severity, len(snapshot.Values))
	model.warnCount = 0
	model.critCount = 0
	for _, value := range snapshot.Values {
		severity, _, _ := model.rules.Classify(value)
		model.severities[value.Name] = severity
		if model.disabled[value.Category] {
			continue
		}
		switch severity {
		case alert.SeverityWarn:
			model.warnCount++
		case alert.SeverityCrit:
			model.critCount++
		}
		// Flash rows that escalated. The first snapshot is exempt so
		// startup does not light up every already-hot metric.
		if !first && severity > previous[value.Name] && severity >= alert.SeverityWarn {
			kind := tui.FlashWarn
			if severity == alert.SeverityCrit {
				kind = tui.FlashCrit
			}
			model.flashes.Ignite(value.Name, kind, now)
		}
	}

	model.rebuildItems()
	model.restoreSelection()
	model.ensureCursorVisible()
	model.syncDetailPane()
}

// handleFlashTick advances the flash decay animation. While any rows
// are still flashing, another tick is scheduled; otherwise the timer
// stops until the next escalation.
func (model Model) handleFlashTick() (tea.Model, tea.Cmd) {
	if model.flashes.HasActive(time.Now()) {
		return model, scheduleFlashTick()
	}
	model.tickRunning = false
	return model, nil
}

// scheduleFlashTick returns a tea.Cmd that sends a flashTickMsg after
// the animation tick interval.
func scheduleFlashTick() tea.Cmd {
	return tea.Tick(tui.FlashTickInterval, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

// visibleValues returns the latest snapshot's values with disabled
// categories removed and, on the alerts tab, everything below warn
// dropped.
func (model Model) visibleValues() []metric.Value {
	if model.snapshot == nil {
		return nil
	}
	values := make([]metric.Value, 0, len(model.snapshot.Values))
	for _, value := range model.snapshot.Values {
		if model.disabled[value.Category] {
			continue
		}
		if model.activeTab == TabAlerts && model.severities[value.Name] < alert.SeverityWarn {
			continue
		}
		values = append(values, value)
	}
	return values
}

// rebuildItems constructs the displayed list. Normally values are
// grouped under collapsible category headers in category order. While
// a fuzzy filter is applied the list is flat, ordered by match score.
func (model *Model) rebuildItems() {
	model.items = nil
	model.matchIndex = nil
	if model.snapshot == nil {
		model.valueCount = 0
		return
	}

	values := model.visibleValues()

	if model.filter.Input != "" {
		results := model.filter.ApplyFuzzy(values)
		model.valueCount = len(results)
		model.matchIndex = make(map[string][]int, len(results))
		for _, result := range results {
			model.items = append(model.items, ListItem{
				Value:    result.Value,
				Severity: model.severities[result.Value.Name],
			})
			if len(result.NamePositions) > 0 {
				model.matchIndex[result.Value.Name] = result.NamePositions
			}
		}
		return
	}

	model.valueCount = len(values)
	grouped := make(map[metric.Category][]metric.Value)
	for _, value := range values {
		grouped[value.Category] = append(grouped[value.Category], value)
	}

	for _, category := range metric.Categories() {
		members := grouped[category]
		if len(members) == 0 {
			continue
		}
		collapsed := model.collapsed[category]
		model.items = append(model.items, ListItem{
			IsHeader:  true,
			Category:  category,
			Collapsed: collapsed,
			Count:     len(members),
			Summary:   categorySummary(category, members),
		})
		if collapsed {
			continue
		}
		for _, value := range members {
			model.items = append(model.items, ListItem{
				Value:    value,
				Severity: model.severities[value.Name],
			})
		}
	}
}

// restoreSelection finds the previously selected metric in the
// rebuilt items list and moves the cursor there. If it is gone, the
// cursor is clamped to a valid position.
func (model *Model) restoreSelection() {
	if model.selectedName == "" {
		model.cursor = model.clampedIndex(model.cursor)
		return
	}

	for index, item := range model.items {
		if !item.IsHeader && item.Value.Name == model.selectedName {
			model.cursor = index
			return
		}
	}

	model.cursor = model.clampedIndex(model.cursor)
}

// clampedIndex returns position clamped to valid item bounds.
func (model *Model) clampedIndex(position int) int {
	if len(model.items) == 0 {
		return 0
	}
	if position < 0 {
		return 0
	}
	if position >= len(model.items) {
		return len(model.items) - 1
	}
	return position
}

// rememberSelection records the metric under the cursor so selection
// survives list rebuilds. Headers leave the previous selection alone.
func (model *Model) rememberSelection() {
	if model.cursor >= 0 && model.cursor < len(model.items) && !model.items[model.cursor].IsHeader {
		model.selectedName = model.items[model.cursor].Value.Name
	}
}

// selectedValue returns the metric under the cursor, or the last
// selected metric when the cursor sits on a header.
func (model Model) selectedValue() (metric.Value, bool) {
	if model.cursor >= 0 && model.cursor < len(model.items) && !model.items[model.cursor].IsHeader {
		return model.items[model.cursor].Value, true
	}
	if model.selectedName != "" && model.snapshot != nil {
		return model.snapshot.Find(model.selectedName)
	}
	return metric.Value{}, false
}

// handleListKeys processes navigation keys when the list has focus.
func (model *Model) handleListKeys(message tea.KeyMsg) {
	previousCursor := model.cursor

	switch {
	case key.Matches(message, model.keys.Up):
		model.moveCursorUp()

	case key.Matches(message, model.keys.Down):
		model.moveCursorDown()

	case key.Matches(message, model.keys.PageUp):
		target := model.cursor - model.visibleHeight()
		if target < 0 {
			target = 0
		}
		model.cursor = model.clampedIndex(target)

	case key.Matches(message, model.keys.PageDown):
		target := model.cursor + model.visibleHeight()
		if len(model.items) > 0 && target >= len(model.items) {
			target = len(model.items) - 1
		}
		model.cursor = model.clampedIndex(target)

	case key.Matches(message, model.keys.Home):
		model.cursor = 0

	case key.Matches(message, model.keys.End):
		if len(model.items) > 0 {
			model.cursor = len(model.items) - 1
		}

	case key.Matches(message, model.keys.Left):
		model.collapseOrGoToHeader()

	case key.Matches(message, model.keys.Right):
		model.expandOrEnterFirstRow()

	case message.Type == tea.KeyEnter:
		// Enter toggles headers; on a metric row it moves focus to
		// the detail pane.
		if model.cursor < len(model.items) {
			if model.items[model.cursor].IsHeader {
				model.toggleCategory(model.items[model.cursor].Category)
			} else {
				model.focus = FocusDetail
			}
		}
	}

	model.ensureCursorVisible()

	if model.cursor != previousCursor {
		model.rememberSelection()
		model.syncDetailPane()
	}
}

// moveCursorUp moves the cursor to the previous item (headers and
// metric rows are both selectable).
func (model *Model) moveCursorUp() {
	if model.cursor > 0 {
		model.cursor--
	}
}

// moveCursorDown moves the cursor to the next item.
func (model *Model) moveCursorDown() {
	if model.cursor < len(model.items)-1 {
		model.cursor++
	}
}

// collapseOrGoToHeader handles the Left key in the list:
//   - On an expanded header: collapse it
//   - On a metric row: collapse its category (cursor moves to the header)
//   - On a collapsed header: no-op
func (model *Model) collapseOrGoToHeader() {
	if model.cursor < 0 || model.cursor >= len(model.items) {
		return
	}

	item := model.items[model.cursor]

	// Find the category to collapse: this header, or the nearest
	// header above the current row. While filtering the list is flat
	// and this is a no-op.
	category := metric.Category(-1)
	if item.IsHeader {
		category = item.Category
	} else {
		for index := model.cursor - 1; index >= 0; index-- {
			if model.items[index].IsHeader {
				category = model.items[index].Category
				break
			}
		}
	}

	if category < 0 || model.collapsed[category] {
		return
	}

	model.collapsed[category] = true
	model.rebuildItems()
	for index, rebuilt := range model.items {
		if rebuilt.IsHeader && rebuilt.Category == category {
			model.cursor = index
			break
		}
	}
	model.syncDetailPane()
}

// expandOrEnterFirstRow handles the Right key in the list:
//   - On a collapsed header: expand it
//   - On an expanded header: move the cursor to its first row
//   - On a metric row: no-op
func (model *Model) expandOrEnterFirstRow() {
	if model.cursor < 0 || model.cursor >= len(model.items) {
		return
	}

	item := model.items[model.cursor]
	if !item.IsHeader {
		return
	}

	if model.collapsed[item.Category] {
		model.collapsed[item.Category] = false
		model.rebuildItems()
		for index := range model.items {
			if model.items[index].IsHeader && model.items[index].Category == item.Category {
				model.cursor = index
				if index+1 < len(model.items) && !model.items[index+1].IsHeader {
					model.cursor = index + 1
				}
				break
			}
		}
		model.rememberSelection()
		model.syncDetailPane()
		return
	}

	if model.cursor+1 < len(model.items) && !model.items[model.cursor+1].IsHeader {
		model.cursor++
		model.rememberSelection()
		model.syncDetailPane()
	}
}

// handleDetailKeys processes navigation keys when the detail pane has
// focus.
func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.detail.viewport.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.detail.viewport.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.ScrollUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.ScrollDown()
	case key.Matches(message, model.keys.Home):
		model.detail.viewport.GotoTop()
	case key.Matches(message, model.keys.End):
		model.detail.viewport.GotoBottom()
	}
}

// syncDetailPane refreshes the detail pane for the current selection.
func (model *Model) syncDetailPane() {
	name := model.selectedName
	if model.cursor >= 0 && model.cursor < len(model.items) && !model.items[model.cursor].IsHeader {
		name = model.items[model.cursor].Value.Name
	}
	if name == "" || model.snapshot == nil {
		model.detail.Clear()
		return
	}

	value, ok := model.snapshot.Find(name)
	if !ok {
		model.detail.Clear()
		return
	}

	severity, rule, ruleKnown := model.rules.Classify(value)
	stats, statsOK := model.history.Stats(name)
	model.detail.SetContent(value, severity, rule, ruleKnown, stats, statsOK, model.history.Samples(name))
}

// updatePaneSizes recalculates pane dimensions after a resize or
// split ratio change.
func (model *Model) updatePaneSizes() {
	contentHeight := model.visibleHeight()
	// 1 column for the vertical divider between panes.
	detailWidth := model.width - model.listWidth() - 1
	if detailWidth < 10 {
		detailWidth = 10
	}
	model.detail.SetSize(detailWidth, contentHeight)
}

// listWidth returns the width of the list pane in columns.
func (model Model) listWidth() int {
	return int(float64(model.width) * model.splitRatio)
}

// visibleHeight returns the number of list rows that fit between the
// chrome elements: the tab bar above, the bottom separator and status
// bar below.
func (model Model) visibleHeight() int {
	return model.height - model.contentStartY() - 2
}

// ensureCursorVisible adjusts scrollOffset so the cursor is within
// the visible window.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}

	// Clamp scrollOffset so we never scroll past the end of the
	// list. This handles tab switches where the new list is shorter
	// than the old offset.
	maxOffset := len(model.items) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}

	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// View implements tea.Model. Renders the full dashboard frame.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	// Before the first sample there is nothing to structure a frame
	// around; show a full-screen waiting message. Once data has
	// arrived, empty views (a clean alerts tab, an exhausting filter)
	// keep the chrome and announce themselves inside the list pane.
	if model.snapshot == nil {
		return model.renderEmpty()
	}

	var sections []string

	// Top chrome line: either the tab bar or the filter bar. The
	// filter bar replaces the tab bar so the layout doesn't shift.
	filterView := model.filter.View(model.theme, model.width)
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	// Two-pane content area with vertical divider.
	listView := model.renderListPane()
	divider := model.renderDivider()
	detailView := model.detail.View(model.focus == FocusDetail)
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, listView, divider, detailView))

	// Bottom separator.
	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	// Status bar.
	sections = append(sections, model.renderStatusBar())

	output := strings.Join(sections, "\n")

	// Hover feedback: bold the tab label under the mouse cursor.
	if filterView == "" && model.hoverTabIndex >= 0 && model.hoverTabIndex < len(model.tabHitRanges) {
		hit := model.tabHitRanges[model.hoverTabIndex]
		output = tui.OverlayBold(output, 0, hit.startX, hit.endX)
	}

	// Overlays are spliced over the composed frame last.
	if model.themeMenu != nil {
		output = tui.SpliceOverlay(output, model.themeMenu.Render(model.theme),
			model.themeMenu.AnchorX, model.themeMenu.AnchorY)
	}
	if model.help != nil {
		helpLines, anchorX, anchorY := model.help.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, helpLines, anchorX, anchorY)
	}

	return output
}

// renderListPane renders the metric list with category grouping,
// severity colors, and per-row sparklines.
func (model Model) renderListPane() string {
	listWidth := model.listWidth()

	// Always reserve 1 column for the scrollbar so content stays at
	// a fixed position regardless of scroll state.
	focused := model.focus == FocusList
	rowWidth := listWidth - 1

	renderer := NewListRenderer(model.theme, rowWidth)

	visible := model.visibleHeight()
	if visible < 0 {
		visible = 0
	}

	now := time.Now()
	var rows []string
	for index := model.scrollOffset; index < model.scrollOffset+visible && index < len(model.items); index++ {
		item := model.items[index]
		selected := index == model.cursor
		var row string
		if item.IsHeader {
			row = renderer.RenderGroupHeader(item, selected)
		} else {
			row = renderer.RenderRow(item, selected,
				model.history.Samples(item.Value.Name),
				model.matchIndex[item.Value.Name])
			// Tint rows that just crossed a severity threshold.
			// Selection highlight takes priority.
			if !selected {
				if model.flashes.Intensity(item.Value.Name, now) > 0 {
					accent := model.theme.FlashWarn
					if model.flashes.Kind(item.Value.Name) == tui.FlashCrit {
						accent = model.theme.FlashCrit
					}
					row = lipgloss.NewStyle().
						Background(accent).
						Width(rowWidth).
						MaxWidth(rowWidth).
						Render(row)
				}
			}
		}
		rows = append(rows, row)
	}

	// Say why the pane is empty rather than showing a blank column.
	if len(rows) == 0 {
		text := " No metrics to show."
		if model.filter.Input != "" {
			text = " No metrics match the filter."
		} else if model.activeTab == TabAlerts {
			text = " No active alerts."
		}
		emptyStyle := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Width(rowWidth)
		rows = append(rows, emptyStyle.Render(text))
	}

	// Pad empty rows.
	rendered := len(rows)
	if rendered < visible {
		emptyStyle := lipgloss.NewStyle().Width(rowWidth)
		for padding := rendered; padding < visible; padding++ {
			rows = append(rows, emptyStyle.Render(""))
		}
	}

	scrollbar := tui.RenderScrollbar(
		model.theme, visible,
		len(model.items), visible, model.scrollOffset,
		focused,
	)

	contentStyle := lipgloss.NewStyle().
		Width(rowWidth).
		Height(visible)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		contentStyle.Render(strings.Join(rows, "\n")),
		scrollbar,
	)
}

// renderDivider renders the single-column vertical divider between
// the panes. The divider is draggable for resizing.
func (model Model) renderDivider() string {
	visible := model.visibleHeight()
	if visible < 0 {
		visible = 0
	}

	color := model.theme.BorderColor
	if model.draggingSplitter {
		color = model.theme.Accent
	}

	lines := make([]string, visible)
	for index := range lines {
		lines[index] = "│"
	}

	return lipgloss.NewStyle().
		Foreground(color).
		Width(1).
		Height(visible).
		Render(strings.Join(lines, "\n"))
}

// renderEmpty renders the full-screen state shown before the first
// sample arrives.
func (model Model) renderEmpty() string {
	text := "Waiting for first sample…"
	if model.pollErr != nil {
		text = fmt.Sprintf("Waiting for first sample… (poll failing: %v)", model.pollErr)
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	return lipgloss.Place(
		model.width, model.height,
		lipgloss.Center, lipgloss.Center,
		messageStyle.Render(text),
	)
}

// tabDefs is the fixed list of tab definitions used by both the
// header renderer and the hit range computation.
var tabDefs = []struct {
	label string
	tab   Tab
}{
	{"1:Overview", TabOverview},
	{"2:Alerts", TabAlerts},
}

// computeTabHitRanges calculates the X positions of each tab label in
// the header line. Called on window resize so mouse clicks on the
// header can switch tabs.
func (model *Model) computeTabHitRanges() {
	model.tabHitRanges = model.tabHitRanges[:0]
	cursor := 3 // Leading "───"

	for index, tabDef := range tabDefs {
		cursor++ // Space before label.
		labelStart := cursor
		cursor += lipgloss.Width(tabDef.label)

		model.tabHitRanges = append(model.tabHitRanges, tabHitRange{
			startX: labelStart,
			endX:   cursor,
			tab:    tabDef.tab,
		})

		cursor++ // Space after label.

		// Separator between tabs (3 chars) and after the last tab (1).
		if index == len(tabDefs)-1 {
			cursor++
		} else {
			cursor += 3
		}
	}
}

// renderHeader renders the combined tab bar + separator as a single
// line in the btop style: tab labels embedded in a horizontal rule
// with poll stats on the right.
//
// Example: ─── 1:Overview ─── 2:Alerts ────── 118 metrics  2 warn  2s ─
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	statsStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep // Leading "───"
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for range sepCount {
			leftParts += sep
			cursor++
		}
	}

	statsText := model.headerStats()
	statsRendered := statsStyle.Render(statsText)
	statsWidth := lipgloss.Width(statsText)

	// Fill the gap between tabs and stats with separator chars,
	// leaving 1 space on each side of the stats.
	rightPortion := " " + statsRendered + " " + sep
	rightWidth := 1 + statsWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for range fillCount {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// headerStats builds the right-aligned header text: visible value
// count, alert counts, poll cadence, and pause/stale markers.
func (model Model) headerStats() string {
	parts := []string{fmt.Sprintf("%d metrics", model.valueCount)}
	if model.warnCount > 0 {
		parts = append(parts, fmt.Sprintf("%d warn", model.warnCount))
	}
	if model.critCount > 0 {
		parts = append(parts, fmt.Sprintf("%d crit", model.critCount))
	}
	if controller, ok := model.source.(IntervalController); ok {
		parts = append(parts, controller.Interval().String())
	}
	if controller, ok := model.source.(PauseController); ok && controller.Paused() {
		parts = append(parts, "PAUSED")
	}
	if model.pollErr != nil {
		parts = append(parts, "STALE")
	}
	return strings.Join(parts, "  ")
}

// renderStatusBar renders the bottom line: the focus indicator and
// key hints, the interval entry when active, position, and transient
// notices.
func (model Model) renderStatusBar() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "LIST"
	switch model.focus {
	case FocusDetail:
		focusIndicator = "DETAIL"
	case FocusFilter:
		focusIndicator = "FILTER"
	case FocusInterval:
		focusIndicator = "INTERVAL"
	case FocusThemeMenu:
		focusIndicator = "THEME"
	case FocusHelp:
		focusIndicator = "HELP"
	}

	// The inline interval entry replaces the hint text entirely.
	if model.focus == FocusInterval {
		inputStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText).Bold(true)
		cursor := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true).Render("▎")
		return style.Render(fmt.Sprintf(" [%s] interval: ", focusIndicator)) +
			inputStyle.Render(model.intervalInput) + cursor +
			style.Render("  (500ms, 2s, 1m · Enter apply · Esc cancel)")
	}

	help := fmt.Sprintf(" [%s] q quit  ↑↓ navigate  Tab focus  / filter  p pause  r refresh  i interval  c copy  ? help",
		focusIndicator)

	totalRows := 0
	for _, item := range model.items {
		if !item.IsHeader {
			totalRows++
		}
	}

	if len(model.items) > model.visibleHeight() {
		position := ""
		if model.scrollOffset == 0 {
			position = "top"
		} else if model.scrollOffset+model.visibleHeight() >= len(model.items) {
			position = "bottom"
		} else {
			percent := float64(model.scrollOffset) / float64(len(model.items)-model.visibleHeight()) * 100
			position = fmt.Sprintf("%d%%", int(percent))
		}
		help += fmt.Sprintf("  [%s] %d/%d", position, model.cursor+1, totalRows)
	} else if totalRows > 0 {
		selectablePosition := 0
		for index := 0; index <= model.cursor && index < len(model.items); index++ {
			if !model.items[index].IsHeader {
				selectablePosition++
			}
		}
		help += fmt.Sprintf("  %d/%d", selectablePosition, totalRows)
	}

	// Pause and staleness markers, colored to stand out from the
	// hint text.
	if controller, ok := model.source.(PauseController); ok && controller.Paused() {
		pausedStyle := lipgloss.NewStyle().
			Foreground(model.theme.SeverityWarn).
			Bold(true)
		help += "  " + pausedStyle.Render("PAUSED")
	}
	if model.pollErr != nil && !model.lastSample.IsZero() {
		staleStyle := lipgloss.NewStyle().
			Foreground(model.theme.SeverityCrit).
			Bold(true)
		age := time.Since(model.lastSample).Round(time.Second)
		help += "  " + staleStyle.Render(fmt.Sprintf("stale %s", age))
	}

	// Clipboard feedback after an OSC 52 copy.
	if model.copyNotice != "" {
		copiedStyle := lipgloss.NewStyle().
			Foreground(model.theme.SeverityOK).
			Bold(true)
		help += "  " + copiedStyle.Render("Copied " + model.copyNotice)
	}

	// Latest log record or interval error.
	if model.notice != "" {
		noticeColor := model.theme.SeverityWarn
		if model.noticeLevel >= slog.LevelError {
			noticeColor = model.theme.SeverityCrit
		}
		noticeStyle := lipgloss.NewStyle().
			Foreground(noticeColor).
			Bold(true)
		help += "  " + noticeStyle.Render(model.notice)
	}

	return style.Render(help)
}
