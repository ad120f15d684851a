// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/notepad/lib/reorder"
	"github.com/bureau-foundation/notepad/lib/task"
	"github.com/bureau-foundation/notepad/lib/taskstore"
	"github.com/bureau-foundation/notepad/lib/tui"
	"github.com/bureau-foundation/notepad/lib/view"
)

// Focus identifies which element receives keystrokes.
type Focus int

const (
	// FocusList means keys navigate and edit the task list.
	FocusList Focus = iota
	// FocusInput means keys go to the new-task input.
	FocusInput
	// FocusFilter means keys go to the search query.
	FocusFilter
	// FocusConfirm means the clear-all confirmation modal is open.
	FocusConfirm
)

// DragMode selects how mouse drags reorder tasks.
type DragMode int

const (
	// DragPointer moves the dragged task to the row under the mouse.
	DragPointer DragMode = iota
	// DragDisplacement moves the dragged task one position each time
	// the mouse travels a threshold distance from where the last move
	// happened.
	DragDisplacement
)

func (mode DragMode) String() string {
	switch mode {
	case DragPointer:
		return "pointer"
	case DragDisplacement:
		return "displacement"
	default:
		return fmt.Sprintf("DragMode(%d)", int(mode))
	}
}

// ParseDragMode parses "pointer" or "displacement". The empty string
// means DragPointer.
func ParseDragMode(name string) (DragMode, error) {
	switch name {
	case "", "pointer":
		return DragPointer, nil
	case "displacement":
		return DragDisplacement, nil
	default:
		return DragPointer, fmt.Errorf("taskui: unknown drag mode %q (want pointer or displacement)", name)
	}
}

// Screen layout. Three chrome lines above the list (header, input,
// search bar) and two below (separator, help).
const (
	inputY        = 1
	contentStartY = 3
	chromeBelow   = 2

	// wheelStep is how many rows one mouse wheel notch moves.
	wheelStep = 3

	// touchUnitsPerRow converts rows of mouse travel into the touch
	// coordinates the reorder controller measures its threshold in.
	// With the default threshold of 30, two rows of travel move the
	// task one position.
	touchUnitsPerRow = 16

	// dragTickInterval is how often an active drag is checked against
	// the controller's idle timeout.
	dragTickInterval = time.Second
)

// dragTickMsg is delivered periodically while a drag is active.
type dragTickMsg struct{}

// Options configures a Model. Store is required.
type Options struct {
	// Store owns the task list.
	Store *taskstore.Store

	// Controller turns mouse drags into reorders. Nil creates one over
	// Store with default settings.
	Controller *reorder.Controller

	// Projector filters the list by the search query. Nil uses
	// substring matching.
	Projector *view.Projector

	// DragMode selects pointer or displacement dragging.
	DragMode DragMode

	// Theme overrides tui.DefaultTheme.
	Theme *tui.Theme

	// Keys overrides DefaultKeyMap.
	Keys *KeyMap
}

// Model is the bubbletea model for the task list.
type Model struct {
	store      *taskstore.Store
	controller *reorder.Controller
	projector  *view.Projector
	dragMode   DragMode
	theme      tui.Theme
	keys       KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focus   Focus
	input   textinput.Model
	filter  FilterModel
	confirm *tui.ConfirmModal

	// rows is the current projection. cursor indexes rows; selectedID
	// is the task the cursor belongs to, kept across re-projection so
	// that a reorder or a query change leaves the same task selected.
	rows         []view.Row
	cursor       int
	scrollOffset int
	selectedID   task.ID

	// dragTicking is true while a dragTickMsg is scheduled.
	dragTicking bool

	// Most recent log record routed through TUILogHandler, cleared
	// after statusFadeDelay.
	statusText       string
	statusLevel      slog.Level
	statusGeneration int
}

// NewModel creates a Model over the store's current list.
func NewModel(options Options) Model {
	if options.Store == nil {
		panic("taskui: Options.Store is required")
	}

	controller := options.Controller
	if controller == nil {
		controller = reorder.New(options.Store, reorder.Config{})
	}
	projector := options.Projector
	if projector == nil {
		projector = view.NewProjector(view.Substring)
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	keys := DefaultKeyMap
	if options.Keys != nil {
		keys = *options.Keys
	}

	input := textinput.New()
	input.Prompt = "+ "
	input.Placeholder = "press a to add a task"
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.FaintText)
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.NormalText)

	model := Model{
		store:      options.Store,
		controller: controller,
		projector:  projector,
		dragMode:   options.DragMode,
		theme:      theme,
		keys:       keys,
		input:      input,
	}

	model.refresh()
	if len(model.rows) > 0 {
		model.selectedID = model.rows[0].ID()
	}
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Keys are routed by focus; mouse events
// drive selection, the checkbox and delete zones, and drags.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch model.focus {
		case FocusInput:
			return model.handleInputKeys(message)
		case FocusFilter:
			return model.handleFilterKeys(message)
		case FocusConfirm:
			return model.handleConfirmKeys(message)
		}
		return model.handleListKeys(message)

	case tea.MouseMsg:
		if cmd := model.handleMouse(message); cmd != nil {
			return model, cmd
		}

	case tea.BlurMsg:
		model.abortDrag()

	case tea.WindowSizeMsg:
		model.abortDrag()
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.input.Width = max(message.Width-len(model.input.Prompt)-4, 1)
		model.ensureCursorVisible()

	case dragTickMsg:
		model.dragTicking = false
		if model.controller.Expire() {
			model.refresh()
		}
		if model.controller.Active() {
			cmd := model.scheduleDragTick()
			return model, cmd
		}

	case statusRecordMsg:
		cmd := model.showStatus(message.Text, message.Level)
		return model, cmd

	case statusFadeMsg:
		if message.generation == model.statusGeneration {
			model.statusText = ""
		}

	case StorageChangedMsg:
		if !model.store.Reload() {
			return model, nil
		}
		model.abortDrag()
		model.refresh()
		cmd := model.showStatus("list changed on disk, reloaded", slog.LevelInfo)
		return model, cmd
	}
	return model, nil
}

// StorageChangedMsg tells the model that another process may have
// rewritten the stored list. Send it from a storage watcher with
// tea.Program.Send.
type StorageChangedMsg struct{}

// handleListKeys processes keys while the list has focus.
func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FilterClear):
		if model.controller.Active() {
			model.abortDrag()
		} else if model.filter.Input != "" {
			model.filter.Clear()
			model.refresh()
		}

	case key.Matches(message, model.keys.FilterActivate):
		model.abortDrag()
		model.focus = FocusFilter
		model.filter.Active = true

	case key.Matches(message, model.keys.Add):
		model.abortDrag()
		model.focus = FocusInput
		cmd := model.input.Focus()
		return model, cmd

	case key.Matches(message, model.keys.ClearAll):
		if model.store.Len() == 0 {
			break
		}
		model.abortDrag()
		modal := tui.NewConfirmModal("Clear list",
			fmt.Sprintf("Remove all %d tasks? This cannot be undone.", model.store.Len()),
			model.theme)
		model.confirm = &modal
		model.focus = FocusConfirm

	case key.Matches(message, model.keys.Toggle):
		if row, ok := model.selectedRow(); ok {
			model.store.ToggleID(row.ID())
			model.refresh()
		}

	case key.Matches(message, model.keys.Remove):
		if row, ok := model.selectedRow(); ok {
			model.removeTask(row.ID())
		}

	case key.Matches(message, model.keys.MoveUp):
		model.moveSelected(-1)

	case key.Matches(message, model.keys.MoveDown):
		model.moveSelected(1)

	case key.Matches(message, model.keys.Up):
		model.moveCursor(-1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(1)

	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(-model.visibleHeight())

	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.visibleHeight())

	case key.Matches(message, model.keys.Home):
		model.moveCursor(-len(model.rows))

	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.rows))
	}
	return model, nil
}

// handleInputKeys processes keys while the new-task input has focus.
// Enter adds the task and keeps the input open for the next one.
func (model Model) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEsc:
		model.input.Blur()
		model.input.Reset()
		model.focus = FocusList
		return model, nil

	case tea.KeyEnter:
		before := model.store.Len()
		list := model.store.Add(model.input.Value())
		if len(list) > before {
			model.selectedID = list[len(list)-1].ID
		}
		model.input.Reset()
		model.refresh()
		return model, nil
	}

	var cmd tea.Cmd
	model.input, cmd = model.input.Update(message)
	return model, cmd
}

// handleFilterKeys processes keys while the search query has focus.
// Every change re-projects the list immediately.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEsc:
		// First Esc clears the query, a second one leaves search.
		if model.filter.Input != "" {
			model.filter.Input = ""
			model.refresh()
		} else {
			model.filter.Active = false
			model.focus = FocusList
		}

	case tea.KeyEnter:
		model.filter.Active = false
		model.focus = FocusList

	case tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.refresh()
		}

	case tea.KeyRunes, tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.refresh()
	}
	return model, nil
}

// handleConfirmKeys routes keys to the clear-all modal.
func (model Model) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	switch model.confirm.HandleKey(message) {
	case tui.ConfirmAccepted:
		model.store.Clear()
		model.confirm = nil
		model.focus = FocusList
		model.selectedID = ""
		model.refresh()
	case tui.ConfirmRejected:
		model.confirm = nil
		model.focus = FocusList
	}
	return model, nil
}

// handleMouse processes mouse input. The wheel moves the cursor. A
// left press on the checkbox toggles the task, on the delete glyph
// removes it, and anywhere else on a row selects it and starts a drag
// that follows motion until release.
func (model *Model) handleMouse(message tea.MouseMsg) tea.Cmd {
	if model.focus == FocusConfirm {
		return nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		model.moveCursor(-wheelStep)
		return nil
	case tea.MouseButtonWheelDown:
		model.moveCursor(wheelStep)
		return nil
	}

	switch message.Action {
	case tea.MouseActionPress:
		if message.Button != tea.MouseButtonLeft {
			return nil
		}
		if message.Y == inputY {
			model.abortDrag()
			model.focus = FocusInput
			model.filter.Active = false
			return model.input.Focus()
		}
		position, ok := model.rowAt(message.Y)
		if !ok {
			return nil
		}
		model.leaveInput()
		row := model.rows[position]
		model.cursor = position
		model.selectedID = row.ID()

		switch model.renderer().Region(message.X) {
		case regionCheckbox:
			model.store.ToggleID(row.ID())
			model.refresh()
			return nil
		case regionDelete:
			model.removeTask(row.ID())
			return nil
		}

		if model.dragMode == DragDisplacement {
			model.controller.TouchStart(row.Index, touchCoordinate(message.Y))
		} else {
			model.controller.DragStart(row.Index)
		}
		return model.scheduleDragTick()

	case tea.MouseActionMotion:
		if model.controller.Active() {
			model.dragTo(message.Y)
		}

	case tea.MouseActionRelease:
		if !model.controller.Active() {
			return nil
		}
		model.dragTo(message.Y)
		if model.dragMode == DragDisplacement {
			model.controller.TouchEnd()
		} else {
			model.controller.DragEnd()
		}
		model.refresh()
	}
	return nil
}

// dragTo feeds the mouse row to the active gesture. In pointer mode
// the target is the row under the mouse, clamped to the visible rows.
func (model *Model) dragTo(screenY int) {
	if model.dragMode == DragDisplacement {
		model.controller.TouchMove(touchCoordinate(screenY))
		model.refresh()
		return
	}

	if len(model.rows) == 0 {
		return
	}
	position := model.scrollOffset + screenY - contentStartY
	position = min(max(position, 0), len(model.rows)-1)
	model.controller.DragOver(model.rows[position].Index)
	model.refresh()
}

func touchCoordinate(screenY int) float64 {
	return float64(screenY * touchUnitsPerRow)
}

// showStatus replaces the help line with text until the fade delay
// passes or another status arrives.
func (model *Model) showStatus(text string, level slog.Level) tea.Cmd {
	model.statusText = text
	model.statusLevel = level
	model.statusGeneration++
	generation := model.statusGeneration
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return statusFadeMsg{generation: generation}
	})
}

// scheduleDragTick starts the expiry tick unless one is pending.
func (model *Model) scheduleDragTick() tea.Cmd {
	if model.dragTicking || !model.controller.Active() {
		return nil
	}
	model.dragTicking = true
	return tea.Tick(dragTickInterval, func(time.Time) tea.Msg {
		return dragTickMsg{}
	})
}

// abortDrag abandons an in-progress drag. Steps already taken stay.
func (model *Model) abortDrag() {
	if !model.controller.Active() {
		return
	}
	model.controller.Abort()
	model.refresh()
}

// leaveInput returns focus to the list from the input or search bar.
func (model *Model) leaveInput() {
	if model.focus == FocusInput {
		model.input.Blur()
	}
	model.filter.Active = false
	model.focus = FocusList
}

// removeTask deletes a task and selects whichever row takes its place.
func (model *Model) removeTask(id task.ID) {
	position := model.cursor
	if _, err := model.store.RemoveID(id); err != nil {
		return
	}
	model.selectedID = ""
	model.refresh()
	if len(model.rows) > 0 {
		model.cursor = min(position, len(model.rows)-1)
		model.selectedID = model.rows[model.cursor].ID()
	}
	model.ensureCursorVisible()
}

// moveSelected moves the selected task one position in canonical
// order. The store ignores moves past either end.
func (model *Model) moveSelected(direction int) {
	row, ok := model.selectedRow()
	if !ok {
		return
	}
	model.store.Reorder(row.Index, row.Index+direction)
	model.refresh()
}

// refresh re-projects the list and restores the cursor to the
// selected task. While a drag is active the dragged task is selected.
// A selected task hidden by the query keeps its ID so that it is
// selected again once the query stops hiding it.
func (model *Model) refresh() {
	model.rows = model.filter.Project(model.projector, model.store.Tasks())

	if id, _, ok := model.controller.Source(); ok {
		model.selectedID = id
	}
	if position := view.Locate(model.rows, model.selectedID); position >= 0 {
		model.cursor = position
	} else {
		model.cursor = model.clampedIndex(model.cursor)
	}
	model.ensureCursorVisible()
}

// selectedRow returns the row under the cursor.
func (model *Model) selectedRow() (view.Row, bool) {
	if model.cursor < 0 || model.cursor >= len(model.rows) {
		return view.Row{}, false
	}
	return model.rows[model.cursor], true
}

// moveCursor moves the cursor by delta rows, clamped to the list.
func (model *Model) moveCursor(delta int) {
	if len(model.rows) == 0 {
		return
	}
	model.cursor = model.clampedIndex(model.cursor + delta)
	model.selectedID = model.rows[model.cursor].ID()
	model.ensureCursorVisible()
}

func (model *Model) clampedIndex(position int) int {
	if len(model.rows) == 0 {
		return 0
	}
	return min(max(position, 0), len(model.rows)-1)
}

// rowAt returns the position in rows shown at screen line y.
func (model *Model) rowAt(screenY int) (int, bool) {
	offset := screenY - contentStartY
	if offset < 0 || offset >= model.visibleHeight() {
		return 0, false
	}
	position := model.scrollOffset + offset
	if position >= len(model.rows) {
		return 0, false
	}
	return position, true
}

// visibleHeight is the number of list rows between the chrome lines.
func (model Model) visibleHeight() int {
	return max(model.height-contentStartY-chromeBelow, 0)
}

// rowWidth leaves the rightmost column for the scrollbar.
func (model Model) rowWidth() int {
	return max(model.width-1, 0)
}

func (model Model) renderer() ListRenderer {
	return NewListRenderer(model.theme, model.rowWidth())
}

// ensureCursorVisible adjusts scrollOffset so the cursor is on screen.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}
	maxOffset := max(len(model.rows)-visible, 0)
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

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	sections := []string{
		model.renderHeader(),
		model.renderInput(),
		model.renderSearchBar(),
		model.renderList(),
		lipgloss.NewStyle().
			Foreground(model.theme.BorderColor).
			Render(strings.Repeat("─", model.width)),
		model.renderHelp(),
	}
	output := strings.Join(sections, "\n")

	if model.confirm != nil {
		lines, anchorX, anchorY := model.confirm.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderHeader renders the title and the "done / total" counter.
func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true).
		Render(" notepad")

	list := model.store.Tasks()
	counter := fmt.Sprintf("%d / %d ", list.DoneCount(), list.Len())
	counterStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	if list.Len() > 0 && list.DoneCount() == list.Len() {
		counterStyle = counterStyle.Foreground(model.theme.CheckboxDone)
	}
	counterRendered := counterStyle.Render(counter)

	gap := max(model.width-lipgloss.Width(title)-lipgloss.Width(counterRendered), 1)
	return lipgloss.NewStyle().MaxWidth(model.width).
		Render(title + strings.Repeat(" ", gap) + counterRendered)
}

func (model Model) renderInput() string {
	return lipgloss.NewStyle().Width(model.width).MaxWidth(model.width).
		Render(" " + model.input.View())
}

// renderSearchBar renders the query when there is one, and a plain
// separator otherwise.
func (model Model) renderSearchBar() string {
	if bar := model.filter.View(model.theme, model.width); bar != "" {
		return bar
	}
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
}

// renderList renders the visible rows and the scrollbar, or the empty
// state message.
func (model Model) renderList() string {
	visible := model.visibleHeight()
	rowWidth := model.rowWidth()

	if len(model.rows) == 0 {
		text := "no items"
		if model.filter.Input != "" {
			text = "no matching items"
		}
		return lipgloss.Place(model.width, visible,
			lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(model.theme.FaintText).Render(text))
	}

	draggedID, _, dragging := model.controller.Source()
	renderer := model.renderer()
	lines := make([]string, 0, visible)
	for position := model.scrollOffset; position < model.scrollOffset+visible && position < len(model.rows); position++ {
		row := model.rows[position]
		lines = append(lines, renderer.RenderRow(row,
			position == model.cursor,
			dragging && row.ID() == draggedID))
	}
	blank := lipgloss.NewStyle().Width(rowWidth).Render("")
	for len(lines) < visible {
		lines = append(lines, blank)
	}

	marker := -1
	if dragging {
		marker = view.Locate(model.rows, draggedID)
	}
	scrollbar := tui.Scrollbar{
		Height:  visible,
		Total:   len(model.rows),
		Visible: visible,
		Offset:  model.scrollOffset,
		Marker:  marker,
		Focused: model.focus == FocusList,
	}.Render(model.theme)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(rowWidth).Height(visible).Render(strings.Join(lines, "\n")),
		scrollbar,
	)
}

// renderHelp renders the bottom line: key hints (or the latest log
// record), the cursor position, and the persistence indicator.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var line string
	switch {
	case model.controller.Active():
		line = style.Render(" [MOVE] release to drop  esc cancel")
	case model.focus == FocusInput:
		line = style.Render(" [ADD] enter add  esc done")
	case model.focus == FocusFilter:
		line = style.Render(" [SEARCH] enter keep  esc clear")
	case model.focus == FocusConfirm:
		line = style.Render(" [CONFIRM] y yes  n no")
	default:
		line = style.Render(" [LIST] q quit  a add  space toggle  d delete  K/J move  / search  C clear")
	}

	if model.statusText != "" {
		color := model.theme.WarningForeground
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		line = lipgloss.NewStyle().Foreground(color).Render(" " + model.statusText)
	}

	if len(model.rows) > 0 {
		line += style.Render(fmt.Sprintf("  %d/%d", model.cursor+1, len(model.rows)))
	}

	status := model.store.Status()
	if status.LastWriteError != nil {
		line += "  " + lipgloss.NewStyle().
			Foreground(model.theme.ErrorForeground).
			Bold(true).
			Render("⚠ not saved: "+status.LastWriteError.Error())
	} else if status.Dirty {
		line += "  " + lipgloss.NewStyle().
			Foreground(model.theme.WarningForeground).
			Render("● unsaved")
	}

	return lipgloss.NewStyle().MaxWidth(model.width).Render(line)
}
