package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/engine"
	"github.com/vovakirdan/tui-duel/internal/storage"
)

// reservedRows is the number of terminal rows not available to the playfield:
// header, status table, notice and help.
const reservedRows = 9

// PresetSaver persists player customizations.
type PresetSaver interface {
	SavePreset(p storage.Preset) error
}

// Options configures a Model.
type Options struct {
	Arena     *Arena
	Store     PresetSaver        // Optional; customizations are not saved when nil
	Renderer  *lipgloss.Renderer // Optional; the default renderer when nil
	Logger    *log.Logger        // Optional; discards when nil
	SessionID string
	Screen    core.RuntimeConfig
}

// fieldLayout places the playfield on the terminal.
type fieldLayout struct {
	x, y int // Top-left terminal cell
	cols int // Pixel columns, one per terminal column
	rows int // Pixel rows, two per terminal row
}

// contains reports whether terminal cell (x, y) is on the playfield.
func (f fieldLayout) contains(x, y int) bool {
	return x >= f.x && x < f.x+f.cols && y >= f.y && 2*(y-f.y) < f.rows
}

// pixel maps a terminal cell to the pixel-space point at its center.
func (f fieldLayout) pixel(x, y int) (float64, float64) {
	return float64(x-f.x) + 0.5, float64(2*(y-f.y)) + 1
}

// computeLayout fits a width x height playfield into the terminal, keeping
// its aspect ratio with two pixel rows per cell.
func computeLayout(screen core.RuntimeConfig, width, height float64) fieldLayout {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	maxCols := max(screen.ScreenW, 1)
	maxRows := max(2*(screen.ScreenH-reservedRows), 2)

	cols := maxCols
	rows := int(float64(cols) * height / width)
	if rows > maxRows {
		rows = maxRows
		cols = max(int(float64(rows)*width/height), 1)
	}
	rows = max(rows-rows%2, 2)

	return fieldLayout{x: 0, y: 1, cols: cols, rows: rows}
}

// pickedMsg reports the player under a mouse click.
type pickedMsg struct {
	side  engine.Side
	color core.Color
	ok    bool
}

// presetSavedMsg reports the result of persisting a customization.
type presetSavedMsg struct {
	preset storage.Preset
	err    error
}

// Model is the Bubble Tea model of one duel session.
type Model struct {
	arena    *Arena
	store    PresetSaver
	renderer *lipgloss.Renderer
	logger   *log.Logger
	session  string
	keys     *KeyMapper
	help     help.Model
	status   table.Model
	dialog   *Dialog
	selected engine.Side
	snap     engine.Snapshot
	frame    *core.Frame
	screen   core.RuntimeConfig
	field    fieldLayout
	notice   string
	quitting bool
}

// NewModel creates a model for an arena. The arena's runner is expected to
// be started by the caller.
func NewModel(opts Options) Model {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	screen := opts.Screen
	if screen.ScreenW <= 0 || screen.ScreenH <= 0 {
		screen = core.DefaultConfig()
	}

	m := Model{
		arena:    opts.Arena,
		store:    opts.Store,
		renderer: r,
		logger:   logger,
		session:  opts.SessionID,
		keys:     NewKeyMapper(),
		help:     help.New(),
		status:   newStatusTable(r),
		snap:     opts.Arena.Runner.Latest(),
		screen:   screen,
	}
	m.resize()
	m.syncStatus()
	return m
}

// Init starts listening for engine updates.
func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.arena.Runner)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateMsg:
		m.snap = msg.Snapshot
		if msg.Frame != nil {
			m.frame = msg.Frame
		}
		m.syncStatus()
		return m, waitForUpdate(m.arena.Runner)

	case RunnerDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.screen.ScreenW = msg.Width
		m.screen.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.dialog != nil {
			return m.updateDialog(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.dialog != nil {
			return m, nil
		}
		return m.handleMouse(msg)

	case pickedMsg:
		if !msg.ok {
			return m, nil
		}
		return m.openDialog(msg.side, msg.color)

	case presetSavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save preset", "side", msg.preset.Side, "error", msg.err)
			m.notice = "Could not save preset"
			return m, nil
		}
		m.logger.Debug("preset saved", "side", msg.preset.Side, "color", msg.preset.Color)
		return m, nil
	}

	if m.dialog != nil {
		return m.updateDialog(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	sel := m.selected
	switch action {
	case core.ActionPause:
		m.arena.Runner.Submit(func(l *engine.Level) { l.TogglePause() })
	case core.ActionSelectLeft:
		m.selected = engine.SideLeft
		m.syncStatus()
	case core.ActionSelectRight:
		m.selected = engine.SideRight
		m.syncStatus()
	case core.ActionUp:
		m.steer(sel, engine.DirectionUp)
	case core.ActionDown:
		m.steer(sel, engine.DirectionDown)
	case core.ActionShotSpeedUp:
		return m, m.customize(sel, func(p *engine.Player) { p.SetShotSpeed(stepSlider(p.ShotSpeed(), 1)) })
	case core.ActionShotSpeedDown:
		return m, m.customize(sel, func(p *engine.Player) { p.SetShotSpeed(stepSlider(p.ShotSpeed(), -1)) })
	case core.ActionMoveSpeedUp:
		return m, m.customize(sel, func(p *engine.Player) { p.SetMoveSpeed(stepSlider(p.MoveSpeed(), 1)) })
	case core.ActionMoveSpeedDown:
		return m, m.customize(sel, func(p *engine.Player) { p.SetMoveSpeed(stepSlider(p.MoveSpeed(), -1)) })
	case core.ActionCustomize:
		if view, ok := m.snap.Player(sel); ok {
			return m.openDialog(sel, view.Color)
		}
	}

	return m, nil
}

// handleMouse steers on motion and opens the dialog on a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.field.contains(msg.X, msg.Y) {
		return m, nil
	}
	px, py := m.field.pixel(msg.X, msg.Y)
	canvas := m.arena.Canvas

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.arena.Runner.Submit(func(l *engine.Level) {
			l.PushAt(canvas.ToLogical(px, py))
		})

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		runner := m.arena.Runner
		return m, func() tea.Msg {
			var picked pickedMsg
			err := runner.Do(context.Background(), func(l *engine.Level) {
				if p, ok := l.PlayerAt(canvas.ToLogical(px, py)); ok {
					picked = pickedMsg{side: p.Side(), color: p.Color(), ok: true}
				}
			})
			if err != nil {
				return nil
			}
			return picked
		}
	}

	return m, nil
}

// updateDialog routes input to the open customization dialog.
func (m Model) updateDialog(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	d, outcome, cmd := m.dialog.Update(msg)
	m.dialog = &d

	switch outcome {
	case DialogConfirmed:
		m.dialog = nil
		c, ok := d.Color()
		if !ok {
			return m, nil
		}
		return m, m.customize(d.Side(), func(p *engine.Player) { p.SetColor(string(c)) })
	case DialogClosed:
		m.dialog = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) openDialog(side engine.Side, current core.Color) (tea.Model, tea.Cmd) {
	d := NewDialog(m.renderer, side, current)
	m.dialog = &d
	m.selected = side
	m.syncStatus()
	return m, textinput.Blink
}

// steer queues a direction change for the player on side.
func (m Model) steer(side engine.Side, dir engine.Direction) {
	m.arena.Runner.Submit(func(l *engine.Level) {
		l.Steer(side, dir)
	})
}

// customize applies fn to the player on side and saves the resulting preset.
func (m Model) customize(side engine.Side, fn func(*engine.Player)) tea.Cmd {
	runner := m.arena.Runner
	store := m.store

	return func() tea.Msg {
		var (
			preset storage.Preset
			found  bool
		)
		err := runner.Do(context.Background(), func(l *engine.Level) {
			if p, ok := l.Player(side); ok {
				fn(p)
				preset = presetOf(p)
				found = true
			}
		})
		if err != nil || !found || store == nil {
			return nil
		}
		return presetSavedMsg{preset: preset, err: store.SavePreset(preset)}
	}
}

// resize recomputes the playfield layout and resizes the canvas to match.
func (m *Model) resize() {
	layout := computeLayout(m.screen, m.snap.Width, m.snap.Height)
	if layout == m.field {
		return
	}
	m.field = layout

	canvas := m.arena.Canvas
	m.arena.Runner.Submit(func(*engine.Level) {
		canvas.Resize(layout.cols, layout.rows)
	})
}

// syncStatus refreshes the status table from the latest snapshot.
func (m *Model) syncStatus() {
	rows := statusRows(m.snap)
	m.status.SetRows(rows)
	if len(rows) > 0 {
		m.status.SetCursor(min(int(m.selected), len(rows)-1))
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	r := m.renderer

	header := r.NewStyle().Bold(true).Render("DUEL") + "  Press <Space> to pause"
	if m.snap.Paused {
		header += "  " + r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render("PAUSED")
	}
	if m.session != "" {
		header += "  " + r.NewStyle().Faint(true).Render(m.session)
	}

	var field string
	switch {
	case m.dialog != nil:
		field = lipgloss.Place(m.field.cols, (m.field.rows+1)/2,
			lipgloss.Center, lipgloss.Center, m.dialog.View())
	case m.frame != nil:
		field = RenderFrame(r, *m.frame, m.snap.Paused)
	default:
		field = lipgloss.Place(m.field.cols, (m.field.rows+1)/2,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	var badges []string
	for _, p := range m.snap.Players {
		badges = append(badges, playerBadge(r, p)+fmt.Sprintf(" %d", p.Score))
	}
	scores := lipgloss.JoinHorizontal(lipgloss.Top, joinWith(badges, "   ")...)

	notice := m.notice
	if notice == "" {
		notice = fmt.Sprintf("tick %d", m.snap.Tick)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		field,
		scores,
		m.status.View(),
		r.NewStyle().Faint(true).Render(notice),
		m.help.View(m.keys.Keys()),
	)
}

// joinWith interleaves sep between parts.
func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

// Run starts the arena's runner and a Bubble Tea program for it, and stops
// the runner when the program exits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- opts.Arena.Runner.Run(ctx) }()

	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer steering needs motion without buttons
	)

	_, err := p.Run()
	cancel()
	<-errCh
	return err
}
