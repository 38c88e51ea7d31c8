package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-duel/internal/core"
	"github.com/vovakirdan/tui-duel/internal/engine"
)

// DialogOutcome reports what a key press did to the customization dialog.
type DialogOutcome int

const (
	DialogOpen DialogOutcome = iota
	DialogConfirmed
	DialogClosed
)

// DialogKeyMap defines the key bindings of the customization dialog.
type DialogKeyMap struct {
	Confirm key.Binding
	Close   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k DialogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Close}
}

// FullHelp returns keybindings for the expanded help view.
func (k DialogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultDialogKeyMap returns the default dialog key bindings.
func DefaultDialogKeyMap() DialogKeyMap {
	return DialogKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Dialog edits the color of one player.
type Dialog struct {
	side     engine.Side
	input    textinput.Model
	keys     DialogKeyMap
	help     help.Model
	renderer *lipgloss.Renderer
}

// NewDialog opens a dialog for side prefilled with its current color.
func NewDialog(r *lipgloss.Renderer, side engine.Side, current core.Color) Dialog {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	ti := textinput.New()
	ti.Prompt = "Player color: "
	ti.Placeholder = "#rrggbb"
	ti.CharLimit = 7
	ti.Width = 8
	ti.SetValue(string(current))
	ti.Focus()

	return Dialog{
		side:     side,
		input:    ti,
		keys:     DefaultDialogKeyMap(),
		help:     help.New(),
		renderer: r,
	}
}

// Side returns the player being customized.
func (d Dialog) Side() engine.Side {
	return d.side
}

// Color returns the entered color if it is a valid lowercase #rrggbb.
func (d Dialog) Color() (core.Color, bool) {
	return core.ParseColor(strings.TrimSpace(d.input.Value()))
}

// Update handles a message while the dialog is open.
// Confirming closes the dialog whether or not the color is valid; the
// caller applies the color only when Color reports it valid.
func (d Dialog) Update(msg tea.Msg) (Dialog, DialogOutcome, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, d.keys.Confirm):
			return d, DialogConfirmed, nil
		case key.Matches(km, d.keys.Close):
			return d, DialogClosed, nil
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, DialogOpen, cmd
}

// View renders the dialog box.
func (d Dialog) View() string {
	r := d.renderer

	title := r.NewStyle().Bold(true).Render("Customize " + d.side.String())

	preview := r.NewStyle().Foreground(lipgloss.Color("9")).Render("use lowercase #rrggbb")
	if c, ok := d.Color(); ok {
		preview = r.NewStyle().
			Background(lipgloss.Color(c)).
			Foreground(lipgloss.Color(c.TextColor())).
			Padding(0, 1).
			Render(string(c))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		d.input.View(),
		preview,
		"",
		d.help.View(d.keys),
	)

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Render(body)
}
