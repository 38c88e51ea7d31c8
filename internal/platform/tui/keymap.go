package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// KeyMap defines the key bindings of the arena.
type KeyMap struct {
	Pause         key.Binding
	SelectLeft    key.Binding
	SelectRight   key.Binding
	Up            key.Binding
	Down          key.Binding
	ShotSpeedUp   key.Binding
	ShotSpeedDown key.Binding
	MoveSpeedUp   key.Binding
	MoveSpeedDown key.Binding
	Customize     key.Binding
	Quit          key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.SelectLeft, k.SelectRight, k.Up, k.Down, k.Customize, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Quit},
		{k.SelectLeft, k.SelectRight, k.Up, k.Down},
		{k.ShotSpeedUp, k.ShotSpeedDown, k.MoveSpeedUp, k.MoveSpeedDown},
		{k.Customize},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "player 1"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "player 2"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		ShotSpeedUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "shot speed +"),
		),
		ShotSpeedDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "shot speed -"),
		),
		MoveSpeedUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "move speed +"),
		),
		MoveSpeedDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "move speed -"),
		),
		Customize: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "customize"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to arena actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap()}
}

// Keys returns the bindings used by the mapper.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.SelectLeft):
		return core.ActionSelectLeft, false
	case key.Matches(msg, k.SelectRight):
		return core.ActionSelectRight, false
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.ShotSpeedUp):
		return core.ActionShotSpeedUp, false
	case key.Matches(msg, k.ShotSpeedDown):
		return core.ActionShotSpeedDown, false
	case key.Matches(msg, k.MoveSpeedUp):
		return core.ActionMoveSpeedUp, false
	case key.Matches(msg, k.MoveSpeedDown):
		return core.ActionMoveSpeedDown, false
	case key.Matches(msg, k.Customize):
		return core.ActionCustomize, false
	}
	return core.ActionNone, false
}
