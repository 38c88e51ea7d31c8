// Package tui provides the Bubble Tea front end for the duel arena.
// It renders engine updates, maps input to engine commands and serves
// sessions over SSH.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-duel/internal/engine"
)

// UpdateMsg carries the newest engine update into the model.
type UpdateMsg engine.Update

// RunnerDoneMsg is sent once the runner has stopped.
type RunnerDoneMsg struct{}

// waitForUpdate returns a command that blocks until the runner publishes.
// The model re-issues it after every UpdateMsg.
func waitForUpdate(r *engine.Runner) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-r.Updates():
			return UpdateMsg(u)
		case <-r.Done():
			return RunnerDoneMsg{}
		}
	}
}
