package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-duel/internal/engine"
)

// sliderCells is the number of 0.1 steps on the shot and move speed sliders.
const sliderCells = 10

// stepSlider moves v by delta steps and snaps it to the slider grid in [0, 1].
func stepSlider(v float64, delta int) float64 {
	steps := int(math.Round(v*sliderCells)) + delta
	steps = max(0, min(sliderCells, steps))
	return float64(steps) / sliderCells
}

// slider renders v in [0, 1] as a bar followed by its value.
func slider(v float64) string {
	filled := int(math.Round(v * sliderCells))
	filled = max(0, min(sliderCells, filled))
	return fmt.Sprintf("%s%s %.1f",
		strings.Repeat("■", filled),
		strings.Repeat("□", sliderCells-filled),
		v,
	)
}

// newStatusTable creates the per-player status panel.
func newStatusTable(r *lipgloss.Renderer) table.Model {
	columns := []table.Column{
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "Shot Speed", Width: 15},
		{Title: "Move Speed", Width: 15},
		{Title: "Color", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(4), // Header, border and two players
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = r.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Cell = r.NewStyle().Padding(0, 1)
	s.Selected = r.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return t
}

// statusRows builds one table row per constructed player, ordered by side.
func statusRows(snap engine.Snapshot) []table.Row {
	rows := make([]table.Row, 0, len(snap.Players))
	for _, p := range snap.Players {
		name := p.Side.String()
		if !p.Live {
			name += " ✗"
		}
		rows = append(rows, table.Row{
			name,
			fmt.Sprintf("%d", p.Score),
			slider(p.ShotSpeed),
			slider(p.MoveSpeed),
			string(p.Color),
		})
	}
	return rows
}

// playerBadge renders a side label in the player's color.
func playerBadge(r *lipgloss.Renderer, p engine.PlayerView) string {
	return r.NewStyle().
		Padding(0, 1).
		Bold(true).
		Background(lipgloss.Color(p.Color)).
		Foreground(lipgloss.Color(p.Color.TextColor())).
		Render(p.Side.String())
}
