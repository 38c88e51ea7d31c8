package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-duel/internal/core"
)

// halfBlock paints the upper pixel with the foreground and the lower pixel
// with the background, so each terminal cell shows two pixel rows.
const halfBlock = '▀'

// pausedTint and pausedMix dim the playfield while paused.
const (
	pausedTint core.Color = "#808080"
	pausedMix             = 0.55
)

type cellColors struct {
	top, bottom core.Color
}

// FieldRows returns the number of terminal rows needed for a frame.
func FieldRows(f core.Frame) int {
	return (f.Rows + 1) / 2
}

// RenderFrame converts a frame to a styled string using half-block cells.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderFrame(r *lipgloss.Renderer, f core.Frame, dim bool) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if f.Cols == 0 || f.Rows == 0 {
		return ""
	}

	tint := make(map[core.Color]core.Color)
	shade := func(c core.Color) core.Color {
		if !dim {
			return c
		}
		if out, ok := tint[c]; ok {
			return out
		}
		out := c.Blend(pausedTint, pausedMix)
		tint[c] = out
		return out
	}

	styles := make(map[cellColors]lipgloss.Style)
	style := func(cc cellColors) lipgloss.Style {
		if s, ok := styles[cc]; ok {
			return s
		}
		s := r.NewStyle().
			Foreground(lipgloss.Color(cc.top)).
			Background(lipgloss.Color(cc.bottom))
		styles[cc] = s
		return s
	}

	at := func(x, y int) cellColors {
		top := f.At(x, 2*y)
		bottom := top
		if 2*y+1 < f.Rows {
			bottom = f.At(x, 2*y+1)
		}
		return cellColors{top: shade(top), bottom: shade(bottom)}
	}

	var sb strings.Builder
	rows := FieldRows(f)
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(f.Cols*rows*4 + rows)

	for y := range rows {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < f.Cols {
			start := at(x, y)

			n := 0
			for x < f.Cols && at(x, y) == start {
				n++
				x++
			}

			sb.WriteString(style(start).Render(strings.Repeat(string(halfBlock), n)))
		}
	}
	return sb.String()
}
