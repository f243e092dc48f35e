package render

import (
	"github.com/charmbracelet/lipgloss"

	"mdiff.dev/mdiff/moved"
)

var (
	plainStyle    = lipgloss.NewStyle()
	hunkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	insertedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// Moved lines: one pair of styles per side, with an alternate pair for
	// odd zebra groups so adjacent moved blocks are distinguishable.
	movedDelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	movedInsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	movedDelAltStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	movedInsAltStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// movedStyle picks the style of a moved line at pos on side: the per-side
// moved color, alternated by group parity in zebra modes, faint for
// interior lines in dimmed-zebra mode.
func (r *Renderer) movedStyle(pos int, side moved.Side) lipgloss.Style {
	style := movedDelStyle
	alt := movedDelAltStyle
	if side == moved.Inserted {
		style = movedInsStyle
		alt = movedInsAltStyle
	}
	if group, ok := r.Moved.Group(pos, side); ok && group%2 == 1 {
		style = alt
	}
	if r.Moved.IsInterior(pos, side) {
		style = style.Faint(true)
	}
	return style
}
