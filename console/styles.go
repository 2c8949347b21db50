package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan  = lipgloss.Color("6")
	green = lipgloss.Color("2")
	red   = lipgloss.Color("1")
	blue  = lipgloss.Color("4")
)

type styles struct {
	header  lipgloss.Style
	section lipgloss.Style
	id      lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	prompt  lipgloss.Style
}

// newStyles binds the palette to out, so colors are only emitted when out is
// a terminal that supports them.
func newStyles(out io.Writer, color bool) styles {

	r := lipgloss.NewRenderer(out)
	if !color {
		plain := r.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}

	return styles{
		header:  r.NewStyle().Foreground(cyan).Bold(true),
		section: r.NewStyle().Foreground(cyan).Bold(true),
		id:      r.NewStyle().Foreground(cyan),
		success: r.NewStyle().Foreground(green),
		failure: r.NewStyle().Foreground(red),
		info:    r.NewStyle().Foreground(blue),
		prompt:  r.NewStyle().Foreground(cyan),
	}
}
