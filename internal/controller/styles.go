package controller

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// diffStyles colors unified diff lines on a terminal.
type diffStyles struct {
	header  lipgloss.Style
	hunk    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
}

func newDiffStyles() diffStyles {
	return diffStyles{
		header:  lipgloss.NewStyle().Bold(true),
		hunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06b6d4")),
		added:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		removed: lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}

func (d diffStyles) line(text string) string {
	switch {
	case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
		return d.header.Render(text)
	case strings.HasPrefix(text, "@@"):
		return d.hunk.Render(text)
	case strings.HasPrefix(text, "+"):
		return d.added.Render(text)
	case strings.HasPrefix(text, "-"):
		return d.removed.Render(text)
	}

	return text
}
