// Package ui renders photon's terminal output: styled status lines, the
// shader report and the interactive install prompt.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	Success     = lipgloss.Color("#8BC34A") // Lime Green
	Destructive = lipgloss.Color("#e53935") // Red
	Warning     = lipgloss.Color("#FFC107") // Yellow
	Info        = lipgloss.Color("#2196F3") // Blue
	Muted       = lipgloss.Color("#8a94a6")
)

// Markers prefixed to per-shader lines.
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
)

// Styles holds the styles for one output stream.
type Styles struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles builds styles for w. Color is dropped automatically when w is
// not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Success: r.NewStyle().Foreground(Success),
		Failure: r.NewStyle().Foreground(Destructive),
		Warning: r.NewStyle().Foreground(Warning),
		Info:    r.NewStyle().Foreground(Info),
		Muted:   r.NewStyle().Foreground(Muted),
		Bold:    r.NewStyle().Bold(true),
	}
}
