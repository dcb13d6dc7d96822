package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexzk1/ed-fc-companion/internal/tui/canvas"
	"github.com/alexzk1/ed-fc-companion/internal/tui/table"
)

// Colour palette shared by all planes.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorHighlight = lipgloss.Color("82")
	ColorMuted     = lipgloss.Color("240")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorSpinner   = lipgloss.Color("205")
	ColorBorder    = lipgloss.Color("63")
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle         = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle         = lipgloss.NewStyle().Foreground(ColorValue)
	InfoStyle          = lipgloss.NewStyle().Foreground(ColorHeader)
	SubtleStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle       = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle      = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)
	TabStyle           = lipgloss.NewStyle().Padding(0, 1).Foreground(ColorLabel)
	ActiveTabStyle     = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(ColorHeader).Underline(true)
	TableSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)
	BoxStyle           = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)
)

// TablePalette returns the cargo table colours.
func TablePalette() table.Palette {
	return table.Palette{
		Header:    canvas.Color(ColorHeader),
		Text:      canvas.Color(ColorValue),
		Highlight: canvas.Color(ColorHighlight),
	}
}
