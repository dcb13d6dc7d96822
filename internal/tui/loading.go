package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingState is a spinner with a message shown while a lookup runs.
type LoadingState struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewLoadingState returns an idle spinner.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)
	return &LoadingState{spinner: s}
}

// Start shows message next to the spinner and returns the first tick.
func (l *LoadingState) Start(message string) tea.Cmd {
	l.message = message
	if l.active {
		return nil
	}
	l.active = true
	return l.spinner.Tick
}

// Stop hides the spinner. Pending ticks die out in Update.
func (l *LoadingState) Stop() {
	l.active = false
	l.message = ""
}

// Active reports whether the spinner is shown.
func (l *LoadingState) Active() bool { return l.active }

// Update advances the spinner on its own tick messages. Ticks of other
// spinners are ignored by id.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !l.active {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// View renders the spinner and message, or nothing when idle.
func (l *LoadingState) View() string {
	if !l.active {
		return ""
	}
	return l.spinner.View() + " " + l.message
}
