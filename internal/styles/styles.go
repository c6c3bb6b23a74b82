// Package styles holds the lipgloss styles nikit uses for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// EllipsisRune marks truncated text.
const EllipsisRune = "…"

var (
	SecondaryColor = lipgloss.Color("#10B981") // Green
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray

	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)

	// Dim renders faint text; used for the truncation marker.
	Dim = lipgloss.NewStyle().Faint(true)
)

// Ellipsis returns the dimmed truncation marker for the active color profile.
func Ellipsis() string {
	return Dim.Render(EllipsisRune)
}

// Color modes accepted by the output.color config key.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidColorModes returns the accepted output.color values.
func ValidColorModes() []string {
	return []string{ColorAuto, ColorAlways, ColorNever}
}

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// ConfigureColor sets the default lipgloss color profile for the given mode.
// In auto mode color stays enabled only when fd is a terminal.
func ConfigureColor(mode string, fd uintptr) {
	switch mode {
	case ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(int(fd)) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}
