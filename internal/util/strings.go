// Package util provides shared utility functions used across the codebase.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Iron-Ham/nikit/internal/styles"
)

// LimitText returns text unchanged when it has at most maxWidth runes.
// Otherwise it keeps the first maxWidth runes and appends the dimmed
// ellipsis marker. A negative maxWidth is treated as zero.
func LimitText(text string, maxWidth int) string {
	maxWidth = max(maxWidth, 0)
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	return string(runes[:maxWidth]) + styles.Ellipsis()
}

// LimitWidth is LimitText measured in terminal columns instead of runes.
// ANSI escape sequences in s are preserved and wide characters count by
// their visual width, so it is safe for already-styled output.
func LimitWidth(s string, maxWidth int) string {
	maxWidth = max(maxWidth, 0)
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "") + styles.Ellipsis()
}
