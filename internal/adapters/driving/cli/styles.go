package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/modpatch/internal/core/domain"
)

// Theme defines the colour palette for report output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success marks applied rules.
	Success lipgloss.Color

	// Warning marks skipped rules.
	Warning lipgloss.Color

	// Error marks failed rules.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains pre-configured lipgloss styles for reports.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Applied lipgloss.Style
	Skipped lipgloss.Style
	Failed  lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Applied: lipgloss.NewStyle().
			Foreground(theme.Success),

		Skipped: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Failed: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),
	}
}

// Status returns the style for an outcome status.
func (s *Styles) Status(status domain.PatchStatus) lipgloss.Style {
	switch status {
	case domain.PatchApplied:
		return s.Applied
	case domain.PatchFailed:
		return s.Failed
	default:
		return s.Skipped
	}
}
