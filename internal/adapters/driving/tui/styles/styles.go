// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"), // Blue
		Foreground: lipgloss.Color("#E5E7EB"), // Light gray
		Muted:      lipgloss.Color("#6B7280"), // Medium gray
		Success:    lipgloss.Color("#34D399"), // Green
		Warning:    lipgloss.Color("#FBBF24"), // Yellow
		Error:      lipgloss.Color("#F87171"), // Red
		Border:     lipgloss.Color("#374151"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title styles headers.
	Title lipgloss.Style

	// Tab styles an inactive tab label.
	Tab lipgloss.Style

	// TabActive styles the active tab label.
	TabActive lipgloss.Style

	// ListItem styles an unselected list row.
	ListItem lipgloss.Style

	// ListCursor styles the row under the cursor.
	ListCursor lipgloss.Style

	// Muted styles secondary text.
	Muted lipgloss.Style

	// Success styles completed state text.
	Success lipgloss.Style

	// Warning styles in-progress state text.
	Warning lipgloss.Style

	// Error styles failure text.
	Error lipgloss.Style

	// UserTurn styles a user chat line.
	UserTurn lipgloss.Style

	// AssistantTurn styles an assistant chat line.
	AssistantTurn lipgloss.Style

	// StatusBar styles the bottom help line.
	StatusBar lipgloss.Style
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// NewStyles builds the style set from a theme.
func NewStyles(t *Theme) *Styles {
	return &Styles{
		theme:         t,
		Title:         lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Tab:           lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		TabActive:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1).Underline(true),
		ListItem:      lipgloss.NewStyle().Foreground(t.Foreground),
		ListCursor:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:         lipgloss.NewStyle().Foreground(t.Muted),
		Success:       lipgloss.NewStyle().Foreground(t.Success),
		Warning:       lipgloss.NewStyle().Foreground(t.Warning),
		Error:         lipgloss.NewStyle().Foreground(t.Error),
		UserTurn:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		AssistantTurn: lipgloss.NewStyle().Foreground(t.Foreground),
		StatusBar:     lipgloss.NewStyle().Foreground(t.Muted).BorderTop(true).BorderForeground(t.Border),
	}
}

// Theme returns the theme behind the styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
