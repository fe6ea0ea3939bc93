// Package ui provides the color themes shared by the terminal presenter and
// the dashboard. ANSI helpers serve plain CLI output; TUITheme carries the
// lipgloss colors used by the dashboard.
//
// NO_COLOR (https://no-color.org/) and --no-color both select NoColorTheme.
package ui
