// Package ui provides terminal output helpers: format detection, semantic
// lipgloss styles and markdown rendering.
//
// Styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes, so command output stays consistent everywhere.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors shared by the style registry.
var (
	colorError   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// styleRegistry maps semantic names to lipgloss styles.
var styleRegistry = map[string]lipgloss.Style{
	"Error":   lipgloss.NewStyle().Bold(true).Foreground(colorError),
	"Warning": lipgloss.NewStyle().Foreground(colorWarning),
	"Success": lipgloss.NewStyle().Foreground(colorSuccess),
	"Title":   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	"Muted":   lipgloss.NewStyle().Foreground(colorMuted),
	"Key":     lipgloss.NewStyle().Bold(true),
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := styleRegistry[name]; ok {
		return style
	}
	// Return a default style if not found
	return lipgloss.NewStyle()
}
