package utils

import "github.com/charmbracelet/lipgloss"

// Inline text styles used by the terminal markup
func BoldStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true)
}

func ItalicStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Italic(true)
}
