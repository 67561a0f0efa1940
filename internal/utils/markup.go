package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	boldRegex   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRegex = regexp.MustCompile(`\*(.*?)\*`)
)

// Markup decides how line breaks and emphasis are written out
type Markup struct {
	LineBreak string
	Bold      func(string) string
	Italic    func(string) string
	// Escape is applied to the raw text before any transform
	Escape func(string) string
}

// HTML produces the fragment form used by exports
func HTML() Markup {
	return Markup{
		LineBreak: "<br>",
		Bold:      func(s string) string { return "<strong>" + s + "</strong>" },
		Italic:    func(s string) string { return "<em>" + s + "</em>" },
		Escape:    html.EscapeString,
	}
}

// Terminal renders emphasis with lipgloss styles
func Terminal() Markup {
	return Markup{
		LineBreak: "\n",
		Bold:      func(s string) string { return BoldStyle().Render(s) },
		Italic:    func(s string) string { return ItalicStyle().Render(s) },
	}
}

// Plain strips the markers
func Plain() Markup {
	identity := func(s string) string { return s }
	return Markup{
		LineBreak: "\n",
		Bold:      identity,
		Italic:    identity,
	}
}

// FormatMessage renders chat text: line breaks, then **bold**, then *italic*.
// Bold has to go first or its markers would be eaten as two empty italics.
func FormatMessage(text string, mk Markup) string {
	text = formatBold(breakLines(escape(text, mk), mk), mk)
	return italicRegex.ReplaceAllStringFunc(text, func(match string) string {
		return mk.Italic(italicRegex.FindStringSubmatch(match)[1])
	})
}

// FormatAnalysis renders image analysis text: line breaks and **bold** only
func FormatAnalysis(text string, mk Markup) string {
	return formatBold(breakLines(escape(text, mk), mk), mk)
}

func escape(text string, mk Markup) string {
	if mk.Escape == nil {
		return text
	}
	return mk.Escape(text)
}

func breakLines(text string, mk Markup) string {
	return strings.ReplaceAll(text, "\n", mk.LineBreak)
}

func formatBold(text string, mk Markup) string {
	return boldRegex.ReplaceAllStringFunc(text, func(match string) string {
		return mk.Bold(boldRegex.FindStringSubmatch(match)[1])
	})
}
