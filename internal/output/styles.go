package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: specifiers, paths, config files.
	ColorCyan = lipgloss.Color("14")

	// colorGreen marks rewritten specifiers.
	colorGreen = lipgloss.Color("82")

	// ColorYellow marks configuration that was located but not usable.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed marks failures (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (arrows, separators, config paths).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Outcome names shared by result rendering and the host protocol.
const (
	StatusRewritten      = "rewritten"
	StatusPassThrough    = "pass-through"
	StatusConfigNotFound = "config-not-found"
	statusMalformed      = "malformed-config"
	statusFailed         = "error"
)

// statusStyle returns the style for an outcome name. Unknown names are
// unstyled.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusRewritten:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusPassThrough:
		return lipgloss.NewStyle().Faint(true)
	case StatusConfigNotFound:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case statusMalformed, statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minSpecifierColumnWidth aligns the arrow across result lines.
const minSpecifierColumnWidth = 28

// FormatRewrite renders one resolution outcome:
//
//	@ui/button                  → /proj/src/ui/button.js
//	lodash/map                  (pass-through)
func FormatRewrite(specifier, path, status string) string {
	padding := minSpecifierColumnWidth - len(specifier)
	if padding < 2 {
		padding = 2
	}
	lead := StyleNoun.Render(specifier) + strings.Repeat(" ", padding)

	if status == StatusRewritten {
		return lead + StyleDim.Render("→") + " " + statusStyle(status).Render(path)
	}
	return lead + statusStyle(status).Render("("+status+")")
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(colorBoldRed).Render("✘")
	return cross + " " + msg
}

// vetLabelWidth aligns details across vet check lines.
const vetLabelWidth = 30

// FormatVetCheck renders a passed check with an optional aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}
