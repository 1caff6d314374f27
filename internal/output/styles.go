package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when ANSI styling is emitted.
type ColorMode string

const (
	// ColorAuto styles output only when the writer is a color-capable terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways styles output regardless of the writer.
	ColorAlways ColorMode = "always"
	// ColorNever disables styling.
	ColorNever ColorMode = "never"

	colorCyan        = lipgloss.Color("6")
	colorGreen       = lipgloss.Color("2")
	colorYellow      = lipgloss.Color("3")
	colorBrightBlack = lipgloss.Color("8")

	invalidColorModeMessageFormat = "invalid color mode %q; expected auto, always, or never"
)

// ParseColorMode normalizes a user supplied color mode; empty input means ColorAuto.
func ParseColorMode(input string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(input))) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf(invalidColorModeMessageFormat, input)
	}
}

// Styles groups the lipgloss styles used across the report.
type Styles struct {
	Heading         lipgloss.Style
	Directory       lipgloss.Style
	TrackedMarker   lipgloss.Style
	UntrackedMarker lipgloss.Style
	IgnoredMarker   lipgloss.Style
	Dimmed          lipgloss.Style
}

// NewStyles binds styles to a renderer whose color profile follows mode for writer.
func NewStyles(writer io.Writer, mode ColorMode) Styles {
	renderer := lipgloss.NewRenderer(writer)
	switch mode {
	case ColorAlways:
		renderer.SetColorProfile(termenv.ANSI)
	case ColorNever:
		renderer.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Heading:         renderer.NewStyle().Bold(true).Foreground(colorCyan),
		Directory:       renderer.NewStyle().Bold(true).Foreground(colorCyan),
		TrackedMarker:   renderer.NewStyle().Foreground(colorGreen),
		UntrackedMarker: renderer.NewStyle().Foreground(colorYellow),
		IgnoredMarker:   renderer.NewStyle().Foreground(colorBrightBlack),
		Dimmed:          renderer.NewStyle().Faint(true),
	}
}

// PlainStyles returns styles that never emit escape sequences.
func PlainStyles() Styles {
	return NewStyles(io.Discard, ColorNever)
}
