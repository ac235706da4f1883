package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
	Alert  = color.New(color.FgHiRed, color.Bold)
)

// SetColor enables or disables ANSI colour output globally.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Banner prints the report banner.
func Banner(w io.Writer, subtitle string) {
	fmt.Fprintf(w, "%s %s\n\n", Brand.Sprint("fintrace investigator"), Subtle.Sprint("· "+subtitle))
}

// Table prints a simple aligned table.
func Table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		Subtle.Fprintln(w, "  (no rows)")
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(w, strings.TrimRight(sepLine, " "))

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// KeyValue prints an aligned label and value.
func KeyValue(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", Subtle.Sprintf("%-18s", label), value)
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// ForHex picks the terminal colour closest to one of the report's hex colours.
func ForHex(hex string) *color.Color {
	switch strings.ToLower(hex) {
	case "#ef4444":
		return Bad
	case "#f59e0b", "#facc15":
		return Warn
	case "#10b981", "#22c55e":
		return Good
	case "#3b82f6":
		return Info
	default:
		return Subtle
	}
}

// Bar renders a horizontal bar of width cells filled to ratio.
func Bar(ratio float64, width int, c *color.Color) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	if filled == 0 && ratio > 0 {
		filled = 1
	}
	return c.Sprint(strings.Repeat("█", filled)) + Subtle.Sprint(strings.Repeat("·", width-filled))
}
