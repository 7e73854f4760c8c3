package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var numberPrinter = message.NewPrinter(language.English)

// formatKg renders a kg CO₂e amount with thousands separators.
func formatKg(kg float64) string {
	return numberPrinter.Sprintf("%.2f kg CO₂e", kg)
}

// formatIntensity renders a kg/kWh intensity.
func formatIntensity(v float64) string {
	return fmt.Sprintf("%.4f kg/kWh", v)
}

// newTable returns a tabwriter on w with the shared layout.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

const barWidth = 30

// intensityBar renders a proportional bar for one profile hour, scaled
// against the profile maximum.
func intensityBar(value, max float64) string {
	if max <= 0 {
		return ""
	}
	filled := int(value / max * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled)
}

// hourLabel formats an hour index as a 24h clock label.
func hourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
