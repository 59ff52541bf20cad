package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/curve"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox frames a view in a rounded border. A non-empty title is
// printed upper-cased above the content.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID shortens a UUID to its first 8 characters, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatPercent renders a percentage with one decimal, right-aligned to 6.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%5.1f%%", p)
}

// FormatDelta renders realized-minus-planned in percentage points with an
// explicit sign, colored by risk band.
func FormatDelta(delta float64) string {
	text := fmt.Sprintf("%+.1f pp", delta)
	if math.Abs(delta) < 0.05 {
		text = "±0.0 pp"
	}
	return RiskColor(curve.ClassifyDelta(delta)).Render(text)
}

// FormatHours renders a planned-hours weight, dropping a trailing ".0".
func FormatHours(h float64) string {
	if h <= 0 {
		return "0h"
	}
	if h == math.Trunc(h) {
		return fmt.Sprintf("%.0fh", h)
	}
	return fmt.Sprintf("%.1fh", h)
}

// FormatDay renders a canonical calendar day as YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return day.Format("2006-01-02")
}

// FormatDayPtr is FormatDay for optional plan bounds, "--" when unset.
func FormatDayPtr(day *time.Time) string {
	if day == nil {
		return "--"
	}
	return FormatDay(*day)
}
