package formatter

import (
	"strings"

	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

type riskStyle struct {
	style lipgloss.Style
	label string
}

var riskStyles = map[domain.RiskLevel]riskStyle{
	domain.RiskCritical: {StyleRed, "CRITICAL"},
	domain.RiskAtRisk:   {StyleYellow, "AT RISK"},
	domain.RiskOnTrack:  {StyleGreen, "ON TRACK"},
}

// RiskColor is red for critical, yellow for at-risk and green on track.
func RiskColor(risk domain.RiskLevel) lipgloss.Style {
	if rs, ok := riskStyles[risk]; ok {
		return rs.style
	}
	return StyleDim
}

// RiskIndicator renders a colored bullet and label, e.g. "● CRITICAL".
func RiskIndicator(risk domain.RiskLevel) string {
	rs, ok := riskStyles[risk]
	if !ok {
		return StyleDim.Render("● UNKNOWN")
	}
	return rs.style.Render("● " + rs.label)
}

// SourceBadge labels where a reconciled percentage came from.
func SourceBadge(src domain.ProgressSource) string {
	switch src {
	case domain.SourceManual:
		return StylePurple.Render("✎ manual")
	case domain.SourceChecklist:
		return StyleBlue.Render("☑ checklist")
	default:
		return StyleDim.Render(string(src))
	}
}

// Header upper-cases text and underlines it to its display width.
func Header(text string) string {
	upper := strings.ToUpper(text)
	return StyleHeader.Render(upper) + "\n" + StyleDim.Render(strings.Repeat("─", lipgloss.Width(upper)))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
