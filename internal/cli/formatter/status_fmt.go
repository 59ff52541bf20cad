package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/contract"
)

const statusBarWidth = 12

// FormatStatus formats a StatusResponse into a styled CLI dashboard string.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder

	summary := resp.Summary
	b.WriteString(Dim("Reference day "+FormatDay(summary.ReferenceDay)) + "\n\n")

	headers := []string{"PACKAGE", "HOURS", "PLANNED", "REALIZED", "DELTA", "PROGRESS", "RISK"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight, AlignRight, AlignLeft, AlignLeft}
	rows := make([][]string, 0, len(resp.Packages))
	for _, p := range resp.Packages {
		ind := p.Indicators
		rows = append(rows, []string{
			Bold(p.PackageName),
			FormatHours(p.TotalHours),
			FormatPercent(ind.PlannedToDate),
			FormatPercent(ind.Realized),
			FormatDelta(ind.Delta),
			RenderPlanBar(ind.PlannedToDate, ind.Realized, statusBarWidth),
			RiskIndicator(ind.Risk),
		})
	}
	if len(rows) > 0 {
		b.WriteString(RenderTableAligned(headers, rows, align))
	}

	for _, p := range resp.Packages {
		for _, n := range p.Notes {
			b.WriteString(Dim(fmt.Sprintf("  %s: %s", p.PackageName, n)) + "\n")
		}
	}

	b.WriteString("\n")
	criticalPart := StyleRed.Render(fmt.Sprintf("%d Critical", summary.CountsCritical))
	atRiskPart := StyleYellow.Render(fmt.Sprintf("%d At Risk", summary.CountsAtRisk))
	onTrackPart := StyleGreen.Render(fmt.Sprintf("%d On Track", summary.CountsOnTrack))
	b.WriteString(fmt.Sprintf("%s, %s, %s", criticalPart, atRiskPart, onTrackPart) + "\n")

	if summary.PolicyMessage != "" {
		b.WriteString("\n" + Dim(summary.PolicyMessage) + "\n")
	}

	writeWarnings(&b, resp.Warnings)

	return RenderBox("Status", b.String())
}

func writeWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
	}
}
