package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scurve/internal/contract"
	"github.com/alexanderramin/scurve/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// CurveOptions controls the curve table rendering.
type CurveOptions struct {
	// Raw shows the realized series with corrections instead of the
	// never-decreasing display series.
	Raw bool
	// Every keeps one row out of Every, plus the first, last and reference
	// days. Values below 2 keep every row.
	Every int
}

// FormatCurve renders the indicators panel, sparklines and daily table of a curve.
func FormatCurve(resp *contract.CurveResponse, opts CurveOptions) string {
	series := resp.Display
	if opts.Raw {
		series = resp.Raw
	}

	var b strings.Builder

	title := fmt.Sprintf("%s %s", strings.ToUpper(string(resp.Scope)), resp.Name)
	b.WriteString(StyleBold.Render(title) + "  " + TruncID(resp.ID) + "\n")
	b.WriteString(Dim(fmt.Sprintf("%s weighted", FormatHours(resp.TotalHours))))
	if opts.Raw {
		b.WriteString(Dim("  ·  raw series"))
	}
	b.WriteString("\n\n")

	left := indicatorsPanel(resp.Indicators)
	right := sparkPanel(series)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	b.WriteString("\n\n")

	if len(series.Timeline) == 0 {
		b.WriteString(Dim("No planned timeline") + "\n")
	} else {
		b.WriteString(curveTable(series, resp.Indicators.ReferenceDay, opts.Every))
	}

	d := resp.Diagnostics
	if d.RawEvents > 0 {
		b.WriteString("\n" + Dim(fmt.Sprintf("%d progress record(s) read, %d duplicate(s), %d undated", d.RawEvents, d.Duplicates, d.Dropped)) + "\n")
	}

	writeWarnings(&b, resp.Warnings)

	return RenderBox("Curve", b.String())
}

func indicatorsPanel(ind domain.Indicators) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(label), value))
	}
	row("REF DAY ", StyleFg.Render(FormatDay(ind.ReferenceDay)))
	row("PLAN END", FormatPercent(ind.PlannedTotal))
	row("PLANNED ", FormatPercent(ind.PlannedToDate))
	row("REALIZED", FormatPercent(ind.Realized))
	row("DELTA   ", FormatDelta(ind.Delta))
	row("RISK    ", RiskIndicator(ind.Risk))
	b.WriteString(RenderPlanBar(ind.PlannedToDate, ind.Realized, 24))
	return lipgloss.NewStyle().Width(38).Render(b.String())
}

func sparkPanel(s contract.SeriesSet) string {
	planned := make([]float64, len(s.Timeline))
	realized := make([]float64, len(s.Timeline))
	for i, day := range s.Timeline {
		planned[i] = seriesValue(s.Planned, i, day)
		realized[i] = seriesValue(s.Realized, i, day)
	}
	return fmt.Sprintf("%s\n%s %s\n%s %s",
		Header("Trend"),
		StyleDim.Render("P"), StyleBlue.Render(RenderSparkline(downsample(planned, 48))),
		StyleDim.Render("R"), StyleGreen.Render(RenderSparkline(downsample(realized, 48))),
	)
}

func curveTable(s contract.SeriesSet, ref time.Time, every int) string {
	headers := []string{"DATE", "PLANNED", "REALIZED", "DELTA"}
	align := []Align{AlignLeft, AlignRight, AlignRight, AlignRight}
	last := len(s.Timeline) - 1

	rows := make([][]string, 0, len(s.Timeline))
	for i, day := range s.Timeline {
		isRef := day.Equal(ref)
		if every > 1 && i != 0 && i != last && i%every != 0 && !isRef {
			continue
		}
		p := seriesValue(s.Planned, i, day)
		r := seriesValue(s.Realized, i, day)
		date := FormatDay(day)
		if isRef {
			date = StyleYellowBold.Render(date + " ◀")
		}
		rows = append(rows, []string{date, FormatPercent(p), FormatPercent(r), FormatDelta(r - p)})
	}
	return RenderTableAligned(headers, rows, align)
}

// seriesValue reads the point for timeline index i, falling back to a
// date lookup when the series is not aligned with the timeline.
func seriesValue(s domain.CurveSeries, i int, day time.Time) float64 {
	if i < len(s) && s[i].Date.Equal(day) {
		return s[i].Percent
	}
	return s.At(day)
}

// downsample keeps at most max evenly spaced values, always including the last.
func downsample(values []float64, max int) []float64 {
	if len(values) <= max || max < 2 {
		return values
	}
	out := make([]float64, 0, max)
	step := float64(len(values)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out = append(out, values[int(float64(i)*step+0.5)])
	}
	return out
}
