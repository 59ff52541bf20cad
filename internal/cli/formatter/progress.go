package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scurve/internal/curve"
)

const (
	filledBlock  = "█"
	plannedBlock = "▒"
	emptyBlock   = "░"
)

// sparkRunes are the eight block heights used by RenderSparkline.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func cells(pct float64, width int) int {
	n := int(pct / 100 * float64(width))
	if n > width {
		n = width
	}
	return n
}

// RenderProgress renders a progress bar like [████░░░░]  45% for a percentage
// in [0, 100]. The bar is green above 66, yellow from 33 and red below.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}

	filled := cells(pct, width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %s", style.Render(bar), FormatPercent(pct))
}

// RenderPlanBar draws realized progress over the planned target in one bar:
// solid cells are done, shaded cells are planned but not yet done.
// Realized ahead of plan is drawn fully solid.
func RenderPlanBar(planned, realized float64, width int) string {
	planned, realized = clampPct(planned), clampPct(realized)
	if width < 2 {
		width = 2
	}

	done := cells(realized, width)
	target := cells(planned, width)
	if target < done {
		target = done
	}

	style := RiskColor(curve.ClassifyDelta(realized - planned))
	bar := style.Render(strings.Repeat(filledBlock, done)) +
		StyleDim.Render(strings.Repeat(plannedBlock, target-done)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-target))
	return "[" + bar + "]"
}

// RenderSparkline maps each percentage in [0, 100] to a block height.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(clampPct(v) / 100 * float64(top))
		out[i] = sparkRunes[idx]
	}
	return string(out)
}
